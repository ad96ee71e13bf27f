package dto

type UploadRequest struct {
	Files []string `json:"files"`
}

type UploadResponse struct {
	URLs []string `json:"urls"`
}
