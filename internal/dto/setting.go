package dto

type SettingRequest struct {
	Key   string  `json:"key"`
	Value *string `json:"value"`
}

type ContactResponse struct {
	WhatsAppNumber string `json:"whatsappNumber"`
}
