package models

import "github.com/lib/pq"

// Product — таблица products
type Product struct {
	Base
	Name        string         `gorm:"not null;index" json:"name"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Specs       *string        `gorm:"type:text" json:"specs"`
	Images      pq.StringArray `gorm:"type:text[];not null" json:"images"` // URL-ы Cloudinary, порядок важен
}

// PendingImageDeletion — удаление картинки в Cloudinary, которое не удалось
// и ждёт повторной попытки.
type PendingImageDeletion struct {
	Base
	PublicID  string `gorm:"not null;index" json:"publicId"`
	Attempts  int    `gorm:"not null;default:0" json:"attempts"`
	LastError string `gorm:"type:text" json:"lastError"`
}
