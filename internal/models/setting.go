package models

// Setting — таблица settings (ключ → значение), например whatsapp_number
type Setting struct {
	Base
	Key   string `gorm:"uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

const SettingWhatsAppNumber = "whatsapp_number"
