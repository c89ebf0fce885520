package operator_config

import "time"

// OperatorConfig maps a language code to the operator notified about bookings
// made in that language. The language code is unique and never changes after creation.
type OperatorConfig struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	LanguageCode  string    `gorm:"type:varchar(5);not null;uniqueIndex" json:"language_code"`
	OperatorName  string    `gorm:"type:varchar(255);not null" json:"operator_name"`
	OperatorEmail string    `gorm:"type:varchar(255);not null" json:"operator_email"`
	IsActive      bool      `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OperatorConfig) TableName() string {
	return "language_operator_configs"
}
