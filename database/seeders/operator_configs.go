package seeders

import (
	"log"

	"travel-agency/models/operator_config"

	"gorm.io/gorm"
)

// DefaultOperatorConfigs are placeholder operators, one per launch language.
// Admins replace the addresses from the admin panel.
var DefaultOperatorConfigs = []operator_config.OperatorConfig{
	{LanguageCode: "ru", OperatorName: "Russian desk", OperatorEmail: "operator.ru@travelagency.com", IsActive: true},
	{LanguageCode: "en", OperatorName: "English desk", OperatorEmail: "operator.en@travelagency.com", IsActive: true},
	{LanguageCode: "fr", OperatorName: "French desk", OperatorEmail: "operator.fr@travelagency.com", IsActive: true},
}

// SeedOperatorConfigs inserts a config for every supported language that has none.
// Existing rows are never touched.
func SeedOperatorConfigs(db *gorm.DB, supported []string) (int, error) {
	log.Printf("🔍 Checking language operator configs...")

	var existingCodes []string
	if err := db.Model(&operator_config.OperatorConfig{}).Pluck("language_code", &existingCodes).Error; err != nil {
		log.Printf("❌ Failed to fetch existing language codes: %v", err)
		return 0, err
	}

	existing := make(map[string]bool, len(existingCodes))
	for _, code := range existingCodes {
		existing[code] = true
	}
	wanted := make(map[string]bool, len(supported))
	for _, code := range supported {
		wanted[code] = true
	}

	inserted := 0
	for _, cfg := range DefaultOperatorConfigs {
		if existing[cfg.LanguageCode] || !wanted[cfg.LanguageCode] {
			continue
		}
		row := cfg
		if err := db.Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed operator for %s: %v", cfg.LanguageCode, err)
			return inserted, err
		}
		log.Printf("✅ Added operator %s <%s> for %s", row.OperatorName, row.OperatorEmail, row.LanguageCode)
		inserted++
	}

	if inserted == 0 {
		log.Printf("✅ All operator configs are already present. No seeding needed.")
	}
	return inserted, nil
}
