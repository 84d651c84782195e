package db

import (
	"github.com/routegate/routegate/internal/db/models"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// defaultSeed is the stock catalog and rule set the service boots with. The
// sample text rules steer compliance-sensitive prompts away from the provider
// they were sent to.
const defaultSeed = `
models:
  - provider: openai
    model: gpt-3.5
  - provider: openai
    model: gpt-4
  - provider: anthropic
    model: claude-v1
  - provider: google
    model: gemini-alpha

rules:
  - original_provider: openai
    original_model: gpt-4
    regex_pattern: "(?i)(credit card)"
    redirect_provider: google
    redirect_model: gemini-alpha
  - original_provider: anthropic
    original_model: claude-v1
    regex_pattern: "(?i)(social security number|ssn)"
    redirect_provider: openai
    redirect_model: gpt-3.5
  - original_provider: google
    original_model: gemini-pro
    regex_pattern: "(?i)(bank account|routing number)"
    redirect_provider: anthropic
    redirect_model: claude-v1

file_rules:
  - file_type: PDF
    redirect_provider: anthropic
    redirect_model: claude-v1
  - file_type: Word Document
    redirect_provider: google
    redirect_model: gemini-alpha
  - file_type: CSV
    redirect_provider: openai
    redirect_model: gpt-4
`

type seedFile struct {
	Models []struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
	} `yaml:"models"`
	Rules []struct {
		OriginalProvider string `yaml:"original_provider"`
		OriginalModel    string `yaml:"original_model"`
		RegexPattern     string `yaml:"regex_pattern"`
		RedirectProvider string `yaml:"redirect_provider"`
		RedirectModel    string `yaml:"redirect_model"`
	} `yaml:"rules"`
	FileRules []struct {
		FileType         string `yaml:"file_type"`
		RedirectProvider string `yaml:"redirect_provider"`
		RedirectModel    string `yaml:"redirect_model"`
	} `yaml:"file_rules"`
}

// ResetAndSeed wipes all catalog and rule rows and re-inserts the default
// seed set. Destructive: soft-deleted history is lost too. Runs inside one
// transaction so a failed seed leaves the previous data intact.
func ResetAndSeed(database *gorm.DB) error {
	var seed seedFile
	if err := yaml.Unmarshal([]byte(defaultSeed), &seed); err != nil {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		for _, table := range []interface{}{
			&models.Model{}, &models.RoutingRule{}, &models.FileRoutingRule{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
				return err
			}
		}

		for _, m := range seed.Models {
			if err := tx.Create(&models.Model{
				Provider:    m.Provider,
				ModelName:   m.Model,
				IsAvailable: true,
			}).Error; err != nil {
				return err
			}
		}
		for _, r := range seed.Rules {
			if err := tx.Create(&models.RoutingRule{
				OriginalProvider: r.OriginalProvider,
				OriginalModel:    r.OriginalModel,
				RegexPattern:     r.RegexPattern,
				RedirectProvider: r.RedirectProvider,
				RedirectModel:    r.RedirectModel,
				IsActive:         true,
			}).Error; err != nil {
				return err
			}
		}
		for _, fr := range seed.FileRules {
			if err := tx.Create(&models.FileRoutingRule{
				FileType:         fr.FileType,
				RedirectProvider: fr.RedirectProvider,
				RedirectModel:    fr.RedirectModel,
				IsActive:         true,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
