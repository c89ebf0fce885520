package operator_config

import (
	"context"
	"errors"

	"travel-agency/apperror"
	"travel-agency/config"
	"travel-agency/database"
	operatorModel "travel-agency/models/operator_config"
	operatorTypes "travel-agency/types/operator_config"

	"gorm.io/gorm"
)

// Service manages the language to operator directory. Lookups always hit the
// database so admin edits apply to the next booking.
type Service struct {
	db        *gorm.DB
	languages config.LanguageConfig
}

func NewService(db *gorm.DB, languages config.LanguageConfig) *Service {
	return &Service{db: db, languages: languages}
}

func (s *Service) List(ctx context.Context) ([]operatorModel.OperatorConfig, error) {
	var configs []operatorModel.OperatorConfig
	if err := s.db.WithContext(ctx).Order("language_code ASC").Find(&configs).Error; err != nil {
		return nil, apperror.Internal("Failed to list operator configs", err)
	}
	return configs, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*operatorModel.OperatorConfig, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *Service) load(db *gorm.DB, id uint) (*operatorModel.OperatorConfig, error) {
	var cfg operatorModel.OperatorConfig
	if err := db.First(&cfg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("Operator config not found")
		}
		return nil, apperror.Internal("Failed to load operator config", err)
	}
	return &cfg, nil
}

// Create adds the operator for a language. A language can have only one
// config, active or not.
func (s *Service) Create(ctx context.Context, req operatorTypes.OperatorConfigCreateRequest) (*operatorModel.OperatorConfig, error) {
	if !s.languages.IsSupported(req.LanguageCode) {
		return nil, apperror.InvalidField("language_code", "must be one of the supported languages")
	}

	created := req.ToModel()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&operatorModel.OperatorConfig{}).
			Where("language_code = ?", created.LanguageCode).
			Count(&existing).Error; err != nil {
			return apperror.Internal("Failed to check operator configs", err)
		}
		if existing > 0 {
			return apperror.Conflict("Config for language '%s' already exists", created.LanguageCode)
		}
		if err := tx.Create(&created).Error; err != nil {
			// Lost a race with a concurrent create.
			if database.IsUniqueViolation(err) {
				return apperror.Conflict("Config for language '%s' already exists", created.LanguageCode)
			}
			return apperror.Internal("Failed to create operator config", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update changes name, email or active flag. The language code is fixed.
func (s *Service) Update(ctx context.Context, id uint, req operatorTypes.OperatorConfigUpdateRequest) (*operatorModel.OperatorConfig, error) {
	var updated *operatorModel.OperatorConfig
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cfg, err := s.load(tx, id)
		if err != nil {
			return err
		}
		req.Apply(cfg)
		if err := tx.Select("operator_name", "operator_email", "is_active", "updated_at").Save(cfg).Error; err != nil {
			return apperror.Internal("Failed to update operator config", err)
		}
		updated = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&operatorModel.OperatorConfig{}, id)
	if res.Error != nil {
		return apperror.Internal("Failed to delete operator config", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("Operator config not found")
	}
	return nil
}

// ActiveFor returns the active operator for a language, or nil when none is configured.
func (s *Service) ActiveFor(ctx context.Context, language string) (*operatorModel.OperatorConfig, error) {
	var cfg operatorModel.OperatorConfig
	err := s.db.WithContext(ctx).
		Where("language_code = ? AND is_active = ?", language, true).
		First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
