package repositories

import (
	"pdfcompressor/internal/domain/entities"
)

// ConfigRepository реализация репозитория конфигурации сжатия
type ConfigRepository struct{}

// NewConfigRepository создает новый репозиторий конфигурации
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{}
}

// GetCompressionConfig собирает конфигурацию сжатия из настроек приложения
func (r *ConfigRepository) GetCompressionConfig(app *entities.AppCompressionConfig) (*entities.CompressionConfig, error) {
	if app == nil {
		return entities.NewCompressionConfig(""), nil
	}

	config := entities.NewCompressionConfigWithLicense(app.Algorithm, app.UniPDFLicenseKey)
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ValidateConfig валидирует конфигурацию
func (r *ConfigRepository) ValidateConfig(config *entities.CompressionConfig) error {
	return config.Validate()
}
