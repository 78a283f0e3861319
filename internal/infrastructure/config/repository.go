package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pdfcompressor/internal/domain/entities"
)

// Repository реализация репозитория конфигурации
type Repository struct{}

// NewRepository создает новый репозиторий конфигурации
func NewRepository() *Repository {
	return &Repository{}
}

// Load загружает конфигурацию из файла, применяет переменные окружения и проверяет результат
func (r *Repository) Load(configPath string) (*entities.Config, error) {
	config := DefaultConfig()

	// Если файл не существует, остаемся на конфигурации по умолчанию
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("ошибка чтения файла конфигурации: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("ошибка разбора файла конфигурации: %w", err)
			}
		}
	}

	// .env необязателен
	_ = godotenv.Load()

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("некорректная конфигурация: %w", err)
	}

	return config, nil
}

// Save сохраняет конфигурацию в файл
func (r *Repository) Save(configPath string, config *entities.Config) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

// DefaultConfig создает конфигурацию по умолчанию
func DefaultConfig() *entities.Config {
	return &entities.Config{
		Server: entities.ServerConfig{
			Host:             "0.0.0.0",
			Port:             8080,
			ReadTimeout:      60 * time.Second,
			WriteTimeout:     120 * time.Second,
			IdleTimeout:      120 * time.Second,
			GracefulShutdown: 15 * time.Second,
			MaxUploadMB:      50,
		},
		Compression: entities.AppCompressionConfig{
			Algorithm: entities.AlgorithmPDFCPU,
		},
		Output: entities.OutputConfig{
			LogLevel:     "info",
			LogToFile:    true,
			LogFileName:  entities.DefaultOutputLogName,
			ErrorLogName: entities.DefaultErrorLogName,
			TUI:          false,
		},
	}
}

// applyEnvOverrides переопределяет настройки переменными окружения
func applyEnvOverrides(config *entities.Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		config.Server.Host = v
	}

	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}

	if v := os.Getenv("COMPRESSION_ALGORITHM"); v != "" {
		config.Compression.Algorithm = v
	}

	if v := os.Getenv("UNIDOC_LICENSE_API_KEY"); v != "" {
		config.Compression.UniPDFLicenseKey = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		config.Output.LogLevel = v
	}
}
