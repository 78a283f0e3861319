package entities

import (
	"fmt"
	"time"
)

// Config представляет конфигурацию приложения
type Config struct {
	Server      ServerConfig         `yaml:"server"`
	Compression AppCompressionConfig `yaml:"compression"`
	Output      OutputConfig         `yaml:"output"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	Host             string        `yaml:"host"`
	Port             int           `yaml:"port"`
	ReadTimeout      time.Duration `yaml:"read_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	IdleTimeout      time.Duration `yaml:"idle_timeout"`
	GracefulShutdown time.Duration `yaml:"graceful_shutdown"`
	MaxUploadMB      int           `yaml:"max_upload_mb"`
}

// AppCompressionConfig настройки сжатия приложения
type AppCompressionConfig struct {
	Algorithm        string `yaml:"algorithm"`
	UniPDFLicenseKey string `yaml:"unipdf_license_key"`
}

// OutputConfig настройки вывода
type OutputConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogToFile    bool   `yaml:"log_to_file"`
	LogFileName  string `yaml:"log_file_name"`
	ErrorLogName string `yaml:"error_log_file_name"`
	TUI          bool   `yaml:"tui"`
}

// Поддерживаемые алгоритмы сжатия
const (
	AlgorithmPDFCPU = "pdfcpu"
	AlgorithmUniPDF = "unipdf"
)

// Имена файлов журнала по умолчанию
const (
	DefaultOutputLogName = "PdfCompressionService-output.log"
	DefaultErrorLogName  = "PdfCompressionService-error.log"
)

// Addr возвращает адрес для прослушивания
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MaxUploadBytes возвращает лимит размера загрузки в байтах
func (s ServerConfig) MaxUploadBytes() int64 {
	return int64(s.MaxUploadMB) << 20
}

// Validate проверяет корректность конфигурации приложения
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return ErrInvalidPort
	}
	if c.Server.MaxUploadMB <= 0 {
		return ErrInvalidUploadLimit
	}
	return c.Compression.Validate()
}

// Validate проверяет корректность настроек сжатия
func (c *AppCompressionConfig) Validate() error {
	switch c.Algorithm {
	case AlgorithmPDFCPU, AlgorithmUniPDF:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAlgorithm, c.Algorithm)
	}
}

// ServiceStatus накопительная статистика обработанных запросов
type ServiceStatus struct {
	// Общая статистика
	TotalRequests      int
	SuccessfulRequests int
	FailedRequests     int
	RejectedRequests   int

	// Статистика сжатия
	TotalOriginalSize   int64
	TotalCompressedSize int64
	TotalSavedSpace     int64
	AverageCompression  float64
	TotalImages         int
	ResizedImages       int

	// Текущий результат
	LastResult *CompressionResult

	// Время работы
	StartTime   time.Time
	ElapsedTime time.Duration

	// Сообщение для UI
	Message string
}

// UIScreen типы экранов UI
type UIScreen int

const (
	UIScreenDashboard UIScreen = iota
	UIScreenConfig
)

// NewServiceStatus создает новый статус сервиса
func NewServiceStatus() *ServiceStatus {
	return &ServiceStatus{
		StartTime: time.Now(),
	}
}

// AddResult добавляет результат обработки документа
func (ss *ServiceStatus) AddResult(result *CompressionResult) {
	ss.TotalRequests++
	ss.LastResult = result

	if result.Success && result.Error == nil {
		ss.SuccessfulRequests++
		ss.TotalOriginalSize += result.OriginalSize
		ss.TotalCompressedSize += result.CompressedSize
		ss.TotalSavedSpace += result.SavedSpace
		ss.TotalImages += result.ImagesFound
		ss.ResizedImages += result.ImagesResized

		// Пересчитываем среднее сжатие
		if ss.TotalOriginalSize > 0 {
			ss.AverageCompression = ((float64(ss.TotalOriginalSize) - float64(ss.TotalCompressedSize)) / float64(ss.TotalOriginalSize)) * 100
		}
	} else {
		ss.FailedRequests++
	}

	ss.ElapsedTime = time.Since(ss.StartTime)
}

// AddRejected учитывает отклоненный запрос (пустая загрузка)
func (ss *ServiceStatus) AddRejected() {
	ss.TotalRequests++
	ss.RejectedRequests++
	ss.ElapsedTime = time.Since(ss.StartTime)
}

// SuccessRate возвращает долю успешных запросов в процентах
func (ss *ServiceStatus) SuccessRate() float64 {
	if ss.TotalRequests == 0 {
		return 0
	}
	return float64(ss.SuccessfulRequests) / float64(ss.TotalRequests) * 100
}

// FormatElapsedTime форматирует время работы
func (ss *ServiceStatus) FormatElapsedTime() string {
	duration := ss.ElapsedTime
	if duration < time.Second {
		return "< 1 сек"
	}
	return duration.Round(time.Second).String()
}
