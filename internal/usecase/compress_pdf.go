package usecases

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
)

// CompressPDFUseCase сценарий сжатия одного PDF документа
type CompressPDFUseCase struct {
	compressor repositories.PDFCompressor
	fileRepo   repositories.FileRepository
	configRepo repositories.ConfigRepository
	settings   *entities.AppCompressionConfig
	logger     repositories.Logger
	stats      *StatsTracker
}

// NewCompressPDFUseCase создает новый сценарий сжатия PDF
func NewCompressPDFUseCase(
	compressor repositories.PDFCompressor,
	fileRepo repositories.FileRepository,
	configRepo repositories.ConfigRepository,
	settings *entities.AppCompressionConfig,
	logger repositories.Logger,
	stats *StatsTracker,
) *CompressPDFUseCase {
	if stats == nil {
		stats = NewStatsTracker()
	}

	return &CompressPDFUseCase{
		compressor: compressor,
		fileRepo:   fileRepo,
		configRepo: configRepo,
		settings:   settings,
		logger:     logger,
		stats:      stats,
	}
}

// Stats возвращает трекер статистики сценария
func (uc *CompressPDFUseCase) Stats() *StatsTracker {
	return uc.stats
}

// Execute сжимает загруженный документ и возвращает байты результата
func (uc *CompressPDFUseCase) Execute(upload *entities.Upload) (*entities.CompressionOutput, error) {
	if upload.IsEmpty() {
		uc.stats.Reject()
		uc.logWarning("Получена пустая загрузка, запрос отклонен")
		return nil, entities.ErrEmptyUpload
	}

	result, data, err := uc.compress(upload.FileName, upload.Data)
	if err != nil {
		return nil, err
	}

	return &entities.CompressionOutput{Result: result, Data: data}, nil
}

// ExecuteFile сжимает PDF файл на диске. Если outputPath пуст,
// результат пишется рядом с исходным файлом с суффиксом _compressed.
func (uc *CompressPDFUseCase) ExecuteFile(inputPath, outputPath string) (*entities.CompressionResult, string, error) {
	// Проверяем существование входного файла
	if !uc.fileRepo.FileExists(inputPath) {
		return nil, "", fmt.Errorf("%w: %s", entities.ErrFileNotFound, inputPath)
	}

	if _, err := uc.fileRepo.GetFileInfo(inputPath); err != nil {
		return nil, "", fmt.Errorf("ошибка получения информации о файле: %w", err)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка чтения файла: %w", err)
	}
	if len(data) == 0 {
		return nil, "", entities.ErrEmptyUpload
	}

	// Генерируем имя выходного файла, если не указано
	if outputPath == "" {
		outputPath = CompressedFileName(inputPath)
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := uc.fileRepo.CreateDirectory(dir); err != nil {
			return nil, "", fmt.Errorf("ошибка создания директории: %w", err)
		}
	}

	result, compressed, err := uc.compress(filepath.Base(inputPath), data)
	if err != nil {
		return nil, "", err
	}

	if err := os.WriteFile(outputPath, compressed, 0644); err != nil {
		return nil, "", fmt.Errorf("ошибка записи результата: %w", err)
	}

	return result, outputPath, nil
}

// CompressedFileName возвращает имя файла результата по умолчанию
func CompressedFileName(inputPath string) string {
	ext := filepath.Ext(inputPath)
	base := inputPath[:len(inputPath)-len(ext)]
	if ext == "" {
		ext = ".pdf"
	}
	return base + "_compressed" + ext
}

func (uc *CompressPDFUseCase) compress(name string, data []byte) (*entities.CompressionResult, []byte, error) {
	documentID := uuid.NewString()

	// Создаем конфигурацию сжатия
	config, err := uc.configRepo.GetCompressionConfig(uc.settings)
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка создания конфигурации: %w", err)
	}
	if err := uc.configRepo.ValidateConfig(config); err != nil {
		return nil, nil, fmt.Errorf("ошибка валидации конфигурации: %w", err)
	}

	uc.logInfo("📄 Документ %s (%s), алгоритм: %s", documentID, displayName(name), config.Algorithm)
	uc.logInfo("Original PDF size: %d bytes", len(data))

	var out bytes.Buffer
	result, err := uc.compressor.Compress(bytes.NewReader(data), &out, config)
	if err != nil {
		failed := &entities.CompressionResult{
			DocumentID:   documentID,
			CurrentFile:  name,
			OriginalSize: int64(len(data)),
			Error:        err,
		}
		uc.stats.Record(failed)
		uc.logError("❌ Ошибка сжатия документа %s: %v", documentID, err)
		return nil, nil, fmt.Errorf("%w: %w", entities.ErrCompressionFailed, err)
	}

	result.DocumentID = documentID
	result.CurrentFile = name
	result.OriginalSize = int64(len(data))
	result.CompressedSize = int64(out.Len())
	result.CalculateCompressionRatio()

	uc.logInfo("Optimized PDF size: %d bytes", out.Len())
	uc.logSuccess("✓ Документ %s: изображений %d (уменьшено %d), форм пропущено %d, сжатие %.1f%%",
		documentID, result.ImagesFound, result.ImagesResized, result.FormsSkipped, result.CompressionRatio)

	uc.stats.Record(result)

	return result, out.Bytes(), nil
}

func displayName(name string) string {
	if name == "" {
		return "без имени"
	}
	return name
}

// Методы для логирования
func (uc *CompressPDFUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *CompressPDFUseCase) logSuccess(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Success(format, args...)
	}
}

func (uc *CompressPDFUseCase) logWarning(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Warning(format, args...)
	}
}

func (uc *CompressPDFUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
