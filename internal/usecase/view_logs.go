package usecases

import (
	"fmt"

	"pdfcompressor/internal/domain/repositories"
)

// LogSnapshot содержимое журналов сервиса
type LogSnapshot struct {
	OutputLogName string
	OutputLog     string
	ErrorLogName  string
	ErrorLog      string
}

// ViewLogsUseCase сценарий просмотра журналов сервиса
type ViewLogsUseCase struct {
	fileRepo      repositories.FileRepository
	outputLogPath string
	errorLogPath  string
}

// NewViewLogsUseCase создает новый сценарий просмотра журналов
func NewViewLogsUseCase(fileRepo repositories.FileRepository, outputLogPath, errorLogPath string) *ViewLogsUseCase {
	return &ViewLogsUseCase{
		fileRepo:      fileRepo,
		outputLogPath: outputLogPath,
		errorLogPath:  errorLogPath,
	}
}

// Execute читает оба журнала
func (uc *ViewLogsUseCase) Execute() (*LogSnapshot, error) {
	output, err := uc.fileRepo.ReadTextFile(uc.outputLogPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала %s: %w", uc.outputLogPath, err)
	}

	errorLog, err := uc.fileRepo.ReadTextFile(uc.errorLogPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала %s: %w", uc.errorLogPath, err)
	}

	return &LogSnapshot{
		OutputLogName: uc.outputLogPath,
		OutputLog:     output,
		ErrorLogName:  uc.errorLogPath,
		ErrorLog:      errorLog,
	}, nil
}
