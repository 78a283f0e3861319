package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
	"pdfcompressor/internal/infrastructure/compressors"
	"pdfcompressor/internal/infrastructure/logging"
	infraRepos "pdfcompressor/internal/infrastructure/repositories"
	"pdfcompressor/internal/interface/controllers"
	"pdfcompressor/internal/presentation/tui"
	usecases "pdfcompressor/internal/usecase"
)

// newServeCmd создает команду запуска HTTP сервера
func newServeCmd() *cobra.Command {
	var withTUI bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP сервер",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if withTUI {
				appConfig.Output.TUI = true
			}
			return runServe(appConfig)
		},
	}

	cmd.Flags().BoolVar(&withTUI, "tui", false, "показывать панель мониторинга в терминале")
	return cmd
}

// newCompressCmd создает команду сжатия локального файла
func newCompressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compress <input.pdf> [output.pdf]",
		Short: "Сжать локальный PDF файл",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			outputPath := ""
			if len(args) > 1 {
				outputPath = args[1]
			}

			fileLogger, err := newFileLogger(appConfig, nil)
			if err != nil {
				return err
			}
			defer fileLogger.Close()

			compressUseCase, err := newCompressUseCase(appConfig, fileLogger, nil)
			if err != nil {
				return err
			}

			return controllers.NewCLIController(compressUseCase, cmd.OutOrStdout()).HandleSingleFile(args[0], outputPath)
		},
	}
}

// runServe собирает зависимости сервиса и блокирует до остановки
func runServe(cfg *entities.Config) error {
	// В режиме TUI консоль занята панелью
	var console io.Writer = os.Stdout
	if cfg.Output.TUI {
		console = nil
	}

	fileLogger, err := newFileLogger(cfg, console)
	if err != nil {
		return err
	}
	defer fileLogger.Close()

	var logger repositories.Logger = fileLogger

	var tuiManager *tui.Manager
	if cfg.Output.TUI {
		tuiManager = tui.NewManager(configRepo, cfgFile, cfg)
		tuiManager.Initialize()
		defer tuiManager.Cleanup()

		// Оборачиваем логгер адаптером, чтобы видеть логи в TUI
		logger = tui.NewUILogger(fileLogger, tuiManager)
	}

	stats := usecases.NewStatsTracker()
	if tuiManager != nil {
		stats.SetProgressReporter(tuiManager.SendStatusUpdate)
	}

	compressUseCase, err := newCompressUseCase(cfg, logger, stats)
	if err != nil {
		return err
	}

	viewLogsUseCase := usecases.NewViewLogsUseCase(
		infraRepos.NewFileSystemRepository(),
		cfg.Output.LogFileName,
		cfg.Output.ErrorLogName,
	)

	controller := controllers.NewHTTPController(compressUseCase, viewLogsUseCase, cfg.Server.MaxUploadBytes(), logger)
	router := controllers.NewRouter(controller, logger)

	processor := NewApplicationProcessor(router, cfg, tuiManager, logger)
	stats.SetMessage(fmt.Sprintf("Сервер запущен на %s", cfg.Server.Addr()))

	return processor.Run()
}

func newFileLogger(cfg *entities.Config, console io.Writer) (*logging.FileLogger, error) {
	fileLogger, err := logging.NewFileLogger(logging.Options{
		OutputPath: cfg.Output.LogFileName,
		ErrorPath:  cfg.Output.ErrorLogName,
		LogLevel:   cfg.Output.LogLevel,
		LogToFile:  cfg.Output.LogToFile,
		Console:    console,
	})
	if err != nil {
		return nil, fmt.Errorf("не удалось инициализировать логгер: %w", err)
	}
	return fileLogger, nil
}

func newCompressUseCase(cfg *entities.Config, logger repositories.Logger, stats *usecases.StatsTracker) (*usecases.CompressPDFUseCase, error) {
	compressor, err := compressors.NewCompressor(cfg.Compression.Algorithm, compressors.NewImageNormalizer(), logger)
	if err != nil {
		return nil, err
	}

	return usecases.NewCompressPDFUseCase(
		compressor,
		infraRepos.NewFileSystemRepository(),
		infraRepos.NewConfigRepository(),
		&cfg.Compression,
		logger,
		stats,
	), nil
}
