package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
	"pdfcompressor/internal/presentation/tui"
)

// ApplicationProcessor управляет жизненным циклом HTTP сервера и панели мониторинга
type ApplicationProcessor struct {
	server     *http.Server
	config     *entities.Config
	tuiManager *tui.Manager
	logger     repositories.Logger

	serverErrors chan error

	// Graceful shutdown
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplicationProcessor создает новый процессор приложения
func NewApplicationProcessor(
	handler http.Handler,
	config *entities.Config,
	tuiManager *tui.Manager,
	logger repositories.Logger,
) *ApplicationProcessor {
	ctx, cancel := context.WithCancel(context.Background())

	return &ApplicationProcessor{
		server: &http.Server{
			Addr:         config.Server.Addr(),
			Handler:      handler,
			ReadTimeout:  config.Server.ReadTimeout,
			WriteTimeout: config.Server.WriteTimeout,
			IdleTimeout:  config.Server.IdleTimeout,
		},
		config:       config,
		tuiManager:   tuiManager,
		logger:       logger,
		serverErrors: make(chan error, 1),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Run запускает сервер и блокирует до сигнала, ошибки сервера или выхода из TUI
func (p *ApplicationProcessor) Run() error {
	p.startServer()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	done := make(chan error, 1)
	go func() {
		select {
		case err := <-p.serverErrors:
			p.logError("Ошибка HTTP сервера: %v", err)
			done <- err
		case sig := <-shutdown:
			p.logInfo("Получен сигнал %s, остановка сервера...", sig)
			done <- nil
		case <-p.ctx.Done():
			done <- nil
		}
		if p.tuiManager != nil {
			p.tuiManager.Stop()
		}
	}()

	if p.tuiManager != nil {
		p.tuiManager.SetOnQuit(p.Stop)
		if err := p.tuiManager.Run(); err != nil {
			p.logError("Ошибка TUI: %v", err)
		}
		p.Stop()
	}

	runErr := <-done
	p.shutdown()
	return runErr
}

// Stop инициирует остановку сервера
func (p *ApplicationProcessor) Stop() {
	p.cancel()
}

func (p *ApplicationProcessor) startServer() {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		p.logInfo("🚀 HTTP сервер слушает %s (алгоритм: %s)", p.server.Addr, p.config.Compression.Algorithm)
		if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.serverErrors <- err
		}
	}()
}

// shutdown корректно завершает работу сервера
func (p *ApplicationProcessor) shutdown() {
	p.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), p.config.Server.GracefulShutdown)
	defer cancel()

	if err := p.server.Shutdown(ctx); err != nil {
		p.logError("Ошибка корректной остановки: %v", err)
		if err := p.server.Close(); err != nil {
			p.logError("Ошибка принудительной остановки: %v", err)
		}
	}

	p.wg.Wait()
	p.logInfo("Сервер остановлен")
}

func (p *ApplicationProcessor) logInfo(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(format, args...)
	}
}

func (p *ApplicationProcessor) logError(format string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Error(format, args...)
	}
}
