package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"pdfcompressor/internal/domain/entities"
	"pdfcompressor/internal/domain/repositories"
)

// UI Configuration constants
const (
	MaxLogBufferSize   = 1000
	LogFlushInterval   = 50 * time.Millisecond
	ProgressBarWidth   = 40
	MaxFileNameLength  = 60
	MaxFileNameDisplay = 57
	StatusViewHeight   = 18
)

// Manager управляет панелью мониторинга сервиса
type Manager struct {
	app           *tview.Application
	pages         *tview.Pages
	currentScreen entities.UIScreen

	// UI компоненты
	statusView *tview.TextView
	logView    *tview.TextView
	configForm *tview.Form

	// Конфигурация
	configRepo repositories.AppConfigRepository
	configPath string
	config     entities.Config // редактируется на экране конфигурации
	running    entities.Config // конфигурация запущенного сервера

	// Callbacks
	onQuit func()

	// Состояние
	logBuffer   []string
	statusMutex sync.RWMutex

	// Батчинг логов через канал
	logChan  chan string
	logDone  chan struct{}
	logMutex sync.Mutex

	// После остановки очередь обновлений tview никто не читает
	stopped atomic.Bool
}

// NewManager создает новый менеджер TUI
func NewManager(configRepo repositories.AppConfigRepository, configPath string, config *entities.Config) *Manager {
	m := &Manager{
		app:        tview.NewApplication(),
		pages:      tview.NewPages(),
		configRepo: configRepo,
		configPath: configPath,
		logBuffer:  make([]string, 0, MaxLogBufferSize),
		logChan:    make(chan string, 100),
		logDone:    make(chan struct{}),
	}
	if config != nil {
		m.config = *config
		m.running = *config
	}
	go m.logProcessor()
	return m
}

// Initialize создает экраны и горячие клавиши
func (m *Manager) Initialize() {
	m.createDashboard()
	m.createConfigScreen()
	m.setupKeyBindings()

	m.pages.AddPage("dashboard", m.createDashboardLayout(), true, true)
	m.pages.AddPage("config", m.configForm, true, false)
	m.currentScreen = entities.UIScreenDashboard

	m.statusView.SetText(FormatStatus(m.running, *entities.NewServiceStatus()))
}

// Run запускает TUI и блокирует до выхода
func (m *Manager) Run() error {
	return m.app.SetRoot(m.pages, true).EnableMouse(true).Run()
}

// Stop останавливает TUI из другой горутины
func (m *Manager) Stop() {
	m.stopped.Store(true)
	m.Cleanup()
	m.app.Stop()
}

// SetOnQuit устанавливает callback выхода по клавише q
func (m *Manager) SetOnQuit(callback func()) {
	m.onQuit = callback
}

// SendStatusUpdate отправляет обновление статистики
func (m *Manager) SendStatusUpdate(status entities.ServiceStatus) {
	if m.statusView == nil || m.stopped.Load() {
		return
	}

	text := FormatStatus(m.running, status)

	m.app.QueueUpdateDraw(func() {
		m.statusView.SetText(text)
	})
}

// createDashboard создает панели статистики и журнала
func (m *Manager) createDashboard() {
	m.statusView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(false)

	m.statusView.SetBorder(true).
		SetTitle("📊 PDF Compression Service").
		SetTitleAlign(tview.AlignCenter)

	m.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(MaxLogBufferSize)

	m.logView.SetBorder(true).
		SetTitle("📋 Журнал событий").
		SetTitleAlign(tview.AlignCenter)
}

// createDashboardLayout создает layout панели мониторинга
func (m *Manager) createDashboardLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.statusView, StatusViewHeight, 0, false).
		AddItem(m.logView, 0, 1, false)
}

// createConfigScreen создает экран конфигурации
func (m *Manager) createConfigScreen() {
	m.configForm = tview.NewForm().
		AddInputField("Адрес", m.config.Server.Host, 30, nil, func(text string) {
			m.config.Server.Host = text
		}).
		AddInputField("Порт", strconv.Itoa(m.config.Server.Port), 10, tview.InputFieldInteger, func(text string) {
			if port, err := strconv.Atoi(text); err == nil {
				m.config.Server.Port = port
			}
		}).
		AddInputField("Лимит загрузки (MB)", strconv.Itoa(m.config.Server.MaxUploadMB), 10, tview.InputFieldInteger, func(text string) {
			if limit, err := strconv.Atoi(text); err == nil {
				m.config.Server.MaxUploadMB = limit
			}
		}).
		AddDropDown("Алгоритм", []string{entities.AlgorithmPDFCPU, entities.AlgorithmUniPDF}, algorithmIndex(m.config.Compression.Algorithm), func(option string, optionIndex int) {
			m.config.Compression.Algorithm = option
		}).
		AddInputField("Лицензия UniPDF (UNIDOC_LICENSE_API_KEY)", m.config.Compression.UniPDFLicenseKey, 60, nil, func(text string) {
			m.config.Compression.UniPDFLicenseKey = text
		}).
		AddDropDown("Уровень журнала", []string{"debug", "info", "warning", "error"}, levelIndex(m.config.Output.LogLevel), func(option string, optionIndex int) {
			m.config.Output.LogLevel = option
		}).
		AddButton("Сохранить", func() {
			m.saveConfig()
			m.switchToScreen(entities.UIScreenDashboard)
		})

	m.configForm.SetBorder(true).
		SetTitle("⚙️ Конфигурация (применяется после перезапуска, ESC - выйти без сохранения)").
		SetTitleAlign(tview.AlignCenter)

	m.configForm.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			m.switchToScreen(entities.UIScreenDashboard)
			return nil
		}
		return event
	})
}

// saveConfig сохраняет отредактированную конфигурацию
func (m *Manager) saveConfig() {
	if m.configRepo == nil {
		return
	}

	cfg := m.config
	if err := cfg.Validate(); err != nil {
		m.AddLog("error", fmt.Sprintf("Конфигурация не сохранена: %v", err))
		return
	}
	if err := m.configRepo.Save(m.configPath, &cfg); err != nil {
		m.AddLog("error", fmt.Sprintf("Ошибка сохранения конфигурации: %v", err))
		return
	}
	m.AddLog("success", fmt.Sprintf("Конфигурация сохранена в %s", m.configPath))
}

// setupKeyBindings настраивает горячие клавиши
func (m *Manager) setupKeyBindings() {
	m.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF1:
			m.switchToScreen(entities.UIScreenDashboard)
			return nil
		case tcell.KeyF2:
			m.switchToScreen(entities.UIScreenConfig)
			return nil
		}

		if m.currentScreen == entities.UIScreenDashboard {
			switch event.Rune() {
			case 'q', 'Q':
				m.quit()
				return nil
			}
		}

		return event
	})
}

// quit останавливает TUI и сообщает приложению о выходе
func (m *Manager) quit() {
	m.Stop()
	if m.onQuit != nil {
		go m.onQuit()
	}
}

// switchToScreen переключает на указанный экран
func (m *Manager) switchToScreen(screen entities.UIScreen) {
	m.statusMutex.Lock()
	defer m.statusMutex.Unlock()

	m.currentScreen = screen

	switch screen {
	case entities.UIScreenDashboard:
		m.pages.SwitchToPage("dashboard")
	case entities.UIScreenConfig:
		m.pages.SwitchToPage("config")
	}
}

// FormatStatus формирует текст панели статистики
func FormatStatus(cfg entities.Config, status entities.ServiceStatus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "[yellow]🌐 Адрес:[white] http://%s   [yellow]⚙️  Алгоритм:[white] %s   [yellow]⏱️  Аптайм:[white] %s\n\n",
		cfg.Server.Addr(), cfg.Compression.Algorithm, status.FormatElapsedTime())

	fmt.Fprintf(&b,
		"[green]📈 Запросы:[white] всего [cyan]%d[white], успешно [green]%d[white]",
		status.TotalRequests, status.SuccessfulRequests)
	if status.FailedRequests > 0 {
		fmt.Fprintf(&b, ", ошибок [red]%d[white]", status.FailedRequests)
	}
	if status.RejectedRequests > 0 {
		fmt.Fprintf(&b, ", отклонено [yellow]%d[white]", status.RejectedRequests)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "[green]🖼️  Изображения:[white] обработано [cyan]%d[white], уменьшено [cyan]%d[white]\n\n",
		status.TotalImages, status.ResizedImages)

	fmt.Fprintf(&b,
		"[green]💾 Сжатие:[white] %.2f MB → %.2f MB, сэкономлено [green]%.2f MB[white]\n",
		float64(status.TotalOriginalSize)/1024/1024,
		float64(status.TotalCompressedSize)/1024/1024,
		float64(status.TotalSavedSpace)/1024/1024)
	fmt.Fprintf(&b, "[cyan]📊 Среднее:[white] %s [cyan]%.1f%%[white]\n\n",
		createProgressBar(status.AverageCompression, ProgressBarWidth), status.AverageCompression)

	if last := status.LastResult; last != nil {
		fmt.Fprintf(&b, "[yellow]📄 Последний документ:[white] %s\n", truncateFileName(documentLabel(last), MaxFileNameLength, MaxFileNameDisplay))
		if last.Success {
			fmt.Fprintf(&b, "   страниц %d, изображений %d, %.2f MB → %.2f MB (%.1f%%)\n",
				last.Pages, last.ImagesFound,
				float64(last.OriginalSize)/1024/1024, float64(last.CompressedSize)/1024/1024,
				last.CompressionRatio)
		} else if last.Error != nil {
			fmt.Fprintf(&b, "   [red]❌ %v[white]\n", last.Error)
		}
	}

	if status.Message != "" {
		fmt.Fprintf(&b, "\n[dim]%s[white]", status.Message)
	}

	b.WriteString("\n[yellow]F1[white] - Панель  [yellow]F2[white] - Конфигурация  [yellow]q[white] - Остановить сервер")

	return b.String()
}

func documentLabel(result *entities.CompressionResult) string {
	if result.CurrentFile != "" {
		return result.CurrentFile
	}
	return result.DocumentID
}

// truncateFileName корректно усекает имя файла с учетом UTF-8
func truncateFileName(fileName string, maxLength, truncateAt int) string {
	runes := []rune(fileName)
	if len(runes) <= maxLength {
		return fileName
	}
	return string(runes[:truncateAt]) + "..."
}

// createProgressBar создает цветную шкалу для процента сжатия
func createProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	filled := int(math.Round(progress * float64(width) / 100))

	const filledChar = "█"
	const emptyChar = "░"

	var color string
	switch {
	case progress < 25:
		color = "red"
	case progress < 50:
		color = "yellow"
	case progress < 75:
		color = "blue"
	default:
		color = "green"
	}

	return fmt.Sprintf("[%s]%s[gray]%s[white]", color, strings.Repeat(filledChar, filled), strings.Repeat(emptyChar, width-filled))
}

func algorithmIndex(algorithm string) int {
	if algorithm == entities.AlgorithmUniPDF {
		return 1
	}
	return 0
}

func levelIndex(level string) int {
	switch strings.ToLower(level) {
	case "debug":
		return 0
	case "warning", "warn":
		return 2
	case "error":
		return 3
	default:
		return 1
	}
}

// formatLogLine раскрашивает строку журнала по уровню
func formatLogLine(level, message string) string {
	var color string
	switch strings.ToLower(level) {
	case "error":
		color = "red"
	case "warning":
		color = "yellow"
	case "success":
		color = "green"
	case "debug":
		color = "gray"
	default:
		color = "white"
	}

	return fmt.Sprintf("[%s]%s %s:[white] %s", color, time.Now().Format(time.TimeOnly), strings.ToUpper(level), tview.Escape(message))
}

// AddLog добавляет запись в лог через канал (неблокирующе)
func (m *Manager) AddLog(level, message string) {
	select {
	case m.logChan <- formatLogLine(level, message):
	default:
		// Канал переполнен, запись пропускается
	}
}

// logProcessor обрабатывает логи в отдельной горутине с батчингом
func (m *Manager) logProcessor() {
	ticker := time.NewTicker(LogFlushInterval)
	defer ticker.Stop()

	batch := make([]string, 0, 50)

	for {
		select {
		case logLine := <-m.logChan:
			batch = append(batch, logLine)
			if len(batch) >= 20 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-m.logDone:
			return
		}
	}
}

// flushLogBatch сбрасывает батч логов в UI
func (m *Manager) flushLogBatch(batch []string) {
	m.statusMutex.Lock()
	m.logBuffer = append(m.logBuffer, batch...)
	if len(m.logBuffer) > MaxLogBufferSize {
		m.logBuffer = m.logBuffer[len(m.logBuffer)-MaxLogBufferSize:]
	}
	logText := strings.Join(m.logBuffer, "\n")
	m.statusMutex.Unlock()

	if m.logView != nil && !m.stopped.Load() {
		m.app.QueueUpdateDraw(func() {
			m.logView.SetText(logText)
			m.logView.ScrollToEnd()
		})
	}
}

// Cleanup освобождает ресурсы менеджера (идемпотентный)
func (m *Manager) Cleanup() {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()

	select {
	case <-m.logDone:
		return
	default:
		close(m.logDone)
	}
}
