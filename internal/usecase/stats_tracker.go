package usecases

import (
	"sync"
	"time"

	"pdfcompressor/internal/domain/entities"
)

// StatsTracker накапливает статистику запросов между обработчиками
type StatsTracker struct {
	mu               sync.Mutex
	status           *entities.ServiceStatus
	progressReporter func(entities.ServiceStatus)
}

// NewStatsTracker создает новый трекер статистики
func NewStatsTracker() *StatsTracker {
	return &StatsTracker{status: entities.NewServiceStatus()}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (t *StatsTracker) SetProgressReporter(reporter func(entities.ServiceStatus)) {
	t.mu.Lock()
	t.progressReporter = reporter
	t.mu.Unlock()
}

// Record учитывает результат обработки документа
func (t *StatsTracker) Record(result *entities.CompressionResult) {
	t.update(func(s *entities.ServiceStatus) {
		s.AddResult(result)
		if result.Success {
			s.Message = "Документ обработан"
		} else {
			s.Message = "Ошибка обработки документа"
		}
	})
}

// Reject учитывает отклоненный запрос
func (t *StatsTracker) Reject() {
	t.update(func(s *entities.ServiceStatus) {
		s.AddRejected()
		s.Message = "Пустая загрузка отклонена"
	})
}

// SetMessage обновляет сообщение статуса
func (t *StatsTracker) SetMessage(message string) {
	t.update(func(s *entities.ServiceStatus) {
		s.Message = message
	})
}

// Snapshot возвращает копию текущего статуса
func (t *StatsTracker) Snapshot() entities.ServiceStatus {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.status.ElapsedTime = time.Since(t.status.StartTime)
	return *t.status
}

func (t *StatsTracker) update(fn func(s *entities.ServiceStatus)) {
	t.mu.Lock()
	fn(t.status)
	snapshot := *t.status
	reporter := t.progressReporter
	t.mu.Unlock()

	// Репортер вызывается без блокировки: он может обращаться к Snapshot
	if reporter != nil {
		reporter(snapshot)
	}
}
