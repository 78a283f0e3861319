package usecases_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"pdfcompressor/internal/domain/entities"
	usecases "pdfcompressor/internal/usecase"
)

func TestStatsTracker_ReportsSnapshots(t *testing.T) {
	tracker := usecases.NewStatsTracker()

	var reported []entities.ServiceStatus
	tracker.SetProgressReporter(func(s entities.ServiceStatus) {
		reported = append(reported, s)
	})

	tracker.Record(&entities.CompressionResult{OriginalSize: 100, CompressedSize: 50, SavedSpace: 50, Success: true})
	tracker.Reject()
	tracker.SetMessage("Сервер запущен")

	assert.Len(t, reported, 3)
	assert.Equal(t, 1, reported[0].SuccessfulRequests)
	assert.Equal(t, 1, reported[1].RejectedRequests)
	assert.Equal(t, "Сервер запущен", reported[2].Message)
}

func TestStatsTracker_ConcurrentRecords(t *testing.T) {
	tracker := usecases.NewStatsTracker()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(&entities.CompressionResult{OriginalSize: 10, CompressedSize: 5, Success: true})
		}()
	}
	wg.Wait()

	snapshot := tracker.Snapshot()
	assert.Equal(t, 50, snapshot.TotalRequests)
	assert.Equal(t, int64(500), snapshot.TotalOriginalSize)
}
