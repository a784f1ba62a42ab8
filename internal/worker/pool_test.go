package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pokernight/stats-api/internal/models"
)

// MockGameWriter implements GameWriter for testing
type MockGameWriter struct {
	mu    sync.Mutex
	games []*models.FinalizedGame
	err   error
}

func (m *MockGameWriter) InsertResults(ctx context.Context, game *models.FinalizedGame) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.games = append(m.games, game)
	return nil
}

func (m *MockGameWriter) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.games)
}

// MockInvalidator implements SnapshotInvalidator for testing
type MockInvalidator struct {
	mu      sync.Mutex
	players []string
}

func (m *MockInvalidator) Invalidate(ctx context.Context, playerIDs ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = append(m.players, playerIDs...)
}

func (m *MockInvalidator) Players() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.players...)
}

func testGame(id string) *models.FinalizedGame {
	return &models.FinalizedGame{
		GameID: id,
		Date:   time.Date(2025, time.August, 15, 0, 0, 0, 0, time.UTC),
		Results: []models.SeatResult{
			{PlayerID: "a", Profit: 100},
			{PlayerID: "b", Profit: -100},
		},
	}
}

func TestPoolPersistsAndInvalidates(t *testing.T) {
	writer := &MockGameWriter{}
	invalidator := &MockInvalidator{}

	pool := NewPool(PoolConfig{
		WorkerCount: 2,
		QueueSize:   16,
		Store:       writer,
		Cache:       invalidator,
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())

	for i := 0; i < 5; i++ {
		if !pool.Enqueue(testGame(string(rune('a' + i)))) {
			t.Fatalf("enqueue %d rejected", i)
		}
	}
	pool.Stop()

	if got := writer.Count(); got != 5 {
		t.Errorf("persisted %d games, want 5", got)
	}
	if got := len(invalidator.Players()); got != 10 {
		t.Errorf("invalidated %d player snapshots, want 10", got)
	}
}

func TestPoolInsertFailureDoesNotInvalidate(t *testing.T) {
	writer := &MockGameWriter{err: errors.New("insert failed")}
	invalidator := &MockInvalidator{}

	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   4,
		Store:       writer,
		Cache:       invalidator,
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())

	pool.Enqueue(testGame("g1"))
	pool.Stop()

	if got := len(invalidator.Players()); got != 0 {
		t.Errorf("cache invalidated despite failed insert: %v", invalidator.Players())
	}
}

func TestPoolEnqueueAfterStop(t *testing.T) {
	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   4,
		Store:       &MockGameWriter{},
		Logger:      zap.NewNop(),
	})
	pool.Start(context.Background())
	pool.Stop()

	if pool.Enqueue(testGame("late")) {
		t.Error("enqueue after stop should report failure")
	}
}

func TestPoolEnqueueBeforeStart(t *testing.T) {
	writer := &MockGameWriter{}
	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   4,
		Store:       writer,
		Logger:      zap.NewNop(),
	})

	if !pool.Enqueue(testGame("early")) {
		t.Fatal("enqueue before start should buffer the game")
	}
	if pool.QueueDepth() != 1 {
		t.Errorf("queue depth = %d, want 1", pool.QueueDepth())
	}

	pool.Start(context.Background())
	pool.Stop()

	if got := writer.Count(); got != 1 {
		t.Errorf("persisted %d games, want the buffered one", got)
	}
}

func TestPoolQueueDepth(t *testing.T) {
	pool := NewPool(PoolConfig{
		WorkerCount: 1,
		QueueSize:   8,
		Store:       &MockGameWriter{},
		Logger:      zap.NewNop(),
	})
	if pool.QueueDepth() != 0 {
		t.Errorf("fresh pool queue depth = %d, want 0", pool.QueueDepth())
	}
}
