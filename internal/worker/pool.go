// Package worker implements the buffered worker pool that lands finalized
// games in Postgres. It decouples HTTP ingestion from database writes and
// guarantees a flush on shutdown.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/pokernight/stats-api/internal/models"
)

var (
	gamesIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokernight_games_ingested_total",
		Help: "Total number of finalized games accepted into the queue",
	})

	gamesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokernight_games_processed_total",
		Help: "Total number of finalized games written to the history store",
	})

	gamesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokernight_games_failed_total",
		Help: "Total number of finalized games that failed to persist",
	})

	gamesLoadShed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pokernight_games_load_shed_total",
		Help: "Total number of finalized games dropped because the queue was unavailable",
	})

	queueDepth = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pokernight_worker_queue_depth",
		Help: "Current depth of the ingest queue",
	})

	insertDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pokernight_game_insert_duration_seconds",
		Help:    "Duration of history store inserts",
		Buckets: prometheus.DefBuckets,
	})
)

// GameWriter persists one finalized game into the append-only history.
type GameWriter interface {
	InsertResults(ctx context.Context, game *models.FinalizedGame) error
}

// SnapshotInvalidator drops cached stats after new results land.
type SnapshotInvalidator interface {
	Invalidate(ctx context.Context, playerIDs ...string)
}

// PoolConfig configures the ingest pool. Cache may be nil.
type PoolConfig struct {
	WorkerCount int
	QueueSize   int
	Store       GameWriter
	Cache       SnapshotInvalidator
	Logger      *zap.Logger
}

// Pool fans finalized games out to writer goroutines.
type Pool struct {
	config   PoolConfig
	jobQueue chan *models.FinalizedGame
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *zap.SugaredLogger
}

func NewPool(cfg PoolConfig) *Pool {
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 1024
	}
	p := &Pool{
		config:   cfg,
		jobQueue: make(chan *models.FinalizedGame, cfg.QueueSize),
		logger:   cfg.Logger.Sugar(),
	}
	// A live context from construction on, so Enqueue is safe before Start.
	p.ctx, p.cancel = context.WithCancel(context.Background())
	return p
}

// Start launches the writer goroutines.
func (p *Pool) Start(ctx context.Context) {
	p.ctx, p.cancel = context.WithCancel(ctx)

	for i := 0; i < p.config.WorkerCount; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	go p.reportQueueDepth()

	p.logger.Infow("ingest pool started",
		"workers", p.config.WorkerCount,
		"queueSize", p.config.QueueSize,
	)
}

// Stop drains the queue and waits for in-flight inserts to finish.
func (p *Pool) Stop() {
	p.logger.Info("stopping ingest pool...")
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
	p.logger.Info("ingest pool stopped")
}

// Enqueue adds a finalized game to the queue. Returns false when the pool
// is shutting down.
func (p *Pool) Enqueue(game *models.FinalizedGame) bool {
	// Protect against sending on a closed channel during shutdown.
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warnw("failed to enqueue game (pool stopped)", "error", r)
		}
	}()

	select {
	case p.jobQueue <- game:
		gamesIngested.Inc()
		return true
	case <-p.ctx.Done():
		p.logger.Warn("ingest pool context canceled, dropping game")
		gamesLoadShed.Inc()
		return false
	}
}

// QueueDepth returns the current queue size.
func (p *Pool) QueueDepth() int {
	return len(p.jobQueue)
}

func (p *Pool) worker(id int) {
	defer p.wg.Done()

	for game := range p.jobQueue {
		p.persist(game)
	}
	p.logger.Debugw("ingest worker exiting", "worker", id)
}

func (p *Pool) persist(game *models.FinalizedGame) {
	// Survive the shutdown cancel so queued games still flush.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	if err := p.config.Store.InsertResults(ctx, game); err != nil {
		gamesFailed.Inc()
		p.logger.Errorw("failed to persist finalized game",
			"game", game.GameID, "error", err)
		return
	}
	insertDuration.Observe(time.Since(start).Seconds())
	gamesProcessed.Inc()

	if p.config.Cache != nil {
		players := make([]string, len(game.Results))
		for i, seat := range game.Results {
			players[i] = seat.PlayerID
		}
		p.config.Cache.Invalidate(ctx, players...)
	}
}

func (p *Pool) reportQueueDepth() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			queueDepth.Set(float64(len(p.jobQueue)))
		case <-p.ctx.Done():
			return
		}
	}
}
