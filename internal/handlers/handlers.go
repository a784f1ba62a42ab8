package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/pokernight/stats-api/internal/logic"
	"github.com/pokernight/stats-api/internal/models"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// IngestQueue defines the interface for the finalized-game worker pool
type IngestQueue interface {
	Enqueue(game *models.FinalizedGame) bool
	QueueDepth() int
}

type Config struct {
	WorkerPool IngestQueue
	Postgres   *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	// Services
	Stats      logic.StatsService
	Milestones logic.MilestoneService
	Forecast   logic.ForecastService
}

type Handler struct {
	pool       IngestQueue
	pg         *pgxpool.Pool
	redis      *redis.Client
	logger     *zap.SugaredLogger
	validator  *validator.Validate
	stats      logic.StatsService
	milestones logic.MilestoneService
	forecast   logic.ForecastService
}

func New(cfg Config) *Handler {
	return &Handler{
		pool:       cfg.WorkerPool,
		pg:         cfg.Postgres,
		redis:      cfg.Redis,
		logger:     cfg.Logger.Sugar(),
		validator:  validator.New(),
		stats:      cfg.Stats,
		milestones: cfg.Milestones,
		forecast:   cfg.Forecast,
	}
}
