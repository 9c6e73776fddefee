package server

import (
	"poll-service/configs"
	"poll-service/internal/adapters/database"
	"poll-service/internal/server/handlers"
	"poll-service/internal/server/repository"
	"poll-service/internal/server/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type App struct {
	router *gin.Engine
	db     *gorm.DB
	cfg    *configs.Config
}

func NewApp() (*App, error) {
	cfg := configs.Load()

	// Initialize databases
	var db *gorm.DB
	var err error
	if cfg.DatabaseURL != "" {
		db, err = database.NewPostgresDBWithURL(cfg.DatabaseURL)
	} else {
		db, err = database.NewPostgresDB(cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	}
	if err != nil {
		return nil, err
	}

	if err := database.Migrate(db); err != nil {
		return nil, err
	}

	redisClient, err := database.InitRedis(cfg.RedisURL)
	if err != nil {
		return nil, err
	}

	// Setup repositories, services and handlers
	pollRepo := repository.NewPollRepository(db)
	optionRepo := repository.NewOptionRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	resultsCache := repository.NewResultsCache(redisClient, cfg.ResultsCacheTTL)

	pollService := service.NewPollService(pollRepo, optionRepo)
	voteService := service.NewVoteService(pollRepo, optionRepo, voteRepo, resultsCache)
	resultsService := service.NewResultsService(pollRepo, optionRepo, voteRepo, resultsCache)

	pollHandler := handlers.NewPollHandler(pollService)
	voteHandler := handlers.NewVoteHandler(voteService)
	resultsHandler := handlers.NewResultsHandler(resultsService)

	// Setup router
	router := gin.Default()
	SetupRoutes(router, cfg, pollHandler, voteHandler, resultsHandler)

	return &App{
		router: router,
		db:     db,
		cfg:    cfg,
	}, nil
}

func (a *App) Run() error {
	return a.router.Run(":" + a.cfg.Port)
}
