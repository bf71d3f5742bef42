package fx

import (
	"database/sql"
	"wrestling-coach/internal/api"
	"wrestling-coach/internal/catalog"
	"wrestling-coach/internal/config"
	"wrestling-coach/internal/database"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/logger"
	"wrestling-coach/internal/repository"
	"wrestling-coach/internal/rng"
	"wrestling-coach/internal/server"
	"wrestling-coach/internal/service"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideRNG(cfg *config.Config) rng.Source {
	return rng.New(cfg.RNGSeed)
}

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(ProvideRNG),
	catalog.Module,
	// repos
	fx.Provide(repository.NewLeagueRepository),
	fx.Provide(repository.NewDualRepository),
	fx.Provide(repository.NewRatingHistoryRepository),
	fx.Provide(repository.NewSeasonRepository),
	// gazette client
	fx.Provide(api.NewGazetteClient),
	// svc
	fx.Provide(service.NewEngines),
	fx.Provide(service.NewSeasonService),
	// server
	fx.Provide(server.NewCoachServer),
)
