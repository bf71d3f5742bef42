package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

type LeagueRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewLeagueRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *LeagueRepository {
	return &LeagueRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ReplaceAll swaps the stored standings for league in one transaction.
func (r *LeagueRepository) ReplaceAll(ctx context.Context, league domain.League) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	if err := qtx.DeleteLeagueTeams(ctx); err != nil {
		return fmt.Errorf("failed to clear league teams: %w", err)
	}

	now := time.Now()
	for _, t := range league.Teams {
		err := qtx.UpsertLeagueTeam(ctx, db.UpsertLeagueTeamParams{
			Name:       t.Name,
			Wins:       int64(t.Wins),
			Ties:       int64(t.Ties),
			Losses:     int64(t.Losses),
			Pf:         int64(t.PF),
			Pa:         int64(t.PA),
			Rating:     t.Rating,
			Prestige:   int64(t.Prestige),
			LastResult: t.LastResult,
			UpdatedAt:  now,
		})
		if err != nil {
			return fmt.Errorf("failed to upsert league team %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit league: %w", err)
	}
	r.logger.Debug().Int("teams", len(league.Teams)).Msg("league standings stored")
	return nil
}

func (r *LeagueRepository) List(ctx context.Context) ([]*domain.LeagueTeam, error) {
	rows, err := r.queries.ListLeagueTeams(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.LeagueTeam, len(rows))
	for i, row := range rows {
		result[i] = &domain.LeagueTeam{
			Name:       row.Name,
			Wins:       int(row.Wins),
			Ties:       int(row.Ties),
			Losses:     int(row.Losses),
			PF:         int(row.Pf),
			PA:         int(row.Pa),
			Rating:     row.Rating,
			Prestige:   int(row.Prestige),
			LastResult: row.LastResult,
		}
	}
	return result, nil
}
