package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RatingHistoryRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewRatingHistoryRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *RatingHistoryRepository {
	return &RatingHistoryRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *RatingHistoryRepository) InsertBatch(ctx context.Context, dualID string, changes []domain.RatingChange) error {
	if len(changes) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now()

	for _, c := range changes {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}

		err = qtx.InsertRatingHistory(ctx, db.InsertRatingHistoryParams{
			ID:           id,
			DualID:       dualID,
			Team:         c.Team,
			Opponent:     c.Opponent,
			RatingBefore: c.Before,
			RatingAfter:  c.After,
			CreatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to insert rating history: %w", err)
		}
	}

	return tx.Commit()
}

func (r *RatingHistoryRepository) ListByTeam(ctx context.Context, team string, limit int) ([]domain.RatingHistory, error) {
	records, err := r.queries.ListRatingHistoryByTeam(ctx, db.ListRatingHistoryByTeamParams{
		Team:  team,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.RatingHistory, len(records))
	for i, rec := range records {
		result[i] = domain.RatingHistory{
			ID:        rec.ID,
			DualID:    rec.DualID,
			Team:      rec.Team,
			Opponent:  rec.Opponent,
			Before:    rec.RatingBefore,
			After:     rec.RatingAfter,
			CreatedAt: rec.CreatedAt,
		}
	}
	return result, nil
}
