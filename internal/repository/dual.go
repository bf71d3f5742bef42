package repository

import (
	"context"
	"database/sql"
	"fmt"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type DualRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewDualRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *DualRepository {
	return &DualRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// Save stores a dual and its bouts together and returns the id it was
// stored under.
func (r *DualRepository) Save(ctx context.Context, rec domain.DualRecord) (string, error) {
	id := rec.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return "", fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.InsertDualResult(ctx, db.InsertDualResultParams{
		ID:       id,
		Kind:     string(rec.Kind),
		TeamA:    rec.TeamA,
		TeamB:    rec.TeamB,
		ScoreA:   int64(rec.ScoreA),
		ScoreB:   int64(rec.ScoreB),
		Log:      rec.Log,
		PlayedAt: rec.PlayedAt,
	})
	if err != nil {
		return "", fmt.Errorf("failed to insert dual result: %w", err)
	}

	for _, b := range rec.Bouts {
		err := qtx.InsertDualBout(ctx, db.InsertDualBoutParams{
			DualID:      id,
			WeightClass: int64(b.WeightClass),
			WrestlerA:   b.WrestlerA,
			WrestlerB:   b.WrestlerB,
			WinnerSide:  string(b.WinnerSide),
			Method:      string(b.Method),
			Summary:     b.Summary,
		})
		if err != nil {
			return "", fmt.Errorf("failed to insert bout at %d: %w", b.WeightClass, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit dual: %w", err)
	}

	r.logger.Debug().
		Str("dual_id", id).
		Str("kind", string(rec.Kind)).
		Int("bouts", len(rec.Bouts)).
		Msg("dual stored")
	return id, nil
}

// ListRecent returns the newest duals first, bouts included.
func (r *DualRepository) ListRecent(ctx context.Context, limit int) ([]domain.DualRecord, error) {
	rows, err := r.queries.ListRecentDualResults(ctx, int64(limit))
	if err != nil {
		return nil, err
	}

	result := make([]domain.DualRecord, len(rows))
	for i, row := range rows {
		bouts, err := r.queries.ListDualBouts(ctx, row.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bouts for %s: %w", row.ID, err)
		}
		rec := domain.DualRecord{
			ID:       row.ID,
			Kind:     domain.DualKind(row.Kind),
			TeamA:    row.TeamA,
			TeamB:    row.TeamB,
			ScoreA:   int(row.ScoreA),
			ScoreB:   int(row.ScoreB),
			Log:      row.Log,
			PlayedAt: row.PlayedAt,
		}
		for _, b := range bouts {
			rec.Bouts = append(rec.Bouts, domain.BoutRecord{
				WeightClass: domain.WeightClass(b.WeightClass),
				WrestlerA:   b.WrestlerA,
				WrestlerB:   b.WrestlerB,
				WinnerSide:  domain.Side(b.WinnerSide),
				Method:      domain.WinMethod(b.Method),
				Summary:     b.Summary,
			})
		}
		result[i] = rec
	}
	return result, nil
}
