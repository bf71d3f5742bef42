package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

var ErrNoSeason = errors.New("no stored season")

type SeasonRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewSeasonRepository(queries *db.Queries, logger zerolog.Logger) *SeasonRepository {
	return &SeasonRepository{queries: queries, logger: logger}
}

func (r *SeasonRepository) Save(ctx context.Context, season *domain.Season) error {
	payload, err := json.Marshal(season)
	if err != nil {
		return fmt.Errorf("failed to encode season: %w", err)
	}
	err = r.queries.UpsertSeasonSnapshot(ctx, db.UpsertSeasonSnapshotParams{
		Program:   season.Program.Name,
		Payload:   string(payload),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to store season: %w", err)
	}
	r.logger.Debug().Str("program", season.Program.Name).Int("bytes", len(payload)).Msg("season stored")
	return nil
}

// Load returns ErrNoSeason when nothing is stored for program, and a
// decoding error when the stored payload is malformed.
func (r *SeasonRepository) Load(ctx context.Context, program string) (*domain.Season, error) {
	row, err := r.queries.GetSeasonSnapshot(ctx, program)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSeason
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read season: %w", err)
	}

	var season domain.Season
	if err := json.Unmarshal([]byte(row.Payload), &season); err != nil {
		return nil, fmt.Errorf("failed to decode season: %w", err)
	}
	for _, w := range season.Roster {
		w.Normalize()
	}
	return &season, nil
}
