package db

import (
	"context"
	"time"
)

const upsertLeagueTeam = `-- name: UpsertLeagueTeam :exec
INSERT INTO league_teams (name, wins, ties, losses, pf, pa, rating, prestige, last_result, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (name) DO UPDATE SET
    wins = excluded.wins,
    ties = excluded.ties,
    losses = excluded.losses,
    pf = excluded.pf,
    pa = excluded.pa,
    rating = excluded.rating,
    prestige = excluded.prestige,
    last_result = excluded.last_result,
    updated_at = excluded.updated_at
`

type UpsertLeagueTeamParams struct {
	Name       string
	Wins       int64
	Ties       int64
	Losses     int64
	Pf         int64
	Pa         int64
	Rating     float64
	Prestige   int64
	LastResult string
	UpdatedAt  time.Time
}

func (q *Queries) UpsertLeagueTeam(ctx context.Context, arg UpsertLeagueTeamParams) error {
	_, err := q.db.ExecContext(ctx, upsertLeagueTeam,
		arg.Name,
		arg.Wins,
		arg.Ties,
		arg.Losses,
		arg.Pf,
		arg.Pa,
		arg.Rating,
		arg.Prestige,
		arg.LastResult,
		arg.UpdatedAt,
	)
	return err
}

const deleteLeagueTeams = `-- name: DeleteLeagueTeams :exec
DELETE FROM league_teams
`

func (q *Queries) DeleteLeagueTeams(ctx context.Context) error {
	_, err := q.db.ExecContext(ctx, deleteLeagueTeams)
	return err
}

const listLeagueTeams = `-- name: ListLeagueTeams :many
SELECT name, wins, ties, losses, pf, pa, rating, prestige, last_result, updated_at
FROM league_teams
ORDER BY name
`

func (q *Queries) ListLeagueTeams(ctx context.Context) ([]LeagueTeam, error) {
	rows, err := q.db.QueryContext(ctx, listLeagueTeams)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []LeagueTeam
	for rows.Next() {
		var i LeagueTeam
		if err := rows.Scan(
			&i.Name,
			&i.Wins,
			&i.Ties,
			&i.Losses,
			&i.Pf,
			&i.Pa,
			&i.Rating,
			&i.Prestige,
			&i.LastResult,
			&i.UpdatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertDualResult = `-- name: InsertDualResult :exec
INSERT INTO dual_results (id, kind, team_a, team_b, score_a, score_b, log, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`

type InsertDualResultParams struct {
	ID       string
	Kind     string
	TeamA    string
	TeamB    string
	ScoreA   int64
	ScoreB   int64
	Log      string
	PlayedAt time.Time
}

func (q *Queries) InsertDualResult(ctx context.Context, arg InsertDualResultParams) error {
	_, err := q.db.ExecContext(ctx, insertDualResult,
		arg.ID,
		arg.Kind,
		arg.TeamA,
		arg.TeamB,
		arg.ScoreA,
		arg.ScoreB,
		arg.Log,
		arg.PlayedAt,
	)
	return err
}

const insertDualBout = `-- name: InsertDualBout :exec
INSERT INTO dual_bouts (dual_id, weight_class, wrestler_a, wrestler_b, winner_side, method, summary)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertDualBoutParams struct {
	DualID      string
	WeightClass int64
	WrestlerA   string
	WrestlerB   string
	WinnerSide  string
	Method      string
	Summary     string
}

func (q *Queries) InsertDualBout(ctx context.Context, arg InsertDualBoutParams) error {
	_, err := q.db.ExecContext(ctx, insertDualBout,
		arg.DualID,
		arg.WeightClass,
		arg.WrestlerA,
		arg.WrestlerB,
		arg.WinnerSide,
		arg.Method,
		arg.Summary,
	)
	return err
}

const listRecentDualResults = `-- name: ListRecentDualResults :many
SELECT id, kind, team_a, team_b, score_a, score_b, log, played_at
FROM dual_results
ORDER BY played_at DESC
LIMIT ?
`

func (q *Queries) ListRecentDualResults(ctx context.Context, limit int64) ([]DualResult, error) {
	rows, err := q.db.QueryContext(ctx, listRecentDualResults, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DualResult
	for rows.Next() {
		var i DualResult
		if err := rows.Scan(
			&i.ID,
			&i.Kind,
			&i.TeamA,
			&i.TeamB,
			&i.ScoreA,
			&i.ScoreB,
			&i.Log,
			&i.PlayedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listDualBouts = `-- name: ListDualBouts :many
SELECT dual_id, weight_class, wrestler_a, wrestler_b, winner_side, method, summary
FROM dual_bouts
WHERE dual_id = ?
ORDER BY weight_class
`

func (q *Queries) ListDualBouts(ctx context.Context, dualID string) ([]DualBout, error) {
	rows, err := q.db.QueryContext(ctx, listDualBouts, dualID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DualBout
	for rows.Next() {
		var i DualBout
		if err := rows.Scan(
			&i.DualID,
			&i.WeightClass,
			&i.WrestlerA,
			&i.WrestlerB,
			&i.WinnerSide,
			&i.Method,
			&i.Summary,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const insertRatingHistory = `-- name: InsertRatingHistory :exec
INSERT INTO rating_history (id, dual_id, team, opponent, rating_before, rating_after, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

type InsertRatingHistoryParams struct {
	ID           string
	DualID       string
	Team         string
	Opponent     string
	RatingBefore float64
	RatingAfter  float64
	CreatedAt    time.Time
}

func (q *Queries) InsertRatingHistory(ctx context.Context, arg InsertRatingHistoryParams) error {
	_, err := q.db.ExecContext(ctx, insertRatingHistory,
		arg.ID,
		arg.DualID,
		arg.Team,
		arg.Opponent,
		arg.RatingBefore,
		arg.RatingAfter,
		arg.CreatedAt,
	)
	return err
}

const listRatingHistoryByTeam = `-- name: ListRatingHistoryByTeam :many
SELECT id, dual_id, team, opponent, rating_before, rating_after, created_at
FROM rating_history
WHERE team = ?
ORDER BY created_at DESC
LIMIT ?
`

type ListRatingHistoryByTeamParams struct {
	Team  string
	Limit int64
}

func (q *Queries) ListRatingHistoryByTeam(ctx context.Context, arg ListRatingHistoryByTeamParams) ([]RatingHistory, error) {
	rows, err := q.db.QueryContext(ctx, listRatingHistoryByTeam, arg.Team, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []RatingHistory
	for rows.Next() {
		var i RatingHistory
		if err := rows.Scan(
			&i.ID,
			&i.DualID,
			&i.Team,
			&i.Opponent,
			&i.RatingBefore,
			&i.RatingAfter,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const upsertSeasonSnapshot = `-- name: UpsertSeasonSnapshot :exec
INSERT INTO season_snapshots (program, payload, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (program) DO UPDATE SET
    payload = excluded.payload,
    updated_at = excluded.updated_at
`

type UpsertSeasonSnapshotParams struct {
	Program   string
	Payload   string
	UpdatedAt time.Time
}

func (q *Queries) UpsertSeasonSnapshot(ctx context.Context, arg UpsertSeasonSnapshotParams) error {
	_, err := q.db.ExecContext(ctx, upsertSeasonSnapshot, arg.Program, arg.Payload, arg.UpdatedAt)
	return err
}

const getSeasonSnapshot = `-- name: GetSeasonSnapshot :one
SELECT program, payload, updated_at
FROM season_snapshots
WHERE program = ?
`

func (q *Queries) GetSeasonSnapshot(ctx context.Context, program string) (SeasonSnapshot, error) {
	row := q.db.QueryRowContext(ctx, getSeasonSnapshot, program)
	var i SeasonSnapshot
	err := row.Scan(&i.Program, &i.Payload, &i.UpdatedAt)
	return i, err
}
