package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
	"wrestling-coach/internal/database"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

func openTestDB(t *testing.T) (*sql.DB, *db.Queries) {
	t.Helper()
	sqlDB, err := database.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB, db.New(sqlDB)
}

func TestLeagueReplaceAll(t *testing.T) {
	sqlDB, queries := openTestDB(t)
	repo := NewLeagueRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	first := domain.League{Teams: []*domain.LeagueTeam{
		{Name: "Iron Valley", Wins: 2, Losses: 1, PF: 60, PA: 40, Rating: 1210.5, Prestige: 88, LastResult: "W"},
		{Name: "North Ridge", Ties: 1, Rating: 1189.5, Prestige: 84, LastResult: "T"},
	}}
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}
	second := domain.League{Teams: []*domain.LeagueTeam{first.Teams[0]}}
	if err := repo.ReplaceAll(ctx, second); err != nil {
		t.Fatalf("ReplaceAll: %v", err)
	}

	got, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if diff := cmp.Diff(second.Teams, got); diff != "" {
		t.Fatalf("stored league mismatch (-want +got):\n%s", diff)
	}
}

func TestDualSaveAndListRecent(t *testing.T) {
	sqlDB, queries := openTestDB(t)
	duals := NewDualRepository(sqlDB, queries, zerolog.Nop())
	ratings := NewRatingHistoryRepository(sqlDB, queries, zerolog.Nop())
	ctx := context.Background()

	older := domain.DualRecord{
		Kind: domain.KindSimulated, TeamA: "Mine", TeamB: "Old", ScoreA: 6, ScoreB: 0,
		Log: "old", PlayedAt: time.Date(2026, 1, 10, 18, 0, 0, 0, time.UTC),
		Bouts: []domain.BoutRecord{{WeightClass: 125, WrestlerA: "A", WinnerSide: domain.SideA, Method: domain.MethodForfeit, Summary: "A wins by forfeit"}},
	}
	newer := domain.DualRecord{
		Kind: domain.KindLive, TeamA: "Mine", TeamB: "New", ScoreA: 3, ScoreB: 4,
		Log: "new", PlayedAt: time.Date(2026, 1, 17, 18, 0, 0, 0, time.UTC),
		Bouts: []domain.BoutRecord{
			{WeightClass: 125, WrestlerA: "A", WrestlerB: "B", WinnerSide: domain.SideA, Method: domain.MethodDecision, Summary: "A defeats B by decision."},
			{WeightClass: 133, WrestlerA: "C", WrestlerB: "D", WinnerSide: domain.SideB, Method: domain.MethodMajor, Summary: "D defeats C by major."},
		},
	}

	oldID, err := duals.Save(ctx, older)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	newID, err := duals.Save(ctx, newer)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if oldID == "" || oldID == newID {
		t.Fatalf("unexpected ids %q, %q", oldID, newID)
	}

	got, err := duals.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(got) != 2 || got[0].ID != newID || got[1].ID != oldID {
		t.Fatalf("duals not newest first: %+v", got)
	}
	newer.ID = newID
	if diff := cmp.Diff(newer, got[0], cmp.Comparer(func(a, b time.Time) bool { return a.Equal(b) })); diff != "" {
		t.Fatalf("dual mismatch (-want +got):\n%s", diff)
	}

	changes := []domain.RatingChange{
		{Team: "Mine", Opponent: "New", Before: 1200, After: 1190},
		{Team: "New", Opponent: "Mine", Before: 1200, After: 1210},
	}
	if err := ratings.InsertBatch(ctx, newID, changes); err != nil {
		t.Fatalf("InsertBatch: %v", err)
	}
	history, err := ratings.ListByTeam(ctx, "Mine", 5)
	if err != nil {
		t.Fatalf("ListByTeam: %v", err)
	}
	if len(history) != 1 || history[0].DualID != newID || history[0].After != 1190 || history[0].Opponent != "New" {
		t.Fatalf("unexpected history %+v", history)
	}
}

func TestSeasonSaveLoad(t *testing.T) {
	_, queries := openTestDB(t)
	repo := NewSeasonRepository(queries, zerolog.Nop())
	ctx := context.Background()

	if _, err := repo.Load(ctx, "Mine"); !errors.Is(err, ErrNoSeason) {
		t.Fatalf("expected ErrNoSeason, got %v", err)
	}

	season := domain.NewSeason(domain.Program{Name: "Mine", Prestige: 82})
	season.Roster = []*domain.Wrestler{{
		ID: "w1", Name: "Ace", WeightClass: 125, Morale: 80, Health: 90,
		Attributes: domain.Attributes{Neutral: 70, Top: 65, Bottom: 60, Strength: 55, Conditioning: 50, Technique: 75},
	}}
	season.Lineup[125] = "w1"
	season.Record = domain.Record{Wins: 1}
	if err := repo.Save(ctx, season); err != nil {
		t.Fatalf("Save: %v", err)
	}
	season.Record.Wins = 2
	if err := repo.Save(ctx, season); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Load(ctx, "Mine")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(season, got); diff != "" {
		t.Fatalf("season mismatch (-want +got):\n%s", diff)
	}
}

func TestSeasonLoadMalformed(t *testing.T) {
	_, queries := openTestDB(t)
	repo := NewSeasonRepository(queries, zerolog.Nop())
	ctx := context.Background()

	err := queries.UpsertSeasonSnapshot(ctx, db.UpsertSeasonSnapshotParams{Program: "Mine", Payload: "{not json", UpdatedAt: time.Now()})
	if err != nil {
		t.Fatalf("UpsertSeasonSnapshot: %v", err)
	}
	if _, err := repo.Load(ctx, "Mine"); err == nil || errors.Is(err, ErrNoSeason) {
		t.Fatalf("expected a decode error, got %v", err)
	}
}
