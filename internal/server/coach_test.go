package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"wrestling-coach/internal/api"
	"wrestling-coach/internal/catalog"
	"wrestling-coach/internal/config"
	"wrestling-coach/internal/database"
	"wrestling-coach/internal/db"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/repository"
	"wrestling-coach/internal/rng"
	"wrestling-coach/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	sqlDB, err := database.Open(":memory:", zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	cfg := &config.Config{ProgramName: "Iron Valley", AllowBump: true}
	queries := db.New(sqlDB)
	logger := zerolog.Nop()
	seasons := service.NewSeasonService(
		cfg,
		cat,
		service.NewEngines(rng.New(17), logger),
		repository.NewLeagueRepository(sqlDB, queries, logger),
		repository.NewDualRepository(sqlDB, queries, logger),
		repository.NewRatingHistoryRepository(sqlDB, queries, logger),
		repository.NewSeasonRepository(queries, logger),
		api.NewGazetteClient(cfg),
		logger,
	)

	path, handler := NewCoachServer(seasons, logger).Handler()
	mux := http.NewServeMux()
	mux.Handle(path, handler)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func call[Req, Res any](t *testing.T, srv *httptest.Server, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](srv.Client(), srv.URL+procedure, connect.WithCodec(jsonCodec{}))
	res, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

func TestToConnectError(t *testing.T) {
	cases := []struct {
		err  error
		want connect.Code
	}{
		{&service.LineupError{Missing: []domain.WeightClass{125}}, connect.CodeFailedPrecondition},
		{fmt.Errorf("wrapped: %w", service.ErrLiveDualActive), connect.CodeFailedPrecondition},
		{service.ErrNotEnoughTeams, connect.CodeFailedPrecondition},
		{service.ErrPostseasonPlayed, connect.CodeFailedPrecondition},
		{fmt.Errorf("%w: %q", service.ErrInvalidModifier, "hype"), connect.CodeInvalidArgument},
		{service.ErrWrongClass, connect.CodeInvalidArgument},
		{fmt.Errorf("%w: duplicate wrestler id %q", service.ErrInvalidRoster, "x"), connect.CodeInvalidArgument},
		{errors.New("disk on fire"), connect.CodeInternal},
	}
	for _, c := range cases {
		if got := connect.CodeOf(toConnectError(c.err)); got != c.want {
			t.Fatalf("%v: code %s, want %s", c.err, got, c.want)
		}
	}
}

func TestJSONCodecEmptyBody(t *testing.T) {
	var req RecruitRequest
	if err := (jsonCodec{}).Unmarshal(nil, &req); err != nil {
		t.Fatalf("empty body: %v", err)
	}
	if err := (jsonCodec{}).Unmarshal([]byte("{bad"), &req); err == nil {
		t.Fatalf("expected an error for malformed json")
	}
	if err := (jsonCodec{}).Unmarshal([]byte(`{"per_class":3}`), &req); err != nil || req.PerClass != 3 {
		t.Fatalf("decode: %v, %+v", err, req)
	}
}

func TestRosterValidationCodes(t *testing.T) {
	srv := newTestServer(t)

	for _, n := range []int{0, 50} {
		_, err := call[RecruitRequest, service.SeasonView](t, srv, RecruitProcedure, &RecruitRequest{PerClass: n})
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Fatalf("recruit %d per class: %v", n, err)
		}
	}

	dup := &SetRosterRequest{Wrestlers: []*domain.Wrestler{
		{ID: "x", Name: "A", WeightClass: 125},
		{ID: "x", Name: "B", WeightClass: 133},
	}}
	if _, err := call[SetRosterRequest, service.SeasonView](t, srv, SetRosterProcedure, dup); connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("duplicate ids: %v", err)
	}

	odd := &SetRosterRequest{Wrestlers: []*domain.Wrestler{{ID: "y", Name: "C", WeightClass: 150}}}
	if _, err := call[SetRosterRequest, service.SeasonView](t, srv, SetRosterProcedure, odd); connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("class 150: %v", err)
	}
}

func TestCoachServiceFlow(t *testing.T) {
	srv := newTestServer(t)

	season, err := call[Empty, service.SeasonView](t, srv, GetSeasonProcedure, &Empty{})
	if err != nil {
		t.Fatalf("GetSeason: %v", err)
	}
	if season.Program.Name != "Iron Valley" {
		t.Fatalf("unexpected program %q", season.Program.Name)
	}

	_, err = call[OpponentRequest, service.DualOutcome](t, srv, SimulateDualProcedure, &OpponentRequest{Opponent: "North Ridge"})
	if connect.CodeOf(err) != connect.CodeFailedPrecondition {
		t.Fatalf("dual with empty roster: %v", err)
	}

	validation, err := call[Empty, ValidateLineupResponse](t, srv, ValidateLineupProcedure, &Empty{})
	if err != nil {
		t.Fatalf("ValidateLineup: %v", err)
	}
	if validation.Ready || len(validation.Missing) != len(domain.Ladder) {
		t.Fatalf("empty roster reported ready: %+v", validation)
	}

	if _, err := call[RecruitRequest, service.SeasonView](t, srv, RecruitProcedure, &RecruitRequest{PerClass: 1}); err != nil {
		t.Fatalf("Recruit: %v", err)
	}

	_, err = call[ApplyModifierRequest, service.LiveView](t, srv, ApplyModifierProcedure, &ApplyModifierRequest{Modifier: "hype"})
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Fatalf("unknown modifier: %v", err)
	}

	out, err := call[OpponentRequest, service.DualOutcome](t, srv, SimulateDualProcedure, &OpponentRequest{Opponent: "North Ridge"})
	if err != nil {
		t.Fatalf("SimulateDual: %v", err)
	}
	if out.Record.TeamB != "North Ridge" || out.Record.ScoreA+out.Record.ScoreB == 0 {
		t.Fatalf("unexpected dual %+v", out.Record)
	}

	standings, err := call[Empty, service.StandingsView](t, srv, GetStandingsProcedure, &Empty{})
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	if len(standings.Recent) != 1 {
		t.Fatalf("recent duals %d", len(standings.Recent))
	}
}
