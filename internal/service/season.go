package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"wrestling-coach/internal/api"
	"wrestling-coach/internal/catalog"
	"wrestling-coach/internal/config"
	"wrestling-coach/internal/constants"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyRoster      = errors.New("roster is empty")
	ErrUnknownOpponent  = errors.New("unknown opponent")
	ErrUnknownWrestler  = errors.New("unknown wrestler")
	ErrWrongClass       = errors.New("wrestler cannot fill that weight class")
	ErrPostseasonPlayed = errors.New("postseason already played this season")
	ErrInvalidRoster    = errors.New("invalid roster")
)

const (
	defaultPopularity = 5
	defaultAthletics  = 5
)

// SeasonService owns one season and serializes every operation on it. State
// is committed in memory first and then written through to storage; a
// storage failure is logged and does not undo the commit.
type SeasonService struct {
	mu      sync.Mutex
	season  *domain.Season
	catalog *catalog.Catalog
	engines *Engines

	leagueRepo *repository.LeagueRepository
	dualRepo   *repository.DualRepository
	ratingRepo *repository.RatingHistoryRepository
	seasonRepo *repository.SeasonRepository
	gazette    *api.GazetteClient

	logger zerolog.Logger
}

func NewSeasonService(
	cfg *config.Config,
	cat *catalog.Catalog,
	engines *Engines,
	leagueRepo *repository.LeagueRepository,
	dualRepo *repository.DualRepository,
	ratingRepo *repository.RatingHistoryRepository,
	seasonRepo *repository.SeasonRepository,
	gazette *api.GazetteClient,
	logger zerolog.Logger,
) *SeasonService {
	s := &SeasonService{
		catalog:    cat,
		engines:    engines,
		leagueRepo: leagueRepo,
		dualRepo:   dualRepo,
		ratingRepo: ratingRepo,
		seasonRepo: seasonRepo,
		gazette:    gazette,
		logger:     logger,
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.DatabaseTimeout)
	defer cancel()
	s.season = s.load(ctx, cfg.ProgramName, cfg.AllowBump)
	return s
}

func (s *SeasonService) program(name string) domain.Program {
	if p, ok := s.catalog.Find(name); ok {
		return p
	}
	return domain.Program{Name: name, Prestige: domain.DefaultPrestige, Popularity: defaultPopularity, Athletics: defaultAthletics}
}

// load restores the stored season for the program. A missing or unreadable
// season starts over with an empty roster.
func (s *SeasonService) load(ctx context.Context, programName string, allowBump bool) *domain.Season {
	season, err := s.seasonRepo.Load(ctx, programName)
	if err == nil {
		if season.Lineup == nil {
			season.Lineup = map[domain.WeightClass]string{}
		}
		if season.Live != nil && season.Live.Phase != domain.PhaseActive {
			season.Live = nil
		}
		s.logger.Info().
			Str("program", programName).
			Int("roster", len(season.Roster)).
			Int("teams", len(season.League.Teams)).
			Msg("season restored")
		return season
	}

	if errors.Is(err, repository.ErrNoSeason) {
		s.logger.Info().Str("program", programName).Msg("no stored season, starting fresh")
	} else {
		s.logger.Error().Err(err).Str("program", programName).Msg("failed to load stored season, starting with an empty roster")
	}

	season = domain.NewSeason(s.program(programName))
	season.AllowBump = allowBump

	teams, err := s.leagueRepo.List(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to read stored standings")
	}
	if len(teams) > 0 {
		season.League.Teams = teams
		season.League.FindOrAdd(season.Program.Name)
	} else {
		s.engines.League.Reset(season, s.catalog.Programs)
	}
	return season
}

func (s *SeasonService) persistSeason(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.seasonRepo.Save(ctx, s.season); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist season")
	}
}

func (s *SeasonService) persistLeague(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := s.leagueRepo.ReplaceAll(ctx, s.season.League); err != nil {
		s.logger.Error().Err(err).Msg("failed to persist league")
	}
}

func (s *SeasonService) storeDual(ctx context.Context, rec domain.DualRecord, changes []domain.RatingChange) domain.DualRecord {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := s.dualRepo.Save(ctx, rec)
	if err != nil {
		s.logger.Error().Err(err).Str("team_b", rec.TeamB).Msg("failed to store dual")
		return rec
	}
	rec.ID = id
	if err := s.ratingRepo.InsertBatch(ctx, id, changes); err != nil {
		s.logger.Error().Err(err).Str("dual_id", id).Msg("failed to store rating history")
	}
	return rec
}

// commit writes a dual that has already been applied to the season through
// to storage and the gazette.
func (s *SeasonService) commit(ctx context.Context, kind domain.DualKind, result domain.DualResult, outcome domain.Outcome, changes []domain.RatingChange, ratingGap float64, isPostseason bool) *DualOutcome {
	rec := s.storeDual(ctx, domain.NewDualRecord(kind, result, time.Now()), changes)
	s.persistLeague(ctx)
	s.persistSeason(ctx)

	stories := DualStories(result, outcome, ratingGap, isPostseason)
	s.publish(api.NewDualReport(s.season.Program.Name, rec, outcome, stories))

	return &DualOutcome{
		Record:        rec,
		Outcome:       outcome,
		RatingChanges: changes,
		Stories:       stories,
		IsPostseason:  isPostseason,
	}
}

func (s *SeasonService) publish(report api.DualReport) {
	if !s.gazette.Enabled() {
		return
	}

	g := new(errgroup.Group)
	g.Go(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), constants.GazetteTimeout)
		defer cancel()
		return s.gazette.Publish(ctx, report)
	})

	go func() {
		if err := g.Wait(); err != nil {
			s.logger.Warn().Err(err).Str("dual_id", report.DualID).Msg("gazette delivery failed")
			return
		}
		s.logger.Debug().Str("dual_id", report.DualID).Str("headline", report.Headline).Msg("gazette report delivered")
	}()
}

func (s *SeasonService) opponent(name string) (*domain.Team, error) {
	if name == "" || name == s.season.Program.Name {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, name)
	}
	p, ok := s.catalog.Find(name)
	if !ok {
		t := s.season.League.Find(name)
		if t == nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownOpponent, name)
		}
		p = domain.Program{Name: t.Name, Prestige: t.Prestige, Popularity: defaultPopularity, Athletics: defaultAthletics}
	}
	return s.engines.Generator.ProgramTeam(p), nil
}

func (s *SeasonService) ratingGap(opponent string) float64 {
	return s.season.League.RatingOf(s.season.Program.Name) - s.season.League.RatingOf(opponent)
}

// ready checks everything a dual needs before any state changes.
func (s *SeasonService) ready() error {
	if s.season.LivePhase() != domain.PhaseIdle {
		return ErrLiveDualActive
	}
	if len(s.season.Roster) == 0 {
		return ErrEmptyRoster
	}
	return s.engines.Lineup.EnsureReady(s.season)
}

func (s *SeasonService) Snapshot(ctx context.Context) *SeasonView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newSeasonView(s.season)
}

// SetRoster replaces the roster and rebuilds the lineup from scratch.
func (s *SeasonService) SetRoster(ctx context.Context, roster []*domain.Wrestler) (*SeasonView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.season.LivePhase() != domain.PhaseIdle {
		return nil, ErrLiveDualActive
	}
	seen := map[string]bool{}
	out := make([]*domain.Wrestler, 0, len(roster))
	for _, w := range roster {
		if w == nil {
			continue
		}
		c := w.Clone()
		if c.ID == "" {
			c.ID = uuid.NewString()
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate wrestler id %q", ErrInvalidRoster, c.ID)
		}
		seen[c.ID] = true
		c.Normalize()
		if c.WeightClass.Index() < 0 {
			return nil, fmt.Errorf("%w: wrestler %q: %d is not a weight class", ErrInvalidRoster, c.Name, c.WeightClass)
		}
		out = append(out, c)
	}

	s.season.Roster = out
	s.season.Lineup = map[domain.WeightClass]string{}
	s.engines.Lineup.AutoFill(s.season)
	s.persistSeason(ctx)

	s.logger.Info().Int("roster", len(out)).Msg("roster replaced")
	return newSeasonView(s.season), nil
}

// Recruit replaces the roster with perClass generated wrestlers at every
// weight class.
func (s *SeasonService) Recruit(ctx context.Context, perClass int) (*SeasonView, error) {
	if perClass < 1 || perClass > constants.MaxRecruitPerClass {
		return nil, fmt.Errorf("%w: per class must be between 1 and %d, got %d", ErrInvalidRoster, constants.MaxRecruitPerClass, perClass)
	}
	s.mu.Lock()
	roster := s.engines.Generator.Roster(s.season.Program, perClass)
	s.mu.Unlock()
	return s.SetRoster(ctx, roster)
}

func (s *SeasonService) SetLineup(ctx context.Context, wc domain.WeightClass, wrestlerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if wc.Index() < 0 {
		return fmt.Errorf("%w: %d is not a weight class", ErrWrongClass, wc)
	}
	if wrestlerID == "" {
		delete(s.season.Lineup, wc)
		s.persistSeason(ctx)
		return nil
	}
	w := s.season.FindWrestler(wrestlerID)
	if w == nil {
		return fmt.Errorf("%w: %q", ErrUnknownWrestler, wrestlerID)
	}
	if w.WeightClass != wc {
		lighter, ok := wc.Lighter()
		if !s.season.AllowBump || !ok || w.WeightClass != lighter {
			return fmt.Errorf("%w: %s wrestles at %d, not %d", ErrWrongClass, w.Name, w.WeightClass, wc)
		}
	}
	s.season.Lineup[wc] = w.ID
	s.persistSeason(ctx)
	return nil
}

func (s *SeasonService) ValidateLineup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.engines.Lineup.EnsureReady(s.season)
	s.persistSeason(ctx)
	return err
}

func (s *SeasonService) AutoFillLineup(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	filled := s.engines.Lineup.AutoFill(s.season)
	if filled > 0 {
		s.persistSeason(ctx)
	}
	return filled
}

// SimulateDual plays a full dual against opponent and commits it.
func (s *SeasonService) SimulateDual(ctx context.Context, opponent string) (*DualOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	opp, err := s.opponent(opponent)
	if err != nil {
		return nil, err
	}
	gap := s.ratingGap(opp.Name)

	mine := s.engines.Lineup.BuildTeam(s.season, s.season.Program.Name)
	result := s.engines.Duals.Simulate(mine, opp, WithStrategy(s.season.Strategy))
	outcome := result.OutcomeFor()

	s.season.Record.Add(outcome)
	ApplyAttrition(s.season.Roster, outcome)
	changes := s.engines.League.Update(&s.season.League, mine.Name, opp.Name, result.ScoreA, result.ScoreB)

	return s.commit(ctx, domain.KindSimulated, result, outcome, changes, gap, false), nil
}

func (s *SeasonService) StartLiveDual(ctx context.Context, opponent string, isPostseason bool) (*LiveView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	opp, err := s.opponent(opponent)
	if err != nil {
		return nil, err
	}
	state, err := s.engines.Live.Start(s.season, opp, isPostseason)
	if err != nil {
		return nil, err
	}
	s.persistSeason(ctx)
	return newLiveView(state), nil
}

func (s *SeasonService) ApplyModifier(ctx context.Context, kind domain.ModifierKind) (*LiveView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engines.Live.ApplyModifier(s.season, kind); err != nil {
		return nil, err
	}
	s.persistSeason(ctx)
	return newLiveView(s.season.Live), nil
}

func (s *SeasonService) SetStrategy(ctx context.Context, strategy domain.Strategy) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engines.Live.SetStrategy(s.season, strategy); err != nil {
		return err
	}
	s.persistSeason(ctx)
	return nil
}

func (s *SeasonService) liveMeta() (opponent string, gap float64, isPostseason bool) {
	if s.season.Live == nil {
		return "", 0, false
	}
	opponent = s.season.Live.Opponent.Name
	return opponent, s.ratingGap(opponent), s.season.Live.IsPostseason
}

// AdvanceLiveBout resolves the next bout. The bout that completes the dual
// also commits it.
func (s *SeasonService) AdvanceLiveBout(ctx context.Context) (*LiveStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, gap, isPostseason := s.liveMeta()
	step, err := s.engines.Live.Advance(s.season)
	if err != nil {
		return nil, err
	}

	out := &LiveStep{Bout: newLiveBoutView(step.Bout), ScoreA: step.ScoreA, ScoreB: step.ScoreB}
	if step.Report != nil {
		out.Final = s.commit(ctx, domain.KindLive, step.Report.Result, step.Report.Outcome, step.Report.RatingChanges, gap, isPostseason)
	} else {
		s.persistSeason(ctx)
	}
	return out, nil
}

func (s *SeasonService) QuickFinishLiveDual(ctx context.Context) (*DualOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, gap, isPostseason := s.liveMeta()
	report, err := s.engines.Live.QuickFinish(s.season)
	if err != nil {
		return nil, err
	}
	return s.commit(ctx, domain.KindLive, report.Result, report.Outcome, report.RatingChanges, gap, isPostseason), nil
}

func (s *SeasonService) AbandonLiveDual(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.engines.Live.Abandon(s.season); err != nil {
		return err
	}
	s.persistSeason(ctx)
	return nil
}

// Standings returns the current table alongside recent duals and the
// program's rating history, read from storage in parallel.
func (s *SeasonService) Standings(ctx context.Context) (*StandingsView, error) {
	s.mu.Lock()
	view := &StandingsView{Teams: standings(s.season.League)}
	program := s.season.Program.Name
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recent, err := s.dualRepo.ListRecent(gctx, constants.RecentDualLimit)
		if err != nil {
			return fmt.Errorf("failed to list recent duals: %w", err)
		}
		view.Recent = recent
		return nil
	})
	g.Go(func() error {
		history, err := s.ratingRepo.ListByTeam(gctx, program, constants.RatingHistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to list rating history: %w", err)
		}
		view.History = history
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Msg("failed to read standings")
		return nil, err
	}
	return view, nil
}

// Tournament brackets the healthy roster by weight class. The roster is not
// changed.
func (s *SeasonService) Tournament(ctx context.Context) (*domain.TournamentBracket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var pool []*domain.Wrestler
	for _, w := range s.season.Roster {
		if !w.MajorlyInjured() {
			pool = append(pool, w)
		}
	}
	bracket := s.engines.Tournament.SimulateTournament(pool)
	if bracket == nil {
		return nil, ErrEmptyRoster
	}
	return bracket, nil
}

func (s *SeasonService) RunPostseason(ctx context.Context) (*domain.PostseasonResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.season.PostseasonPlayed {
		return nil, ErrPostseasonPlayed
	}
	if s.season.LivePhase() != domain.PhaseIdle {
		return nil, ErrLiveDualActive
	}
	result, err := s.engines.League.RunPostseason(s.season)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	for _, d := range []domain.DualResult{result.Semifinal1, result.Semifinal2, result.Final} {
		s.storeDual(ctx, domain.NewDualRecord(domain.KindPostseason, d, now), nil)
	}
	s.persistLeague(ctx)
	s.persistSeason(ctx)
	return result, nil
}

// ResetSeason starts a new season: the league is reseeded from the catalog
// and the roster recovers over the offseason.
func (s *SeasonService) ResetSeason(ctx context.Context) *SeasonView {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.engines.League.Reset(s.season, s.catalog.Programs)
	for _, w := range s.season.Roster {
		w.Fatigue = 0
		w.Health = max(w.Health, 95)
		w.Injury = nil
		w.Form = 0
		w.FormDays = 0
	}
	s.persistLeague(ctx)
	s.persistSeason(ctx)
	return newSeasonView(s.season)
}
