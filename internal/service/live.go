package service

import (
	"errors"
	"fmt"
	"strings"
	"wrestling-coach/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var (
	ErrNoLiveDual         = errors.New("no live dual in progress")
	ErrLiveDualActive     = errors.New("a live dual is already in progress")
	ErrLiveDualIncomplete = errors.New("live dual has unresolved bouts")
	ErrInvalidModifier    = errors.New("unknown coaching modifier")
	ErrInvalidStrategy    = errors.New("unknown dual strategy")
)

const (
	attritionFatigue   = 12
	attritionHealth    = 3
	healthFloor        = 40
	moraleOnWin        = 3
	moraleOnLoss       = -2
	pushNeutralBonus   = 2
	pushConditionBonus = 1
)

type FinalizeReport struct {
	Result        domain.DualResult     `json:"result"`
	Outcome       domain.Outcome        `json:"outcome"`
	RatingChanges []domain.RatingChange `json:"rating_changes"`
	IsPostseason  bool                  `json:"is_postseason"`
}

// StepResult is what one Advance call produced. Report is set once the
// final slot has been resolved and the dual was finalized.
type StepResult struct {
	Bout   domain.LiveBout `json:"bout"`
	ScoreA int             `json:"score_a"`
	ScoreB int             `json:"score_b"`
	Report *FinalizeReport `json:"report,omitempty"`
}

type LiveDualService struct {
	matches *MatchSimulator
	league  *LeagueService
	lineup  *LineupService
	logger  zerolog.Logger
}

func NewLiveDualService(matches *MatchSimulator, league *LeagueService, lineup *LineupService, logger zerolog.Logger) *LiveDualService {
	return &LiveDualService{matches: matches, league: league, lineup: lineup, logger: logger}
}

// EffectiveAttributes applies active coaching modifiers to a copy of base.
func EffectiveAttributes(base domain.Attributes, mods []domain.CoachingModifier) domain.Attributes {
	eff := base
	for _, m := range mods {
		if m.Kind == domain.ModifierPush {
			eff.Bump(domain.Neutral, pushNeutralBonus)
			eff.Bump(domain.Conditioning, pushConditionBonus)
		}
	}
	return eff
}

func (s *LiveDualService) Start(season *domain.Season, opponent *domain.Team, isPostseason bool) (*domain.LiveDualState, error) {
	if season.LivePhase() != domain.PhaseIdle {
		return nil, ErrLiveDualActive
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate live dual id: %w", err)
	}

	myTeam := s.lineup.BuildTeam(season, season.Program.Name)
	strategy := season.Strategy
	if !strategy.Valid() {
		strategy = domain.StrategyBalanced
	}
	state := &domain.LiveDualState{
		ID:           id,
		Phase:        domain.PhaseActive,
		MyTeam:       myTeam,
		Opponent:     opponent,
		Strategy:     strategy,
		Modifiers:    []domain.CoachingModifier{},
		IsPostseason: isPostseason,
	}
	for _, wc := range domain.Ladder {
		state.Bouts = append(state.Bouts, domain.LiveBout{WeightClass: wc, A: myTeam.At(wc), B: opponent.At(wc)})
	}
	season.Live = state

	s.logger.Info().
		Str("live_id", id).
		Str("team", myTeam.Name).
		Str("opponent", opponent.Name).
		Str("strategy", string(strategy)).
		Msg("live dual started")
	return state, nil
}

func (s *LiveDualService) active(season *domain.Season) (*domain.LiveDualState, error) {
	if season.LivePhase() != domain.PhaseActive {
		return nil, ErrNoLiveDual
	}
	return season.Live, nil
}

func (s *LiveDualService) ApplyModifier(season *domain.Season, kind domain.ModifierKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidModifier, kind)
	}
	state, err := s.active(season)
	if err != nil {
		return err
	}
	state.Modifiers = append(state.Modifiers, domain.CoachingModifier{Kind: kind, Remaining: domain.ModifierUses})
	s.logger.Debug().Str("live_id", state.ID).Str("modifier", string(kind)).Msg("coaching modifier applied")
	return nil
}

// SetStrategy changes the season default and, when a dual is live, the
// strategy for its remaining bouts.
func (s *LiveDualService) SetStrategy(season *domain.Season, strategy domain.Strategy) error {
	if !strategy.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, strategy)
	}
	season.Strategy = strategy
	if season.LivePhase() == domain.PhaseActive {
		season.Live.Strategy = strategy
	}
	return nil
}

// step resolves exactly the slot at the cursor and moves the cursor on.
func (s *LiveDualService) step(state *domain.LiveDualState) domain.LiveBout {
	state.ExpireModifiers()
	bout := state.Current()

	switch {
	case bout.A == nil && bout.B == nil:
	case bout.A == nil:
		state.ScoreB += forfeitPoints
		bout.Result = &domain.BoutResult{
			WeightClass: bout.WeightClass,
			B:           bout.B,
			WinnerSide:  domain.SideB,
			Method:      domain.MethodForfeit,
			Summary:     fmt.Sprintf("%s wins by forfeit", state.Opponent.Name),
		}
	case bout.B == nil:
		state.ScoreA += forfeitPoints
		bout.Result = &domain.BoutResult{
			WeightClass: bout.WeightClass,
			A:           bout.A,
			WinnerSide:  domain.SideA,
			Method:      domain.MethodForfeit,
			Summary:     fmt.Sprintf("%s wins by forfeit", state.MyTeam.Name),
		}
	default:
		bout.Result = s.resolveBout(state, bout)
		ptsA, ptsB := bout.Result.Points()
		state.ScoreA += ptsA
		state.ScoreB += ptsB
	}

	state.Cursor++
	if state.Done() {
		state.Phase = domain.PhaseComplete
	}
	return *bout
}

func (s *LiveDualService) resolveBout(state *domain.LiveDualState, bout *domain.LiveBout) *domain.BoutResult {
	threshold := pinMargin
	if state.HasModifier(domain.ModifierSolid) {
		threshold = solidPinMargin
	}
	attrs := EffectiveAttributes(bout.A.Attributes, state.Modifiers)
	out := s.matches.resolve(bout.A, bout.B, attrs, state.Strategy.Multiplier(), threshold)

	winner, loser := bout.A, bout.B
	if out.side == domain.SideB {
		winner, loser = bout.B, bout.A
	}
	s.logger.Debug().
		Str("live_id", state.ID).
		Int("weight_class", int(bout.WeightClass)).
		Str("winner", winner.Name).
		Str("method", string(out.method)).
		Float64("margin", out.margin).
		Int("modifiers", len(state.Modifiers)).
		Msg("live bout resolved")

	return &domain.BoutResult{
		WeightClass: bout.WeightClass,
		A:           bout.A,
		B:           bout.B,
		WinnerSide:  out.side,
		Method:      out.method,
		Summary:     fmt.Sprintf("%s defeats %s by %s.", winner.Name, loser.Name, out.method),
	}
}

// Advance resolves the bout at the cursor. Resolving the last slot completes
// the dual and finalizes it into the league.
func (s *LiveDualService) Advance(season *domain.Season) (*StepResult, error) {
	state, err := s.active(season)
	if err != nil {
		return nil, err
	}
	out := &StepResult{Bout: s.step(state), ScoreA: state.ScoreA, ScoreB: state.ScoreB}
	if state.Phase == domain.PhaseComplete {
		report, err := s.Finalize(season)
		if err != nil {
			return nil, err
		}
		out.Report = report
	}
	return out, nil
}

// QuickFinish resolves every remaining slot with the same per-bout step as
// Advance and finalizes.
func (s *LiveDualService) QuickFinish(season *domain.Season) (*FinalizeReport, error) {
	state, err := s.active(season)
	if err != nil {
		return nil, err
	}
	for !state.Done() {
		s.step(state)
	}
	return s.Finalize(season)
}

// Abandon discards a live dual without committing anything.
func (s *LiveDualService) Abandon(season *domain.Season) error {
	if season.Live == nil {
		return ErrNoLiveDual
	}
	s.logger.Info().Str("live_id", season.Live.ID).Int("cursor", season.Live.Cursor).Msg("live dual abandoned")
	season.Live = nil
	return nil
}

func (s *LiveDualService) Finalize(season *domain.Season) (*FinalizeReport, error) {
	state := season.Live
	if state == nil {
		return nil, ErrNoLiveDual
	}
	if state.Phase != domain.PhaseComplete {
		return nil, ErrLiveDualIncomplete
	}

	result := domain.DualResult{
		TeamA:  state.MyTeam.Name,
		TeamB:  state.Opponent.Name,
		ScoreA: state.ScoreA,
		ScoreB: state.ScoreB,
	}
	var lines []string
	for _, b := range state.Bouts {
		if b.Result == nil {
			continue
		}
		result.Bouts = append(result.Bouts, *b.Result)
		lines = append(lines, fmt.Sprintf("%d: %s", b.WeightClass, b.Result.Summary))
	}
	lines = append(lines, fmt.Sprintf("Final: %s %d - %d %s", state.MyTeam.Name, state.ScoreA, state.ScoreB, state.Opponent.Name))
	result.Log = strings.Join(lines, "\n")

	outcome := result.OutcomeFor()
	season.Record.Add(outcome)
	ApplyAttrition(season.Roster, outcome)
	changes := s.league.Update(&season.League, state.MyTeam.Name, state.Opponent.Name, state.ScoreA, state.ScoreB)
	season.Live = nil

	s.logger.Info().
		Str("live_id", state.ID).
		Str("opponent", state.Opponent.Name).
		Int("score_a", state.ScoreA).
		Int("score_b", state.ScoreB).
		Str("outcome", string(outcome)).
		Msg("live dual finalized")

	return &FinalizeReport{Result: result, Outcome: outcome, RatingChanges: changes, IsPostseason: state.IsPostseason}, nil
}

// ApplyAttrition wears down every roster member after a meet.
func ApplyAttrition(roster []*domain.Wrestler, outcome domain.Outcome) {
	morale := 0
	switch outcome {
	case domain.OutcomeWin:
		morale = moraleOnWin
	case domain.OutcomeLoss:
		morale = moraleOnLoss
	}
	for _, w := range roster {
		w.Fatigue = min(100, w.Fatigue+attritionFatigue)
		w.Health = max(healthFloor, w.Health-attritionHealth)
		if w.Injury.Active() {
			w.Injury.Days = max(0, w.Injury.Days-1)
		}
		w.Morale = domain.ClampStat(w.Morale + morale)
		w.TickForm()
	}
}
