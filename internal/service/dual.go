package service

import (
	"fmt"
	"strings"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

const forfeitPoints = 6

type DualMeetEngine struct {
	matches *MatchSimulator
	logger  zerolog.Logger
}

func NewDualMeetEngine(matches *MatchSimulator, logger zerolog.Logger) *DualMeetEngine {
	return &DualMeetEngine{matches: matches, logger: logger}
}

type dualOptions struct {
	ladder   []domain.WeightClass
	strategy float64
}

type DualOption func(*dualOptions)

// WithLadder restricts the dual to the given classes, in the given order.
func WithLadder(ladder []domain.WeightClass) DualOption {
	return func(o *dualOptions) { o.ladder = ladder }
}

// WithStrategy scales team A's composite score in every contested bout.
func WithStrategy(s domain.Strategy) DualOption {
	return func(o *dualOptions) { o.strategy = s.Multiplier() }
}

func (e *DualMeetEngine) Simulate(teamA, teamB *domain.Team, opts ...DualOption) domain.DualResult {
	o := dualOptions{ladder: domain.Ladder, strategy: 1}
	for _, opt := range opts {
		opt(&o)
	}

	result := domain.DualResult{TeamA: teamA.Name, TeamB: teamB.Name}
	lines := []string{
		fmt.Sprintf("%s vs %s", teamA.Name, teamB.Name),
		"--------------------------------",
	}

	for _, wc := range o.ladder {
		a := teamA.At(wc)
		b := teamB.At(wc)

		switch {
		case a == nil && b == nil:
			lines = append(lines, fmt.Sprintf("%d: open for both teams", wc))
			continue
		case b == nil:
			result.ScoreA += forfeitPoints
			lines = append(lines, fmt.Sprintf("%d: %s wins by forfeit (%d-0) - %s", wc, teamA.Name, forfeitPoints, a.Name))
			result.Bouts = append(result.Bouts, domain.BoutResult{
				WeightClass: wc,
				A:           a,
				WinnerSide:  domain.SideA,
				Method:      domain.MethodForfeit,
				Summary:     fmt.Sprintf("%s wins by forfeit", a.Name),
			})
			continue
		case a == nil:
			result.ScoreB += forfeitPoints
			lines = append(lines, fmt.Sprintf("%d: %s wins by forfeit (%d-0) - %s", wc, teamB.Name, forfeitPoints, b.Name))
			result.Bouts = append(result.Bouts, domain.BoutResult{
				WeightClass: wc,
				B:           b,
				WinnerSide:  domain.SideB,
				Method:      domain.MethodForfeit,
				Summary:     fmt.Sprintf("%s wins by forfeit", b.Name),
			})
			continue
		}

		match := e.matches.Simulate(a, b, o.strategy)
		pts := match.Method.TeamPoints()
		teamName := teamA.Name
		if match.WinnerSide == domain.SideA {
			result.ScoreA += pts
		} else {
			result.ScoreB += pts
			teamName = teamB.Name
		}
		lines = append(lines, fmt.Sprintf("%d: %s (%s +%d)", wc, match.Summary, teamName, pts))
		result.Bouts = append(result.Bouts, domain.BoutResult{
			WeightClass: wc,
			A:           a,
			B:           b,
			WinnerSide:  match.WinnerSide,
			Method:      match.Method,
			Summary:     match.Summary,
		})
	}

	lines = append(lines,
		"--------------------------------",
		fmt.Sprintf("Final Team Score: %s %d - %d %s", teamA.Name, result.ScoreA, result.ScoreB, teamB.Name),
	)
	result.Log = strings.Join(lines, "\n")

	e.logger.Info().
		Str("team_a", teamA.Name).
		Str("team_b", teamB.Name).
		Int("score_a", result.ScoreA).
		Int("score_b", result.ScoreB).
		Int("bouts", len(result.Bouts)).
		Msg("dual simulated")

	return result
}
