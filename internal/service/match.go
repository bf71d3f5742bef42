package service

import (
	"fmt"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/rng"

	"github.com/rs/zerolog"
)

const (
	pinMargin      = 15.0
	solidPinMargin = 18.0
	techFallMargin = 10.0
	majorMargin    = 6.0

	// each side adds a uniform draw in [0, drawRange)
	drawRange = 10.0
)

type MatchSimulator struct {
	rng    rng.Source
	logger zerolog.Logger
}

func NewMatchSimulator(src rng.Source, logger zerolog.Logger) *MatchSimulator {
	return &MatchSimulator{rng: src, logger: logger}
}

// CompositeScore is a wrestler's pre-draw strength given a set of effective
// attributes. Condition, form and injury come from the profile itself.
func CompositeScore(w *domain.Wrestler, attrs domain.Attributes) float64 {
	base := attrs.Overall() +
		attrs.Style()*0.05 +
		float64(w.Morale-70)*0.1 +
		float64(w.Health-90)*0.05 -
		float64(w.Fatigue)*0.1 +
		float64(w.Form)*1.2
	return base * w.Injury.Penalty()
}

// ClassifyMargin maps a winning margin onto a bonus method.
func ClassifyMargin(margin, pinThreshold float64) domain.WinMethod {
	switch {
	case margin > pinThreshold:
		return domain.MethodPin
	case margin > techFallMargin:
		return domain.MethodTechFall
	case margin > majorMargin:
		return domain.MethodMajor
	default:
		return domain.MethodDecision
	}
}

type boutOutcome struct {
	side   domain.Side
	method domain.WinMethod
	margin float64
	scoreA float64
	scoreB float64
}

// resolve scores one bout. Only side A receives the attribute snapshot and
// multiplier; side B always wrestles on its stored attributes.
func (s *MatchSimulator) resolve(a, b *domain.Wrestler, attrsA domain.Attributes, multA, pinThreshold float64) boutOutcome {
	scoreA := CompositeScore(a, attrsA)*multA + s.rng.Float64()*drawRange
	scoreB := CompositeScore(b, b.Attributes) + s.rng.Float64()*drawRange

	out := boutOutcome{side: domain.SideA, scoreA: scoreA, scoreB: scoreB, margin: scoreA - scoreB}
	if scoreB > scoreA {
		out.side = domain.SideB
		out.margin = scoreB - scoreA
	}
	out.method = ClassifyMargin(out.margin, pinThreshold)
	return out
}

// Simulate resolves a bout between two present wrestlers and updates both
// wrestlers' form. strategyModifier scales side A only.
func (s *MatchSimulator) Simulate(a, b *domain.Wrestler, strategyModifier float64) domain.MatchResult {
	if strategyModifier == 0 {
		strategyModifier = 1
	}
	out := s.resolve(a, b, a.Attributes, strategyModifier, pinMargin)

	winner, loser := a, b
	if out.side == domain.SideB {
		winner, loser = b, a
	}
	winner.RecordWin()
	loser.RecordLoss()

	s.logger.Debug().
		Str("winner", winner.Name).
		Str("loser", loser.Name).
		Str("method", string(out.method)).
		Float64("margin", out.margin).
		Int("weight_class", int(a.WeightClass)).
		Msg("bout resolved")

	return domain.MatchResult{
		Winner:     winner,
		Loser:      loser,
		WinnerSide: out.side,
		Method:     out.method,
		Margin:     out.margin,
		Summary:    fmt.Sprintf("%s defeats %s by %s.", winner.Name, loser.Name, out.method),
	}
}
