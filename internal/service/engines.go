package service

import (
	"wrestling-coach/internal/rng"

	"github.com/rs/zerolog"
)

// Engines is every simulation component wired to one random source.
type Engines struct {
	Matches    *MatchSimulator
	Duals      *DualMeetEngine
	Tournament *TournamentEngine
	Generator  *Generator
	Lineup     *LineupService
	League     *LeagueService
	Live       *LiveDualService
}

func NewEngines(src rng.Source, logger zerolog.Logger) *Engines {
	matches := NewMatchSimulator(src, logger)
	generator := NewGenerator(src, logger)
	lineup := NewLineupService(logger)
	duals := NewDualMeetEngine(matches, logger)
	league := NewLeagueService(duals, generator, lineup, logger)
	return &Engines{
		Matches:    matches,
		Duals:      duals,
		Tournament: NewTournamentEngine(matches, generator, logger),
		Generator:  generator,
		Lineup:     lineup,
		League:     league,
		Live:       NewLiveDualService(matches, league, lineup, logger),
	}
}
