package service

import (
	"cmp"
	"slices"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

const bracketSize = 8

// quarterfinal pairings by seed index (0-based): 1v8, 4v5, 3v6, 2v7
var quarterfinalSeeds = [4][2]int{{0, 7}, {3, 4}, {2, 5}, {1, 6}}

type TournamentEngine struct {
	matches   *MatchSimulator
	generator *Generator
	logger    zerolog.Logger
}

func NewTournamentEngine(matches *MatchSimulator, generator *Generator, logger zerolog.Logger) *TournamentEngine {
	return &TournamentEngine{matches: matches, generator: generator, logger: logger}
}

// Seeds orders the pool's entrants at wc by overall score, capped at a full
// bracket and padded with generated opponents.
func (e *TournamentEngine) Seeds(pool []*domain.Wrestler, wc domain.WeightClass) []*domain.Wrestler {
	var seeds []*domain.Wrestler
	for _, w := range pool {
		if w != nil && w.WeightClass == wc {
			seeds = append(seeds, w)
		}
	}
	if len(seeds) == 0 {
		return nil
	}
	slices.SortStableFunc(seeds, func(a, b *domain.Wrestler) int {
		return cmp.Compare(b.Overall(), a.Overall())
	})
	if len(seeds) > bracketSize {
		seeds = seeds[:bracketSize]
	}
	for len(seeds) < bracketSize {
		seeds = append(seeds, e.generator.TournamentOpponent(wc))
	}
	return seeds
}

// play runs a match on clones so the bracket never writes back to the pool.
func (e *TournamentEngine) play(a, b *domain.Wrestler, round domain.Round) domain.TournamentMatch {
	ca, cb := a.Clone(), b.Clone()
	return domain.TournamentMatch{Round: round, A: ca, B: cb, Result: e.matches.Simulate(ca, cb, 1)}
}

func (e *TournamentEngine) SimulateWeightBracket(pool []*domain.Wrestler, wc domain.WeightClass) *domain.WeightBracket {
	seeds := e.Seeds(pool, wc)
	if seeds == nil {
		e.logger.Debug().Int("weight_class", int(wc)).Msg("no entrants, skipping bracket")
		return nil
	}

	bracket := &domain.WeightBracket{WeightClass: wc}
	for _, pair := range quarterfinalSeeds {
		bracket.Quarterfinals = append(bracket.Quarterfinals, e.play(seeds[pair[0]], seeds[pair[1]], domain.RoundQuarterfinal))
	}
	qf := bracket.Quarterfinals
	bracket.Semifinals = []domain.TournamentMatch{
		e.play(qf[0].Result.Winner, qf[1].Result.Winner, domain.RoundSemifinal),
		e.play(qf[2].Result.Winner, qf[3].Result.Winner, domain.RoundSemifinal),
	}
	sf := bracket.Semifinals
	final := e.play(sf[0].Result.Winner, sf[1].Result.Winner, domain.RoundFinal)
	bracket.Final = &final
	bracket.Champion = final.Result.Winner.Name
	bracket.RunnerUp = final.Result.Loser.Name

	e.logger.Debug().
		Int("weight_class", int(wc)).
		Str("champion", bracket.Champion).
		Str("method", string(final.Result.Method)).
		Msg("bracket complete")
	return bracket
}

// SimulateTournament runs a bracket for every ladder class that has at least
// one entrant in pool. It returns nil when no class produced a bracket.
func (e *TournamentEngine) SimulateTournament(pool []*domain.Wrestler) *domain.TournamentBracket {
	out := &domain.TournamentBracket{}
	for _, wc := range domain.Ladder {
		b := e.SimulateWeightBracket(pool, wc)
		if b == nil {
			continue
		}
		out.Weights = append(out.Weights, *b)
		out.Placings = append(out.Placings, domain.Placing{WeightClass: wc, Champion: b.Champion, RunnerUp: b.RunnerUp})
	}
	if len(out.Weights) == 0 {
		e.logger.Info().Int("pool", len(pool)).Msg("no weight classes available for brackets")
		return nil
	}
	e.logger.Info().Int("brackets", len(out.Weights)).Msg("tournament simulated")
	return out
}
