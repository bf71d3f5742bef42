package service

import (
	"testing"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/rng"

	"github.com/google/go-cmp/cmp"
)

func clonePool(pool []*domain.Wrestler) []*domain.Wrestler {
	out := make([]*domain.Wrestler, len(pool))
	for i, w := range pool {
		out[i] = w.Clone()
	}
	return out
}

func TestSeedsPadAndSort(t *testing.T) {
	engines := newTestEngines(rng.New(3))
	weak := profile("Weak", 125)
	strong := profile("Strong", 125)
	strong.Attributes.Neutral = 90
	other := profile("Other", 133)

	seeds := engines.Tournament.Seeds([]*domain.Wrestler{weak, strong, other}, 125)
	if len(seeds) != bracketSize {
		t.Fatalf("got %d seeds, want %d", len(seeds), bracketSize)
	}
	if seeds[0] != strong || seeds[1] != weak {
		t.Fatalf("pool entrants not seeded first by overall: %s, %s", seeds[0].Name, seeds[1].Name)
	}
	for _, s := range seeds[2:] {
		if s.WeightClass != 125 {
			t.Fatalf("padding entrant at wrong class %d", s.WeightClass)
		}
	}
}

func TestSeedsCapped(t *testing.T) {
	engines := newTestEngines(rng.New(3))
	var pool []*domain.Wrestler
	for i := range 11 {
		w := profile(string(rune('A'+i)), 157)
		w.Attributes.Technique = 50 + i
		pool = append(pool, w)
	}
	seeds := engines.Tournament.Seeds(pool, 157)
	if len(seeds) != bracketSize {
		t.Fatalf("got %d seeds", len(seeds))
	}
	if seeds[0].Name != "K" || seeds[7].Name != "D" {
		t.Fatalf("unexpected seeding %s..%s", seeds[0].Name, seeds[7].Name)
	}
}

func TestSimulateWeightBracketShape(t *testing.T) {
	engines := newTestEngines(rng.New(11))
	solo := profile("Solo", 165)
	solo.Attributes = domain.Attributes{Neutral: 99, Top: 99, Bottom: 99, Strength: 99, Conditioning: 99, Technique: 99}
	pool := []*domain.Wrestler{solo}

	b := engines.Tournament.SimulateWeightBracket(pool, 165)
	if b == nil {
		t.Fatalf("expected a bracket")
	}
	if len(b.Quarterfinals) != 4 || len(b.Semifinals) != 2 || b.Final == nil {
		t.Fatalf("bracket shape %d/%d/%v", len(b.Quarterfinals), len(b.Semifinals), b.Final != nil)
	}
	if b.Champion != b.Final.Result.Winner.Name || b.RunnerUp != b.Final.Result.Loser.Name {
		t.Fatalf("placings do not match the final")
	}
	if b.Quarterfinals[0].A.Name != "Solo" {
		t.Fatalf("top seed should open against the eighth seed, got %s", b.Quarterfinals[0].A.Name)
	}
	for i, sf := range b.Semifinals {
		if sf.A.Name != b.Quarterfinals[2*i].Result.Winner.Name || sf.B.Name != b.Quarterfinals[2*i+1].Result.Winner.Name {
			t.Fatalf("semifinal %d not fed by quarterfinal winners", i)
		}
	}
}

func TestSimulateTournamentLeavesPoolUntouched(t *testing.T) {
	engines := newTestEngines(rng.New(5))
	pool := ladderRoster("Pool", 184, 197)
	before := clonePool(pool)

	bracket := engines.Tournament.SimulateTournament(pool)
	if bracket == nil {
		t.Fatalf("expected brackets")
	}
	if len(bracket.Weights) != len(domain.Ladder)-2 || len(bracket.Placings) != len(bracket.Weights) {
		t.Fatalf("got %d brackets, %d placings", len(bracket.Weights), len(bracket.Placings))
	}
	if diff := cmp.Diff(before, pool); diff != "" {
		t.Fatalf("pool mutated (-before +after):\n%s", diff)
	}
}

func TestSimulateTournamentEmpty(t *testing.T) {
	engines := newTestEngines(rng.New(5))
	if got := engines.Tournament.SimulateTournament(nil); got != nil {
		t.Fatalf("expected nil bracket for an empty pool")
	}
}
