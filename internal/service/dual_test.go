package service

import (
	"fmt"
	"strings"
	"testing"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/rng"

	"github.com/rs/zerolog"
)

func sumPoints(bouts []domain.BoutResult) (int, int) {
	var a, b int
	for _, bout := range bouts {
		pa, pb := bout.Points()
		a += pa
		b += pb
	}
	return a, b
}

func TestDualForfeits(t *testing.T) {
	engines := newTestEngines(rng.New(42))
	teamA := domain.NewTeam("Iron Valley", []*domain.Wrestler{
		profile("A125", 125), profile("A133", 133), profile("A141", 141),
	})
	teamB := domain.NewTeam("North Ridge", []*domain.Wrestler{
		profile("B125", 125), profile("B141", 141), profile("B149", 149),
	})

	result := engines.Duals.Simulate(teamA, teamB)
	if len(result.Bouts) != 4 {
		t.Fatalf("expected 4 scored bouts, got %d", len(result.Bouts))
	}

	byClass := map[domain.WeightClass]domain.BoutResult{}
	for _, b := range result.Bouts {
		byClass[b.WeightClass] = b
	}
	if b := byClass[133]; b.Method != domain.MethodForfeit || b.WinnerSide != domain.SideA {
		t.Fatalf("133 should be a forfeit for A, got %s/%s", b.Method, b.WinnerSide)
	}
	if b := byClass[149]; b.Method != domain.MethodForfeit || b.WinnerSide != domain.SideB {
		t.Fatalf("149 should be a forfeit for B, got %s/%s", b.Method, b.WinnerSide)
	}
	if _, ok := byClass[157]; ok {
		t.Fatalf("class open for both teams must not be scored")
	}

	a, b := sumPoints(result.Bouts)
	if a != result.ScoreA || b != result.ScoreB {
		t.Fatalf("score %d-%d does not match bout points %d-%d", result.ScoreA, result.ScoreB, a, b)
	}
	if !strings.Contains(result.Log, "157: open for both teams") {
		t.Fatalf("log missing open class line:\n%s", result.Log)
	}
	want := fmt.Sprintf("Final Team Score: Iron Valley %d - %d North Ridge", result.ScoreA, result.ScoreB)
	if !strings.HasSuffix(result.Log, want) {
		t.Fatalf("log missing final score:\n%s", result.Log)
	}
}

func TestDualScoreMatchesBouts(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		engines := newTestEngines(rng.New(seed))
		a := engines.Generator.ProgramTeam(domain.Program{Name: "A", Prestige: 85, Popularity: 7, Athletics: 7})
		b := engines.Generator.ProgramTeam(domain.Program{Name: "B", Prestige: 70, Popularity: 5, Athletics: 5})
		// open a slot on each side so forfeits are mixed in
		a.Set(domain.Ladder[int(seed)%len(domain.Ladder)], nil)
		b.Set(domain.Ladder[int(seed*3)%len(domain.Ladder)], nil)

		result := engines.Duals.Simulate(a, b, WithStrategy(domain.StrategyAggressive))
		pa, pb := sumPoints(result.Bouts)
		if pa != result.ScoreA || pb != result.ScoreB {
			t.Fatalf("seed %d: score %d-%d, bout points %d-%d", seed, result.ScoreA, result.ScoreB, pa, pb)
		}
	}
}

func TestDualWithLadder(t *testing.T) {
	engines := NewEngines(rng.NewSequence(0.1, 0.9), zerolog.Nop())
	teamA := domain.NewTeam("A", ladderRoster("A"))
	teamB := domain.NewTeam("B", ladderRoster("B"))

	result := engines.Duals.Simulate(teamA, teamB, WithLadder([]domain.WeightClass{285, 125}))
	if len(result.Bouts) != 2 || result.Bouts[0].WeightClass != 285 || result.Bouts[1].WeightClass != 125 {
		t.Fatalf("ladder order not respected: %+v", result.Bouts)
	}
}
