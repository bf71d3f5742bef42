package domain

import "testing"

func TestTeamPoints(t *testing.T) {
	want := map[WinMethod]int{
		MethodPin:      6,
		MethodForfeit:  6,
		MethodTechFall: 5,
		MethodMajor:    4,
		MethodDecision: 3,
	}
	for m, pts := range want {
		if got := m.TeamPoints(); got != pts {
			t.Fatalf("%s awards %d, want %d", m, got, pts)
		}
	}
}

func TestNewTeamFirstWins(t *testing.T) {
	a := &Wrestler{Name: "A", WeightClass: 125}
	b := &Wrestler{Name: "B", WeightClass: 125}
	c := &Wrestler{Name: "C", WeightClass: 285}
	team := NewTeam("T", []*Wrestler{a, b, nil, c})
	if team.At(125) != a {
		t.Fatalf("first wrestler listed should hold 125")
	}
	members := team.Members()
	if len(members) != 2 || members[1] != c {
		t.Fatalf("unexpected members %v", members)
	}
	team.Set(125, nil)
	if team.At(125) != nil {
		t.Fatalf("Set nil should open the slot")
	}
}

func TestOutcomeFor(t *testing.T) {
	cases := []struct {
		a, b int
		want Outcome
	}{
		{20, 10, OutcomeWin},
		{10, 20, OutcomeLoss},
		{15, 15, OutcomeTie},
	}
	for _, c := range cases {
		if got := (DualResult{ScoreA: c.a, ScoreB: c.b}).OutcomeFor(); got != c.want {
			t.Fatalf("%d-%d: got %s, want %s", c.a, c.b, got, c.want)
		}
	}
}

func TestLiveExpireModifiers(t *testing.T) {
	s := &LiveDualState{Modifiers: []CoachingModifier{
		{Kind: ModifierPush, Remaining: 2},
		{Kind: ModifierSolid, Remaining: 1},
	}}
	s.ExpireModifiers()
	if len(s.Modifiers) != 1 || s.Modifiers[0].Kind != ModifierPush || s.Modifiers[0].Remaining != 1 {
		t.Fatalf("unexpected modifiers %+v", s.Modifiers)
	}
	s.ExpireModifiers()
	if len(s.Modifiers) != 0 {
		t.Fatalf("modifiers should be exhausted, got %+v", s.Modifiers)
	}
}

func TestLeagueTeamWinPct(t *testing.T) {
	lt := &LeagueTeam{Wins: 2, Losses: 1, Ties: 1}
	if lt.WinPct() != 0.5 {
		t.Fatalf("win pct = %v, want 0.5", lt.WinPct())
	}
	if (&LeagueTeam{}).WinPct() != 0 {
		t.Fatalf("no games should be 0")
	}
}
