package domain

// Team fields at most one wrestler per weight class. A wrestler may sit in a
// heavier slot than their own class when bumped up.
type Team struct {
	Name   string                    `json:"name" yaml:"name"`
	Lineup map[WeightClass]*Wrestler `json:"lineup" yaml:"lineup"`
}

// NewTeam slots each wrestler at their own class; the first one listed wins a class.
func NewTeam(name string, wrestlers []*Wrestler) *Team {
	t := &Team{Name: name, Lineup: map[WeightClass]*Wrestler{}}
	for _, w := range wrestlers {
		if w == nil || t.At(w.WeightClass) != nil {
			continue
		}
		t.Set(w.WeightClass, w)
	}
	return t
}

// At returns the wrestler fielded at a weight class, or nil for an open slot.
func (t *Team) At(wc WeightClass) *Wrestler {
	if t == nil || t.Lineup == nil {
		return nil
	}
	return t.Lineup[wc]
}

func (t *Team) Set(wc WeightClass, w *Wrestler) {
	if t.Lineup == nil {
		t.Lineup = map[WeightClass]*Wrestler{}
	}
	if w == nil {
		delete(t.Lineup, wc)
		return
	}
	t.Lineup[wc] = w
}

// Members lists the fielded wrestlers in ladder order.
func (t *Team) Members() []*Wrestler {
	var out []*Wrestler
	for _, wc := range Ladder {
		if w := t.At(wc); w != nil {
			out = append(out, w)
		}
	}
	return out
}

type Side string

const (
	SideA    Side = "A"
	SideB    Side = "B"
	SideNone Side = "none"
)

type WinMethod string

const (
	MethodDecision WinMethod = "decision"
	MethodMajor    WinMethod = "major"
	MethodTechFall WinMethod = "tech fall"
	MethodPin      WinMethod = "pin"
	MethodForfeit  WinMethod = "forfeit"
)

// TeamPoints is the dual-meet value of a win by this method.
func (m WinMethod) TeamPoints() int {
	switch m {
	case MethodPin, MethodForfeit:
		return 6
	case MethodTechFall:
		return 5
	case MethodMajor:
		return 4
	default:
		return 3
	}
}

// Rank orders the bonus methods by the margin they require.
func (m WinMethod) Rank() int {
	switch m {
	case MethodDecision:
		return 0
	case MethodMajor:
		return 1
	case MethodTechFall:
		return 2
	case MethodPin:
		return 3
	default:
		return -1
	}
}

type MatchResult struct {
	Winner     *Wrestler `json:"winner" yaml:"-"`
	Loser      *Wrestler `json:"loser" yaml:"-"`
	WinnerSide Side      `json:"winner_side" yaml:"winner_side"`
	Method     WinMethod `json:"method" yaml:"method"`
	Margin     float64   `json:"margin" yaml:"margin"`
	Summary    string    `json:"summary" yaml:"summary"`
}

type BoutResult struct {
	WeightClass WeightClass `json:"weight_class" yaml:"weight_class"`
	A           *Wrestler   `json:"a,omitempty" yaml:"a,omitempty"`
	B           *Wrestler   `json:"b,omitempty" yaml:"b,omitempty"`
	WinnerSide  Side        `json:"winner_side" yaml:"winner_side"`
	Method      WinMethod   `json:"method" yaml:"method"`
	Summary     string      `json:"summary" yaml:"summary"`
}

// Points returns the team points awarded to each side for this bout.
func (b BoutResult) Points() (a, bPts int) {
	switch b.WinnerSide {
	case SideA:
		return b.Method.TeamPoints(), 0
	case SideB:
		return 0, b.Method.TeamPoints()
	}
	return 0, 0
}

type DualResult struct {
	TeamA  string       `json:"team_a" yaml:"team_a"`
	TeamB  string       `json:"team_b" yaml:"team_b"`
	ScoreA int          `json:"score_a" yaml:"score_a"`
	ScoreB int          `json:"score_b" yaml:"score_b"`
	Bouts  []BoutResult `json:"bouts" yaml:"bouts"`
	Log    string       `json:"log" yaml:"log"`
}

type Outcome string

const (
	OutcomeWin  Outcome = "WIN"
	OutcomeLoss Outcome = "LOSS"
	OutcomeTie  Outcome = "TIE"
)

// OutcomeFor reads the result from side A's point of view.
func (d DualResult) OutcomeFor() Outcome {
	switch {
	case d.ScoreA > d.ScoreB:
		return OutcomeWin
	case d.ScoreA < d.ScoreB:
		return OutcomeLoss
	default:
		return OutcomeTie
	}
}

type Round string

const (
	RoundQuarterfinal Round = "Quarterfinal"
	RoundSemifinal    Round = "Semifinal"
	RoundFinal        Round = "Final"
)

type TournamentMatch struct {
	Round  Round       `json:"round" yaml:"round"`
	A      *Wrestler   `json:"a" yaml:"a"`
	B      *Wrestler   `json:"b" yaml:"b"`
	Result MatchResult `json:"result" yaml:"result"`
}

type WeightBracket struct {
	WeightClass   WeightClass       `json:"weight_class" yaml:"weight_class"`
	Quarterfinals []TournamentMatch `json:"quarterfinals" yaml:"quarterfinals"`
	Semifinals    []TournamentMatch `json:"semifinals" yaml:"semifinals"`
	Final         *TournamentMatch  `json:"final" yaml:"final"`
	Champion      string            `json:"champion" yaml:"champion"`
	RunnerUp      string            `json:"runner_up" yaml:"runner_up"`
}

type Placing struct {
	WeightClass WeightClass `json:"weight_class" yaml:"weight_class"`
	Champion    string      `json:"champion" yaml:"champion"`
	RunnerUp    string      `json:"runner_up" yaml:"runner_up"`
}

type TournamentBracket struct {
	Weights  []WeightBracket `json:"weights" yaml:"weights"`
	Placings []Placing       `json:"placings" yaml:"placings"`
}
