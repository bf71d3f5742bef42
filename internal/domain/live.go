package domain

type LivePhase string

const (
	PhaseIdle     LivePhase = "idle"
	PhaseActive   LivePhase = "active"
	PhaseComplete LivePhase = "complete"
)

type Strategy string

const (
	StrategyBalanced     Strategy = "balanced"
	StrategyAggressive   Strategy = "aggressive"
	StrategyConservative Strategy = "conservative"
)

// Multiplier scales the coached side's composite score.
func (s Strategy) Multiplier() float64 {
	switch s {
	case StrategyAggressive:
		return 1.05
	case StrategyConservative:
		return 0.95
	default:
		return 1
	}
}

func (s Strategy) Valid() bool {
	switch s {
	case StrategyBalanced, StrategyAggressive, StrategyConservative:
		return true
	}
	return false
}

type ModifierKind string

const (
	ModifierPush  ModifierKind = "push"
	ModifierSolid ModifierKind = "solid"
)

const ModifierUses = 2

func (k ModifierKind) Valid() bool {
	return k == ModifierPush || k == ModifierSolid
}

type CoachingModifier struct {
	Kind      ModifierKind `json:"kind"`
	Remaining int          `json:"remaining"`
}

type LiveBout struct {
	WeightClass WeightClass `json:"weight_class"`
	A           *Wrestler   `json:"a,omitempty"`
	B           *Wrestler   `json:"b,omitempty"`
	Result      *BoutResult `json:"result,omitempty"`
}

type LiveDualState struct {
	ID           string             `json:"id"`
	Phase        LivePhase          `json:"phase"`
	MyTeam       *Team              `json:"my_team"`
	Opponent     *Team              `json:"opponent"`
	Bouts        []LiveBout         `json:"bouts"`
	Cursor       int                `json:"cursor"`
	ScoreA       int                `json:"score_a"`
	ScoreB       int                `json:"score_b"`
	Strategy     Strategy           `json:"strategy"`
	Modifiers    []CoachingModifier `json:"modifiers"`
	IsPostseason bool               `json:"is_postseason,omitempty"`
}

func (s *LiveDualState) Done() bool {
	return s.Cursor >= len(s.Bouts)
}

// Current is the slot at the cursor, or nil once every slot is resolved.
func (s *LiveDualState) Current() *LiveBout {
	if s.Done() {
		return nil
	}
	return &s.Bouts[s.Cursor]
}

func (s *LiveDualState) HasModifier(kind ModifierKind) bool {
	for _, m := range s.Modifiers {
		if m.Kind == kind {
			return true
		}
	}
	return false
}

// ExpireModifiers spends one use of every modifier and drops the exhausted ones.
func (s *LiveDualState) ExpireModifiers() {
	kept := s.Modifiers[:0]
	for _, m := range s.Modifiers {
		m.Remaining--
		if m.Remaining > 0 {
			kept = append(kept, m)
		}
	}
	s.Modifiers = kept
}
