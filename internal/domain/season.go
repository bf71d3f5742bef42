package domain

type Record struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func (r *Record) Add(o Outcome) {
	switch o {
	case OutcomeWin:
		r.Wins++
	case OutcomeLoss:
		r.Losses++
	default:
		r.Ties++
	}
}

// Season is the context every engine entry point reads and mutates. It owns
// nothing global: two seasons can be simulated side by side.
type Season struct {
	Program          Program                `json:"program"`
	Roster           []*Wrestler            `json:"roster"`
	Lineup           map[WeightClass]string `json:"lineup"`
	AllowBump        bool                   `json:"allow_bump"`
	Strategy         Strategy               `json:"strategy"`
	League           League                 `json:"league"`
	Live             *LiveDualState         `json:"live,omitempty"`
	Record           Record                 `json:"record"`
	PostseasonPlayed bool                   `json:"postseason_played"`
}

func NewSeason(program Program) *Season {
	return &Season{
		Program:   program,
		Lineup:    map[WeightClass]string{},
		AllowBump: true,
		Strategy:  StrategyBalanced,
	}
}

func (s *Season) FindWrestler(id string) *Wrestler {
	if id == "" {
		return nil
	}
	for _, w := range s.Roster {
		if w.ID == id {
			return w
		}
	}
	return nil
}

// Starter resolves the lineup selection at a weight class.
func (s *Season) Starter(wc WeightClass) *Wrestler {
	if s.Lineup == nil {
		return nil
	}
	return s.FindWrestler(s.Lineup[wc])
}

func (s *Season) InClass(wc WeightClass) []*Wrestler {
	var out []*Wrestler
	for _, w := range s.Roster {
		if w.WeightClass == wc {
			out = append(out, w)
		}
	}
	return out
}

func (s *Season) LivePhase() LivePhase {
	if s.Live == nil {
		return PhaseIdle
	}
	return s.Live.Phase
}
