package service

import (
	"fmt"
	"math"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/rng"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var firstNames = []string{
	"Logan", "Carter", "Mason", "Hunter", "Cole", "Gavin", "Tyler", "Blake",
	"Chase", "Wyatt", "Brody", "Owen", "Caleb", "Eli", "Jace", "Reid",
}

var lastNames = []string{
	"Miller", "Brooks", "Hayes", "Foster", "Reyes", "Porter", "Keller", "Dunn",
	"Walsh", "Crane", "Parker", "Shaw", "Barrett", "Lowry", "Tate", "Voss",
}

var classYears = []string{"FR", "SO", "JR", "SR"}

// AtLarge is the program template used when a bracket has to be padded.
var AtLarge = domain.Program{Name: "At-Large", Prestige: 75, Popularity: 7, Athletics: 7}

const (
	statVariance     = 8
	opponentVariance = 8
)

type Generator struct {
	rng    rng.Source
	logger zerolog.Logger
}

func NewGenerator(src rng.Source, logger zerolog.Logger) *Generator {
	return &Generator{rng: src, logger: logger}
}

// StatBase biases generated attributes by program strength.
func StatBase(p domain.Program) float64 {
	return 55 +
		float64(p.Prestige-70)*0.35 +
		float64(p.Athletics-5)*1.2 +
		float64(p.Popularity-5)*1.4
}

func (g *Generator) name() string {
	return fmt.Sprintf("%s %s", rng.Pick(g.rng, firstNames), rng.Pick(g.rng, lastNames))
}

func (g *Generator) stat(base float64) int {
	delta := g.rng.IntN(statVariance*2+1) - statVariance
	return domain.ClampStat(int(math.Round(base + float64(delta))))
}

func (g *Generator) Wrestler(p domain.Program, wc domain.WeightClass) *domain.Wrestler {
	base := StatBase(p)
	w := &domain.Wrestler{
		ID:          uuid.NewString(),
		Name:        g.name(),
		Weight:      int(wc) + g.rng.IntN(7) - 3,
		WeightClass: wc,
		ClassYear:   rng.Pick(g.rng, classYears),
		Potential:   domain.ClampStat(int(base) + g.rng.IntN(12) - 6),
	}
	for _, attr := range domain.AllAttributes {
		w.Attributes.Set(attr, g.stat(base))
	}
	return w
}

// TournamentOpponent builds a generic entrant used to fill a bracket.
func (g *Generator) TournamentOpponent(wc domain.WeightClass) *domain.Wrestler {
	w := g.Wrestler(AtLarge, wc)
	w.Morale = 70
	w.Health = 95
	w.Fatigue = 20
	return w
}

// OpponentTeam mirrors base at every fielded slot with fresh, rested
// wrestlers whose attributes swing by up to opponentVariance.
func (g *Generator) OpponentTeam(base *domain.Team, name string) *domain.Team {
	team := &domain.Team{Name: name, Lineup: map[domain.WeightClass]*domain.Wrestler{}}
	for _, wc := range domain.Ladder {
		src := base.At(wc)
		if src == nil {
			continue
		}
		w := src.Clone()
		w.ID = uuid.NewString()
		w.Name = g.name()
		w.Injury = nil
		w.Form = 0
		w.FormDays = 0
		w.Morale = 70
		w.Health = 95
		w.Fatigue = 25
		for _, attr := range domain.AllAttributes {
			w.Attributes.Set(attr, src.Attributes.Get(attr)+rng.Delta(g.rng, opponentVariance))
		}
		team.Set(wc, w)
	}
	g.logger.Debug().Str("team", name).Int("wrestlers", len(team.Lineup)).Msg("opponent team generated")
	return team
}

// ProgramTeam fields one rested wrestler per class, rated by the program's
// strength.
func (g *Generator) ProgramTeam(p domain.Program) *domain.Team {
	team := &domain.Team{Name: p.Name, Lineup: map[domain.WeightClass]*domain.Wrestler{}}
	for _, wc := range domain.Ladder {
		w := g.Wrestler(p, wc)
		w.Morale = 70
		w.Health = 95
		w.Fatigue = 25
		team.Set(wc, w)
	}
	g.logger.Debug().Str("team", p.Name).Float64("stat_base", StatBase(p)).Msg("program team generated")
	return team
}

// Roster recruits perClass wrestlers at every class for p.
func (g *Generator) Roster(p domain.Program, perClass int) []*domain.Wrestler {
	var roster []*domain.Wrestler
	for _, wc := range domain.Ladder {
		for range perClass {
			w := g.Wrestler(p, wc)
			w.Normalize()
			roster = append(roster, w)
		}
	}
	return roster
}
