package service

import (
	"fmt"
	"wrestling-coach/internal/domain"
	"wrestling-coach/internal/rng"

	"github.com/rs/zerolog"
)

// profile returns a rested, healthy wrestler with every attribute at 60.
func profile(name string, wc domain.WeightClass) *domain.Wrestler {
	return &domain.Wrestler{
		ID:          name,
		Name:        name,
		Weight:      int(wc),
		WeightClass: wc,
		Attributes: domain.Attributes{
			Neutral: 60, Top: 60, Bottom: 60, Strength: 60, Conditioning: 60, Technique: 60,
		},
		Morale:  70,
		Health:  100,
		Fatigue: 20,
	}
}

// ladderRoster fields one profile at every ladder class except skip.
func ladderRoster(prefix string, skip ...domain.WeightClass) []*domain.Wrestler {
	skipped := map[domain.WeightClass]bool{}
	for _, wc := range skip {
		skipped[wc] = true
	}
	var out []*domain.Wrestler
	for _, wc := range domain.Ladder {
		if skipped[wc] {
			continue
		}
		out = append(out, profile(fmt.Sprintf("%s %d", prefix, wc), wc))
	}
	return out
}

func newTestEngines(src rng.Source) *Engines {
	return NewEngines(src, zerolog.Nop())
}
