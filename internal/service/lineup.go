package service

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

// LineupError names every weight class that could not be filled.
type LineupError struct {
	Missing []domain.WeightClass
}

func (e *LineupError) Error() string {
	parts := make([]string, len(e.Missing))
	for i, wc := range e.Missing {
		parts[i] = fmt.Sprint(int(wc))
	}
	return fmt.Sprintf("lineup incomplete: no healthy starter or bump at %s lbs", strings.Join(parts, ", "))
}

type LineupService struct {
	logger zerolog.Logger
}

func NewLineupService(logger zerolog.Logger) *LineupService {
	return &LineupService{logger: logger}
}

func byOverall(ws []*domain.Wrestler) []*domain.Wrestler {
	out := slices.Clone(ws)
	slices.SortStableFunc(out, func(a, b *domain.Wrestler) int {
		return cmp.Compare(b.Overall(), a.Overall())
	})
	return out
}

func (s *LineupService) best(season *domain.Season, wc domain.WeightClass, used map[string]bool, healthyOnly bool) *domain.Wrestler {
	for _, w := range byOverall(season.InClass(wc)) {
		if used[w.ID] || (healthyOnly && w.MajorlyInjured()) {
			continue
		}
		return w
	}
	return nil
}

// AutoFill selects the best wrestler at every class without a selection and
// returns how many classes were filled.
func (s *LineupService) AutoFill(season *domain.Season) int {
	if season.Lineup == nil {
		season.Lineup = map[domain.WeightClass]string{}
	}
	filled := 0
	for _, wc := range domain.Ladder {
		if season.Starter(wc) != nil {
			continue
		}
		if w := s.best(season, wc, nil, false); w != nil {
			season.Lineup[wc] = w.ID
			filled++
		} else {
			delete(season.Lineup, wc)
		}
	}
	if filled > 0 {
		s.logger.Info().Int("filled", filled).Msg("lineup auto-filled with best available wrestlers")
	}
	return filled
}

// EnsureReady repairs the lineup in place: injured or duplicate picks are
// replaced from the same class, then by a bump from the next lighter class.
// It returns a *LineupError when any class is left without a starter.
func (s *LineupService) EnsureReady(season *domain.Season) error {
	if season.Lineup == nil {
		season.Lineup = map[domain.WeightClass]string{}
	}
	used := map[string]bool{}
	var missing []domain.WeightClass

	for _, wc := range domain.Ladder {
		if chosen := season.Starter(wc); chosen != nil && !chosen.MajorlyInjured() && !used[chosen.ID] {
			used[chosen.ID] = true
			continue
		}

		if same := s.best(season, wc, used, true); same != nil {
			season.Lineup[wc] = same.ID
			used[same.ID] = true
			continue
		}

		if season.AllowBump {
			if lower, ok := wc.Lighter(); ok {
				if bump := s.best(season, lower, used, true); bump != nil {
					season.Lineup[wc] = bump.ID
					used[bump.ID] = true
					s.logger.Debug().Str("wrestler", bump.Name).Int("from", int(lower)).Int("to", int(wc)).Msg("bumped up a class")
					continue
				}
			}
		}

		missing = append(missing, wc)
	}

	if len(missing) > 0 {
		err := &LineupError{Missing: missing}
		s.logger.Warn().Err(err).Msg("lineup not ready")
		return err
	}
	return nil
}

// BuildTeam turns the season's lineup into a Team. Empty selections fall
// back to the best wrestler at the class, or a bump when allowed; majorly
// injured wrestlers never take the mat.
func (s *LineupService) BuildTeam(season *domain.Season, name string) *domain.Team {
	team := &domain.Team{Name: name, Lineup: map[domain.WeightClass]*domain.Wrestler{}}
	used := map[string]bool{}
	for _, wc := range domain.Ladder {
		chosen := season.Starter(wc)
		if chosen != nil && used[chosen.ID] {
			chosen = nil
		}
		if chosen == nil {
			chosen = s.best(season, wc, used, true)
		}
		if chosen == nil && season.AllowBump {
			if lower, ok := wc.Lighter(); ok {
				chosen = s.best(season, lower, used, true)
			}
		}
		if chosen == nil || chosen.MajorlyInjured() {
			continue
		}
		used[chosen.ID] = true
		team.Set(wc, chosen)
	}
	return team
}
