package service

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"wrestling-coach/internal/domain"

	"github.com/rs/zerolog"
)

const (
	eloK          = 20.0
	postseasonFor = 4
)

var ErrNotEnoughTeams = errors.New("not enough teams for postseason")

type LeagueService struct {
	duals     *DualMeetEngine
	generator *Generator
	lineup    *LineupService
	logger    zerolog.Logger
}

func NewLeagueService(duals *DualMeetEngine, generator *Generator, lineup *LineupService, logger zerolog.Logger) *LeagueService {
	return &LeagueService{duals: duals, generator: generator, lineup: lineup, logger: logger}
}

// ExpectedScore is the Elo win expectancy of a rating against an opponent.
func ExpectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/400))
}

// Update records a dual between two programs and moves both ratings. The
// rating sum of the pair is unchanged.
func (s *LeagueService) Update(league *domain.League, nameA, nameB string, scoreA, scoreB int) []domain.RatingChange {
	a := league.FindOrAdd(nameA)
	b := league.FindOrAdd(nameB)

	a.PF += scoreA
	a.PA += scoreB
	b.PF += scoreB
	b.PA += scoreA

	var actualA float64
	switch {
	case scoreA > scoreB:
		a.Wins++
		b.Losses++
		a.LastResult, b.LastResult = "W", "L"
		actualA = 1
	case scoreB > scoreA:
		b.Wins++
		a.Losses++
		a.LastResult, b.LastResult = "L", "W"
		actualA = 0
	default:
		a.Ties++
		b.Ties++
		a.LastResult, b.LastResult = "T", "T"
		actualA = 0.5
	}

	beforeA, beforeB := a.Rating, b.Rating
	expectedA := ExpectedScore(beforeA, beforeB)
	delta := eloK * (actualA - expectedA)
	a.Rating = beforeA + delta
	b.Rating = beforeB - delta

	s.logger.Debug().
		Str("team_a", nameA).
		Str("team_b", nameB).
		Float64("expected_a", expectedA).
		Float64("delta", delta).
		Msg("league updated")

	return []domain.RatingChange{
		{Team: nameA, Opponent: nameB, Before: beforeA, After: a.Rating},
		{Team: nameB, Opponent: nameA, Before: beforeB, After: b.Rating},
	}
}

// SortLeagueTeams ranks by win percentage, then point differential, then
// rating, all descending. Postseason seeding depends on this exact order.
func SortLeagueTeams(teams []*domain.LeagueTeam) []*domain.LeagueTeam {
	out := slices.Clone(teams)
	slices.SortStableFunc(out, func(a, b *domain.LeagueTeam) int {
		if wa, wb := a.WinPct(), b.WinPct(); wa != wb {
			if wa > wb {
				return -1
			}
			return 1
		}
		if da, db := a.Differential(), b.Differential(); da != db {
			return db - da
		}
		switch {
		case a.Rating > b.Rating:
			return -1
		case a.Rating < b.Rating:
			return 1
		}
		return 0
	})
	return out
}

// Reset starts a new season: every catalog program returns with a clean
// record and a rating derived from its prestige. The acting program keeps
// the prestige it earned.
func (s *LeagueService) Reset(season *domain.Season, programs []domain.Program) {
	season.League = domain.League{}
	for _, p := range programs {
		if p.Name == season.Program.Name {
			p = season.Program
		}
		season.League.Teams = append(season.League.Teams, &domain.LeagueTeam{
			Name:     p.Name,
			Rating:   float64(p.Prestige * 10),
			Prestige: p.Prestige,
		})
	}
	if season.League.Find(season.Program.Name) == nil && season.Program.Name != "" {
		season.League.Teams = append(season.League.Teams, &domain.LeagueTeam{
			Name:     season.Program.Name,
			Rating:   float64(season.Program.Prestige * 10),
			Prestige: season.Program.Prestige,
		})
	}
	season.Record = domain.Record{}
	season.PostseasonPlayed = false
	season.Live = nil
	s.logger.Info().Int("teams", len(season.League.Teams)).Msg("league reset for new season")
}

func (s *LeagueService) representative(season *domain.Season, name string) *domain.Team {
	return s.generator.OpponentTeam(s.lineup.BuildTeam(season, name), name)
}

// RunPostseason plays a four-team playoff among the top seeds and adjusts the
// acting program's prestige once.
func (s *LeagueService) RunPostseason(season *domain.Season) (*domain.PostseasonResult, error) {
	sorted := SortLeagueTeams(season.League.Teams)
	if len(sorted) < postseasonFor {
		s.logger.Warn().Int("teams", len(sorted)).Msg("not enough teams for postseason")
		return nil, ErrNotEnoughTeams
	}
	seeds := sorted[:postseasonFor]

	team1 := s.representative(season, seeds[0].Name)
	team4 := s.representative(season, seeds[3].Name)
	semi1 := s.duals.Simulate(team1, team4)

	team2 := s.representative(season, seeds[1].Name)
	team3 := s.representative(season, seeds[2].Name)
	semi2 := s.duals.Simulate(team2, team3)

	finalistA, finalistB := team1, team2
	if semi1.ScoreB > semi1.ScoreA {
		finalistA = team4
	}
	if semi2.ScoreB > semi2.ScoreA {
		finalistB = team3
	}
	final := s.duals.Simulate(finalistA, finalistB)
	champion := finalistA
	if final.ScoreB > final.ScoreA {
		champion = finalistB
	}

	result := &domain.PostseasonResult{
		Seeds:          []string{seeds[0].Name, seeds[1].Name, seeds[2].Name, seeds[3].Name},
		Semifinal1:     semi1,
		Semifinal2:     semi2,
		Final:          final,
		Champion:       champion.Name,
		PrestigeBefore: season.Program.Prestige,
		Log: fmt.Sprintf("Semis: %s %d-%d %s | %s %d-%d %s\nFinal: %s %d-%d %s\nChampion: %s",
			team1.Name, semi1.ScoreA, semi1.ScoreB, team4.Name,
			team2.Name, semi2.ScoreA, semi2.ScoreB, team3.Name,
			finalistA.Name, final.ScoreA, final.ScoreB, finalistB.Name,
			champion.Name),
	}
	s.applyPrestige(season, champion.Name)
	result.PrestigeAfter = season.Program.Prestige
	season.PostseasonPlayed = true

	s.logger.Info().
		Strs("seeds", result.Seeds).
		Str("champion", result.Champion).
		Int("prestige_before", result.PrestigeBefore).
		Int("prestige_after", result.PrestigeAfter).
		Msg("postseason complete")
	return result, nil
}

func (s *LeagueService) applyPrestige(season *domain.Season, champion string) {
	mine := season.League.Find(season.Program.Name)
	if mine == nil {
		return
	}
	delta := 0
	switch pct := mine.WinPct(); {
	case mine.Name == champion:
		delta = 3
	case pct >= 0.6:
		delta = 1
	case pct < 0.3:
		delta = -2
	}
	season.Program.Prestige = domain.ClampStat(season.Program.Prestige + delta)
	mine.Prestige = season.Program.Prestige
}
