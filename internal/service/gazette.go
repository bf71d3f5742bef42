package service

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"wrestling-coach/internal/domain"
)

const (
	upsetRatingGap     = 50.0
	blowoutMargin      = 15
	clutchMargin       = 3
	individualUpsetGap = 8.0
	maxStories         = 5
)

// DualStories writes the gazette items for a dual from side A's point of
// view. ratingGap is side A's league rating minus side B's before the dual.
func DualStories(result domain.DualResult, outcome domain.Outcome, ratingGap float64, isPostseason bool) []domain.Story {
	var stories []domain.Story
	margin := result.ScoreA - result.ScoreB
	if margin < 0 {
		margin = -margin
	}
	mine, rival := result.TeamA, result.TeamB

	switch {
	case outcome == domain.OutcomeWin && ratingGap < -upsetRatingGap:
		suffix := "."
		if isPostseason {
			suffix = " in postseason action."
		}
		stories = append(stories, domain.Story{
			Kind:       domain.StoryTeamUpset,
			Importance: 100 + math.Abs(ratingGap),
			Headline:   fmt.Sprintf("%s shocks %s", mine, rival),
			Blurb:      fmt.Sprintf("%s toppled a higher-rated %s squad by %d-%d%s", mine, rival, result.ScoreA, result.ScoreB, suffix),
			Tags:       []string{"team", "upset"},
		})
	case outcome == domain.OutcomeLoss && ratingGap > upsetRatingGap:
		suffix := "."
		if isPostseason {
			suffix = " and advance."
		}
		stories = append(stories, domain.Story{
			Kind:       domain.StoryTeamUpset,
			Importance: 90 + math.Abs(ratingGap),
			Headline:   fmt.Sprintf("%s stuns %s", rival, mine),
			Blurb:      fmt.Sprintf("%s capitalized on mistakes to win %d-%d%s", rival, result.ScoreB, result.ScoreA, suffix),
			Tags:       []string{"team", "upset"},
		})
	}

	blowout := margin >= blowoutMargin
	if blowout {
		winner := mine
		if result.ScoreB > result.ScoreA {
			winner = rival
		}
		stories = append(stories, domain.Story{
			Kind:       domain.StoryBlowout,
			Importance: float64(70 + margin),
			Headline:   fmt.Sprintf("%s rolls in blowout", winner),
			Blurb:      fmt.Sprintf("The dual was never in doubt as the margin hit %d points.", margin),
			Tags:       []string{"blowout"},
		})
	} else if margin <= clutchMargin {
		verb := "fell"
		if outcome == domain.OutcomeWin {
			verb = "escaped"
		}
		stories = append(stories, domain.Story{
			Kind:       domain.StoryClutch,
			Importance: 65,
			Headline:   "Decided in the final bouts",
			Blurb:      fmt.Sprintf("%s %s %d-%d after a nail-biter finish.", mine, verb, result.ScoreA, result.ScoreB),
			Tags:       []string{"clutch"},
		})
	}

	for _, bout := range result.Bouts {
		if bout.A == nil || bout.B == nil {
			continue
		}
		winner, loser, side := bout.A, bout.B, "my_team"
		team := mine
		if bout.WinnerSide == domain.SideB {
			winner, loser, side = bout.B, bout.A, "rival"
			team = rival
		}
		wc := strconv.Itoa(int(bout.WeightClass))
		gap := winner.Overall() - loser.Overall()
		switch {
		case gap < -individualUpsetGap:
			stories = append(stories, domain.Story{
				Kind:       domain.StoryIndividualUpset,
				Importance: 55 + math.Abs(gap),
				Headline:   fmt.Sprintf("Upset at %s lbs", wc),
				Blurb:      fmt.Sprintf("%s shocked %s with a %s at %s.", winner.Name, loser.Name, bout.Method, wc),
				Tags:       []string{winner.Name, loser.Name, wc, side},
			})
		case bout.Method == domain.MethodPin || bout.Method == domain.MethodTechFall:
			bonus := 5.0
			if bout.Method == domain.MethodPin {
				bonus = 8
			}
			stories = append(stories, domain.Story{
				Kind:       domain.StoryDominated,
				Importance: 40 + bonus,
				Headline:   fmt.Sprintf("%s dominates at %s", winner.Name, wc),
				Blurb:      fmt.Sprintf("%s earned a %s to give %s bonus points.", winner.Name, bout.Method, team),
				Tags:       []string{winner.Name, wc},
			})
		}
	}

	if len(stories) == 0 {
		verb := "splits with"
		switch outcome {
		case domain.OutcomeWin:
			verb = "edges"
		case domain.OutcomeLoss:
			verb = "falls to"
		}
		stories = append(stories, domain.Story{
			Kind:       domain.StoryDefault,
			Importance: 10,
			Headline:   fmt.Sprintf("%s %s %s", mine, verb, rival),
			Blurb:      fmt.Sprintf("Final score %d-%d.", result.ScoreA, result.ScoreB),
		})
	}

	slices.SortStableFunc(stories, func(a, b domain.Story) int {
		return cmp.Compare(b.Importance, a.Importance)
	})
	if len(stories) > maxStories {
		stories = stories[:maxStories]
	}
	return stories
}
