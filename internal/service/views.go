package service

import (
	"wrestling-coach/internal/domain"
)

// Views are detached copies of season state. They share no pointers with
// the season, so callers may read them after the season lock is released.

type LiveBoutView struct {
	WeightClass domain.WeightClass `json:"weight_class"`
	WrestlerA   string             `json:"wrestler_a,omitempty"`
	WrestlerB   string             `json:"wrestler_b,omitempty"`
	Resolved    bool               `json:"resolved"`
	WinnerSide  domain.Side        `json:"winner_side,omitempty"`
	Method      domain.WinMethod   `json:"method,omitempty"`
	Summary     string             `json:"summary,omitempty"`
}

type LiveView struct {
	ID           string                    `json:"id"`
	Phase        domain.LivePhase          `json:"phase"`
	Team         string                    `json:"team"`
	Opponent     string                    `json:"opponent"`
	Cursor       int                       `json:"cursor"`
	ScoreA       int                       `json:"score_a"`
	ScoreB       int                       `json:"score_b"`
	Strategy     domain.Strategy           `json:"strategy"`
	Modifiers    []domain.CoachingModifier `json:"modifiers"`
	Bouts        []LiveBoutView            `json:"bouts"`
	IsPostseason bool                      `json:"is_postseason"`
}

type SeasonView struct {
	Program          domain.Program                `json:"program"`
	Roster           []domain.Wrestler             `json:"roster"`
	Lineup           map[domain.WeightClass]string `json:"lineup"`
	AllowBump        bool                          `json:"allow_bump"`
	Strategy         domain.Strategy               `json:"strategy"`
	Record           domain.Record                 `json:"record"`
	Standings        []domain.LeagueTeam           `json:"standings"`
	Live             *LiveView                     `json:"live,omitempty"`
	PostseasonPlayed bool                          `json:"postseason_played"`
}

// DualOutcome is a committed dual as reported to the caller.
type DualOutcome struct {
	Record        domain.DualRecord     `json:"record"`
	Outcome       domain.Outcome        `json:"outcome"`
	RatingChanges []domain.RatingChange `json:"rating_changes"`
	Stories       []domain.Story        `json:"stories"`
	IsPostseason  bool                  `json:"is_postseason"`
}

type LiveStep struct {
	Bout   LiveBoutView `json:"bout"`
	ScoreA int          `json:"score_a"`
	ScoreB int          `json:"score_b"`
	Final  *DualOutcome `json:"final,omitempty"`
}

type StandingsView struct {
	Teams   []domain.LeagueTeam    `json:"teams"`
	Recent  []domain.DualRecord    `json:"recent"`
	History []domain.RatingHistory `json:"history"`
}

func wrestlerName(w *domain.Wrestler) string {
	if w == nil {
		return ""
	}
	return w.Name
}

func newLiveBoutView(b domain.LiveBout) LiveBoutView {
	v := LiveBoutView{WeightClass: b.WeightClass, WrestlerA: wrestlerName(b.A), WrestlerB: wrestlerName(b.B)}
	if b.Result != nil {
		v.Resolved = true
		v.WinnerSide = b.Result.WinnerSide
		v.Method = b.Result.Method
		v.Summary = b.Result.Summary
	}
	return v
}

func newLiveView(state *domain.LiveDualState) *LiveView {
	if state == nil {
		return nil
	}
	v := &LiveView{
		ID:           state.ID,
		Phase:        state.Phase,
		Cursor:       state.Cursor,
		ScoreA:       state.ScoreA,
		ScoreB:       state.ScoreB,
		Strategy:     state.Strategy,
		Modifiers:    append([]domain.CoachingModifier{}, state.Modifiers...),
		IsPostseason: state.IsPostseason,
	}
	if state.MyTeam != nil {
		v.Team = state.MyTeam.Name
	}
	if state.Opponent != nil {
		v.Opponent = state.Opponent.Name
	}
	for _, b := range state.Bouts {
		v.Bouts = append(v.Bouts, newLiveBoutView(b))
	}
	return v
}

func standings(league domain.League) []domain.LeagueTeam {
	sorted := SortLeagueTeams(league.Teams)
	out := make([]domain.LeagueTeam, len(sorted))
	for i, t := range sorted {
		out[i] = *t
	}
	return out
}

func newSeasonView(s *domain.Season) *SeasonView {
	v := &SeasonView{
		Program:          s.Program,
		Lineup:           make(map[domain.WeightClass]string, len(s.Lineup)),
		AllowBump:        s.AllowBump,
		Strategy:         s.Strategy,
		Record:           s.Record,
		Standings:        standings(s.League),
		Live:             newLiveView(s.Live),
		PostseasonPlayed: s.PostseasonPlayed,
	}
	for _, w := range s.Roster {
		v.Roster = append(v.Roster, *w.Clone())
	}
	for wc, id := range s.Lineup {
		v.Lineup[wc] = id
	}
	return v
}
