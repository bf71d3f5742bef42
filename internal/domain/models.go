package domain

import (
	"time"
)

// DualKind tags where a stored dual came from.
type DualKind string

const (
	KindSimulated  DualKind = "simulated"
	KindLive       DualKind = "live"
	KindPostseason DualKind = "postseason"
)

type BoutRecord struct {
	WeightClass WeightClass `json:"weight_class"`
	WrestlerA   string      `json:"wrestler_a"`
	WrestlerB   string      `json:"wrestler_b"`
	WinnerSide  Side        `json:"winner_side"`
	Method      WinMethod   `json:"method"`
	Summary     string      `json:"summary"`
}

// DualRecord is a committed dual as it is stored, with wrestlers reduced to
// names.
type DualRecord struct {
	ID       string       `json:"id"`
	Kind     DualKind     `json:"kind"`
	TeamA    string       `json:"team_a"`
	TeamB    string       `json:"team_b"`
	ScoreA   int          `json:"score_a"`
	ScoreB   int          `json:"score_b"`
	Log      string       `json:"log"`
	PlayedAt time.Time    `json:"played_at"`
	Bouts    []BoutRecord `json:"bouts,omitempty"`
}

func NewDualRecord(kind DualKind, r DualResult, playedAt time.Time) DualRecord {
	rec := DualRecord{
		Kind:     kind,
		TeamA:    r.TeamA,
		TeamB:    r.TeamB,
		ScoreA:   r.ScoreA,
		ScoreB:   r.ScoreB,
		Log:      r.Log,
		PlayedAt: playedAt,
	}
	for _, b := range r.Bouts {
		br := BoutRecord{
			WeightClass: b.WeightClass,
			WinnerSide:  b.WinnerSide,
			Method:      b.Method,
			Summary:     b.Summary,
		}
		if b.A != nil {
			br.WrestlerA = b.A.Name
		}
		if b.B != nil {
			br.WrestlerB = b.B.Name
		}
		rec.Bouts = append(rec.Bouts, br)
	}
	return rec
}

type RatingHistory struct {
	ID        string    `json:"id"`
	DualID    string    `json:"dual_id"`
	Team      string    `json:"team"`
	Opponent  string    `json:"opponent"`
	Before    float64   `json:"rating_before"`
	After     float64   `json:"rating_after"`
	CreatedAt time.Time `json:"created_at"`
}

type StoryKind string

const (
	StoryTeamUpset       StoryKind = "team_upset"
	StoryBlowout         StoryKind = "blowout"
	StoryClutch          StoryKind = "clutch_match"
	StoryIndividualUpset StoryKind = "individual_upset"
	StoryDominated       StoryKind = "star_dominated"
	StoryDefault         StoryKind = "default"
)

// Story is one gazette item written about a committed dual.
type Story struct {
	Kind       StoryKind `json:"kind"`
	Importance float64   `json:"importance"`
	Headline   string    `json:"headline"`
	Blurb      string    `json:"blurb"`
	Tags       []string  `json:"tags,omitempty"`
}
