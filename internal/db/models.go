package db

import (
	"time"
)

type LeagueTeam struct {
	Name       string
	Wins       int64
	Ties       int64
	Losses     int64
	Pf         int64
	Pa         int64
	Rating     float64
	Prestige   int64
	LastResult string
	UpdatedAt  time.Time
}

type DualResult struct {
	ID       string
	Kind     string
	TeamA    string
	TeamB    string
	ScoreA   int64
	ScoreB   int64
	Log      string
	PlayedAt time.Time
}

type DualBout struct {
	DualID      string
	WeightClass int64
	WrestlerA   string
	WrestlerB   string
	WinnerSide  string
	Method      string
	Summary     string
}

type RatingHistory struct {
	ID           string
	DualID       string
	Team         string
	Opponent     string
	RatingBefore float64
	RatingAfter  float64
	CreatedAt    time.Time
}

type SeasonSnapshot struct {
	Program   string
	Payload   string
	UpdatedAt time.Time
}
