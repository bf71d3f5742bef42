package domain

const (
	DefaultRating   = 1200.0
	DefaultPrestige = 80
)

type Program struct {
	Name       string `json:"name" yaml:"name"`
	Prestige   int    `json:"prestige" yaml:"prestige"`
	Popularity int    `json:"popularity" yaml:"popularity"`
	Athletics  int    `json:"athletics" yaml:"athletics"`
}

type LeagueTeam struct {
	Name       string  `json:"name" yaml:"name"`
	Wins       int     `json:"wins" yaml:"wins"`
	Ties       int     `json:"ties" yaml:"ties"`
	Losses     int     `json:"losses" yaml:"losses"`
	PF         int     `json:"pf" yaml:"pf"`
	PA         int     `json:"pa" yaml:"pa"`
	Rating     float64 `json:"rating" yaml:"rating"`
	Prestige   int     `json:"prestige" yaml:"prestige"`
	LastResult string  `json:"last_result,omitempty" yaml:"last_result,omitempty"`
}

func (t *LeagueTeam) Games() int {
	return t.Wins + t.Losses + t.Ties
}

// WinPct counts ties as games played but not as wins.
func (t *LeagueTeam) WinPct() float64 {
	games := t.Games()
	if games == 0 {
		return 0
	}
	return float64(t.Wins) / float64(games)
}

func (t *LeagueTeam) Differential() int {
	return t.PF - t.PA
}

type League struct {
	Teams []*LeagueTeam `json:"teams" yaml:"teams"`
}

func (l *League) Find(name string) *LeagueTeam {
	for _, t := range l.Teams {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// FindOrAdd returns the record for name, creating a default one when unseen.
func (l *League) FindOrAdd(name string) *LeagueTeam {
	if t := l.Find(name); t != nil {
		return t
	}
	t := &LeagueTeam{Name: name, Rating: DefaultRating, Prestige: DefaultPrestige}
	l.Teams = append(l.Teams, t)
	return t
}

func (l *League) RatingOf(name string) float64 {
	if t := l.Find(name); t != nil {
		return t.Rating
	}
	return DefaultRating
}

type RatingChange struct {
	Team     string  `json:"team"`
	Opponent string  `json:"opponent"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
}

func (c RatingChange) Delta() float64 {
	return c.After - c.Before
}

type PostseasonResult struct {
	Seeds          []string   `json:"seeds" yaml:"seeds"`
	Semifinal1     DualResult `json:"semifinal1" yaml:"semifinal1"`
	Semifinal2     DualResult `json:"semifinal2" yaml:"semifinal2"`
	Final          DualResult `json:"final" yaml:"final"`
	Champion       string     `json:"champion" yaml:"champion"`
	PrestigeBefore int        `json:"prestige_before" yaml:"prestige_before"`
	PrestigeAfter  int        `json:"prestige_after" yaml:"prestige_after"`
	Log            string     `json:"log" yaml:"log"`
}
