package domain

import "math"

type WeightClass int

// Ladder is the ascending order in which duals are contested.
var Ladder = []WeightClass{125, 133, 141, 149, 157, 165, 174, 184, 197, 285}

func (wc WeightClass) Index() int {
	for i, c := range Ladder {
		if c == wc {
			return i
		}
	}
	return -1
}

// Lighter returns the next class down the ladder, if any.
func (wc WeightClass) Lighter() (WeightClass, bool) {
	idx := wc.Index()
	if idx <= 0 {
		return 0, false
	}
	return Ladder[idx-1], true
}

// NearestWeightClass maps an actual scale weight onto the ladder.
func NearestWeightClass(weight int) WeightClass {
	closest := Ladder[0]
	best := math.MaxInt
	for _, wc := range Ladder {
		diff := weight - int(wc)
		if diff < 0 {
			diff = -diff
		}
		if diff < best {
			best = diff
			closest = wc
		}
	}
	return closest
}

type Attribute int

const (
	Neutral Attribute = iota
	Top
	Bottom
	Strength
	Conditioning
	Technique
)

var AllAttributes = []Attribute{Neutral, Top, Bottom, Strength, Conditioning, Technique}

func (a Attribute) String() string {
	switch a {
	case Neutral:
		return "neutral"
	case Top:
		return "top"
	case Bottom:
		return "bottom"
	case Strength:
		return "strength"
	case Conditioning:
		return "conditioning"
	case Technique:
		return "technique"
	default:
		return "unknown"
	}
}

type Attributes struct {
	Neutral      int `json:"neutral" yaml:"neutral"`
	Top          int `json:"top" yaml:"top"`
	Bottom       int `json:"bottom" yaml:"bottom"`
	Strength     int `json:"strength" yaml:"strength"`
	Conditioning int `json:"conditioning" yaml:"conditioning"`
	Technique    int `json:"technique" yaml:"technique"`
}

// Get returns the attribute clamped to [1,99].
func (a Attributes) Get(attr Attribute) int {
	switch attr {
	case Neutral:
		return ClampStat(a.Neutral)
	case Top:
		return ClampStat(a.Top)
	case Bottom:
		return ClampStat(a.Bottom)
	case Strength:
		return ClampStat(a.Strength)
	case Conditioning:
		return ClampStat(a.Conditioning)
	case Technique:
		return ClampStat(a.Technique)
	}
	return 1
}

func (a *Attributes) Set(attr Attribute, v int) {
	v = ClampStat(v)
	switch attr {
	case Neutral:
		a.Neutral = v
	case Top:
		a.Top = v
	case Bottom:
		a.Bottom = v
	case Strength:
		a.Strength = v
	case Conditioning:
		a.Conditioning = v
	case Technique:
		a.Technique = v
	}
}

// Bump adds delta to one attribute, respecting the clamp.
func (a *Attributes) Bump(attr Attribute, delta int) {
	a.Set(attr, a.Get(attr)+delta)
}

// Overall is the weighted skill composite used for seeding and lineup picks.
func (a Attributes) Overall() float64 {
	return float64(a.Get(Neutral))*0.25 +
		float64(a.Get(Top))*0.20 +
		float64(a.Get(Bottom))*0.20 +
		float64(a.Get(Technique))*0.20 +
		float64(a.Get(Strength))*0.10 +
		float64(a.Get(Conditioning))*0.05
}

func (a Attributes) Style() float64 {
	return float64(a.Get(Neutral))*0.30 +
		float64(a.Get(Top))*0.25 +
		float64(a.Get(Bottom))*0.25 +
		float64(a.Get(Technique))*0.25
}

type InjuryKind string

const (
	InjuryMinor    InjuryKind = "minor"
	InjuryModerate InjuryKind = "moderate"
	InjuryMajor    InjuryKind = "major"
)

type Injury struct {
	Kind InjuryKind `json:"kind" yaml:"kind"`
	Days int        `json:"days" yaml:"days"`
}

func (i *Injury) Active() bool {
	return i != nil && i.Days > 0
}

// Penalty is the multiplier applied to a composite score while the injury lasts.
func (i *Injury) Penalty() float64 {
	if !i.Active() {
		return 1
	}
	switch i.Kind {
	case InjuryMajor:
		return 0.6
	case InjuryModerate:
		return 0.8
	default:
		return 0.9
	}
}

const (
	FormMax    = 2
	FormMin    = -2
	FormWindow = 5
)

type Wrestler struct {
	ID          string      `json:"id" yaml:"id"`
	Name        string      `json:"name" yaml:"name"`
	Weight      int         `json:"weight" yaml:"weight"`
	WeightClass WeightClass `json:"weight_class" yaml:"weight_class"`
	Attributes  Attributes  `json:"attributes" yaml:"attributes"`
	Morale      int         `json:"morale" yaml:"morale"`
	Health      int         `json:"health" yaml:"health"`
	Fatigue     int         `json:"fatigue" yaml:"fatigue"`
	Injury      *Injury     `json:"injury,omitempty" yaml:"injury,omitempty"`
	Form        int         `json:"form" yaml:"form"`
	FormDays    int         `json:"form_days" yaml:"form_days"`
	ClassYear   string      `json:"class_year,omitempty" yaml:"class_year,omitempty"`
	Potential   int         `json:"potential" yaml:"potential"`
}

// Clone returns a deep copy so simulations can run without touching the roster.
func (w *Wrestler) Clone() *Wrestler {
	if w == nil {
		return nil
	}
	c := *w
	if w.Injury != nil {
		inj := *w.Injury
		c.Injury = &inj
	}
	return &c
}

func (w *Wrestler) Overall() float64 {
	return w.Attributes.Overall()
}

func (w *Wrestler) MajorlyInjured() bool {
	return w != nil && w.Injury.Active() && w.Injury.Kind == InjuryMajor
}

// RecordWin moves form toward hot and restarts the decay window.
func (w *Wrestler) RecordWin() {
	w.Form = min(FormMax, w.Form+1)
	w.FormDays = FormWindow
}

func (w *Wrestler) RecordLoss() {
	w.Form = max(FormMin, w.Form-1)
	w.FormDays = FormWindow
}

// TickForm counts down the form window and resets form once it expires.
func (w *Wrestler) TickForm() {
	if w.FormDays <= 0 {
		return
	}
	w.FormDays--
	if w.FormDays == 0 {
		w.Form = 0
	}
}

// Normalize fills condition fields that a stored record may have left empty.
func (w *Wrestler) Normalize() {
	if w.Morale == 0 {
		w.Morale = 70
	}
	if w.Health == 0 {
		w.Health = 95
	}
	w.Morale = ClampPercent(w.Morale)
	w.Health = ClampPercent(w.Health)
	w.Fatigue = ClampPercent(w.Fatigue)
	if w.WeightClass == 0 && w.Weight > 0 {
		w.WeightClass = NearestWeightClass(w.Weight)
	}
	for _, attr := range AllAttributes {
		w.Attributes.Set(attr, w.Attributes.Get(attr))
	}
	w.Form = max(FormMin, min(FormMax, w.Form))
}

func ClampStat(v int) int {
	return max(1, min(99, v))
}

func ClampPercent(v int) int {
	return max(0, min(100, v))
}
