package rosterfile

import (
	"bytes"
	"strings"
	"testing"
	"wrestling-coach/internal/domain"
)

const sample = `name: Iron Valley
wrestlers:
  - name: Sam Reyes
    weight: 127
    attributes:
      neutral: 70
      top: 65
      bottom: 60
      strength: 55
      conditioning: 75
      technique: 68
  - name: Eli Dunn
    weight_class: 133
    morale: 80
`

func TestRead(t *testing.T) {
	f, err := Read(strings.NewReader(sample))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(f.Wrestlers) != 2 {
		t.Fatalf("wrestlers = %d, want 2", len(f.Wrestlers))
	}
	sam := f.Wrestlers[0]
	if sam.WeightClass != 125 {
		t.Fatalf("weight class = %d, want 125", sam.WeightClass)
	}
	if sam.ID == "" {
		t.Fatalf("id not assigned")
	}
	if sam.Morale != 70 || sam.Health != 95 {
		t.Fatalf("condition defaults not applied: morale=%d health=%d", sam.Morale, sam.Health)
	}
	if f.Wrestlers[1].Morale != 80 {
		t.Fatalf("explicit morale overwritten")
	}

	team := f.Team("fallback")
	if team.Name != "Iron Valley" || team.At(133) == nil || team.At(141) != nil {
		t.Fatalf("unexpected team %+v", team)
	}
}

func TestReadRejects(t *testing.T) {
	cases := map[string]string{
		"unknown field": "name: x\ncoach: y\n",
		"no name":       "wrestlers:\n  - weight: 130\n",
		"no weight":     "wrestlers:\n  - name: A\n",
		"bad class":     "wrestlers:\n  - name: A\n    weight_class: 130\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestEncodeIndent(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, domain.Placing{WeightClass: 125, Champion: "A", RunnerUp: "B"})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	want := "weight_class: 125\nchampion: A\nrunner_up: B\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}
