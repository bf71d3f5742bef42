package catalog

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Programs) < 4 {
		t.Fatalf("expected at least 4 programs for a postseason, got %d", len(c.Programs))
	}
	p, ok := c.Find("Iron Valley")
	if !ok {
		t.Fatalf("Iron Valley missing")
	}
	if p.Prestige != 88 || p.Athletics != 8 {
		t.Fatalf("unexpected program %+v", p)
	}
}

func TestParseRejectsDuplicates(t *testing.T) {
	_, err := Parse([]byte("programs:\n  - name: A\n  - name: A\n"))
	if err == nil || !strings.Contains(err.Error(), "listed twice") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}

func TestParseClampsPrestige(t *testing.T) {
	c, err := Read(strings.NewReader("programs:\n  - name: A\n    prestige: 140\n"))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := c.Programs[0].Prestige; got != 99 {
		t.Fatalf("prestige = %d, want 99", got)
	}
}
