package output

import (
	"bytes"
	"path/filepath"
	"testing"
	"wrestling-coach/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func match(round domain.Round, a, b string) domain.TournamentMatch {
	wa := &domain.Wrestler{Name: a}
	wb := &domain.Wrestler{Name: b}
	return domain.TournamentMatch{
		Round: round,
		A:     wa,
		B:     wb,
		Result: domain.MatchResult{
			Winner:     wa,
			Loser:      wb,
			WinnerSide: domain.SideA,
			Method:     domain.MethodDecision,
			Summary:    a + " defeats " + b + " by decision.",
		},
	}
}

func sampleBracket() *domain.TournamentBracket {
	final := match(domain.RoundFinal, "Ace", "Cole")
	wb := domain.WeightBracket{
		WeightClass: 125,
		Quarterfinals: []domain.TournamentMatch{
			match(domain.RoundQuarterfinal, "Ace", "Hal"),
			match(domain.RoundQuarterfinal, "Bo", "Gus"),
			match(domain.RoundQuarterfinal, "Cole", "Fin"),
			match(domain.RoundQuarterfinal, "Dan", "Eli"),
		},
		Semifinals: []domain.TournamentMatch{
			match(domain.RoundSemifinal, "Ace", "Bo"),
			match(domain.RoundSemifinal, "Cole", "Dan"),
		},
		Final:    &final,
		Champion: "Ace",
		RunnerUp: "Cole",
	}
	return &domain.TournamentBracket{
		Weights:  []domain.WeightBracket{wb},
		Placings: []domain.Placing{{WeightClass: 125, Champion: "Ace", RunnerUp: "Cole"}},
	}
}

func sampleTeams() []domain.LeagueTeam {
	return []domain.LeagueTeam{
		{Name: "Iron Valley", Wins: 3, Losses: 1, PF: 100, PA: 60, Rating: 1215.5, Prestige: 88, LastResult: "W"},
		{Name: "Harbor City", Wins: 1, Losses: 3, PF: 60, PA: 100, Rating: 1184.5, Prestige: 70, LastResult: "L"},
	}
}

func TestWriteXLSXSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleTeams(), sampleBracket()); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{"Standings", "125 lbs"}, f.GetSheetList()); diff != "" {
		t.Fatalf("sheets mismatch (-want +got):\n%s", diff)
	}

	got, _ := f.GetCellValue("Standings", "B2")
	if got != "Iron Valley" {
		t.Fatalf("B2 = %q, want Iron Valley", got)
	}
	got, _ = f.GetCellValue("Standings", "I3")
	if got != "-40" {
		t.Fatalf("I3 = %q, want -40", got)
	}

	// header, title, 4 QF + 2 SF + final, blank, champion
	got, _ = f.GetCellValue("125 lbs", "A9")
	if got != string(domain.RoundFinal) {
		t.Fatalf("A9 = %q, want Final", got)
	}
	got, _ = f.GetCellValue("125 lbs", "B11")
	if got != "Ace" {
		t.Fatalf("champion cell = %q, want Ace", got)
	}
}

func TestWriteXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, nil, nil); err != nil {
		t.Fatalf("WriteXLSX: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	if got := f.GetSheetList(); len(got) != 1 || got[0] != "Standings" {
		t.Fatalf("sheets = %v", got)
	}
}

func TestExportXLSXCreatesDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "season.xlsx")
	if err := ExportXLSX(path, sampleTeams(), sampleBracket()); err != nil {
		t.Fatalf("ExportXLSX: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	f.Close()
}

func TestSetRowReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := setRow(f, "Sheet1", 0, "x"); err == nil {
		t.Fatalf("row 0 accepted")
	}
	if err := setRow(f, "Missing", 1, "x"); err == nil {
		t.Fatalf("write to missing sheet accepted")
	}
	if err := setRow(f, "Sheet1", 4, "Champion", "Ace"); err != nil {
		t.Fatalf("setRow: %v", err)
	}
	got, _ := f.GetCellValue("Sheet1", "B4")
	if got != "Ace" {
		t.Fatalf("B4 = %q, want Ace", got)
	}
}

func TestBuildWorkbookRunnerUpRow(t *testing.T) {
	f, err := BuildWorkbook(sampleTeams(), sampleBracket())
	if err != nil {
		t.Fatalf("BuildWorkbook: %v", err)
	}
	defer f.Close()

	got, _ := f.GetCellValue("125 lbs", "A12")
	if got != "Runner-up" {
		t.Fatalf("A12 = %q, want Runner-up", got)
	}
	got, _ = f.GetCellValue("125 lbs", "B12")
	if got != "Cole" {
		t.Fatalf("B12 = %q, want Cole", got)
	}
}
