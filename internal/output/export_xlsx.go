package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"wrestling-coach/internal/domain"

	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

func bracketSheet(wc domain.WeightClass) string {
	return fmt.Sprintf("%d lbs", wc)
}

func setRow(f *excelize.File, sheet string, row int, values ...any) error {
	for i, v := range values {
		name, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, name, v); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, name, err)
		}
	}
	return nil
}

// BuildWorkbook lays out standings on the first sheet and one sheet per
// bracketed weight class. Either input may be empty.
func BuildWorkbook(teams []domain.LeagueTeam, bracket *domain.TournamentBracket) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", standingsSheet); err != nil {
		return nil, err
	}

	headerStyleID, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	pctStyleID, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	if err != nil {
		return nil, err
	}

	headers := []any{"Rank", "Team", "W", "L", "T", "Win %", "PF", "PA", "Diff", "Rating", "Prestige", "Last"}
	if err := setRow(f, standingsSheet, 1, headers...); err != nil {
		return nil, err
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(standingsSheet, "A1", lastHeader, headerStyleID); err != nil {
		return nil, err
	}
	for i, t := range teams {
		row := i + 2
		err := setRow(f, standingsSheet, row,
			i+1, t.Name, t.Wins, t.Losses, t.Ties, t.WinPct(),
			t.PF, t.PA, t.Differential(), fmt.Sprintf("%.1f", t.Rating), t.Prestige, t.LastResult)
		if err != nil {
			return nil, err
		}
	}
	if len(teams) > 0 {
		if err := f.SetCellStyle(standingsSheet, "F2", fmt.Sprintf("F%d", len(teams)+1), pctStyleID); err != nil {
			return nil, err
		}
	}

	if bracket != nil {
		for _, wb := range bracket.Weights {
			if err := writeBracket(f, wb, headerStyleID); err != nil {
				return nil, err
			}
		}
	}

	if idx, err := f.GetSheetIndex(standingsSheet); err == nil {
		f.SetActiveSheet(idx)
	}
	return f, nil
}

func writeBracket(f *excelize.File, wb domain.WeightBracket, headerStyleID int) error {
	sheet := bracketSheet(wb.WeightClass)
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	if err := f.SetCellValue(sheet, "A1", fmt.Sprintf("%d lbs bracket", wb.WeightClass)); err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", "F1"); err != nil {
		return err
	}
	if err := setRow(f, sheet, 2, "Round", "Wrestler A", "Wrestler B", "Winner", "Method", "Summary"); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", "F2", headerStyleID); err != nil {
		return err
	}

	matches := append(append([]domain.TournamentMatch{}, wb.Quarterfinals...), wb.Semifinals...)
	if wb.Final != nil {
		matches = append(matches, *wb.Final)
	}
	row := 3
	for _, m := range matches {
		winner := ""
		if m.Result.Winner != nil {
			winner = m.Result.Winner.Name
		}
		if err := setRow(f, sheet, row, string(m.Round), m.A.Name, m.B.Name, winner, string(m.Result.Method), m.Result.Summary); err != nil {
			return err
		}
		row++
	}

	row++
	if err := setRow(f, sheet, row, "Champion", wb.Champion); err != nil {
		return err
	}
	if err := setRow(f, sheet, row+1, "Runner-up", wb.RunnerUp); err != nil {
		return err
	}

	return f.SetColWidth(sheet, "B", "D", 22)
}

func WriteXLSX(w io.Writer, teams []domain.LeagueTeam, bracket *domain.TournamentBracket) error {
	f, err := BuildWorkbook(teams, bracket)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// ExportXLSX writes the workbook to path, creating parent directories.
func ExportXLSX(path string, teams []domain.LeagueTeam, bracket *domain.TournamentBracket) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := BuildWorkbook(teams, bracket)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
