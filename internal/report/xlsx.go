package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/spigell/talent-match/internal/matching"
)

const (
	SheetSummary = "Summary"
	SheetRanked  = "Ranked Matches"
	SheetGaps    = "Skill Gaps"
)

var rankedHeader = []any{
	"Rank", "Position", "Title", "Entity", "Kind", "Name", "Overall",
	"Skills", "Location", "Experience", "Education", "Work model", "Notes",
}

var gapsHeader = []any{"Position", "Entity", "Matched", "Partially matched", "Missing"}

// WriteXLSX writes a workbook with a summary, the ranked pairs and the
// skill gaps of every pair. A missing .xlsx extension is appended.
func WriteXLSX(path string, r *matching.Ranking) (string, error) {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return "", err
	}
	for _, name := range []string{SheetRanked, SheetGaps} {
		if _, err := f.NewSheet(name); err != nil {
			return "", err
		}
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return "", err
	}

	if err := summarySheet(f, header, r); err != nil {
		return "", fmt.Errorf("summary sheet: %w", err)
	}
	if err := rankedSheet(f, header, r); err != nil {
		return "", fmt.Errorf("ranked sheet: %w", err)
	}
	if err := gapsSheet(f, header, r); err != nil {
		return "", fmt.Errorf("skill gaps sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

func summarySheet(f *excelize.File, header int, r *matching.Ranking) error {
	rows := [][]any{
		{"Talent match report"},
		{"Run ID", r.RunID},
		{"Generated", r.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"Pairs", r.Len()},
		{"Positions", len(r.Positions())},
		{},
		{"Band", "Pairs"},
	}

	var excellent, good, fair, poor int
	total := 0.0
	for _, d := range r.Items {
		total += d.Overall
		switch {
		case d.Overall >= 90:
			excellent++
		case d.Overall >= 70:
			good++
		case d.Overall >= 50:
			fair++
		default:
			poor++
		}
	}
	rows = append(rows,
		[]any{"Excellent (90-100)", excellent},
		[]any{"Good (70-89)", good},
		[]any{"Fair (50-69)", fair},
		[]any{"Poor (<50)", poor},
	)
	if r.Len() > 0 {
		rows = append(rows, []any{}, []any{"Average overall", fmt.Sprintf("%.2f", total/float64(r.Len()))})
	}

	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "A", "A", 25); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetSummary, "B", "B", 40); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSummary, "A1", "B1", header); err != nil {
		return err
	}
	return f.MergeCell(SheetSummary, "A1", "B1")
}

func rankedSheet(f *excelize.File, header int, r *matching.Ranking) error {
	rows := [][]any{rankedHeader}
	for i, d := range r.Items {
		rows = append(rows, []any{
			i + 1, d.PositionID, d.PositionTitle, d.EntityID, string(d.EntityKind), d.EntityName, d.Overall,
			d.Skills.Score, d.Location.Score, d.Experience.Score, d.Education.Score, d.WorkModel.Score,
			strings.Join(d.Notes, "; "),
		})
	}
	if err := writeRows(f, SheetRanked, rows); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(rankedHeader), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetRanked, "A1", last, header)
}

func gapsSheet(f *excelize.File, header int, r *matching.Ranking) error {
	rows := [][]any{gapsHeader}
	for _, d := range r.Items {
		rows = append(rows, []any{
			d.PositionID, d.EntityID,
			strings.Join(d.Skills.Matched, ", "),
			strings.Join(d.Skills.PartiallyMatched, ", "),
			strings.Join(d.Skills.Missing, ", "),
		})
	}
	if err := writeRows(f, SheetGaps, rows); err != nil {
		return err
	}
	return f.SetCellStyle(SheetGaps, "A1", "E1", header)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
