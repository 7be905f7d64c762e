package output

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const (
	sheetSummary = "Summary"
	sheetGlaze   = "Glaze"
	sheetOther   = "Other materials"
)

// XLSXFormatter renders a workbook with summary, glaze and other-materials sheets
type XLSXFormatter struct{}

// Format returns FormatXLSX
func (f *XLSXFormatter) Format() Format { return FormatXLSX }

// Render writes the workbook to w
func (f *XLSXFormatter) Render(w io.Writer, r *Report) error {
	if err := r.validate(); err != nil {
		return err
	}
	book := excelize.NewFile()
	defer book.Close()

	if err := book.SetSheetName(book.GetSheetName(0), sheetSummary); err != nil {
		return fmt.Errorf("set sheet name: %w", err)
	}
	for _, name := range []string{sheetGlaze, sheetOther} {
		if _, err := book.NewSheet(name); err != nil {
			return fmt.Errorf("new sheet %s: %w", name, err)
		}
	}

	header, err := book.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	sw := &sheetWriter{book: book, header: header}
	sw.summary(r)
	sw.glaze(r)
	sw.other(r)
	if sw.err != nil {
		return sw.err
	}

	if err := book.Write(w); err != nil {
		return fmt.Errorf("write excel: %w", err)
	}
	return nil
}

// sheetWriter keeps the first cell error so callers check once
type sheetWriter struct {
	book   *excelize.File
	header int
	err    error
}

func (s *sheetWriter) row(sheet string, row int, values ...interface{}) {
	if s.err != nil {
		return
	}
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			s.err = err
			return
		}
		if str, ok := v.(string); ok {
			v = sanitizeExcelCell(str)
		}
		if err := s.book.SetCellValue(sheet, cell, v); err != nil {
			s.err = fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			return
		}
	}
}

func (s *sheetWriter) headerRow(sheet string, row int, titles ...interface{}) {
	s.row(sheet, row, titles...)
	if s.err != nil {
		return
	}
	first, _ := excelize.CoordinatesToCellName(1, row)
	last, _ := excelize.CoordinatesToCellName(len(titles), row)
	if err := s.book.SetCellStyle(sheet, first, last, s.header); err != nil {
		s.err = err
		return
	}
	endCol, _ := excelize.ColumnNumberToName(len(titles))
	if err := s.book.SetColWidth(sheet, "A", endCol, 18); err != nil {
		s.err = err
	}
}

func (s *sheetWriter) summary(r *Report) {
	est := r.Estimate
	s.headerRow(sheetSummary, 1, "Component", "Per piece")
	row := 2
	for _, l := range est.Breakdown.Lines() {
		s.row(sheetSummary, row, l.Label, l.Amount)
		row++
	}
	s.row(sheetSummary, row, "Total cost", est.Breakdown.Total)
	row += 2

	prices := est.Breakdown.Prices
	s.row(sheetSummary, row, "Wholesale", r.price(prices.Wholesale))
	s.row(sheetSummary, row+1, "Retail", r.price(prices.Retail))
	s.row(sheetSummary, row+2, "Distributor", r.price(prices.Distributor))
	row += 4

	for _, caption := range []string{r.FuelCaption, r.GlazeCaption, r.ClayCaption} {
		s.row(sheetSummary, row, caption)
		row++
	}
	for _, a := range est.Warnings {
		s.row(sheetSummary, row, a.String())
		row++
	}
}

func (s *sheetWriter) glaze(r *Report) {
	g := r.Estimate.Glaze
	if g.PieceTable != nil {
		s.headerRow(sheetGlaze, 1, "Material", "Cost_per_lb", "Grams_per_piece", "Cost_per_piece")
		for i, row := range g.PieceTable.Rows {
			s.row(sheetGlaze, i+2, row.Material, row.CostPerLb, row.GramsPerPiece, row.CostPerPiece)
		}
		s.row(sheetGlaze, len(g.PieceTable.Rows)+2, "Total", "", "", g.CostPerPiece)
		return
	}

	s.headerRow(sheetGlaze, 1, "Material", "Percent", "Grams", "Ounces", "Pounds", "Cost")
	if g.Recipe == nil {
		return
	}
	for i, row := range g.Recipe.Rows {
		s.row(sheetGlaze, i+2, row.Material, row.Percent, row.Grams, row.Ounces, row.Pounds, row.Cost)
	}
	s.row(sheetGlaze, len(g.Recipe.Rows)+2, "Total", "", g.Recipe.GramsPerPiece, "", "", g.CostPerPiece)
}

func (s *sheetWriter) other(r *Report) {
	o := r.Estimate.Other
	s.headerRow(sheetOther, 1, "Item", "Unit", "Cost_per_unit", "Quantity_for_project", "Line_total", "Cost_per_piece")
	for i, row := range o.Rows {
		s.row(sheetOther, i+2, row.Item, row.Unit, row.CostPerUnit, row.QuantityForProject, row.LineTotal, row.CostPerPiece)
	}
	s.row(sheetOther, len(o.Rows)+2, "Project total", "", "", "", o.ProjectTotal, o.CostPerPiece)
}

// sanitizeExcelCell prefixes cells that Excel would read as formulas
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
