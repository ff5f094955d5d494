package analysis

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// significance stars: *** p<0.01, ** p<0.05, * p<0.10.
func stars(p float64) string {
	switch {
	case p < 0.01:
		return "***"
	case p < 0.05:
		return "**"
	case p < 0.10:
		return "*"
	default:
		return ""
	}
}

func fmtTerm(m *Model, name string) string {
	t, ok := m.Term(name)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%.2f%s (%.2f)", t.Coef, stars(t.P), t.SE)
}

func yesIf(b bool) string {
	if b {
		return "Yes"
	}
	return ""
}

// SummaryTable renders the paper-style regression table for the five
// nested models as CSV: coefficient rows for the constant, the public
// school indicator and the hit count, Yes/blank rows for the dummy
// control blocks, then R² and N.
func SummaryTable(models []*Model) ([]byte, error) {
	header := []string{""}
	for i := range models {
		header = append(header, fmt.Sprintf("(%d)", i+1))
	}

	rows := [][]string{header}
	addRow := func(label string, cell func(*Model) string) {
		row := []string{label}
		for _, m := range models {
			row = append(row, cell(m))
		}
		rows = append(rows, row)
	}

	addRow("Constant", func(m *Model) string { return fmtTerm(m, "const") })
	addRow("Public School", func(m *Model) string { return fmtTerm(m, "public_school") })
	addRow("Number of Correct Answers", func(m *Model) string { return fmtTerm(m, "hits") })
	addRow("Exam Code Controls", func(m *Model) string { return yesIf(m.HasPrefix("exam_code_")) })
	addRow("Income Controls", func(m *Model) string { return yesIf(m.HasPrefix("income_bracket_")) })
	addRow("Sex Control", func(m *Model) string {
		_, ok := m.Term("is_female")
		return yesIf(ok)
	})
	addRow("Race Controls", func(m *Model) string { return yesIf(m.HasPrefix("race_color_")) })
	addRow("R²", func(m *Model) string { return fmt.Sprintf("%.2f", m.R2) })
	addRow("N", func(m *Model) string { return fmt.Sprintf("%d", m.N) })

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
