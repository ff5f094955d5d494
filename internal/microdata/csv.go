package microdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/encoding/charmap"
)

// Record is one parsed CSV row before categorical encoding. The three
// categorical columns keep their raw string values until the full file
// has been read (dense ranking needs the complete value set).
type Record struct {
	Candidate
	Sex           string
	IncomeBracket string
	FundingSrc    string
}

// Reader decodes the raw INEP microdata CSV: semicolon-separated,
// ISO-8859-1 encoded, one header row. The header must contain every
// column in Columns; anything else is a schema violation reported at
// open time.
type Reader struct {
	cr   *csv.Reader
	cols map[string]int
	line int
}

func NewReader(r io.Reader) (*Reader, error) {
	cr := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	cr.Comma = ';'
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	cols := make(map[string]int, len(Columns))
	for _, c := range Columns {
		i, ok := idx[c.Source]
		if !ok {
			return nil, fmt.Errorf("source csv is missing column %s", c.Source)
		}
		cols[c.Source] = i
	}
	return &Reader{cr: cr, cols: cols, line: 1}, nil
}

// Next returns the next parsed record, or io.EOF at end of input.
// Type errors are fatal: malformed numeric fields indicate a schema
// mismatch and must surface at load time, not inside the aggregation.
func (r *Reader) Next() (Record, error) {
	row, err := r.cr.Read()
	if err != nil {
		return Record{}, err
	}
	r.line++

	var rec Record
	p := rowParser{row: row, cols: r.cols}

	rec.RegistrationID = p.mustInt("NU_INSCRICAO")
	rec.ExamYear = int(p.mustInt("NU_ANO"))
	rec.Sex = p.str("TP_SEXO")
	rec.IncomeBracket = p.str("Q006")
	rec.FundingSrc = p.str("Q027")

	rec.Attrs.RaceColor = p.intPtr("TP_COR_RACA")
	rec.Attrs.HSCompletionStatus = p.intPtr("TP_ST_CONCLUSAO")
	rec.Attrs.SchoolType = p.intPtr("TP_ESCOLA")
	rec.Attrs.TeachingMode = p.intPtr("TP_ENSINO")
	rec.Attrs.IsTester = p.intPtr("IN_TREINEIRO")
	rec.Attrs.SchoolAdminDependency = p.intPtr("TP_DEPENDENCIA_ADM_ESC")
	rec.Attrs.SchoolLocation = p.intPtr("TP_LOCALIZACAO_ESC")
	rec.Attrs.SchoolOperStatus = p.intPtr("TP_SIT_FUNC_ESC")

	for _, s := range Subjects() {
		suffix := s.Code()
		rec.Exams[s] = Sheet{
			Answers:  p.str("TX_RESPOSTAS_" + suffix),
			Key:      p.str("TX_GABARITO_" + suffix),
			Score:    p.floatPtr("NU_NOTA_" + suffix),
			Booklet:  p.intPtr("CO_PROVA_" + suffix),
			Presence: p.intPtr("TP_PRESENCA_" + suffix),
		}
	}
	if p.err != nil {
		return Record{}, fmt.Errorf("csv line %d: %w", r.line, p.err)
	}
	return rec, nil
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]Record, error) {
	var out []Record
	for {
		rec, err := r.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
}

type rowParser struct {
	row  []string
	cols map[string]int
	err  error
}

func (p *rowParser) str(col string) string { return p.row[p.cols[col]] }

func (p *rowParser) mustInt(col string) int64 {
	s := p.str(col)
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: parse int %q: %w", col, s, err)
	}
	return v
}

func (p *rowParser) intPtr(col string) *int64 {
	s := p.str(col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("column %s: parse int %q: %w", col, s, err)
		}
		return nil
	}
	return &v
}

func (p *rowParser) floatPtr(col string) *float64 {
	s := p.str(col)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if p.err == nil {
			p.err = fmt.Errorf("column %s: parse float %q: %w", col, s, err)
		}
		return nil
	}
	return &v
}
