package microdata_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

// buildCSV assembles a source-shaped CSV from per-row column maps.
// Columns absent from a map stay empty, like nulls in the raw file.
func buildCSV(rows ...map[string]string) string {
	var sb strings.Builder
	for i, c := range microdata.Columns {
		if i > 0 {
			sb.WriteByte(';')
		}
		sb.WriteString(c.Source)
	}
	sb.WriteString(";CO_UF_PROVA\n") // unselected columns are ignored

	for _, row := range rows {
		for i, c := range microdata.Columns {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(row[c.Source])
		}
		sb.WriteString(";35\n")
	}
	return sb.String()
}

func presentRow(id, sex string) map[string]string {
	row := map[string]string{
		"NU_INSCRICAO": id,
		"NU_ANO":       "2017",
		"TP_SEXO":      sex,
		"TP_COR_RACA":  "2",
		"Q006":         "B",
		"Q027":         "A",
	}
	for _, code := range []string{"CN", "CH", "LC", "MT"} {
		row["TP_PRESENCA_"+code] = "1"
		row["CO_PROVA_"+code] = "399"
		row["NU_NOTA_"+code] = "512.4"
		row["TX_RESPOSTAS_"+code] = "ABCDE"
		row["TX_GABARITO_"+code] = "ABCDA"
	}
	return row
}

func TestReaderParsesTypedRow(t *testing.T) {
	src := buildCSV(presentRow("170001234567", "F"))
	r, err := microdata.NewReader(strings.NewReader(src))
	require.NoError(t, err)

	recs, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, int64(170001234567), rec.RegistrationID)
	assert.Equal(t, 2017, rec.ExamYear)
	assert.Equal(t, "F", rec.Sex)
	require.NotNil(t, rec.Attrs.RaceColor)
	assert.Equal(t, int64(2), *rec.Attrs.RaceColor)
	assert.Nil(t, rec.Attrs.SchoolType, "empty cells parse as missing")

	mt := rec.Exams[microdata.Math]
	assert.Equal(t, "ABCDE", mt.Answers)
	assert.Equal(t, "ABCDA", mt.Key)
	require.NotNil(t, mt.Score)
	assert.Equal(t, 512.4, *mt.Score)
	require.NotNil(t, mt.Booklet)
	assert.Equal(t, int64(399), *mt.Booklet)
}

func TestReaderMissingColumnFailsFast(t *testing.T) {
	src := buildCSV()
	src = strings.Replace(src, "TX_GABARITO_MT", "TX_GABARITO_XX", 1)
	_, err := microdata.NewReader(strings.NewReader(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TX_GABARITO_MT")
}

func TestReaderBadNumericFailsFast(t *testing.T) {
	row := presentRow("1", "M")
	row["NU_NOTA_MT"] = "not-a-score"
	r, err := microdata.NewReader(strings.NewReader(buildCSV(row)))
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NU_NOTA_MT")
}

func TestLoadFiltersAbsenteesAndEncodesCategoricals(t *testing.T) {
	female := presentRow("1", "F")
	male := presentRow("2", "M")
	male["Q006"] = "C"

	absent := presentRow("3", "M")
	absent["TP_PRESENCA_MT"] = "0"

	cands, err := microdata.Load(strings.NewReader(buildCSV(female, male, absent)))
	require.NoError(t, err)
	require.Len(t, cands, 2, "candidates absent from any subject are dropped")

	// Dense ranks over the full file: F < M, B < C.
	require.NotNil(t, cands[0].Attrs.Sex)
	assert.Equal(t, int64(1), *cands[0].Attrs.Sex)
	require.NotNil(t, cands[1].Attrs.Sex)
	assert.Equal(t, int64(2), *cands[1].Attrs.Sex)

	require.NotNil(t, cands[0].Attrs.FamilyIncomeBracket)
	assert.Equal(t, int64(1), *cands[0].Attrs.FamilyIncomeBracket)
	require.NotNil(t, cands[1].Attrs.FamilyIncomeBracket)
	assert.Equal(t, int64(2), *cands[1].Attrs.FamilyIncomeBracket)
}
