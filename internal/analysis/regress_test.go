package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticObs generates a noise-free dataset with
// score = 100 + 50*public_school + 10*hits and enough variation in
// the categorical columns to keep every design matrix full rank.
func syntheticObs(n int) []Obs {
	booklets := []int64{391, 392, 393}
	obs := make([]Obs, n)
	for i := range obs {
		o := Obs{
			Hits:          float64(i % 20),
			PublicSchool:  float64(i % 2),
			IsFemale:      float64((i / 2) % 2),
			Booklet:       booklets[i%len(booklets)],
			IncomeBracket: int64(i%4 + 1),
			RaceColor:     int64(i%5 + 1),
		}
		o.Score = 100 + 50*o.PublicSchool + 10*o.Hits
		if o.RaceColor == 2 {
			o.IsBlack = 1
		}
		if o.IncomeBracket <= 2 {
			o.LowIncome = 1
		}
		obs[i] = o
	}
	return obs
}

func TestRunModelsRecoversCoefficients(t *testing.T) {
	models, err := RunModels(syntheticObs(200))
	require.NoError(t, err)
	require.Len(t, models, 5)

	m2 := models[1]
	c, ok := m2.Term("const")
	require.True(t, ok)
	assert.InDelta(t, 100, c.Coef, 1e-6)

	ps, ok := m2.Term("public_school")
	require.True(t, ok)
	assert.InDelta(t, 50, ps.Coef, 1e-6)

	h, ok := m2.Term("hits")
	require.True(t, ok)
	assert.InDelta(t, 10, h.Coef, 1e-6)

	assert.InDelta(t, 1.0, m2.R2, 1e-9, "noise-free fit explains everything")
	assert.Equal(t, 200, m2.N)
}

func TestRunModelsNestedControls(t *testing.T) {
	models, err := RunModels(syntheticObs(120))
	require.NoError(t, err)

	_, hasHits := models[0].Term("hits")
	assert.False(t, hasHits, "model 1 regresses on public_school only")

	assert.False(t, models[1].HasPrefix("exam_code_"))
	assert.True(t, models[2].HasPrefix("exam_code_"))
	assert.False(t, models[2].HasPrefix("income_bracket_"))
	assert.True(t, models[3].HasPrefix("income_bracket_"))
	assert.True(t, models[4].HasPrefix("race_color_"))
	_, hasFemale := models[4].Term("is_female")
	assert.True(t, hasFemale)

	// drop-first: three booklet levels expand into two dummies.
	dummies := 0
	for _, term := range models[2].Terms {
		if term.Name == "exam_code_392" || term.Name == "exam_code_393" {
			dummies++
		}
	}
	assert.Equal(t, 2, dummies)
	_, hasRef := models[2].Term("exam_code_391")
	assert.False(t, hasRef, "reference level is dropped")
}

func TestRunModelsRejectsEmptyInput(t *testing.T) {
	_, err := RunModels(nil)
	require.Error(t, err)
}

func TestStars(t *testing.T) {
	assert.Equal(t, "***", stars(0.005))
	assert.Equal(t, "**", stars(0.03))
	assert.Equal(t, "*", stars(0.07))
	assert.Equal(t, "", stars(0.2))
}

func TestSummaryTable(t *testing.T) {
	models, err := RunModels(syntheticObs(120))
	require.NoError(t, err)

	table, err := SummaryTable(models)
	require.NoError(t, err)

	got := string(table)
	assert.Contains(t, got, ",(1),(2),(3),(4),(5)")
	assert.Contains(t, got, "Public School")
	assert.Contains(t, got, "Number of Correct Answers")
	assert.Contains(t, got, "R²")
	// Control rows flip to Yes as the specifications grow.
	assert.Contains(t, got, "Exam Code Controls,,,Yes,Yes,Yes")
	assert.Contains(t, got, "Income Controls,,,,Yes,Yes")
	assert.Contains(t, got, "Sex Control,,,,,Yes")
}
