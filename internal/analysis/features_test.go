package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

func labeledRow(id int64, booklet int64) hits.Labeled {
	l := hits.Labeled{
		RegistrationID: id,
		ExamYear:       2017,
		Attrs: &microdata.Attributes{
			Sex:                 microdata.I64(1),
			RaceColor:           microdata.I64(2),
			FamilyIncomeBracket: microdata.I64(2),
			SchoolFundingSrc:    microdata.I64(1),
		},
	}
	for s := range l.Subjects {
		l.Subjects[s] = hits.SubjectLabel{
			Hits:    12,
			Score:   microdata.F64(540.5),
			Booklet: microdata.I64(booklet),
		}
		l.Presence[s] = microdata.I64(1)
	}
	return l
}

func TestBuildAreaDerivesIndicators(t *testing.T) {
	rows := []hits.Labeled{labeledRow(1, 399)}

	obs := BuildArea(rows, microdata.Math)
	require.Len(t, obs, 1)

	o := obs[0]
	assert.Equal(t, 540.5, o.Score)
	assert.Equal(t, 12.0, o.Hits)
	assert.Equal(t, 1.0, o.PublicSchool)
	assert.Equal(t, 1.0, o.IsFemale)
	assert.Equal(t, 1.0, o.IsBlack)
	assert.Equal(t, 1.0, o.LowIncome)
	assert.Equal(t, int64(399), o.Booklet)
}

func TestBuildAreaDropsIncompleteRows(t *testing.T) {
	noAttrs := labeledRow(1, 399)
	noAttrs.Attrs = nil

	noScore := labeledRow(2, 399)
	noScore.Subjects[microdata.Math].Score = nil

	absent := labeledRow(3, 399)
	absent.Presence[microdata.Math] = microdata.I64(0)

	oddBooklet := labeledRow(4, 450)

	noIncome := labeledRow(5, 399)
	noIncome.Attrs.FamilyIncomeBracket = nil

	kept := labeledRow(6, 391)

	rows := []hits.Labeled{noAttrs, noScore, absent, oddBooklet, noIncome, kept}
	obs := BuildArea(rows, microdata.Math)
	require.Len(t, obs, 1)
	assert.Equal(t, int64(391), obs[0].Booklet)
}

func TestBuildAreaIsPerSubject(t *testing.T) {
	row := labeledRow(1, 399)
	row.Subjects[microdata.Science].Score = nil

	assert.Empty(t, BuildArea([]hits.Labeled{row}, microdata.Science))
	assert.Len(t, BuildArea([]hits.Labeled{row}, microdata.Language), 1)
}
