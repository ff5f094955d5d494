package hits

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

func TestMedian(t *testing.T) {
	assert.Nil(t, median(nil))

	m := median([]float64{550})
	require.NotNil(t, m)
	assert.Equal(t, 550.0, *m)

	m = median([]float64{600, 500})
	require.NotNil(t, m)
	assert.Equal(t, 550.0, *m)

	m = median([]float64{700, 500, 600})
	require.NotNil(t, m)
	assert.Equal(t, 600.0, *m)
}

func rec(year, h int, score *float64) Record {
	var r Record
	r.ExamYear = year
	for _, s := range microdata.Subjects() {
		r.Subjects[s] = SubjectHits{Hits: h, Score: score}
	}
	return r
}

func TestBuildMediansKeepsAllGroups(t *testing.T) {
	recs := []Record{
		rec(2017, 0, nil),                    // unscored group at hits=0
		rec(2017, 10, microdata.F64(500)),
		rec(2017, 10, microdata.F64(600)),
		rec(2016, 10, microdata.F64(700)),    // same hits, other year
		rec(2017, 45, microdata.F64(810.5)),  // hits=L group
	}
	table := buildMedians(recs, int(microdata.Math))

	require.Len(t, table, 4)
	assert.Nil(t, table[groupKey{2017, 0}])

	m := table[groupKey{2017, 10}]
	require.NotNil(t, m)
	assert.Equal(t, 550.0, *m)

	m = table[groupKey{2016, 10}]
	require.NotNil(t, m)
	assert.Equal(t, 700.0, *m)

	m = table[groupKey{2017, 45}]
	require.NotNil(t, m)
	assert.Equal(t, 810.5, *m)
}

func TestLabelSubject(t *testing.T) {
	recs := []Record{
		rec(2017, 10, microdata.F64(500)),
		rec(2017, 10, microdata.F64(600)),
		rec(2017, 10, microdata.F64(550)), // exactly at the median
		rec(2017, 3, nil),                 // absent score
	}
	out := make([]Labeled, len(recs))
	labelSubject(recs, out, int(microdata.Math))

	math := microdata.Math
	require.NotNil(t, out[0].Subjects[math].MedianScore)
	assert.Equal(t, 550.0, *out[0].Subjects[math].MedianScore)

	assert.False(t, out[0].Subjects[math].AboveMedian, "500 is below the median")
	assert.True(t, out[1].Subjects[math].AboveMedian, "600 is above the median")
	assert.True(t, out[2].Subjects[math].AboveMedian, "ties at the median count as above")

	assert.False(t, out[3].Subjects[math].AboveMedian, "absent score is never above")
	assert.Nil(t, out[3].Subjects[math].MedianScore, "group with no scored member has no median")
	assert.Nil(t, out[3].Subjects[math].Score)
}
