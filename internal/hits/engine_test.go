package hits_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

// mathCandidate builds a candidate whose math sheet has exactly
// correct hits against an all-A key. The other subjects stay empty.
func mathCandidate(id int64, year, correct int, score *float64) microdata.Candidate {
	var c microdata.Candidate
	c.RegistrationID = id
	c.ExamYear = year
	c.Attrs.Sex = microdata.I64(1)
	c.Attrs.RaceColor = microdata.I64(3)
	c.Exams[microdata.Math] = microdata.Sheet{
		Answers:  strings.Repeat("A", correct) + strings.Repeat("B", 45-correct),
		Key:      strings.Repeat("A", 45),
		Score:    score,
		Booklet:  microdata.I64(399),
		Presence: microdata.I64(1),
	}
	return c
}

func TestEngineRunMedianScenario(t *testing.T) {
	cands := []microdata.Candidate{
		mathCandidate(1, 2017, 10, microdata.F64(500)),
		mathCandidate(2, 2017, 10, microdata.F64(600)),
		mathCandidate(3, 2017, 10, microdata.F64(550)),
		mathCandidate(4, 2017, 20, nil),
	}

	engine := hits.New(hits.WithWorkers(3))
	out, err := engine.Run(context.Background(), cands)
	require.NoError(t, err)
	require.Len(t, out, len(cands), "output count must equal input count")

	math := microdata.Math
	byID := map[int64]hits.Labeled{}
	for _, l := range out {
		byID[l.RegistrationID] = l
	}

	for id, wantHits := range map[int64]int{1: 10, 2: 10, 3: 10, 4: 20} {
		assert.Equal(t, wantHits, byID[id].Subjects[math].Hits, "candidate %d", id)
	}

	require.NotNil(t, byID[1].Subjects[math].MedianScore)
	assert.Equal(t, 550.0, *byID[1].Subjects[math].MedianScore)
	assert.False(t, byID[1].Subjects[math].AboveMedian)
	assert.True(t, byID[2].Subjects[math].AboveMedian)
	assert.True(t, byID[3].Subjects[math].AboveMedian, "tie at the median counts as above")
	assert.False(t, byID[4].Subjects[math].AboveMedian, "absent score is below by definition")

	// Attributes joined back by (id, year).
	for _, l := range out {
		require.NotNil(t, l.Attrs)
		require.NotNil(t, l.Attrs.Sex)
		assert.Equal(t, int64(1), *l.Attrs.Sex)
		require.NotNil(t, l.Presence[math])
		assert.Equal(t, int64(1), *l.Presence[math])
	}

	// Subjects are grouped independently: the empty science sheets all
	// land in the hits=0 group and have no scored member.
	for _, l := range out {
		assert.Equal(t, 0, l.Subjects[microdata.Science].Hits)
		assert.Nil(t, l.Subjects[microdata.Science].MedianScore)
		assert.False(t, l.Subjects[microdata.Science].AboveMedian)
	}
}

func TestEngineRunIsIdempotent(t *testing.T) {
	cands := []microdata.Candidate{
		mathCandidate(1, 2017, 12, microdata.F64(512.3)),
		mathCandidate(2, 2017, 12, microdata.F64(610)),
		mathCandidate(3, 2016, 12, microdata.F64(480.5)),
		mathCandidate(4, 2017, 45, microdata.F64(900)),
	}

	engine := hits.New(hits.WithWorkers(2))
	first, err := engine.Run(context.Background(), cands)
	require.NoError(t, err)
	second, err := engine.Run(context.Background(), cands)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestEngineRunDuplicateAttributeRows(t *testing.T) {
	// Two input rows share (id, year): both produce an output record,
	// and the join resolves to the first attribute match.
	a := mathCandidate(1, 2017, 5, microdata.F64(420))
	b := mathCandidate(1, 2017, 8, microdata.F64(450))
	b.Attrs.Sex = microdata.I64(2)

	engine := hits.New()
	out, err := engine.Run(context.Background(), []microdata.Candidate{a, b})
	require.NoError(t, err)
	require.Len(t, out, 2)
	for _, l := range out {
		require.NotNil(t, l.Attrs)
		require.NotNil(t, l.Attrs.Sex)
		assert.Equal(t, int64(1), *l.Attrs.Sex, "first attribute match wins")
	}
}
