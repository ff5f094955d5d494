package hits_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

func TestCountHits(t *testing.T) {
	tests := []struct {
		name    string
		answers string
		key     string
		length  int
		want    int
	}{
		{"single mismatch", "ABCD", "ABXD", 4, 3},
		{"perfect sheet", strings.Repeat("A", 45), strings.Repeat("A", 45), 45, 45},
		{"all wrong", strings.Repeat("A", 45), strings.Repeat("B", 45), 45, 0},
		{"missing answers", "", strings.Repeat("A", 45), 45, 0},
		{"missing key", strings.Repeat("A", 45), "", 45, 0},
		{"both missing", "", "", 45, 0},
		{"answers too long are truncated", "ABCDE", "ABCD", 4, 4},
		{"answers too short are padded", "AB", "ABCD", 4, 2},
		{"pad never matches key pad", "AB", "AB", 4, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hits.CountHits(tt.answers, tt.key, tt.length)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountHitsBounds(t *testing.T) {
	for _, s := range microdata.Subjects() {
		l := s.AnswerLen()
		for _, answers := range []string{"", "ABC", strings.Repeat("E", l), strings.Repeat("A", l+7)} {
			got := hits.CountHits(answers, strings.Repeat("E", l), l)
			require.GreaterOrEqual(t, got, 0)
			require.LessOrEqual(t, got, l)
		}
	}
}

func TestCountUsesSubjectLengths(t *testing.T) {
	var c microdata.Candidate
	c.RegistrationID = 7
	c.ExamYear = 2017
	for _, s := range microdata.Subjects() {
		c.Exams[s] = microdata.Sheet{
			Answers: strings.Repeat("A", s.AnswerLen()),
			Key:     strings.Repeat("A", s.AnswerLen()),
		}
	}

	rec := hits.Count(&c)
	assert.Equal(t, 45, rec.Subjects[microdata.Science].Hits)
	assert.Equal(t, 45, rec.Subjects[microdata.Humanities].Hits)
	assert.Equal(t, 50, rec.Subjects[microdata.Language].Hits)
	assert.Equal(t, 45, rec.Subjects[microdata.Math].Hits)
}
