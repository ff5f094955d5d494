package hits

import (
	"strings"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

// Sentinel fill characters for missing answer and key strings. The
// two differ from each other, and neither appears in a valid key
// (choice letters A-E), so a missing string can never produce a match.
const (
	missingAnswerFill = '#'
	missingKeyFill    = '.'
)

// CountHits compares an answer string against a key string position by
// position and returns the number of matches. Both strings are
// normalized to length: empty strings become sentinel runs, longer
// strings are truncated, shorter ones padded with the sentinel. The
// result is always in [0, length].
func CountHits(answers, key string, length int) int {
	answers = normalize(answers, length, missingAnswerFill)
	key = normalize(key, length, missingKeyFill)

	n := 0
	for i := 0; i < length; i++ {
		if answers[i] == key[i] {
			n++
		}
	}
	return n
}

func normalize(s string, length int, fill byte) string {
	switch {
	case len(s) == length:
		return s
	case len(s) > length:
		return s[:length]
	default:
		return s + strings.Repeat(string(fill), length-len(s))
	}
}

// Count builds the hit record for one candidate: per-subject hit
// counts with score and booklet passed through. Pure per-candidate
// function with no cross-candidate state.
func Count(c *microdata.Candidate) Record {
	rec := Record{
		RegistrationID: c.RegistrationID,
		ExamYear:       c.ExamYear,
	}
	for _, s := range microdata.Subjects() {
		sheet := c.Exams[s]
		rec.Subjects[s] = SubjectHits{
			Hits:    CountHits(sheet.Answers, sheet.Key, s.AnswerLen()),
			Score:   sheet.Score,
			Booklet: sheet.Booklet,
		}
	}
	return rec
}
