// Package hits derives per-subject correct-answer counts from the
// processed microdata and labels every candidate as above or below the
// median score of their (exam year, hit count) group.
package hits

import "github.com/edumetrics/enem-pipeline/internal/microdata"

// SubjectHits is the per-subject slice of a hit record.
type SubjectHits struct {
	Hits    int
	Score   *float64
	Booklet *int64
}

// Record holds one candidate's hit counts for all four subjects.
type Record struct {
	RegistrationID int64
	ExamYear       int
	Subjects       [microdata.NumSubjects]SubjectHits
}

// SubjectLabel extends SubjectHits with the group median and the
// above-median indicator. MedianScore is nil when the candidate's
// group has no scored member.
type SubjectLabel struct {
	Hits        int
	Score       *float64
	Booklet     *int64
	MedianScore *float64
	AboveMedian bool
}

// Labeled is the final output row: labels for all subjects plus the
// candidate's passthrough attributes. Attrs is nil when no attribute
// row matched the (registration id, exam year) pair.
type Labeled struct {
	RegistrationID int64
	ExamYear       int
	Subjects       [microdata.NumSubjects]SubjectLabel
	Presence       [microdata.NumSubjects]*int64
	Attrs          *microdata.Attributes
}
