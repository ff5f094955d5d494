package hits

import "sort"

// groupKey partitions records within one subject: each exam year and
// hit count pair forms its own median group.
type groupKey struct {
	year int
	hits int
}

// medianTable holds the computed median per group for one subject.
// A group that exists but has no scored member maps to nil.
type medianTable map[groupKey]*float64

// buildMedians makes a single pass over the records collecting each
// group's score multiset, then computes the group medians. Every
// (year, hits) combination that occurs is represented, including the
// hits=0 and hits=L extremes.
func buildMedians(recs []Record, subject int) medianTable {
	groups := make(map[groupKey][]float64)
	for i := range recs {
		sh := recs[i].Subjects[subject]
		k := groupKey{year: recs[i].ExamYear, hits: sh.Hits}
		if _, ok := groups[k]; !ok {
			groups[k] = nil
		}
		if sh.Score != nil {
			groups[k] = append(groups[k], *sh.Score)
		}
	}

	table := make(medianTable, len(groups))
	for k, scores := range groups {
		table[k] = median(scores)
	}
	return table
}

// median returns the middle order statistic of xs, the mean of the two
// central values for even sizes, or nil for an empty collection.
// xs is sorted in place.
func median(xs []float64) *float64 {
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)
	mid := len(xs) / 2
	var m float64
	if len(xs)%2 == 1 {
		m = xs[mid]
	} else {
		m = (xs[mid-1] + xs[mid]) / 2
	}
	return &m
}

// labelSubject assigns the group median and above-median indicator for
// one subject across all records. Ties at the median count as above
// (>=); a missing score is always below.
func labelSubject(recs []Record, out []Labeled, subject int) {
	table := buildMedians(recs, subject)
	for i := range recs {
		sh := recs[i].Subjects[subject]
		med := table[groupKey{year: recs[i].ExamYear, hits: sh.Hits}]

		lbl := SubjectLabel{
			Hits:        sh.Hits,
			Score:       sh.Score,
			Booklet:     sh.Booklet,
			MedianScore: med,
		}
		if sh.Score != nil && med != nil {
			lbl.AboveMedian = *sh.Score >= *med
		}
		out[i].Subjects[subject] = lbl
	}
}
