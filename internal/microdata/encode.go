package microdata

import (
	"io"
	"sort"
)

// EncodeCategoricals converts the raw categorical string columns (sex,
// income bracket, funding source) into dense integer ranks: distinct
// non-missing values are sorted and numbered from 1. Missing values
// stay nil.
func EncodeCategoricals(recs []Record) []Candidate {
	sex := denseRank(recs, func(r *Record) string { return r.Sex })
	income := denseRank(recs, func(r *Record) string { return r.IncomeBracket })
	funding := denseRank(recs, func(r *Record) string { return r.FundingSrc })

	out := make([]Candidate, len(recs))
	for i := range recs {
		c := recs[i].Candidate
		c.Attrs.Sex = rankOf(sex, recs[i].Sex)
		c.Attrs.FamilyIncomeBracket = rankOf(income, recs[i].IncomeBracket)
		c.Attrs.SchoolFundingSrc = rankOf(funding, recs[i].FundingSrc)
		out[i] = c
	}
	return out
}

func denseRank(recs []Record, get func(*Record) string) map[string]int64 {
	seen := map[string]struct{}{}
	for i := range recs {
		if v := get(&recs[i]); v != "" {
			seen[v] = struct{}{}
		}
	}
	values := make([]string, 0, len(seen))
	for v := range seen {
		values = append(values, v)
	}
	sort.Strings(values)

	ranks := make(map[string]int64, len(values))
	for i, v := range values {
		ranks[v] = int64(i + 1)
	}
	return ranks
}

func rankOf(ranks map[string]int64, v string) *int64 {
	if v == "" {
		return nil
	}
	r := ranks[v]
	return &r
}

// Load reads the full CSV, encodes categoricals, and keeps only the
// candidates present in all four subjects, mirroring the processed
// dataset used by every downstream stage.
func Load(r io.Reader) ([]Candidate, error) {
	cr, err := NewReader(r)
	if err != nil {
		return nil, err
	}
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	cands := EncodeCategoricals(recs)

	kept := cands[:0]
	for i := range cands {
		if cands[i].Present() {
			kept = append(kept, cands[i])
		}
	}
	return kept, nil
}
