// Package analysis builds the exploratory figures and the nested OLS
// regression tables from the labeled dataset.
package analysis

import (
	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

// validBooklets are the regular 2017 booklet codes; adapted and
// special-administration variants are excluded from the regressions.
var validBooklets = map[int64]bool{
	391: true, 392: true, 393: true, 394: true,
	395: true, 396: true, 397: true, 398: true,
	399: true, 400: true, 401: true, 402: true,
	403: true, 404: true, 405: true, 406: true,
}

// Obs is one regression observation for a single subject: the score,
// the hit count, the derived indicator features, and the raw
// categorical codes that expand into dummy controls.
type Obs struct {
	Score float64
	Hits  float64

	PublicSchool float64
	IsFemale     float64
	IsBlack      float64
	LowIncome    float64

	Booklet       int64
	IncomeBracket int64
	RaceColor     int64

	AboveMedian bool
}

// BuildArea projects the labeled rows onto one subject, keeping only
// candidates that sat the exam with a regular booklet and have score,
// income bracket, sex, and race recorded. Incomplete rows are dropped
// once here rather than per model.
func BuildArea(rows []hits.Labeled, subject microdata.Subject) []Obs {
	var out []Obs
	for i := range rows {
		l := &rows[i]
		sl := l.Subjects[subject]
		if l.Attrs == nil || sl.Score == nil || sl.Booklet == nil {
			continue
		}
		if p := l.Presence[subject]; p == nil || *p != 1 {
			continue
		}
		if !validBooklets[*sl.Booklet] {
			continue
		}
		a := l.Attrs
		if a.FamilyIncomeBracket == nil || a.SchoolFundingSrc == nil ||
			a.Sex == nil || a.RaceColor == nil {
			continue
		}

		o := Obs{
			Score:         *sl.Score,
			Hits:          float64(sl.Hits),
			Booklet:       *sl.Booklet,
			IncomeBracket: *a.FamilyIncomeBracket,
			RaceColor:     *a.RaceColor,
			AboveMedian:   sl.AboveMedian,
		}
		if *a.SchoolFundingSrc == 1 {
			o.PublicSchool = 1
		}
		if *a.Sex == 1 {
			o.IsFemale = 1
		}
		if *a.RaceColor == 2 {
			o.IsBlack = 1
		}
		if *a.FamilyIncomeBracket == 1 || *a.FamilyIncomeBracket == 2 {
			o.LowIncome = 1
		}
		out = append(out, o)
	}
	return out
}
