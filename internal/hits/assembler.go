package hits

import (
	"log/slog"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

type joinKey struct {
	id   int64
	year int
}

// attachAttributes left-joins the candidate attribute set onto the
// labeled records by (registration id, exam year). Every labeled
// record survives; a record with no attribute match keeps Attrs nil.
// Duplicate (id, year) pairs on the attribute side resolve
// first-match-wins and are reported as a data anomaly.
func attachAttributes(out []Labeled, cands []microdata.Candidate, log *slog.Logger) {
	index := make(map[joinKey]int, len(cands))
	dupes := 0
	for i := range cands {
		k := joinKey{id: cands[i].RegistrationID, year: cands[i].ExamYear}
		if _, ok := index[k]; ok {
			dupes++
			continue
		}
		index[k] = i
	}
	if dupes > 0 {
		log.Warn("duplicate (registration_id, exam_year) pairs in attribute set; keeping first match",
			"duplicates", dupes)
	}

	unmatched := 0
	for i := range out {
		k := joinKey{id: out[i].RegistrationID, year: out[i].ExamYear}
		ci, ok := index[k]
		if !ok {
			unmatched++
			continue
		}
		attrs := cands[ci].Attrs
		out[i].Attrs = &attrs
		for _, s := range microdata.Subjects() {
			out[i].Presence[s] = cands[ci].Exams[s].Presence
		}
	}
	if unmatched > 0 {
		log.Warn("labeled records without an attribute match", "count", unmatched)
	}
}
