package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumetrics/enem-pipeline/internal/hits"
	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

const insertLabeled = `INSERT INTO labeled (
  registration_id, exam_year,
  hits_science, hits_humanities, hits_language, hits_math,
  score_science, score_humanities, score_language, score_math,
  code_exam_science, code_exam_humanities, code_exam_language, code_exam_math,
  median_score_science, median_score_humanities, median_score_language, median_score_math,
  above_median_science, above_median_humanities, above_median_language, above_median_math,
  sex, race_color, school_type, teaching_mode,
  presence_science, presence_humanities, presence_language, presence_math,
  family_income_bracket, school_funding_src, school_admin_dependency
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
  $20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33)
ON CONFLICT (registration_id, exam_year) DO UPDATE SET
  hits_science=EXCLUDED.hits_science,
  hits_humanities=EXCLUDED.hits_humanities,
  hits_language=EXCLUDED.hits_language,
  hits_math=EXCLUDED.hits_math,
  median_score_science=EXCLUDED.median_score_science,
  median_score_humanities=EXCLUDED.median_score_humanities,
  median_score_language=EXCLUDED.median_score_language,
  median_score_math=EXCLUDED.median_score_math,
  above_median_science=EXCLUDED.above_median_science,
  above_median_humanities=EXCLUDED.above_median_humanities,
  above_median_language=EXCLUDED.above_median_language,
  above_median_math=EXCLUDED.above_median_math`

const selectLabeled = `SELECT
  registration_id, exam_year,
  hits_science, hits_humanities, hits_language, hits_math,
  score_science, score_humanities, score_language, score_math,
  code_exam_science, code_exam_humanities, code_exam_language, code_exam_math,
  median_score_science, median_score_humanities, median_score_language, median_score_math,
  above_median_science, above_median_humanities, above_median_language, above_median_math,
  sex, race_color, school_type, teaching_mode,
  presence_science, presence_humanities, presence_language, presence_math,
  family_income_bracket, school_funding_src, school_admin_dependency
FROM labeled`

// PutLabeled writes the engine output. Re-running the hits stage
// overwrites the derived columns for existing rows.
func (s *SQLStore) PutLabeled(ctx context.Context, labeled []hits.Labeled) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertLabeled)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range labeled {
		l := &labeled[i]
		attrs := l.Attrs
		if attrs == nil {
			attrs = &microdata.Attributes{}
		}
		sci, hum, lng, mat := &l.Subjects[microdata.Science], &l.Subjects[microdata.Humanities],
			&l.Subjects[microdata.Language], &l.Subjects[microdata.Math]
		_, err := stmt.ExecContext(ctx,
			l.RegistrationID, l.ExamYear,
			sci.Hits, hum.Hits, lng.Hits, mat.Hits,
			sci.Score, hum.Score, lng.Score, mat.Score,
			sci.Booklet, hum.Booklet, lng.Booklet, mat.Booklet,
			sci.MedianScore, hum.MedianScore, lng.MedianScore, mat.MedianScore,
			boolToInt(sci.AboveMedian), boolToInt(hum.AboveMedian),
			boolToInt(lng.AboveMedian), boolToInt(mat.AboveMedian),
			attrs.Sex, attrs.RaceColor, attrs.SchoolType, attrs.TeachingMode,
			l.Presence[microdata.Science], l.Presence[microdata.Humanities],
			l.Presence[microdata.Language], l.Presence[microdata.Math],
			attrs.FamilyIncomeBracket, attrs.SchoolFundingSrc, attrs.SchoolAdminDependency,
		)
		if err != nil {
			return fmt.Errorf("insert labeled %d: %w", l.RegistrationID, err)
		}
	}
	return tx.Commit()
}

// Labeled loads the full labeled table.
func (s *SQLStore) Labeled(ctx context.Context) ([]hits.Labeled, error) {
	rows, err := s.db.QueryContext(ctx, selectLabeled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []hits.Labeled
	for rows.Next() {
		var (
			l                   hits.Labeled
			hitCounts           [microdata.NumSubjects]int
			scores, medians     [microdata.NumSubjects]sql.NullFloat64
			booklets, presences [microdata.NumSubjects]sql.NullInt64
			aboves              [microdata.NumSubjects]int
			sex, race           sql.NullInt64
			schType, teach      sql.NullInt64
			income, funding     sql.NullInt64
			admin               sql.NullInt64
		)
		if err := rows.Scan(
			&l.RegistrationID, &l.ExamYear,
			&hitCounts[0], &hitCounts[1], &hitCounts[2], &hitCounts[3],
			&scores[0], &scores[1], &scores[2], &scores[3],
			&booklets[0], &booklets[1], &booklets[2], &booklets[3],
			&medians[0], &medians[1], &medians[2], &medians[3],
			&aboves[0], &aboves[1], &aboves[2], &aboves[3],
			&sex, &race, &schType, &teach,
			&presences[0], &presences[1], &presences[2], &presences[3],
			&income, &funding, &admin,
		); err != nil {
			return nil, err
		}
		for _, subj := range microdata.Subjects() {
			l.Subjects[subj] = hits.SubjectLabel{
				Hits:        hitCounts[subj],
				Score:       floatPtr(scores[subj]),
				Booklet:     intPtr(booklets[subj]),
				MedianScore: floatPtr(medians[subj]),
				AboveMedian: aboves[subj] == 1,
			}
			l.Presence[subj] = intPtr(presences[subj])
		}
		l.Attrs = &microdata.Attributes{
			Sex:                   intPtr(sex),
			RaceColor:             intPtr(race),
			SchoolType:            intPtr(schType),
			TeachingMode:          intPtr(teach),
			FamilyIncomeBracket:   intPtr(income),
			SchoolFundingSrc:      intPtr(funding),
			SchoolAdminDependency: intPtr(admin),
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
