// Package store reads and writes the candidates and labeled tables,
// the pipeline's stand-ins for the original Parquet artifacts.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/edumetrics/enem-pipeline/internal/microdata"
)

type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

const insertCandidate = `INSERT INTO candidates (
  registration_id, exam_year,
  sex, race_color, hs_completion_status, school_type, teaching_mode,
  is_tester, school_admin_dependency, school_location, school_oper_status,
  code_exam_science, code_exam_humanities, code_exam_language, code_exam_math,
  presence_science, presence_humanities, presence_language, presence_math,
  answers_science, answers_humanities, answers_language, answers_math,
  key_science, key_humanities, key_language, key_math,
  score_science, score_humanities, score_language, score_math,
  family_income_bracket, school_funding_src
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,
  $20,$21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33)
ON CONFLICT (registration_id, exam_year) DO NOTHING`

const selectCandidates = `SELECT
  registration_id, exam_year,
  sex, race_color, hs_completion_status, school_type, teaching_mode,
  is_tester, school_admin_dependency, school_location, school_oper_status,
  code_exam_science, code_exam_humanities, code_exam_language, code_exam_math,
  presence_science, presence_humanities, presence_language, presence_math,
  answers_science, answers_humanities, answers_language, answers_math,
  key_science, key_humanities, key_language, key_math,
  score_science, score_humanities, score_language, score_math,
  family_income_bracket, school_funding_src
FROM candidates`

// PutCandidates inserts the processed microdata in one transaction.
// Re-ingesting the same file is a no-op per row.
func (s *SQLStore) PutCandidates(ctx context.Context, cands []microdata.Candidate) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertCandidate)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := range cands {
		c := &cands[i]
		sci, hum, lng, mat := &c.Exams[microdata.Science], &c.Exams[microdata.Humanities],
			&c.Exams[microdata.Language], &c.Exams[microdata.Math]
		_, err := stmt.ExecContext(ctx,
			c.RegistrationID, c.ExamYear,
			c.Attrs.Sex, c.Attrs.RaceColor, c.Attrs.HSCompletionStatus,
			c.Attrs.SchoolType, c.Attrs.TeachingMode,
			c.Attrs.IsTester, c.Attrs.SchoolAdminDependency,
			c.Attrs.SchoolLocation, c.Attrs.SchoolOperStatus,
			sci.Booklet, hum.Booklet, lng.Booklet, mat.Booklet,
			sci.Presence, hum.Presence, lng.Presence, mat.Presence,
			nullStr(sci.Answers), nullStr(hum.Answers), nullStr(lng.Answers), nullStr(mat.Answers),
			nullStr(sci.Key), nullStr(hum.Key), nullStr(lng.Key), nullStr(mat.Key),
			sci.Score, hum.Score, lng.Score, mat.Score,
			c.Attrs.FamilyIncomeBracket, c.Attrs.SchoolFundingSrc,
		)
		if err != nil {
			return fmt.Errorf("insert candidate %d: %w", c.RegistrationID, err)
		}
	}
	return tx.Commit()
}

// Candidates loads the full candidates table. Row order is whatever
// the database returns; consumers must not rely on it.
func (s *SQLStore) Candidates(ctx context.Context) ([]microdata.Candidate, error) {
	rows, err := s.db.QueryContext(ctx, selectCandidates)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []microdata.Candidate
	for rows.Next() {
		var (
			c                    microdata.Candidate
			sex, race, hsc       sql.NullInt64
			schType, teach       sql.NullInt64
			tester, admin        sql.NullInt64
			loc, oper            sql.NullInt64
			income, funding      sql.NullInt64
			booklets, presences  [microdata.NumSubjects]sql.NullInt64
			answerStrs, keyStrs  [microdata.NumSubjects]sql.NullString
			scores               [microdata.NumSubjects]sql.NullFloat64
		)
		if err := rows.Scan(
			&c.RegistrationID, &c.ExamYear,
			&sex, &race, &hsc, &schType, &teach,
			&tester, &admin, &loc, &oper,
			&booklets[0], &booklets[1], &booklets[2], &booklets[3],
			&presences[0], &presences[1], &presences[2], &presences[3],
			&answerStrs[0], &answerStrs[1], &answerStrs[2], &answerStrs[3],
			&keyStrs[0], &keyStrs[1], &keyStrs[2], &keyStrs[3],
			&scores[0], &scores[1], &scores[2], &scores[3],
			&income, &funding,
		); err != nil {
			return nil, err
		}
		c.Attrs = microdata.Attributes{
			Sex:                   intPtr(sex),
			RaceColor:             intPtr(race),
			HSCompletionStatus:    intPtr(hsc),
			SchoolType:            intPtr(schType),
			TeachingMode:          intPtr(teach),
			IsTester:              intPtr(tester),
			SchoolAdminDependency: intPtr(admin),
			SchoolLocation:        intPtr(loc),
			SchoolOperStatus:      intPtr(oper),
			FamilyIncomeBracket:   intPtr(income),
			SchoolFundingSrc:      intPtr(funding),
		}
		for _, subj := range microdata.Subjects() {
			c.Exams[subj] = microdata.Sheet{
				Answers:  answerStrs[subj].String,
				Key:      keyStrs[subj].String,
				Score:    floatPtr(scores[subj]),
				Booklet:  intPtr(booklets[subj]),
				Presence: intPtr(presences[subj]),
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func intPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
