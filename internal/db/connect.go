package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:enem.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/enem?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

// Wide tables stand in for the original Parquet artifacts: candidates
// is the processed microdata, labeled is the hits/median output.

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS candidates (
  registration_id INTEGER NOT NULL,
  exam_year INTEGER NOT NULL,
  sex INTEGER,
  race_color INTEGER,
  hs_completion_status INTEGER,
  school_type INTEGER,
  teaching_mode INTEGER,
  is_tester INTEGER,
  school_admin_dependency INTEGER,
  school_location INTEGER,
  school_oper_status INTEGER,
  code_exam_science INTEGER,
  code_exam_humanities INTEGER,
  code_exam_language INTEGER,
  code_exam_math INTEGER,
  presence_science INTEGER,
  presence_humanities INTEGER,
  presence_language INTEGER,
  presence_math INTEGER,
  answers_science TEXT,
  answers_humanities TEXT,
  answers_language TEXT,
  answers_math TEXT,
  key_science TEXT,
  key_humanities TEXT,
  key_language TEXT,
  key_math TEXT,
  score_science REAL,
  score_humanities REAL,
  score_language REAL,
  score_math REAL,
  family_income_bracket INTEGER,
  school_funding_src INTEGER,
  PRIMARY KEY (registration_id, exam_year)
);

CREATE TABLE IF NOT EXISTS labeled (
  registration_id INTEGER NOT NULL,
  exam_year INTEGER NOT NULL,
  hits_science INTEGER NOT NULL,
  hits_humanities INTEGER NOT NULL,
  hits_language INTEGER NOT NULL,
  hits_math INTEGER NOT NULL,
  score_science REAL,
  score_humanities REAL,
  score_language REAL,
  score_math REAL,
  code_exam_science INTEGER,
  code_exam_humanities INTEGER,
  code_exam_language INTEGER,
  code_exam_math INTEGER,
  median_score_science REAL,
  median_score_humanities REAL,
  median_score_language REAL,
  median_score_math REAL,
  above_median_science INTEGER NOT NULL,
  above_median_humanities INTEGER NOT NULL,
  above_median_language INTEGER NOT NULL,
  above_median_math INTEGER NOT NULL,
  sex INTEGER,
  race_color INTEGER,
  school_type INTEGER,
  teaching_mode INTEGER,
  presence_science INTEGER,
  presence_humanities INTEGER,
  presence_language INTEGER,
  presence_math INTEGER,
  family_income_bracket INTEGER,
  school_funding_src INTEGER,
  school_admin_dependency INTEGER,
  PRIMARY KEY (registration_id, exam_year)
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS candidates (
  registration_id BIGINT NOT NULL,
  exam_year INTEGER NOT NULL,
  sex SMALLINT,
  race_color SMALLINT,
  hs_completion_status SMALLINT,
  school_type SMALLINT,
  teaching_mode SMALLINT,
  is_tester SMALLINT,
  school_admin_dependency SMALLINT,
  school_location SMALLINT,
  school_oper_status SMALLINT,
  code_exam_science INTEGER,
  code_exam_humanities INTEGER,
  code_exam_language INTEGER,
  code_exam_math INTEGER,
  presence_science SMALLINT,
  presence_humanities SMALLINT,
  presence_language SMALLINT,
  presence_math SMALLINT,
  answers_science TEXT,
  answers_humanities TEXT,
  answers_language TEXT,
  answers_math TEXT,
  key_science TEXT,
  key_humanities TEXT,
  key_language TEXT,
  key_math TEXT,
  score_science DOUBLE PRECISION,
  score_humanities DOUBLE PRECISION,
  score_language DOUBLE PRECISION,
  score_math DOUBLE PRECISION,
  family_income_bracket SMALLINT,
  school_funding_src SMALLINT,
  PRIMARY KEY (registration_id, exam_year)
);

CREATE TABLE IF NOT EXISTS labeled (
  registration_id BIGINT NOT NULL,
  exam_year INTEGER NOT NULL,
  hits_science INTEGER NOT NULL,
  hits_humanities INTEGER NOT NULL,
  hits_language INTEGER NOT NULL,
  hits_math INTEGER NOT NULL,
  score_science DOUBLE PRECISION,
  score_humanities DOUBLE PRECISION,
  score_language DOUBLE PRECISION,
  score_math DOUBLE PRECISION,
  code_exam_science INTEGER,
  code_exam_humanities INTEGER,
  code_exam_language INTEGER,
  code_exam_math INTEGER,
  median_score_science DOUBLE PRECISION,
  median_score_humanities DOUBLE PRECISION,
  median_score_language DOUBLE PRECISION,
  median_score_math DOUBLE PRECISION,
  above_median_science SMALLINT NOT NULL,
  above_median_humanities SMALLINT NOT NULL,
  above_median_language SMALLINT NOT NULL,
  above_median_math SMALLINT NOT NULL,
  sex SMALLINT,
  race_color SMALLINT,
  school_type SMALLINT,
  teaching_mode SMALLINT,
  presence_science SMALLINT,
  presence_humanities SMALLINT,
  presence_language SMALLINT,
  presence_math SMALLINT,
  family_income_bracket SMALLINT,
  school_funding_src SMALLINT,
  school_admin_dependency SMALLINT,
  PRIMARY KEY (registration_id, exam_year)
);
`
