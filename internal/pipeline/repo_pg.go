package pipeline

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// pgDuplicateColumn is the SQLSTATE returned when a column already exists.
const pgDuplicateColumn = "42701"

var scoreColumns = []struct {
	name string
	typ  string
}{
	{"ats_score", "DOUBLE PRECISION"},
	{"ats_passed", "BOOLEAN"},
	{"smart_score", "DOUBLE PRECISION"},
	{"smart_passed", "BOOLEAN"},
}

// EnsureScoreColumns adds the score columns one at a time so that a table
// carrying a subset of them still ends up complete. Duplicate-column errors
// are expected on every run after the first and are swallowed.
func (r *PGRepo) EnsureScoreColumns(ctx context.Context) error {
	for _, col := range scoreColumns {
		stmt := fmt.Sprintf("ALTER TABLE resumes ADD COLUMN %s %s", col.name, col.typ)
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgDuplicateColumn {
				continue
			}
			return fmt.Errorf("add column %s: %w", col.name, err)
		}
	}
	return nil
}

// ListByJob returns all stored candidates for a job ordered by id.
func (r *PGRepo) ListByJob(ctx context.Context, jobID string) ([]Candidate, error) {
	const query = `
SELECT id, name, email, phone, job_id, raw, file_path, ats_score, ats_passed, smart_score, smart_passed
FROM resumes
WHERE job_id = $1
ORDER BY id`
	rows, err := r.DB.QueryContext(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Candidate
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func scanCandidate(rows *sql.Rows) (Candidate, error) {
	var c Candidate
	var phone, filePath sql.NullString
	var atsScore, smartScore sql.NullFloat64
	var atsPassed, smartPassed sql.NullBool
	if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.JobID, &c.Raw, &filePath, &atsScore, &atsPassed, &smartScore, &smartPassed); err != nil {
		return Candidate{}, err
	}
	c.Phone = phone.String
	c.FilePath = filePath.String
	if atsScore.Valid {
		c.ATSScore = &atsScore.Float64
	}
	if atsPassed.Valid {
		c.ATSPassed = &atsPassed.Bool
	}
	if smartScore.Valid {
		c.SmartScore = &smartScore.Float64
	}
	if smartPassed.Valid {
		c.SmartPassed = &smartPassed.Bool
	}
	return c, nil
}

// UpdateATSScore writes the structural pass verdict for one candidate.
func (r *PGRepo) UpdateATSScore(ctx context.Context, id int64, score float64, passed bool) error {
	return r.updateScore(ctx, "ats_score", "ats_passed", id, score, passed)
}

// UpdateSmartScore writes the criteria pass verdict for one candidate.
func (r *PGRepo) UpdateSmartScore(ctx context.Context, id int64, score float64, passed bool) error {
	return r.updateScore(ctx, "smart_score", "smart_passed", id, score, passed)
}

func (r *PGRepo) updateScore(ctx context.Context, scoreCol, passedCol string, id int64, score float64, passed bool) error {
	stmt := fmt.Sprintf("UPDATE resumes SET %s = $1, %s = $2 WHERE id = $3", scoreCol, passedCol)
	res, err := r.DB.ExecContext(ctx, stmt, score, passed, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// MaterializeCohorts replaces the job's rows in both cohort tables inside
// one transaction so readers never see a half-written ranking. Each row
// keeps the original candidate record next to both score pairs so
// downstream consumers never need to join back to resumes.
func (r *PGRepo) MaterializeCohorts(ctx context.Context, jobID string, cohorts Cohorts) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := rebuildCohortRows(ctx, tx, "passed_ranked_resumes", jobID, cohorts.Passed); err != nil {
		return err
	}
	if err := rebuildCohortRows(ctx, tx, "failed_resumes", jobID, cohorts.Failed); err != nil {
		return err
	}
	return tx.Commit()
}

func rebuildCohortRows(ctx context.Context, tx *sql.Tx, table, jobID string, members []Ranked) error {
	create := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
	rank BIGINT NOT NULL,
	resume_id BIGINT NOT NULL,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	phone TEXT,
	job_id TEXT NOT NULL,
	raw JSONB,
	file_path TEXT,
	ats_score DOUBLE PRECISION,
	ats_passed BOOLEAN,
	smart_score DOUBLE PRECISION,
	smart_passed BOOLEAN,
	total_score DOUBLE PRECISION NOT NULL
)`, table)
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE job_id = $1", table), jobID); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	insert := fmt.Sprintf(`
INSERT INTO %s (rank, resume_id, name, email, phone, job_id, raw, file_path, ats_score, ats_passed, smart_score, smart_passed, total_score)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`, table)
	for i, m := range members {
		if _, err := tx.ExecContext(ctx, insert,
			int64(i+1), m.ID, m.Name, m.Email, nullString(m.Phone), m.JobID, nullRaw(m.Raw), nullString(m.FilePath),
			nullFloat(m.ATSScore), nullBool(m.ATSPassed), nullFloat(m.SmartScore), nullBool(m.SmartPassed), m.TotalScore,
		); err != nil {
			return fmt.Errorf("insert into %s: %w", table, err)
		}
	}
	return nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}

func nullRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
