package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"issuetracker/internal/models"
	"issuetracker/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type IssueRepo struct{ db *pgxpool.Pool }

func NewIssueRepo(db *pgxpool.Pool) *IssueRepo { return &IssueRepo{db: db} }

var _ repository.IssueStore = (*IssueRepo)(nil)

const schema = `
	CREATE TABLE IF NOT EXISTS issues (
		seq         BIGSERIAL,
		id          UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		project     TEXT NOT NULL,
		issue_title TEXT NOT NULL,
		issue_text  TEXT NOT NULL,
		created_by  TEXT NOT NULL,
		assigned_to TEXT NOT NULL DEFAULT '',
		status_text TEXT NOT NULL DEFAULT '',
		open        BOOLEAN NOT NULL DEFAULT TRUE,
		created_on  TIMESTAMPTZ NOT NULL,
		updated_on  TIMESTAMPTZ NOT NULL
	);
	CREATE INDEX IF NOT EXISTS issues_project_seq_idx ON issues (project, seq);`

// EnsureSchema creates the issues table if it does not exist yet.
func (r *IssueRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("creating issues table: %w", err)
	}
	return nil
}

const issueColumns = `id::text, project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on`

// -----------------------------------------------------------------------------
// Insert / find
// -----------------------------------------------------------------------------

func (r *IssueRepo) Insert(ctx context.Context, t *models.Issue) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO issues (project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id::text, created_on, updated_on
	`,
		t.Project, t.Title, t.Text, t.CreatedBy, t.AssignedTo, t.StatusText, t.Open, t.CreatedOn, t.UpdatedOn,
	).Scan(&t.ID, &t.CreatedOn, &t.UpdatedOn)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	return nil
}

// Find returns the issues matching m in insertion order.
func (r *IssueRepo) Find(ctx context.Context, m repository.Match) ([]models.Issue, error) {
	whereSQL, args := buildIssueWhere(m)
	rows, err := r.db.Query(ctx, `SELECT `+issueColumns+` FROM issues `+whereSQL+` ORDER BY seq ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("finding issues: %w", err)
	}
	defer rows.Close()

	out := []models.Issue{}
	for rows.Next() {
		var t models.Issue
		if err := rows.Scan(
			&t.ID, &t.Project, &t.Title, &t.Text, &t.CreatedBy, &t.AssignedTo,
			&t.StatusText, &t.Open, &t.CreatedOn, &t.UpdatedOn,
		); err != nil {
			return nil, fmt.Errorf("scanning issue: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// -----------------------------------------------------------------------------
// Update / delete (single document)
// -----------------------------------------------------------------------------

// UpdateOne sets the given columns on the first issue matching m. Every
// caller includes updated_on, so a matched row always counts as modified.
func (r *IssueRepo) UpdateOne(ctx context.Context, m repository.Match, set repository.Set) (repository.UpdateResult, error) {
	cols := set.Columns()
	if len(cols) == 0 {
		return repository.UpdateResult{}, fmt.Errorf("updating issue: empty set")
	}
	whereSQL, args := buildIssueWhere(m)

	assigns := make([]string, 0, len(cols))
	for _, c := range cols {
		args = append(args, set[c])
		assigns = append(assigns, pgx.Identifier{c}.Sanitize()+" = $"+itoa(len(args)))
	}

	// The subquery pins the write to one row even when m is not keyed by id.
	sql := `UPDATE issues SET ` + strings.Join(assigns, ", ") + `
		WHERE id = (SELECT id FROM issues ` + whereSQL + ` ORDER BY seq LIMIT 1)`
	ct, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("updating issue: %w", err)
	}
	n := ct.RowsAffected()
	return repository.UpdateResult{Matched: n, Modified: n}, nil
}

func (r *IssueRepo) DeleteOne(ctx context.Context, m repository.Match) (repository.DeleteResult, error) {
	whereSQL, args := buildIssueWhere(m)
	ct, err := r.db.Exec(ctx, `
		DELETE FROM issues
		WHERE id = (SELECT id FROM issues `+whereSQL+` ORDER BY seq LIMIT 1)`, args...)
	if err != nil {
		return repository.DeleteResult{}, fmt.Errorf("deleting issue: %w", err)
	}
	return repository.DeleteResult{Deleted: ct.RowsAffected()}, nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// buildIssueWhere composes the WHERE clause and args for an equality match.
// Column names come from repository.Match.Columns, which only yields known
// issue fields.
func buildIssueWhere(m repository.Match) (string, []any) {
	args := []any{m.Project}
	clauses := []string{"project = $1"}

	if m.ID != "" {
		args = append(args, m.ID)
		clauses = append(clauses, "id = $"+itoa(len(args))+"::uuid")
	}
	for _, c := range m.Columns() {
		args = append(args, m.Fields[c])
		clauses = append(clauses, pgx.Identifier{c}.Sanitize()+" = $"+itoa(len(args)))
	}

	return "WHERE " + strings.Join(clauses, " AND "), args
}

func itoa(i int) string { return strconv.Itoa(i) }
