package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"issuetracker/internal/models"
	"issuetracker/internal/repository"
)

// IssueRepo implements repository.IssueStore on a SQLite database.
type IssueRepo struct {
	db *sql.DB
}

// NewIssueRepo creates a new IssueRepo. The schema must already exist; see
// Migrate.
func NewIssueRepo(db *sql.DB) *IssueRepo {
	return &IssueRepo{db: db}
}

var _ repository.IssueStore = (*IssueRepo)(nil)

const timeLayout = time.RFC3339Nano

const issueColumns = `id, project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on`

func (r *IssueRepo) Insert(ctx context.Context, t *models.Issue) error {
	id := repository.NewID()
	query := `INSERT INTO issues (id, project, issue_title, issue_text, created_by, assigned_to, status_text, open, created_on, updated_on)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		id,
		t.Project,
		t.Title,
		t.Text,
		t.CreatedBy,
		t.AssignedTo,
		t.StatusText,
		t.Open,
		formatTime(t.CreatedOn),
		formatTime(t.UpdatedOn),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	t.ID = id
	return nil
}

func (r *IssueRepo) Find(ctx context.Context, m repository.Match) ([]models.Issue, error) {
	where, args := buildIssueWhere(m)
	rows, err := r.db.QueryContext(ctx, `SELECT `+issueColumns+` FROM issues `+where+` ORDER BY seq`, args...)
	if err != nil {
		return nil, fmt.Errorf("finding issues: %w", err)
	}
	defer rows.Close()

	issues := []models.Issue{}
	for rows.Next() {
		t, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		issues = append(issues, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return issues, nil
}

func (r *IssueRepo) UpdateOne(ctx context.Context, m repository.Match, set repository.Set) (repository.UpdateResult, error) {
	cols := set.Columns()
	if len(cols) == 0 {
		return repository.UpdateResult{}, fmt.Errorf("updating issue: empty set")
	}

	assigns := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for _, c := range cols {
		assigns = append(assigns, quote(c)+" = ?")
		args = append(args, bindValue(set[c]))
	}
	where, whereArgs := buildIssueWhere(m)
	args = append(args, whereArgs...)

	query := `UPDATE issues SET ` + strings.Join(assigns, ", ") + `
		WHERE seq = (SELECT seq FROM issues ` + where + ` ORDER BY seq LIMIT 1)`
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("updating issue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return repository.UpdateResult{}, fmt.Errorf("checking rows affected: %w", err)
	}
	return repository.UpdateResult{Matched: n, Modified: n}, nil
}

func (r *IssueRepo) DeleteOne(ctx context.Context, m repository.Match) (repository.DeleteResult, error) {
	where, args := buildIssueWhere(m)
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM issues WHERE seq = (SELECT seq FROM issues `+where+` ORDER BY seq LIMIT 1)`, args...)
	if err != nil {
		return repository.DeleteResult{}, fmt.Errorf("deleting issue: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return repository.DeleteResult{}, fmt.Errorf("checking rows affected: %w", err)
	}
	return repository.DeleteResult{Deleted: n}, nil
}

// buildIssueWhere mirrors the postgres builder with ? placeholders and
// SQLite-friendly bind values.
func buildIssueWhere(m repository.Match) (string, []any) {
	clauses := []string{"project = ?"}
	args := []any{m.Project}

	if m.ID != "" {
		clauses = append(clauses, "id = ?")
		args = append(args, m.ID)
	}
	for _, c := range m.Columns() {
		clauses = append(clauses, quote(c)+" = ?")
		args = append(args, bindValue(m.Fields[c]))
	}
	return "WHERE " + strings.Join(clauses, " AND "), args
}

type scanner interface {
	Scan(dest ...any) error
}

func scanIssue(s scanner) (models.Issue, error) {
	var (
		t                    models.Issue
		createdOn, updatedOn string
	)
	err := s.Scan(&t.ID, &t.Project, &t.Title, &t.Text, &t.CreatedBy, &t.AssignedTo,
		&t.StatusText, &t.Open, &createdOn, &updatedOn)
	if err != nil {
		return models.Issue{}, fmt.Errorf("scanning issue: %w", err)
	}
	if t.CreatedOn, err = time.Parse(timeLayout, createdOn); err != nil {
		return models.Issue{}, fmt.Errorf("parsing created_on: %w", err)
	}
	if t.UpdatedOn, err = time.Parse(timeLayout, updatedOn); err != nil {
		return models.Issue{}, fmt.Errorf("parsing updated_on: %w", err)
	}
	return t, nil
}

func bindValue(v any) any {
	if t, ok := v.(time.Time); ok {
		return formatTime(t)
	}
	return v
}

func formatTime(t time.Time) string { return t.UTC().Format(timeLayout) }

func quote(col string) string { return `"` + col + `"` }
