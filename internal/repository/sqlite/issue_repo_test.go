package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuetracker/internal/models"
	"issuetracker/internal/repository"
)

func newTestRepo(t *testing.T) *IssueRepo {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewIssueRepo(db)
}

func newIssue(project, title string) *models.Issue {
	now := time.Now().UTC()
	return &models.Issue{
		Project:   project,
		Title:     title,
		Text:      "text",
		CreatedBy: "tester",
		Open:      true,
		CreatedOn: now,
		UpdatedOn: now,
	}
}

func TestIssueRepo_InsertAssignsID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newIssue("p", "a")
	b := newIssue("p", "b")
	require.NoError(t, repo.Insert(ctx, a))
	require.NoError(t, repo.Insert(ctx, b))

	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	_, err := repository.ParseID(a.ID)
	assert.NoError(t, err)
}

func TestIssueRepo_FindRoundTripsAndKeepsInsertionOrder(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := newIssue("p", "first")
	first.AssignedTo = "Dom"
	first.StatusText = "Not Done"
	require.NoError(t, repo.Insert(ctx, first))
	require.NoError(t, repo.Insert(ctx, newIssue("other", "x")))
	require.NoError(t, repo.Insert(ctx, newIssue("p", "second")))

	got, err := repo.Find(ctx, repository.Match{Project: "p"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)

	f := got[0]
	assert.Equal(t, first.ID, f.ID)
	assert.Equal(t, "p", f.Project)
	assert.Equal(t, "text", f.Text)
	assert.Equal(t, "tester", f.CreatedBy)
	assert.Equal(t, "Dom", f.AssignedTo)
	assert.Equal(t, "Not Done", f.StatusText)
	assert.True(t, f.Open)
	assert.True(t, first.CreatedOn.Equal(f.CreatedOn))
	assert.True(t, first.UpdatedOn.Equal(f.UpdatedOn))
}

func TestIssueRepo_FindEmptyIsNotNil(t *testing.T) {
	repo := newTestRepo(t)

	got, err := repo.Find(context.Background(), repository.Match{Project: "nothing"})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestIssueRepo_FindByFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newIssue("p", "a")
	a.AssignedTo = "Jasmine"
	a.Open = false
	require.NoError(t, repo.Insert(ctx, a))
	require.NoError(t, repo.Insert(ctx, newIssue("p", "b")))

	got, err := repo.Find(ctx, repository.Match{Project: "p", Fields: map[string]any{
		repository.ColOpen:       false,
		repository.ColAssignedTo: "Jasmine",
	}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.Find(ctx, repository.Match{Project: "p", Fields: map[string]any{
		repository.ColCreatedOn: a.CreatedOn,
	}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ID)

	got, err = repo.Find(ctx, repository.Match{Project: "p", ID: a.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestIssueRepo_UpdateOne(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newIssue("p", "a")
	require.NoError(t, repo.Insert(ctx, a))
	later := a.UpdatedOn.Add(time.Hour)

	res, err := repo.UpdateOne(ctx, repository.Match{Project: "p", ID: a.ID}, repository.Set{
		repository.ColTitle:     "renamed",
		repository.ColOpen:      false,
		repository.ColUpdatedOn: later,
	})
	require.NoError(t, err)
	assert.Equal(t, repository.UpdateResult{Matched: 1, Modified: 1}, res)

	got, err := repo.Find(ctx, repository.Match{Project: "p", ID: a.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "renamed", got[0].Title)
	assert.False(t, got[0].Open)
	assert.Equal(t, "text", got[0].Text)
	assert.True(t, later.Equal(got[0].UpdatedOn))

	res, err = repo.UpdateOne(ctx, repository.Match{Project: "q", ID: a.ID}, repository.Set{repository.ColTitle: "nope"})
	require.NoError(t, err)
	assert.Zero(t, res.Matched)

	_, err = repo.UpdateOne(ctx, repository.Match{Project: "p", ID: a.ID}, repository.Set{"bogus": 1})
	assert.Error(t, err)
}

func TestIssueRepo_UpdateOneTouchesSingleRow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Insert(ctx, newIssue("p", "same")))
	require.NoError(t, repo.Insert(ctx, newIssue("p", "same")))

	res, err := repo.UpdateOne(ctx, repository.Match{Project: "p", Fields: map[string]any{repository.ColTitle: "same"}},
		repository.Set{repository.ColTitle: "changed"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)

	got, err := repo.Find(ctx, repository.Match{Project: "p"})
	require.NoError(t, err)
	assert.Equal(t, "changed", got[0].Title)
	assert.Equal(t, "same", got[1].Title)
}

func TestIssueRepo_DeleteOne(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := newIssue("p", "a")
	require.NoError(t, repo.Insert(ctx, a))

	res, err := repo.DeleteOne(ctx, repository.Match{Project: "q", ID: a.ID})
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)

	res, err = repo.DeleteOne(ctx, repository.Match{Project: "p", ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Deleted)

	res, err = repo.DeleteOne(ctx, repository.Match{Project: "p", ID: a.ID})
	require.NoError(t, err)
	assert.Zero(t, res.Deleted)
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(":memory:")
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, Migrate(db))
}
