package testutil

import (
	"context"
	"sync/atomic"
	"testing"

	"issuetracker/internal/models"
	"issuetracker/internal/repository"
	"issuetracker/internal/repository/sqlite"
)

// NewTestStore returns an issue store backed by an in-memory SQLite database
// with the schema applied. The database is closed when the test completes.
func NewTestStore(t *testing.T) *sqlite.IssueRepo {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return sqlite.NewIssueRepo(db)
}

// CountingStore wraps an IssueStore and counts calls per operation. When Err
// is set every call fails with it instead of reaching the wrapped store.
type CountingStore struct {
	repository.IssueStore
	Err error

	Inserts atomic.Int32
	Finds   atomic.Int32
	Updates atomic.Int32
	Deletes atomic.Int32
}

// Calls returns the total number of store calls seen so far.
func (c *CountingStore) Calls() int32 {
	return c.Inserts.Load() + c.Finds.Load() + c.Updates.Load() + c.Deletes.Load()
}

func (c *CountingStore) Insert(ctx context.Context, t *models.Issue) error {
	c.Inserts.Add(1)
	if c.Err != nil {
		return c.Err
	}
	return c.IssueStore.Insert(ctx, t)
}

func (c *CountingStore) Find(ctx context.Context, m repository.Match) ([]models.Issue, error) {
	c.Finds.Add(1)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.IssueStore.Find(ctx, m)
}

func (c *CountingStore) UpdateOne(ctx context.Context, m repository.Match, set repository.Set) (repository.UpdateResult, error) {
	c.Updates.Add(1)
	if c.Err != nil {
		return repository.UpdateResult{}, c.Err
	}
	return c.IssueStore.UpdateOne(ctx, m, set)
}

func (c *CountingStore) DeleteOne(ctx context.Context, m repository.Match) (repository.DeleteResult, error) {
	c.Deletes.Add(1)
	if c.Err != nil {
		return repository.DeleteResult{}, c.Err
	}
	return c.IssueStore.DeleteOne(ctx, m)
}
