package repository

import (
	"context"

	"issuetracker/internal/models"
)

// IssueStore is the record store behind the issue service. Every method
// matches documents by field equality only.
type IssueStore interface {
	// Insert persists a new issue and fills in the store-assigned ID.
	Insert(ctx context.Context, issue *models.Issue) error
	Find(ctx context.Context, m Match) ([]models.Issue, error)
	UpdateOne(ctx context.Context, m Match, set Set) (UpdateResult, error)
	DeleteOne(ctx context.Context, m Match) (DeleteResult, error)
}

type UpdateResult struct {
	Matched  int64
	Modified int64
}

type DeleteResult struct {
	Deleted int64
}
