package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"issuetracker/internal/models"
	"issuetracker/internal/repository"

	"github.com/rs/zerolog"
)

// updatable lists the body keys update may write, mapped to their column.
// "status" is accepted as an alias of status_text.
var updatable = []struct{ key, col string }{
	{repository.ColTitle, repository.ColTitle},
	{repository.ColText, repository.ColText},
	{repository.ColCreatedBy, repository.ColCreatedBy},
	{repository.ColAssignedTo, repository.ColAssignedTo},
	{repository.ColStatusText, repository.ColStatusText},
	{"status", repository.ColStatusText},
	{repository.ColOpen, repository.ColOpen},
}

var errInvalidOpen = errors.New(`open must be "true" or "false"`)

// IssueService validates issue requests and translates them into record
// store calls. It keeps no state between requests.
type IssueService struct {
	store   repository.IssueStore
	log     zerolog.Logger
	timeout time.Duration
	now     func() time.Time
}

// NewIssueService wires the service to a long-lived store handle. A positive
// timeout bounds every store call.
func NewIssueService(store repository.IssueStore, log zerolog.Logger, timeout time.Duration) *IssueService {
	return &IssueService{store: store, log: log, timeout: timeout, now: time.Now}
}

func (s *IssueService) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return context.WithCancel(ctx)
}

// Create stores a new open issue under project. issue_title, issue_text and
// created_by are required; assigned_to and status_text default to "".
func (s *IssueService) Create(ctx context.Context, project string, b Body) (*models.Issue, error) {
	for _, k := range []string{repository.ColTitle, repository.ColText, repository.ColCreatedBy} {
		if !b.present(k) {
			return nil, &Error{Kind: MissingRequiredFields}
		}
	}

	title, _ := b.text(repository.ColTitle)
	text, _ := b.text(repository.ColText)
	createdBy, _ := b.text(repository.ColCreatedBy)
	assignedTo, _ := b.text(repository.ColAssignedTo)
	statusText, _ := b.text(repository.ColStatusText)

	now := s.now().UTC()
	issue := &models.Issue{
		Project:    project,
		Title:      title,
		Text:       text,
		CreatedBy:  createdBy,
		AssignedTo: assignedTo,
		StatusText: statusText,
		Open:       true,
		CreatedOn:  now,
		UpdatedOn:  now,
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.store.Insert(sctx, issue); err != nil {
		s.log.Error().Err(err).Str("project", project).Msg("issue insert failed")
		return nil, fmt.Errorf("creating issue: %w", err)
	}
	return issue, nil
}

// List returns the issues of project matching every filter, in insertion
// order. It never fails for application reasons; a filter that cannot match
// yields an empty list.
func (s *IssueService) List(ctx context.Context, project string, filters url.Values) ([]models.Issue, error) {
	m, ok := translateFilters(project, filters)
	if !ok {
		return []models.Issue{}, nil
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	items, err := s.store.Find(sctx, m)
	if err != nil {
		s.log.Error().Err(err).Str("project", project).Msg("issue find failed")
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	if items == nil {
		items = []models.Issue{}
	}
	return items, nil
}

// Update merges the supplied fields into the issue identified by _id within
// project and refreshes updated_on. Blank values count as not sent.
func (s *IssueService) Update(ctx context.Context, project string, b Body) (*Result, error) {
	id, ok := requireID(b)
	if !ok {
		return nil, &Error{Kind: MissingID}
	}

	set, err := updateSet(b)
	if err == nil && len(set) == 0 {
		return nil, &Error{Kind: NoUpdateFields, ID: id}
	}
	if err != nil {
		return nil, s.failed(UpdateFailed, project, id, err)
	}

	canon, err := repository.ParseID(id)
	if err != nil {
		return nil, s.failed(UpdateFailed, project, id, err)
	}
	set[repository.ColUpdatedOn] = s.now().UTC()

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	res, err := s.store.UpdateOne(sctx, repository.Match{Project: project, ID: canon}, set)
	if err != nil {
		return nil, s.failed(UpdateFailed, project, id, err)
	}
	if res.Matched == 0 {
		return nil, s.failed(UpdateFailed, project, id, repository.ErrNotFound)
	}
	return &Result{Result: "successfully updated", ID: id}, nil
}

// Delete removes the issue identified by _id within project.
func (s *IssueService) Delete(ctx context.Context, project string, b Body) (*Result, error) {
	id, ok := requireID(b)
	if !ok {
		return nil, &Error{Kind: MissingID}
	}

	canon, err := repository.ParseID(id)
	if err != nil {
		return nil, s.failed(DeleteFailed, project, id, err)
	}

	sctx, cancel := s.storeCtx(ctx)
	defer cancel()
	res, err := s.store.DeleteOne(sctx, repository.Match{Project: project, ID: canon})
	if err != nil {
		return nil, s.failed(DeleteFailed, project, id, err)
	}
	if res.Deleted == 0 {
		return nil, s.failed(DeleteFailed, project, id, repository.ErrNotFound)
	}
	return &Result{Result: "successfully deleted", ID: id}, nil
}

// failed builds the client error for a store operation and logs the cause.
// Clients see one error per operation; logs keep expected misses apart from
// infrastructure failures.
func (s *IssueService) failed(kind ErrorKind, project, id string, cause error) *Error {
	ev := s.log.Error()
	if errors.Is(cause, repository.ErrNotFound) || errors.Is(cause, repository.ErrInvalidID) || errors.Is(cause, errInvalidOpen) {
		ev = s.log.Debug()
	}
	ev.Err(cause).Str("project", project).Str("_id", id).Msg(kind.Message())
	return &Error{Kind: kind, ID: id, Err: cause}
}

func requireID(b Body) (string, bool) {
	id, ok := b.text("_id")
	if !ok || strings.TrimSpace(id) == "" {
		return "", false
	}
	return id, true
}

// updateSet collects the non-blank updatable fields of b. An explicit
// status_text wins over its "status" alias.
func updateSet(b Body) (repository.Set, error) {
	set := repository.Set{}
	var err error
	for _, f := range updatable {
		if !b.present(f.key) {
			continue
		}
		if _, taken := set[f.col]; taken {
			continue
		}
		raw, _ := b.text(f.key)
		if f.col != repository.ColOpen {
			set[f.col] = raw
			continue
		}
		open, ok := parseOpen(raw)
		if !ok {
			err = errInvalidOpen
			continue
		}
		set[f.col] = open
	}
	return set, err
}
