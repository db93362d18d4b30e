package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"issuetracker/internal/models"
	"issuetracker/internal/service"
	"issuetracker/internal/utils"
)

// IssueService is the part of service.IssueService the HTTP layer needs.
type IssueService interface {
	Create(ctx context.Context, project string, b service.Body) (*models.Issue, error)
	List(ctx context.Context, project string, filters url.Values) ([]models.Issue, error)
	Update(ctx context.Context, project string, b service.Body) (*service.Result, error)
	Delete(ctx context.Context, project string, b service.Body) (*service.Result, error)
}

// IssueHTTP wires the /api/issues/{project} endpoints to the issue service.
// Every outcome the service defines is answered with 200; clients tell
// failures apart by the "error" key.
type IssueHTTP struct {
	svc IssueService
	log zerolog.Logger
}

func NewIssueHTTP(svc IssueService, log zerolog.Logger) *IssueHTTP {
	return &IssueHTTP{svc: svc, log: log}
}

// -----------------------------------------------------------------------------
// GET /api/issues/{project}?field=value...
// -----------------------------------------------------------------------------
func (h *IssueHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := h.svc.List(r.Context(), chi.URLParam(r, "project"), r.URL.Query())
		if err != nil {
			h.storeFailure(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, items)
	}
}

// -----------------------------------------------------------------------------
// POST /api/issues/{project}
// -----------------------------------------------------------------------------
func (h *IssueHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		issue, err := h.svc.Create(r.Context(), chi.URLParam(r, "project"), h.body(r))
		if err != nil {
			h.respondErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, issue)
	}
}

// -----------------------------------------------------------------------------
// PUT /api/issues/{project}
// -----------------------------------------------------------------------------
func (h *IssueHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.Update(r.Context(), chi.URLParam(r, "project"), h.body(r))
		if err != nil {
			h.respondErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// -----------------------------------------------------------------------------
// DELETE /api/issues/{project}
// -----------------------------------------------------------------------------
func (h *IssueHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.svc.Delete(r.Context(), chi.URLParam(r, "project"), h.body(r))
		if err != nil {
			h.respondErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, res)
	}
}

// body decodes the request body. A body that does not decode is treated as
// empty, which the service reports as missing fields.
func (h *IssueHTTP) body(r *http.Request) service.Body {
	b, err := utils.DecodeBody(r)
	if err != nil {
		h.log.Debug().Err(err).Str("path", r.URL.Path).Msg("undecodable request body")
	}
	return service.Body(b)
}

func (h *IssueHTTP) respondErr(w http.ResponseWriter, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		h.storeFailure(w, err)
		return
	}
	out := map[string]string{"error": se.Kind.Message()}
	if se.ID != "" {
		out["_id"] = se.ID
	}
	utils.JSON(w, http.StatusOK, out)
}

// storeFailure answers create/list store errors, which have no payload shape
// of their own.
func (h *IssueHTTP) storeFailure(w http.ResponseWriter, err error) {
	h.log.Error().Err(err).Msg("store failure")
	utils.Error(w, http.StatusInternalServerError, "internal error")
}
