package service

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"issuetracker/internal/repository"
)

func TestTranslateFilters(t *testing.T) {
	id := repository.NewID()
	ts := time.Date(2026, 1, 2, 3, 4, 5, 600, time.FixedZone("CET", 3600))

	m, ok := translateFilters("apitest", url.Values{
		"_id":         {id},
		"open":        {"FALSE"},
		"assigned_to": {"Joe", "ignored"},
		"created_on":  {ts.Format(time.RFC3339Nano)},
		"project":     {"other"},
	})
	require.True(t, ok)
	assert.Equal(t, "apitest", m.Project)
	assert.Equal(t, id, m.ID)
	assert.Equal(t, map[string]any{
		"open":        false,
		"assigned_to": "Joe",
		"created_on":  ts.UTC(),
	}, m.Fields)
	assert.Equal(t, []string{"assigned_to", "created_on", "open"}, m.Columns())
}

func TestTranslateFilters_EmptyQuery(t *testing.T) {
	m, ok := translateFilters("apitest", nil)
	require.True(t, ok)
	assert.Equal(t, "apitest", m.Project)
	assert.Empty(t, m.ID)
	assert.Empty(t, m.Fields)
}

func TestTranslateFilters_EmptyTextMatchesEmptyValue(t *testing.T) {
	m, ok := translateFilters("apitest", url.Values{"status_text": {""}})
	require.True(t, ok)
	assert.Equal(t, "", m.Fields["status_text"])
}

func TestParseOpen(t *testing.T) {
	for in, want := range map[string]bool{"true": true, "True": true, " false ": false, "FALSE": false} {
		got, ok := parseOpen(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "1", "yes", "t"} {
		_, ok := parseOpen(in)
		assert.False(t, ok, in)
	}
}
