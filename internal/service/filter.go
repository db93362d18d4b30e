package service

import (
	"net/url"
	"time"

	"issuetracker/internal/repository"
)

// translateFilters turns list query parameters into an equality match on
// project plus one constraint per parameter. The second result is false when
// some filter can never match a stored issue: an unknown field, a malformed
// _id, or a value that does not coerce to the field's type ("open" accepts
// only "true"/"false", timestamps must be RFC 3339). A "project" parameter is
// ignored; the path segment always wins.
func translateFilters(project string, q url.Values) (repository.Match, bool) {
	m := repository.Match{Project: project, Fields: map[string]any{}}
	for key := range q {
		raw := q.Get(key)
		switch key {
		case "project":
			continue
		case "_id":
			id, err := repository.ParseID(raw)
			if err != nil {
				return m, false
			}
			m.ID = id
			continue
		}

		kind, ok := repository.FieldKind(key)
		if !ok {
			return m, false
		}
		v, ok := coerceFilter(kind, raw)
		if !ok {
			return m, false
		}
		m.Fields[key] = v
	}
	return m, true
}

func coerceFilter(kind repository.Kind, raw string) (any, bool) {
	switch kind {
	case repository.KindBool:
		return parseOpen(raw)
	case repository.KindTime:
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, false
		}
		return t.UTC(), true
	default:
		return raw, true
	}
}
