package repository

import "sort"

// Kind is the stored type of an issue field.
type Kind int

const (
	KindText Kind = iota
	KindBool
	KindTime
)

// Column names shared by every store backend. They double as the JSON keys
// of models.Issue.
const (
	ColTitle      = "issue_title"
	ColText       = "issue_text"
	ColCreatedBy  = "created_by"
	ColAssignedTo = "assigned_to"
	ColStatusText = "status_text"
	ColOpen       = "open"
	ColCreatedOn  = "created_on"
	ColUpdatedOn  = "updated_on"
)

var fieldKinds = map[string]Kind{
	ColTitle:      KindText,
	ColText:       KindText,
	ColCreatedBy:  KindText,
	ColAssignedTo: KindText,
	ColStatusText: KindText,
	ColOpen:       KindBool,
	ColCreatedOn:  KindTime,
	ColUpdatedOn:  KindTime,
}

// FieldKind reports the stored type of a matchable issue field. _id and
// project are not fields here; they have dedicated slots on Match.
func FieldKind(name string) (Kind, bool) {
	k, ok := fieldKinds[name]
	return k, ok
}

// Match is an equality query. Project is always part of it; ID, when set,
// holds a canonical id from ParseID. Fields maps column names to string,
// bool or time.Time values according to FieldKind.
type Match struct {
	Project string
	ID      string
	Fields  map[string]any
}

// Columns returns the field names of m in a stable order.
func (m Match) Columns() []string { return sortedKeys(m.Fields) }

// Set holds the column values written by UpdateOne.
type Set map[string]any

func (s Set) Columns() []string { return sortedKeys(s) }

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if _, ok := fieldKinds[k]; ok {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
