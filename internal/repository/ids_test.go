package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id := NewID()
	got, err := ParseID(id)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// Alternate spellings resolve to the canonical form.
	got, err = ParseID("  {0B1C2D3E-4F50-4617-8293-A4B5C6D7E8F9} ")
	require.NoError(t, err)
	assert.Equal(t, "0b1c2d3e-4f50-4617-8293-a4b5c6d7e8f9", got)
}

func TestParseID_Malformed(t *testing.T) {
	for _, in := range []string{"", "5fe0c500ec2f6f4c1815a770", "5fe0c500ec2f6f4c1815a770invalid", "not-a-uuid"} {
		_, err := ParseID(in)
		assert.ErrorIs(t, err, ErrInvalidID, in)
	}
}

func TestMatchColumns_SkipsUnknownFields(t *testing.T) {
	m := Match{Fields: map[string]any{ColTitle: "a", ColOpen: true, "evil\"; --": 1}}
	assert.Equal(t, []string{ColTitle, ColOpen}, m.Columns())

	s := Set{ColUpdatedOn: 1, ColAssignedTo: "x"}
	assert.Equal(t, []string{ColAssignedTo, ColUpdatedOn}, s.Columns())
}

func TestFieldKind(t *testing.T) {
	k, ok := FieldKind(ColOpen)
	assert.True(t, ok)
	assert.Equal(t, KindBool, k)

	k, ok = FieldKind(ColUpdatedOn)
	assert.True(t, ok)
	assert.Equal(t, KindTime, k)

	_, ok = FieldKind("_id")
	assert.False(t, ok)
	_, ok = FieldKind("project")
	assert.False(t, ok)
}
