package reconcile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Change ID", "change id"},
		{"  PRIORITY\t", "priority"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}

	assert.Equal(t, "CHG-1", NormalizeKey("  CHG-1 "))
}

func TestResolveFields(t *testing.T) {
	t.Run("RequiredAndOptional", func(t *testing.T) {
		fs, err := ResolveFields(targetHeader(), sourceHeader(), testSpec)
		require.NoError(t, err)

		assert.Equal(t, "change id", fs.Key)
		assert.Equal(t, []string{"change id", "priority", "description", "status"}, fs.Fields)
		assert.Equal(t, map[string]int{"change id": 1, "priority": 2, "description": 3, "status": 5}, fs.Target)
		assert.Equal(t, map[string]int{"change id": 1, "priority": 2, "description": 3, "status": 4}, fs.Source)

		target, source := fs.KeyColumns()
		assert.Equal(t, 1, target)
		assert.Equal(t, 1, source)
	})

	t.Run("OptionalMissingFromSource", func(t *testing.T) {
		fs, err := ResolveFields(targetHeader(), []string{"Change ID", "Priority", "Description"}, testSpec)
		require.NoError(t, err)
		assert.Equal(t, []string{"change id", "priority", "description"}, fs.Fields)
	})

	t.Run("OptionalMissingFromTarget", func(t *testing.T) {
		fs, err := ResolveFields([]string{"Change ID", "Priority", "Description"}, sourceHeader(), testSpec)
		require.NoError(t, err)
		assert.Contains(t, fs.Fields, "status")
		_, ok := fs.Target["status"]
		assert.False(t, ok)
	})

	t.Run("KeyImpliedRequired", func(t *testing.T) {
		spec := FieldSpec{Key: "ID", Required: []string{"name"}}
		_, err := ResolveFields([]string{"name"}, []string{"id", "name"}, spec)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrSchemaMismatch))
		assert.Contains(t, err.Error(), `"id"`)
	})

	t.Run("FirstHeaderOccurrenceWins", func(t *testing.T) {
		fs, err := ResolveFields(
			[]string{"", "Change ID", "change id", "Priority", "Description"},
			sourceHeader(),
			testSpec,
		)
		require.NoError(t, err)
		assert.Equal(t, 2, fs.Target["change id"])
	})
}

func TestSectionNotFoundError(t *testing.T) {
	err := error(&SectionNotFoundError{Name: "charm", Available: []string{"Sheet1", "data"}})
	assert.True(t, errors.Is(err, ErrSectionNotFound))
	assert.Equal(t, `section "charm" not found (available: Sheet1, data)`, err.Error())
}
