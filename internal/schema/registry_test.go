package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/lexbank/internal/model"
)

func TestRegistryModelOrder(t *testing.T) {
	models := NewRegistry().Models()
	require.Len(t, models, 9)

	// Parents must migrate before the tables that reference them.
	want := []any{
		&model.Branch{}, &model.Section{}, &model.Legislation{},
		&model.Law{}, &model.Article{}, &model.Clause{},
		&model.KnowledgeBase{}, &model.News{}, &model.LibraryItem{},
	}
	for i, m := range models {
		assert.IsType(t, want[i], m, "position %d", i)
	}
}

func TestForeignKeyStatements(t *testing.T) {
	require.Len(t, foreignKeys, 13)

	cascade, setNull := 0, 0
	for _, stmt := range foreignKeys {
		assert.True(t, strings.HasPrefix(stmt, "ALTER TABLE "), stmt)
		assert.Contains(t, stmt, "ADD CONSTRAINT fk_")
		switch {
		case strings.Contains(stmt, "ON DELETE CASCADE"):
			cascade++
		case strings.Contains(stmt, "ON DELETE SET NULL"):
			setNull++
		default:
			t.Errorf("statement missing delete rule: %s", stmt)
		}
	}
	assert.Equal(t, 4, cascade)
	assert.Equal(t, 9, setNull)
}

func TestIsDuplicateConstraint(t *testing.T) {
	assert.False(t, isDuplicateConstraint(nil))
	assert.True(t, isDuplicateConstraint(errors.New(`constraint "fk_sections_branch" for relation "sections" already exists`)))
	assert.True(t, isDuplicateConstraint(errors.New("ERROR: duplicate object (SQLSTATE 42710)")))
	assert.False(t, isDuplicateConstraint(errors.New("connection refused")))
}
