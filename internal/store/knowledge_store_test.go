package store

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/lexbank/internal/model"
)

func newMockDB(t *testing.T) (*KnowledgeStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewKnowledgeStore(db), mock
}

var knowledgeCols = []string{
	"id", "title", "description", "content", "summary", "category", "subcategory",
	"tags", "keywords", "priority", "status", "branch_id",
	"related_legislation_ids", "related_law_ids", "author", "source",
	"is_active", "view_count", "created_by", "created_at", "updated_at",
}

func knowledgeRow(id int64, title string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(knowledgeCols).AddRow(
		id, title, nil, "content", nil, "contracts", nil,
		[]byte(`["tag-a"]`), nil, "medium", "published", nil,
		[]byte(`[1,2]`), nil, nil, nil,
		true, int64(3), nil, now, now,
	)
}

func TestKnowledgeStoreCreate(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO knowledge_base`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	kb := &model.KnowledgeBase{
		Title:    "Entry",
		Content:  "body",
		Category: "contracts",
		Priority: model.PriorityMedium,
		Status:   model.KnowledgeDraft,
	}
	require.NoError(t, s.Create(context.Background(), kb))

	assert.Equal(t, int64(42), kb.ID)
	assert.False(t, kb.CreatedAt.IsZero())
	assert.Equal(t, kb.CreatedAt, kb.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeStoreCreateDuplicateTitle(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO knowledge_base`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_knowledge_base_title"})

	err := s.Create(context.Background(), &model.KnowledgeBase{Title: "Entry"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestKnowledgeStoreCreateBadBranch(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`INSERT INTO knowledge_base`).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "fk_knowledge_base_branch"})

	err := s.Create(context.Background(), &model.KnowledgeBase{Title: "Entry"})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestKnowledgeStoreGetByID(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(knowledgeRow(7, "Entry"))

	kb, err := s.GetByID(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, kb)
	assert.Equal(t, "Entry", kb.Title)
	assert.Equal(t, model.StringList{"tag-a"}, kb.Tags)
	assert.Equal(t, model.IDList{1, 2}, kb.RelatedLegislationIDs)
	assert.Empty(t, kb.RelatedLawIDs)
	assert.Equal(t, model.KnowledgePublished, kb.Status)
}

func TestKnowledgeStoreGetByIDMissing(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(knowledgeCols))

	kb, err := s.GetByID(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, kb)
}

func TestBuildFilter(t *testing.T) {
	where, args := buildFilter(KnowledgeFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = buildFilter(KnowledgeFilter{
		Category: "contracts",
		Status:   "published",
		Tag:      "tax",
		Search:   "signature",
	})
	assert.Equal(t,
		" WHERE category = $1 AND status = $2 AND tags ? $3 AND (title ILIKE $4 OR summary ILIKE $4)",
		where)
	assert.Equal(t, []any{"contracts", "published", "tax", "%signature%"}, args)
}

func TestKnowledgeStoreList(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM knowledge_base WHERE category = $1`)).
		WithArgs("contracts").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE category = \$1 ORDER BY id OFFSET \$2 LIMIT \$3`).
		WithArgs("contracts", 10, 5).
		WillReturnRows(knowledgeRow(11, "Entry"))

	items, total, err := s.List(context.Background(),
		KnowledgeFilter{Category: "contracts"}, 10, 5)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.Len(t, items, 1)
	assert.Equal(t, int64(11), items[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeStoreListEmptyPage(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM knowledge_base`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base ORDER BY id OFFSET \$1 LIMIT \$2`).
		WillReturnRows(sqlmock.NewRows(knowledgeCols))

	items, total, err := s.List(context.Background(), KnowledgeFilter{}, 100, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestKnowledgeStoreUpdateConflict(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE knowledge_base`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_knowledge_base_title"})

	err := s.Update(context.Background(), &model.KnowledgeBase{ID: 1, Title: "Taken"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestKnowledgeStoreUpdateVanishedRow(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE knowledge_base`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := s.Update(context.Background(), &model.KnowledgeBase{ID: 1, Title: "Gone"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKnowledgeStoreDelete(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`DELETE FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := s.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, deleted)

	mock.ExpectExec(`DELETE FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err = s.Delete(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestKnowledgeStoreIncrementViewCount(t *testing.T) {
	s, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE knowledge_base SET view_count = view_count \+ 1 WHERE id = \$1`).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, s.IncrementViewCount(context.Background(), 9))
	assert.NoError(t, mock.ExpectationsWereMet())
}
