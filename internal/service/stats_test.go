package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsServiceCollect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	counts := []struct {
		query string
		n     int
	}{
		{`SELECT COUNT(*) FROM branches`, 2},
		{`SELECT COUNT(*) FROM sections`, 5},
		{`SELECT COUNT(*) FROM legislations`, 10},
		{`SELECT COUNT(*) FROM laws`, 4},
		{`SELECT COUNT(*) FROM articles`, 40},
		{`SELECT COUNT(*) FROM clauses`, 120},
		{`SELECT COUNT(*) FROM knowledge_base`, 9},
		{`SELECT COUNT(*) FROM knowledge_base WHERE status = 'published'`, 6},
		{`SELECT COUNT(*) FROM news`, 3},
		{`SELECT COUNT(*) FROM news WHERE is_published`, 1},
		{`SELECT COUNT(*) FROM library_items`, 7},
	}
	for _, c := range counts {
		mock.ExpectQuery(regexp.QuoteMeta(c.query)).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(c.n))
	}

	stats, err := NewStatsService(db).Collect(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Branches)
	assert.Equal(t, 10, stats.Legislation)
	assert.Equal(t, 120, stats.Clauses)
	assert.Equal(t, 9, stats.KnowledgeEntries)
	assert.Equal(t, 6, stats.PublishedEntries)
	assert.Equal(t, 1, stats.PublishedNews)
	assert.Equal(t, 7, stats.LibraryItems)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatsServiceCollectError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM branches`)).
		WillReturnError(assert.AnError)

	_, err = NewStatsService(db).Collect(context.Background())
	assert.Error(t, err)
}
