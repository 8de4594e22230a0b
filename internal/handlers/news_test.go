package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var newsCols = []string{
	"id", "title", "content", "summary", "slug", "category", "tags", "priority",
	"branch_id", "related_legislation_ids", "related_law_ids",
	"featured_image_url", "author", "source", "is_published", "is_featured",
	"published_date", "view_count", "created_by", "created_at", "updated_at",
}

func newsRow(id int64, title, slug string) *sqlmock.Rows {
	now := time.Now().UTC()
	return sqlmock.NewRows(newsCols).AddRow(
		id, title, "content", nil, slug, "legislation", nil, "medium",
		nil, nil, nil,
		nil, nil, nil, true, false,
		now, int64(0), nil, now, now,
	)
}

func TestNewsCreateDerivesSlugAndPublishDate(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`INSERT INTO news`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(3)))

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/news",
		`{"title": "Court Fees Revised!", "content": "text", "category": "courts", "is_published": true}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "court-fees-revised", body["slug"])
	assert.NotNil(t, body["published_date"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewsCreateValidation(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/news",
		`{"title": "No category", "content": "text"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestNewsGetBySlug(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM news WHERE slug = \$1`).
		WithArgs("court-fees-revised").
		WillReturnRows(newsRow(3, "Court Fees Revised!", "court-fees-revised"))
	mock.ExpectExec(`UPDATE news SET view_count = view_count \+ 1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/news/slug/court-fees-revised", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, body["id"])
	assert.EqualValues(t, 1, body["view_count"])
}

func TestNewsListPublishedFilter(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM news WHERE is_published = \$1`).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM news WHERE is_published = \$1 ORDER BY`).
		WithArgs(true, 0, 10).
		WillReturnRows(newsRow(3, "Item", "item"))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/news?published=true", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/news?published=maybe", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestNewsPublishStampsDate(t *testing.T) {
	app, mock := newTestApp(t)

	now := time.Now().UTC()
	draft := sqlmock.NewRows(newsCols).AddRow(
		int64(3), "Draft item", "content", nil, "draft-item", "courts", nil, "medium",
		nil, nil, nil,
		nil, nil, nil, false, false,
		nil, int64(0), nil, now, now,
	)
	mock.ExpectQuery(`(?s)SELECT .+ FROM news WHERE id = \$1`).
		WillReturnRows(draft)
	mock.ExpectExec(`UPDATE news`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/news/3",
		`{"is_published": true}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["is_published"])
	assert.NotNil(t, body["published_date"])
	// The rest of the record is untouched.
	assert.Equal(t, "Draft item", body["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBranchSectionLifecycle(t *testing.T) {
	app, mock := newTestApp(t)

	branchCols := []string{
		"id", "code", "name", "description", "head_name", "email", "phone",
		"address", "is_active", "created_at", "updated_at",
	}
	now := time.Now().UTC()
	branchRow := func() *sqlmock.Rows {
		return sqlmock.NewRows(branchCols).AddRow(
			int64(1), "CIV", "Civil Law", nil, nil, nil, nil, nil, true, now, now)
	}

	// Create the branch.
	mock.ExpectQuery(`INSERT INTO branches`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/branches",
		`{"code": "CIV", "name": "Civil Law"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, body["id"])

	// Attach a section; the handler checks the branch first.
	mock.ExpectQuery(`(?s)SELECT .+ FROM branches WHERE id = \$1`).
		WillReturnRows(branchRow())
	mock.ExpectQuery(`INSERT INTO sections`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(10)))
	resp, body = doJSON(t, app, http.MethodPost, "/api/v1/branches/1/sections",
		`{"code": "OBL", "name": "Obligations"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 1, body["branch_id"])

	// Deleting the branch takes its sections with it.
	mock.ExpectExec(`DELETE FROM branches WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/v1/branches/1", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
