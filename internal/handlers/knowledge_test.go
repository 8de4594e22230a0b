package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

func newTestApp(t *testing.T) (*fiber.App, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	legislationStore := store.NewLegislationStore(db)
	lawStore := store.NewLawStore(db)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	Register(app, Deps{
		Branches:    store.NewBranchStore(db),
		Sections:    store.NewSectionStore(db),
		Legislation: legislationStore,
		Laws:        lawStore,
		Articles:    store.NewArticleStore(db),
		Clauses:     store.NewClauseStore(db),
		Knowledge:   store.NewKnowledgeStore(db),
		News:        store.NewNewsStore(db),
		Library:     store.NewLibraryStore(db),
		Resolver:    service.NewRefResolver(legislationStore, lawStore),
		Stats:       service.NewStatsService(db),
	})
	return app, mock
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed), "body: %s", raw)
	}
	return resp, parsed
}

var kbCols = []string{
	"id", "title", "description", "content", "summary", "category", "subcategory",
	"tags", "keywords", "priority", "status", "branch_id",
	"related_legislation_ids", "related_law_ids", "author", "source",
	"is_active", "view_count", "created_by", "created_at", "updated_at",
}

func kbRow(id int64, title string, legIDs string) *sqlmock.Rows {
	now := time.Now().UTC()
	var legs any
	if legIDs != "" {
		legs = []byte(legIDs)
	}
	return sqlmock.NewRows(kbCols).AddRow(
		id, title, nil, "content", nil, "contracts", nil,
		[]byte(`["signature"]`), nil, "medium", "published", nil,
		legs, nil, nil, nil,
		true, int64(3), nil, now, now,
	)
}

func TestKnowledgeListDefaults(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM knowledge_base`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base ORDER BY id OFFSET \$1 LIMIT \$2`).
		WithArgs(0, 10).
		WillReturnRows(kbRow(1, "Entry", ""))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total"])
	assert.EqualValues(t, 0, body["skip"])
	assert.EqualValues(t, 10, body["limit"])
	assert.Len(t, body["items"], 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeListCapsLimit(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM knowledge_base`)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base ORDER BY id OFFSET \$1 LIMIT \$2`).
		WithArgs(0, 100).
		WillReturnRows(sqlmock.NewRows(kbCols))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank?limit=500", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 100, body["limit"])
}

func TestKnowledgeListRejectsBadPagination(t *testing.T) {
	app, _ := newTestApp(t)

	for _, target := range []string{
		"/api/v1/knowledge-bank?skip=-1",
		"/api/v1/knowledge-bank?skip=abc",
		"/api/v1/knowledge-bank?limit=0",
		"/api/v1/knowledge-bank?limit=-5",
	} {
		resp, body := doJSON(t, app, http.MethodGet, target, "")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, target)
		assert.Contains(t, body, "detail", target)
	}
}

func TestKnowledgeListRejectsBadStatus(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank?status=bogus", "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["detail"], "bogus")
}

func TestKnowledgeGetIncrementsViewCount(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(7)).
		WillReturnRows(kbRow(7, "Entry", ""))
	mock.ExpectExec(`UPDATE knowledge_base SET view_count = view_count \+ 1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank/7", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 7, body["id"])
	assert.EqualValues(t, 4, body["view_count"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeGetNotFound(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(kbCols))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank/999", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestKnowledgeGetBadIDIsNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank/abc", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestKnowledgeCreate(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`INSERT INTO knowledge_base`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/knowledge-bank",
		`{"title": "New entry", "content": "body", "category": "contracts", "tags": ["tax"]}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.EqualValues(t, 42, body["id"])
	assert.Equal(t, "draft", body["status"])
	assert.Equal(t, "medium", body["priority"])
	assert.Equal(t, true, body["is_active"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeCreateValidation(t *testing.T) {
	app, _ := newTestApp(t)

	cases := []string{
		`{"content": "body", "category": "c"}`,
		`{"title": "t", "category": "c"}`,
		`{"title": "t", "content": "body"}`,
		`{"title": "t", "content": "b", "category": "c", "status": "bogus"}`,
		`{"title": "t", "content": "b", "category": "c", "priority": "urgent"}`,
		`{not json`,
	}
	for _, payload := range cases {
		resp, body := doJSON(t, app, http.MethodPost, "/api/v1/knowledge-bank", payload)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, payload)
		assert.Contains(t, body, "detail", payload)
	}
}

func TestKnowledgeCreateDuplicateTitle(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`INSERT INTO knowledge_base`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_knowledge_base_title"})

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/knowledge-bank",
		`{"title": "Taken", "content": "body", "category": "contracts"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestKnowledgeUpdateRetitleConflict(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Original", ""))
	mock.ExpectExec(`UPDATE knowledge_base`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_knowledge_base_title"})

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/1",
		`{"title": "Taken"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestKnowledgePartialUpdatePreservesFields(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Original", ""))
	mock.ExpectExec(`UPDATE knowledge_base`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/1",
		`{"title": "Renamed"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Renamed", body["title"])
	// Fields absent from the patch keep their stored values.
	assert.Equal(t, "content", body["content"])
	assert.Equal(t, "contracts", body["category"])
	assert.Equal(t, "published", body["status"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeUpdateEmptyBodyIsNoOp(t *testing.T) {
	app, mock := newTestApp(t)

	// Only the read; an empty patch never reaches the database again.
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Original", ""))

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/1", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Original", body["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKnowledgeUpdateRowVanishedMidFlight(t *testing.T) {
	app, mock := newTestApp(t)

	// The read succeeds but a concurrent delete lands before the write.
	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Original", ""))
	mock.ExpectExec(`UPDATE knowledge_base`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/1",
		`{"title": "Renamed"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestKnowledgeUpdateRejectsEmptyTitle(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Original", ""))

	resp, body := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/1",
		`{"title": ""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestKnowledgeUpdateNotFound(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(kbCols))

	resp, _ := doJSON(t, app, http.MethodPatch, "/api/v1/knowledge-bank/999",
		`{"title": "t"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestKnowledgeDelete(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectExec(`DELETE FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/v1/knowledge-bank/5", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// A second delete finds nothing.
	mock.ExpectExec(`DELETE FROM knowledge_base WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	resp, body := doJSON(t, app, http.MethodDelete, "/api/v1/knowledge-bank/5", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "detail")
}

func TestKnowledgeMethodNotAllowed(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPut, "/api/v1/knowledge-bank", `{}`)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	// The router error comes back in the same JSON shape as handler errors.
	assert.Contains(t, body, "detail")
}

func TestKnowledgeReferences(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)SELECT .+ FROM knowledge_base WHERE id = \$1`).
		WillReturnRows(kbRow(1, "Entry", `[10,11]`))
	// Legislation 10 exists; 11 was deleted and is tombstoned.
	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT .+ FROM legislations WHERE id = \$1`).
		WithArgs(int64(10)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "legislation_code", "title", "description", "content", "document_type",
			"status", "issued_date", "effective_date", "repeal_date", "issuing_authority",
			"category", "keywords", "branch_id", "section_id", "parent_legislation_id",
			"version_number", "amendment_notes", "created_by", "created_at", "updated_at",
		}).AddRow(
			int64(10), "ETA-2019", "Electronic Transactions Act", nil, "text", "legislation",
			"active", now, nil, nil, nil,
			nil, nil, nil, nil, nil,
			1, nil, nil, now, now,
		))
	mock.ExpectQuery(`(?s)SELECT .+ FROM legislations WHERE id = \$1`).
		WithArgs(int64(11)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	resp, body := doJSON(t, app, http.MethodGet, "/api/v1/knowledge-bank/1/references", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	refs, ok := body["references"].([]any)
	require.True(t, ok)
	require.Len(t, refs, 2)

	first := refs[0].(map[string]any)
	assert.Equal(t, true, first["found"])
	assert.Equal(t, "ETA-2019", first["code"])

	second := refs[1].(map[string]any)
	assert.Equal(t, false, second["found"])
	assert.EqualValues(t, 11, second["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
