package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryCreateAssignsFilePath(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)INSERT INTO library_items.*RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/library", `{
		"title": "Court procedure handbook",
		"category": "handbook",
		"document_type": "law",
		"file_name": "handbook.pdf"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	path, _ := body["file_path"].(string)
	assert.True(t, strings.HasPrefix(path, "/library/"), "file_path: %q", path)
	assert.True(t, strings.HasSuffix(path, "-handbook.pdf"), "file_path: %q", path)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryCreateIgnoresClientFilePath(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectQuery(`(?s)INSERT INTO library_items.*RETURNING id`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(8)))

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/library", `{
		"title": "Court procedure handbook",
		"category": "handbook",
		"document_type": "law",
		"file_name": "handbook.pdf",
		"file_path": "../../etc/passwd"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	path, _ := body["file_path"].(string)
	assert.True(t, strings.HasPrefix(path, "/library/"), "file_path: %q", path)
	assert.NotContains(t, path, "..")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLibraryCreateMissingFileName(t *testing.T) {
	app, _ := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/v1/library", `{
		"title": "Court procedure handbook",
		"category": "handbook",
		"document_type": "law"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body["detail"], "file_name")
}
