package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/lexbank/internal/model"
)

func newLegislationMock(t *testing.T) (*LegislationStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLegislationStore(db), mock
}

func ptrInt64(v int64) *int64 { return &v }

const parentQuery = `SELECT parent_legislation_id FROM legislations WHERE id = \$1`

func parentRow(parent any) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"parent_legislation_id"}).AddRow(parent)
}

func TestLegislationCreateWithRootParent(t *testing.T) {
	s, mock := newLegislationMock(t)

	// Parent 5 exists and ends the chain.
	mock.ExpectQuery(parentQuery).WithArgs(int64(5)).
		WillReturnRows(parentRow(nil))
	mock.ExpectQuery(`INSERT INTO legislations`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(6)))

	l := &model.Legislation{
		LegislationCode:     "AMEND-1",
		Title:               "Amendment",
		Content:             "text",
		DocumentType:        model.DocLegislation,
		Status:              model.StatusActive,
		IssuedDate:          time.Now().UTC(),
		ParentLegislationID: ptrInt64(5),
	}
	require.NoError(t, s.Create(context.Background(), l))
	assert.Equal(t, int64(6), l.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLegislationUpdateSelfParentRejected(t *testing.T) {
	s, _ := newLegislationMock(t)

	l := &model.Legislation{ID: 3, ParentLegislationID: ptrInt64(3)}
	err := s.Update(context.Background(), l)
	assert.ErrorIs(t, err, ErrAmendmentCycle)
}

func TestLegislationUpdateAncestorCycleRejected(t *testing.T) {
	s, mock := newLegislationMock(t)

	// 1 -> parent 2, but 2's chain leads back to 1.
	mock.ExpectQuery(parentQuery).WithArgs(int64(2)).
		WillReturnRows(parentRow(int64(4)))
	mock.ExpectQuery(parentQuery).WithArgs(int64(4)).
		WillReturnRows(parentRow(int64(1)))

	l := &model.Legislation{ID: 1, ParentLegislationID: ptrInt64(2)}
	err := s.Update(context.Background(), l)
	assert.ErrorIs(t, err, ErrAmendmentCycle)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLegislationUpdateDeepChainRejected(t *testing.T) {
	s, mock := newLegislationMock(t)

	// A corrupted chain looping between 2 and 3 never reaches a root;
	// the bounded walk gives up.
	next := int64(3)
	for i := 0; i < maxAmendmentDepth; i++ {
		mock.ExpectQuery(parentQuery).WillReturnRows(parentRow(next))
		if next == 3 {
			next = 2
		} else {
			next = 3
		}
	}

	l := &model.Legislation{ID: 1, ParentLegislationID: ptrInt64(2)}
	err := s.Update(context.Background(), l)
	assert.ErrorIs(t, err, ErrAmendmentCycle)
}

func TestLegislationUpdateNoParent(t *testing.T) {
	s, mock := newLegislationMock(t)

	mock.ExpectExec(`UPDATE legislations`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	l := &model.Legislation{
		ID:              1,
		LegislationCode: "ETA-2019",
		Title:           "Electronic Transactions Act",
		Content:         "text",
		DocumentType:    model.DocLegislation,
		Status:          model.StatusActive,
		IssuedDate:      time.Now().UTC(),
	}
	require.NoError(t, s.Update(context.Background(), l))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLegislationListAmendments(t *testing.T) {
	s, mock := newLegislationMock(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{
		"id", "legislation_code", "title", "description", "content", "document_type",
		"status", "issued_date", "effective_date", "repeal_date", "issuing_authority",
		"category", "keywords", "branch_id", "section_id", "parent_legislation_id",
		"version_number", "amendment_notes", "created_by", "created_at", "updated_at",
	}).AddRow(
		int64(2), "AMEND-1", "Amendment", nil, "text", "legislation",
		"active", now, nil, nil, nil,
		nil, nil, nil, nil, int64(1),
		1, nil, nil, now, now,
	)

	mock.ExpectQuery(`(?s)SELECT .+ FROM legislations WHERE parent_legislation_id = \$1 ORDER BY issued_date`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	amendments, err := s.ListAmendments(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, amendments, 1)
	assert.Equal(t, "AMEND-1", amendments[0].LegislationCode)
	require.NotNil(t, amendments[0].ParentLegislationID)
	assert.Equal(t, int64(1), *amendments[0].ParentLegislationID)
}
