package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openjuris/lexbank/internal/model"
)

type fakeLegislationGetter struct {
	rows map[int64]*model.Legislation
	err  error
}

func (f *fakeLegislationGetter) GetByID(_ context.Context, id int64) (*model.Legislation, error) {
	return f.rows[id], f.err
}

type fakeLawGetter struct {
	rows map[int64]*model.Law
	err  error
}

func (f *fakeLawGetter) GetByID(_ context.Context, id int64) (*model.Law, error) {
	return f.rows[id], f.err
}

func TestRefResolverTombstonesMissingTargets(t *testing.T) {
	legs := &fakeLegislationGetter{rows: map[int64]*model.Legislation{
		1: {ID: 1, LegislationCode: "ETA-2019", Title: "Electronic Transactions Act"},
	}}
	laws := &fakeLawGetter{rows: map[int64]*model.Law{
		7: {ID: 7, LawCode: "LCP-2015", Title: "Law on Consumer Protection"},
	}}

	r := NewRefResolver(legs, laws)
	refs, err := r.Resolve(context.Background(), model.IDList{1, 2}, model.IDList{7, 8})
	require.NoError(t, err)
	require.Len(t, refs, 4)

	assert.Equal(t, ResolvedRef{
		ID: 1, Kind: "legislation", Found: true,
		Code: "ETA-2019", Title: "Electronic Transactions Act",
	}, refs[0])
	assert.Equal(t, ResolvedRef{ID: 2, Kind: "legislation"}, refs[1])
	assert.Equal(t, ResolvedRef{
		ID: 7, Kind: "law", Found: true,
		Code: "LCP-2015", Title: "Law on Consumer Protection",
	}, refs[2])
	assert.Equal(t, ResolvedRef{ID: 8, Kind: "law"}, refs[3])
}

func TestRefResolverEmptyLists(t *testing.T) {
	r := NewRefResolver(&fakeLegislationGetter{}, &fakeLawGetter{})
	refs, err := r.Resolve(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestRefResolverPropagatesStoreErrors(t *testing.T) {
	r := NewRefResolver(
		&fakeLegislationGetter{err: errors.New("connection lost")},
		&fakeLawGetter{},
	)
	_, err := r.Resolve(context.Background(), model.IDList{1}, nil)
	assert.Error(t, err)
}
