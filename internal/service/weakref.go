// Package service holds domain logic that spans stores: weak-reference
// resolution, content statistics, slug generation and database seeding.
package service

import (
	"context"
	"fmt"

	"github.com/openjuris/lexbank/internal/model"
)

// legislationGetter is the slice of LegislationStore the resolver needs.
type legislationGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Legislation, error)
}

// lawGetter is the slice of LawStore the resolver needs.
type lawGetter interface {
	GetByID(ctx context.Context, id int64) (*model.Law, error)
}

// ResolvedRef is the outcome of resolving one weak reference. A missing
// target is reported as a tombstone (Found=false), never an error: weak
// reference id lists are advisory and may point at deleted rows.
type ResolvedRef struct {
	ID    int64  `json:"id"`
	Kind  string `json:"kind"`
	Found bool   `json:"found"`
	Code  string `json:"code,omitempty"`
	Title string `json:"title,omitempty"`
}

// RefResolver resolves weak reference id lists against the legislation
// and law stores.
type RefResolver struct {
	legislation legislationGetter
	laws        lawGetter
}

// NewRefResolver creates a RefResolver.
func NewRefResolver(legislation legislationGetter, laws lawGetter) *RefResolver {
	return &RefResolver{legislation: legislation, laws: laws}
}

// Resolve looks up every referenced id and returns one ResolvedRef per
// id, tombstoning the ones that no longer exist.
func (r *RefResolver) Resolve(
	ctx context.Context, legislationIDs, lawIDs model.IDList,
) ([]ResolvedRef, error) {
	refs := make([]ResolvedRef, 0, len(legislationIDs)+len(lawIDs))

	for _, id := range legislationIDs {
		ref := ResolvedRef{ID: id, Kind: "legislation"}
		l, err := r.legislation.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve legislation %d: %w", id, err)
		}
		if l != nil {
			ref.Found = true
			ref.Code = l.LegislationCode
			ref.Title = l.Title
		}
		refs = append(refs, ref)
	}

	for _, id := range lawIDs {
		ref := ResolvedRef{ID: id, Kind: "law"}
		l, err := r.laws.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve law %d: %w", id, err)
		}
		if l != nil {
			ref.Found = true
			ref.Code = l.LawCode
			ref.Title = l.Title
		}
		refs = append(refs, ref)
	}

	return refs, nil
}
