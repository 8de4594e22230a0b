package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/store"
)

type legislationPayload struct {
	LegislationCode     *string           `json:"legislation_code"`
	Title               *string           `json:"title"`
	Description         *string           `json:"description"`
	Content             *string           `json:"content"`
	DocumentType        *string           `json:"document_type"`
	Status              *string           `json:"status"`
	IssuedDate          *time.Time        `json:"issued_date"`
	EffectiveDate       *time.Time        `json:"effective_date"`
	RepealDate          *time.Time        `json:"repeal_date"`
	IssuingAuthority    *string           `json:"issuing_authority"`
	Category            *string           `json:"category"`
	Keywords            *model.StringList `json:"keywords"`
	BranchID            *int64            `json:"branch_id"`
	SectionID           *int64            `json:"section_id"`
	ParentLegislationID *int64            `json:"parent_legislation_id"`
	VersionNumber       *int              `json:"version_number"`
	AmendmentNotes      *string           `json:"amendment_notes"`
	CreatedBy           *string           `json:"created_by"`
}

func (p *legislationPayload) require(c *fiber.Ctx) bool {
	switch {
	case p.LegislationCode == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "legislation_code is required")
		return false
	case p.Title == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	case p.Content == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "content is required")
		return false
	case p.IssuedDate == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "issued_date is required")
		return false
	}
	return true
}

func (p *legislationPayload) apply(c *fiber.Ctx, l *model.Legislation) bool {
	if p.LegislationCode != nil {
		if *p.LegislationCode == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "legislation_code cannot be empty")
			return false
		}
		l.LegislationCode = *p.LegislationCode
	}
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		l.Title = *p.Title
	}
	if p.Content != nil {
		if *p.Content == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "content cannot be empty")
			return false
		}
		l.Content = *p.Content
	}
	if p.DocumentType != nil {
		parsed, err := model.ParseDocumentType(*p.DocumentType)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		l.DocumentType = parsed
	}
	if p.Status != nil {
		parsed, err := model.ParseLegalStatus(*p.Status)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		l.Status = parsed
	}
	if p.IssuedDate != nil {
		l.IssuedDate = *p.IssuedDate
	}
	if p.EffectiveDate != nil {
		l.EffectiveDate = p.EffectiveDate
	}
	if p.RepealDate != nil {
		l.RepealDate = p.RepealDate
	}
	if p.IssuingAuthority != nil {
		l.IssuingAuthority = p.IssuingAuthority
	}
	if p.Category != nil {
		l.Category = p.Category
	}
	if p.Keywords != nil {
		l.Keywords = *p.Keywords
	}
	if p.BranchID != nil {
		l.BranchID = p.BranchID
	}
	if p.SectionID != nil {
		l.SectionID = p.SectionID
	}
	if p.ParentLegislationID != nil {
		l.ParentLegislationID = p.ParentLegislationID
	}
	if p.AmendmentNotes != nil {
		l.AmendmentNotes = p.AmendmentNotes
	}
	if p.CreatedBy != nil {
		l.CreatedBy = p.CreatedBy
	}
	if p.VersionNumber != nil {
		l.VersionNumber = *p.VersionNumber
	}
	return true
}

// LegislationListHandler returns one page of legislation.
func LegislationListHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		f := store.LegislationFilter{
			Status:   c.Query("status"),
			Category: c.Query("category"),
			BranchID: int64(c.QueryInt("branch_id")),
		}
		if f.Status != "" {
			if _, err := model.ParseLegalStatus(f.Status); err != nil {
				return detail(c, fiber.StatusUnprocessableEntity, err.Error())
			}
		}

		items, total, err := legStore.List(c.UserContext(), f, page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// LegislationGetHandler returns one legislation by id.
func LegislationGetHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := legStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "legislation")
		}

		return c.JSON(l)
	}
}

// LegislationCreateHandler creates a legislation. Duplicate codes yield
// 409; a parent reference that would form a cycle yields 422.
func LegislationCreateHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p legislationPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		l := &model.Legislation{
			DocumentType:  model.DocLegislation,
			Status:        model.StatusActive,
			VersionNumber: 1,
		}
		if !p.apply(c, l) {
			return nil
		}

		if err := legStore.Create(c.UserContext(), l); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

// LegislationUpdateHandler patches a legislation, re-checking the
// amendment chain for cycles when the parent changes.
func LegislationUpdateHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p legislationPayload
		if !parseBody(c, &p) {
			return nil
		}

		l, err := legStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "legislation")
		}

		if p == (legislationPayload{}) {
			return c.JSON(l)
		}

		if !p.apply(c, l) {
			return nil
		}
		if err := legStore.Update(c.UserContext(), l); err != nil {
			return storeError(c, err)
		}

		return c.JSON(l)
	}
}

// LegislationDeleteHandler deletes a legislation. Amendments that point
// at it keep existing with their parent reference nulled out.
func LegislationDeleteHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := legStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "legislation")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// LegislationAmendmentsHandler lists the legislation that directly amend
// the given one.
func LegislationAmendmentsHandler(legStore *store.LegislationStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := legStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "legislation")
		}

		amendments, err := legStore.ListAmendments(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(amendments)
	}
}
