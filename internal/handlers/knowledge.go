package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

// knowledgePayload is the request body for creating or patching a
// knowledge entry. Every field is optional in the payload; create checks
// the required ones up front, patch applies only what is present.
type knowledgePayload struct {
	Title                 *string           `json:"title"`
	Description           *string           `json:"description"`
	Content               *string           `json:"content"`
	Summary               *string           `json:"summary"`
	Category              *string           `json:"category"`
	Subcategory           *string           `json:"subcategory"`
	Tags                  *model.StringList `json:"tags"`
	Keywords              *model.StringList `json:"keywords"`
	Priority              *string           `json:"priority"`
	Status                *string           `json:"status"`
	BranchID              *int64            `json:"branch_id"`
	RelatedLegislationIDs *model.IDList     `json:"related_legislation_ids"`
	RelatedLawIDs         *model.IDList     `json:"related_law_ids"`
	Author                *string           `json:"author"`
	Source                *string           `json:"source"`
	IsActive              *bool             `json:"is_active"`
	CreatedBy             *string           `json:"created_by"`
}

// require checks that the fields a new entry needs are present, writing
// a 422 when one is missing.
func (p *knowledgePayload) require(c *fiber.Ctx) bool {
	if p.Title == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	}
	if p.Content == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "content is required")
		return false
	}
	if p.Category == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "category is required")
		return false
	}
	return true
}

// apply validates the fields the payload carries and copies them onto
// the entry, leaving omitted fields, identity and counters untouched.
// It writes a 422 and reports false on a bad value.
func (p *knowledgePayload) apply(c *fiber.Ctx, kb *model.KnowledgeBase) bool {
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		kb.Title = *p.Title
	}
	if p.Content != nil {
		if *p.Content == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "content cannot be empty")
			return false
		}
		kb.Content = *p.Content
	}
	if p.Category != nil {
		if *p.Category == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "category cannot be empty")
			return false
		}
		kb.Category = *p.Category
	}
	if p.Priority != nil {
		parsed, err := model.ParsePriority(*p.Priority)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		kb.Priority = parsed
	}
	if p.Status != nil {
		parsed, err := model.ParseKnowledgeStatus(*p.Status)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		kb.Status = parsed
	}
	if p.Description != nil {
		kb.Description = p.Description
	}
	if p.Summary != nil {
		kb.Summary = p.Summary
	}
	if p.Subcategory != nil {
		kb.Subcategory = p.Subcategory
	}
	if p.Tags != nil {
		kb.Tags = *p.Tags
	}
	if p.Keywords != nil {
		kb.Keywords = *p.Keywords
	}
	if p.BranchID != nil {
		kb.BranchID = p.BranchID
	}
	if p.RelatedLegislationIDs != nil {
		kb.RelatedLegislationIDs = *p.RelatedLegislationIDs
	}
	if p.RelatedLawIDs != nil {
		kb.RelatedLawIDs = *p.RelatedLawIDs
	}
	if p.Author != nil {
		kb.Author = p.Author
	}
	if p.Source != nil {
		kb.Source = p.Source
	}
	if p.CreatedBy != nil {
		kb.CreatedBy = p.CreatedBy
	}
	if p.IsActive != nil {
		kb.IsActive = *p.IsActive
	}
	return true
}

// KnowledgeListHandler returns one page of knowledge entries matching the
// query filters, which combine conjunctively.
func KnowledgeListHandler(kbStore *store.KnowledgeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		f := store.KnowledgeFilter{
			Category: c.Query("category"),
			Status:   c.Query("status"),
			Author:   c.Query("author"),
			Tag:      c.Query("tag"),
			Search:   c.Query("search"),
		}
		if f.Status != "" {
			if _, err := model.ParseKnowledgeStatus(f.Status); err != nil {
				return detail(c, fiber.StatusUnprocessableEntity, err.Error())
			}
		}

		items, total, err := kbStore.List(c.UserContext(), f, page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// KnowledgeGetHandler returns one entry by id and bumps its view count.
func KnowledgeGetHandler(kbStore *store.KnowledgeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		kb, err := kbStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if kb == nil {
			return notFound(c, "knowledge entry")
		}

		if err := kbStore.IncrementViewCount(c.UserContext(), id); err == nil {
			kb.ViewCount++
		}

		return c.JSON(kb)
	}
}

// KnowledgeCreateHandler creates an entry. Duplicate titles yield 409.
func KnowledgeCreateHandler(kbStore *store.KnowledgeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p knowledgePayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		kb := &model.KnowledgeBase{
			Priority: model.PriorityMedium,
			Status:   model.KnowledgeDraft,
			IsActive: true,
		}
		if !p.apply(c, kb) {
			return nil
		}

		if err := kbStore.Create(c.UserContext(), kb); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(kb)
	}
}

// KnowledgeUpdateHandler patches an entry. Omitted fields keep their
// values; an empty body is a no-op. Retitling onto an existing title
// yields 409.
func KnowledgeUpdateHandler(kbStore *store.KnowledgeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p knowledgePayload
		if !parseBody(c, &p) {
			return nil
		}

		kb, err := kbStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if kb == nil {
			return notFound(c, "knowledge entry")
		}

		// Nothing to change; skip the write so timestamps stay put.
		if p == (knowledgePayload{}) {
			return c.JSON(kb)
		}

		if !p.apply(c, kb) {
			return nil
		}
		if err := kbStore.Update(c.UserContext(), kb); err != nil {
			return storeError(c, err)
		}

		return c.JSON(kb)
	}
}

// KnowledgeDeleteHandler deletes an entry, returning 204 on success.
func KnowledgeDeleteHandler(kbStore *store.KnowledgeStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := kbStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "knowledge entry")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// KnowledgeReferencesHandler resolves the entry's weak references against
// the legislation and law tables, tombstoning deleted targets.
func KnowledgeReferencesHandler(kbStore *store.KnowledgeStore, resolver *service.RefResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		kb, err := kbStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if kb == nil {
			return notFound(c, "knowledge entry")
		}

		refs, err := resolver.Resolve(c.UserContext(), kb.RelatedLegislationIDs, kb.RelatedLawIDs)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(fiber.Map{
			"id":          kb.ID,
			"references":  refs,
			"resolved_at": time.Now().UTC(),
		})
	}
}
