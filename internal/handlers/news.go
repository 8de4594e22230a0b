package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

type newsPayload struct {
	Title                 *string           `json:"title"`
	Content               *string           `json:"content"`
	Summary               *string           `json:"summary"`
	Slug                  *string           `json:"slug"`
	Category              *string           `json:"category"`
	Tags                  *model.StringList `json:"tags"`
	Priority              *string           `json:"priority"`
	BranchID              *int64            `json:"branch_id"`
	RelatedLegislationIDs *model.IDList     `json:"related_legislation_ids"`
	RelatedLawIDs         *model.IDList     `json:"related_law_ids"`
	FeaturedImageURL      *string           `json:"featured_image_url"`
	Author                *string           `json:"author"`
	Source                *string           `json:"source"`
	IsPublished           *bool             `json:"is_published"`
	IsFeatured            *bool             `json:"is_featured"`
	PublishedDate         *time.Time        `json:"published_date"`
	CreatedBy             *string           `json:"created_by"`
}

func (p *newsPayload) require(c *fiber.Ctx) bool {
	switch {
	case p.Title == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	case p.Content == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "content is required")
		return false
	case p.Category == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "category is required")
		return false
	}
	return true
}

// apply validates the provided fields and copies them onto a news item.
// A missing slug is derived from the title; publishing without a date
// stamps the current time.
func (p *newsPayload) apply(c *fiber.Ctx, n *model.News) bool {
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		n.Title = *p.Title
	}
	if p.Content != nil {
		if *p.Content == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "content cannot be empty")
			return false
		}
		n.Content = *p.Content
	}
	if p.Category != nil {
		if *p.Category == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "category cannot be empty")
			return false
		}
		n.Category = *p.Category
	}
	if p.Priority != nil {
		parsed, err := model.ParsePriority(*p.Priority)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		n.Priority = parsed
	}
	if p.Summary != nil {
		n.Summary = p.Summary
	}
	if p.Tags != nil {
		n.Tags = *p.Tags
	}
	if p.BranchID != nil {
		n.BranchID = p.BranchID
	}
	if p.RelatedLegislationIDs != nil {
		n.RelatedLegislationIDs = *p.RelatedLegislationIDs
	}
	if p.RelatedLawIDs != nil {
		n.RelatedLawIDs = *p.RelatedLawIDs
	}
	if p.FeaturedImageURL != nil {
		n.FeaturedImageURL = p.FeaturedImageURL
	}
	if p.Author != nil {
		n.Author = p.Author
	}
	if p.Source != nil {
		n.Source = p.Source
	}
	if p.CreatedBy != nil {
		n.CreatedBy = p.CreatedBy
	}

	if p.Slug != nil && *p.Slug != "" {
		n.Slug = p.Slug
	} else if n.Slug == nil {
		slug := service.Slugify(n.Title)
		if slug != "" {
			n.Slug = &slug
		}
	}

	if p.IsPublished != nil {
		n.IsPublished = *p.IsPublished
	}
	if p.IsFeatured != nil {
		n.IsFeatured = *p.IsFeatured
	}
	if p.PublishedDate != nil {
		n.PublishedDate = p.PublishedDate
	}
	if n.IsPublished && n.PublishedDate == nil {
		now := time.Now().UTC()
		n.PublishedDate = &now
	}
	return true
}

// NewsListHandler returns one page of news items.
func NewsListHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		f := store.NewsFilter{
			Category: c.Query("category"),
			Author:   c.Query("author"),
			Tag:      c.Query("tag"),
		}
		if raw := c.Query("published"); raw != "" {
			published, err := strconv.ParseBool(raw)
			if err != nil {
				return detail(c, fiber.StatusUnprocessableEntity, "published must be a boolean")
			}
			f.Published = &published
		}

		items, total, err := newsStore.List(c.UserContext(), f, page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// NewsGetHandler returns one news item by id and bumps its view count.
func NewsGetHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		n, err := newsStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if n == nil {
			return notFound(c, "news item")
		}

		if err := newsStore.IncrementViewCount(c.UserContext(), id); err == nil {
			n.ViewCount++
		}

		return c.JSON(n)
	}
}

// NewsGetBySlugHandler returns one news item by slug and bumps its view
// count.
func NewsGetBySlugHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params("slug")

		n, err := newsStore.GetBySlug(c.UserContext(), slug)
		if err != nil {
			return storeError(c, err)
		}
		if n == nil {
			return notFound(c, "news item")
		}

		if err := newsStore.IncrementViewCount(c.UserContext(), n.ID); err == nil {
			n.ViewCount++
		}

		return c.JSON(n)
	}
}

// NewsCreateHandler creates a news item. Duplicate slugs yield 409.
func NewsCreateHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p newsPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		n := &model.News{Priority: model.PriorityMedium}
		if !p.apply(c, n) {
			return nil
		}

		if err := newsStore.Create(c.UserContext(), n); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(n)
	}
}

// NewsUpdateHandler patches a news item; omitted fields keep their
// values.
func NewsUpdateHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p newsPayload
		if !parseBody(c, &p) {
			return nil
		}

		n, err := newsStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if n == nil {
			return notFound(c, "news item")
		}

		if p == (newsPayload{}) {
			return c.JSON(n)
		}

		if !p.apply(c, n) {
			return nil
		}
		if err := newsStore.Update(c.UserContext(), n); err != nil {
			return storeError(c, err)
		}

		return c.JSON(n)
	}
}

// NewsDeleteHandler deletes a news item.
func NewsDeleteHandler(newsStore *store.NewsStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := newsStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "news item")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
