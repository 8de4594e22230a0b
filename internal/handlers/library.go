package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/store"
)

type libraryPayload struct {
	Title                 *string           `json:"title"`
	Description           *string           `json:"description"`
	Category              *string           `json:"category"`
	DocumentType          *string           `json:"document_type"`
	FileName              *string           `json:"file_name"`
	FileSize              *int64            `json:"file_size"`
	FileMimeType          *string           `json:"file_mime_type"`
	Tags                  *model.StringList `json:"tags"`
	Keywords              *model.StringList `json:"keywords"`
	BranchID              *int64            `json:"branch_id"`
	RelatedLegislationIDs *model.IDList     `json:"related_legislation_ids"`
	RelatedLawIDs         *model.IDList     `json:"related_law_ids"`
	Author                *string           `json:"author"`
	Source                *string           `json:"source"`
	PublicationDate       *time.Time        `json:"publication_date"`
	IsActive              *bool             `json:"is_active"`
	CreatedBy             *string           `json:"created_by"`
}

func (p *libraryPayload) require(c *fiber.Ctx) bool {
	switch {
	case p.Title == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	case p.Category == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "category is required")
		return false
	case p.DocumentType == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "document_type is required")
		return false
	case p.FileName == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "file_name is required")
		return false
	}
	return true
}

func (p *libraryPayload) apply(c *fiber.Ctx, li *model.LibraryItem) bool {
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		li.Title = *p.Title
	}
	if p.Category != nil {
		if *p.Category == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "category cannot be empty")
			return false
		}
		li.Category = *p.Category
	}
	if p.DocumentType != nil {
		parsed, err := model.ParseDocumentType(*p.DocumentType)
		if err != nil {
			_ = detail(c, fiber.StatusUnprocessableEntity, err.Error())
			return false
		}
		li.DocumentType = parsed
	}
	if p.FileName != nil {
		if *p.FileName == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "file_name cannot be empty")
			return false
		}
		li.FileName = *p.FileName
	}
	if p.Description != nil {
		li.Description = p.Description
	}
	if p.FileSize != nil {
		li.FileSize = p.FileSize
	}
	if p.FileMimeType != nil {
		li.FileMimeType = p.FileMimeType
	}
	if p.Tags != nil {
		li.Tags = *p.Tags
	}
	if p.Keywords != nil {
		li.Keywords = *p.Keywords
	}
	if p.BranchID != nil {
		li.BranchID = p.BranchID
	}
	if p.RelatedLegislationIDs != nil {
		li.RelatedLegislationIDs = *p.RelatedLegislationIDs
	}
	if p.RelatedLawIDs != nil {
		li.RelatedLawIDs = *p.RelatedLawIDs
	}
	if p.Author != nil {
		li.Author = p.Author
	}
	if p.Source != nil {
		li.Source = p.Source
	}
	if p.PublicationDate != nil {
		li.PublicationDate = p.PublicationDate
	}
	if p.CreatedBy != nil {
		li.CreatedBy = p.CreatedBy
	}
	if p.IsActive != nil {
		li.IsActive = *p.IsActive
	}
	return true
}

// LibraryListHandler returns one page of library items.
func LibraryListHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		f := store.LibraryFilter{
			Category:     c.Query("category"),
			DocumentType: c.Query("document_type"),
			Tag:          c.Query("tag"),
		}
		if f.DocumentType != "" {
			if _, err := model.ParseDocumentType(f.DocumentType); err != nil {
				return detail(c, fiber.StatusUnprocessableEntity, err.Error())
			}
		}

		items, total, err := libStore.List(c.UserContext(), f, page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// LibraryGetHandler returns one library item by id.
func LibraryGetHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		li, err := libStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if li == nil {
			return notFound(c, "library item")
		}

		return c.JSON(li)
	}
}

// LibraryDownloadHandler records a download and returns the item's file
// metadata. Blob storage lives elsewhere; this endpoint hands back the
// path for the file server.
func LibraryDownloadHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		li, err := libStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if li == nil {
			return notFound(c, "library item")
		}

		if err := libStore.IncrementDownloadCount(c.UserContext(), id); err == nil {
			li.DownloadCount++
		}

		return c.JSON(fiber.Map{
			"id":             li.ID,
			"file_name":      li.FileName,
			"file_path":      li.FilePath,
			"file_size":      li.FileSize,
			"file_mime_type": li.FileMimeType,
			"download_count": li.DownloadCount,
		})
	}
}

// LibraryCreateHandler creates a library item. The storage path is
// assigned here, not taken from the client, so uploads can never name
// a path outside the library root.
func LibraryCreateHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p libraryPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		li := &model.LibraryItem{IsActive: true}
		if !p.apply(c, li) {
			return nil
		}
		li.FilePath = "/library/" + uuid.NewString() + "-" + li.FileName

		if err := libStore.Create(c.UserContext(), li); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(li)
	}
}

// LibraryUpdateHandler patches a library item; omitted fields keep
// their values.
func LibraryUpdateHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p libraryPayload
		if !parseBody(c, &p) {
			return nil
		}

		li, err := libStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if li == nil {
			return notFound(c, "library item")
		}

		if p == (libraryPayload{}) {
			return c.JSON(li)
		}

		if !p.apply(c, li) {
			return nil
		}
		if err := libStore.Update(c.UserContext(), li); err != nil {
			return storeError(c, err)
		}

		return c.JSON(li)
	}
}

// LibraryDeleteHandler deletes a library item's metadata record.
func LibraryDeleteHandler(libStore *store.LibraryStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := libStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "library item")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
