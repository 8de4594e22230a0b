package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/store"
)

type branchPayload struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HeadName    *string `json:"head_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	IsActive    *bool   `json:"is_active"`
}

func (p *branchPayload) require(c *fiber.Ctx) bool {
	if p.Code == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "code is required")
		return false
	}
	if p.Name == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "name is required")
		return false
	}
	return true
}

func (p *branchPayload) apply(c *fiber.Ctx, b *model.Branch) bool {
	if p.Code != nil {
		if *p.Code == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "code cannot be empty")
			return false
		}
		b.Code = *p.Code
	}
	if p.Name != nil {
		if *p.Name == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "name cannot be empty")
			return false
		}
		b.Name = *p.Name
	}
	if p.Description != nil {
		b.Description = p.Description
	}
	if p.HeadName != nil {
		b.HeadName = p.HeadName
	}
	if p.Email != nil {
		b.Email = p.Email
	}
	if p.Phone != nil {
		b.Phone = p.Phone
	}
	if p.Address != nil {
		b.Address = p.Address
	}
	if p.IsActive != nil {
		b.IsActive = *p.IsActive
	}
	return true
}

// BranchListHandler returns one page of branches.
func BranchListHandler(branchStore *store.BranchStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		items, total, err := branchStore.List(c.UserContext(), page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// BranchGetHandler returns one branch by id.
func BranchGetHandler(branchStore *store.BranchStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		b, err := branchStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if b == nil {
			return notFound(c, "branch")
		}

		return c.JSON(b)
	}
}

// BranchCreateHandler creates a branch. Duplicate codes yield 409.
func BranchCreateHandler(branchStore *store.BranchStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p branchPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		b := &model.Branch{IsActive: true}
		if !p.apply(c, b) {
			return nil
		}

		if err := branchStore.Create(c.UserContext(), b); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(b)
	}
}

// BranchUpdateHandler patches a branch; omitted fields keep their values.
func BranchUpdateHandler(branchStore *store.BranchStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p branchPayload
		if !parseBody(c, &p) {
			return nil
		}

		b, err := branchStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if b == nil {
			return notFound(c, "branch")
		}

		if p == (branchPayload{}) {
			return c.JSON(b)
		}

		if !p.apply(c, b) {
			return nil
		}
		if err := branchStore.Update(c.UserContext(), b); err != nil {
			return storeError(c, err)
		}

		return c.JSON(b)
	}
}

// BranchDeleteHandler deletes a branch. Its sections go with it; optional
// references from other content are nulled out by the schema.
func BranchDeleteHandler(branchStore *store.BranchStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := branchStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "branch")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type sectionPayload struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	HeadName    *string `json:"head_name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	IsActive    *bool   `json:"is_active"`
}

func (p *sectionPayload) require(c *fiber.Ctx) bool {
	if p.Code == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "code is required")
		return false
	}
	if p.Name == nil {
		_ = detail(c, fiber.StatusUnprocessableEntity, "name is required")
		return false
	}
	return true
}

func (p *sectionPayload) apply(c *fiber.Ctx, s *model.Section) bool {
	if p.Code != nil {
		if *p.Code == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "code cannot be empty")
			return false
		}
		s.Code = *p.Code
	}
	if p.Name != nil {
		if *p.Name == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "name cannot be empty")
			return false
		}
		s.Name = *p.Name
	}
	if p.Description != nil {
		s.Description = p.Description
	}
	if p.HeadName != nil {
		s.HeadName = p.HeadName
	}
	if p.Email != nil {
		s.Email = p.Email
	}
	if p.Phone != nil {
		s.Phone = p.Phone
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
	return true
}

// BranchSectionsHandler lists the sections of a branch.
func BranchSectionsHandler(branchStore *store.BranchStore, sectionStore *store.SectionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		b, err := branchStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if b == nil {
			return notFound(c, "branch")
		}

		sections, err := sectionStore.ListByBranch(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(sections)
	}
}

// SectionCreateHandler creates a section under a branch. Section codes
// are unique per branch; a duplicate yields 409.
func SectionCreateHandler(branchStore *store.BranchStore, sectionStore *store.SectionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		b, err := branchStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if b == nil {
			return notFound(c, "branch")
		}

		var p sectionPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		s := &model.Section{BranchID: id, IsActive: true}
		if !p.apply(c, s) {
			return nil
		}

		if err := sectionStore.Create(c.UserContext(), s); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(s)
	}
}

// SectionGetHandler returns one section by id.
func SectionGetHandler(sectionStore *store.SectionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		s, err := sectionStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if s == nil {
			return notFound(c, "section")
		}

		return c.JSON(s)
	}
}

// SectionUpdateHandler patches a section, keeping its branch.
func SectionUpdateHandler(sectionStore *store.SectionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p sectionPayload
		if !parseBody(c, &p) {
			return nil
		}

		s, err := sectionStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if s == nil {
			return notFound(c, "section")
		}

		if p == (sectionPayload{}) {
			return c.JSON(s)
		}

		if !p.apply(c, s) {
			return nil
		}
		if err := sectionStore.Update(c.UserContext(), s); err != nil {
			return storeError(c, err)
		}

		return c.JSON(s)
	}
}

// SectionDeleteHandler deletes a section.
func SectionDeleteHandler(sectionStore *store.SectionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := sectionStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "section")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
