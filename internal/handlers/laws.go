package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/store"
)

type lawPayload struct {
	LawCode              *string           `json:"law_code"`
	Title                *string           `json:"title"`
	Description          *string           `json:"description"`
	Content              *string           `json:"content"`
	FullText             *string           `json:"full_text"`
	Status               *string           `json:"status"`
	IssuedDate           *time.Time        `json:"issued_date"`
	EffectiveDate        *time.Time        `json:"effective_date"`
	RepealDate           *time.Time        `json:"repeal_date"`
	IssuingAuthority     *string           `json:"issuing_authority"`
	Jurisdiction         *string           `json:"jurisdiction"`
	Category             *string           `json:"category"`
	Keywords             *model.StringList `json:"keywords"`
	BranchID             *int64            `json:"branch_id"`
	SectionID            *int64            `json:"section_id"`
	RelatedLegislationID *int64            `json:"related_legislation_id"`
	VersionNumber        *int              `json:"version_number"`
	AmendmentNotes       *string           `json:"amendment_notes"`
	CreatedBy            *string           `json:"created_by"`
}

func (p *lawPayload) require(c *fiber.Ctx) bool {
	switch {
	case p.LawCode == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "law_code is required")
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

func (p *lawPayload) apply(c *fiber.Ctx, l *model.Law) bool {
	if p.LawCode != nil {
		if *p.LawCode == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "law_code cannot be empty")
			return false
		}
		l.LawCode = *p.LawCode
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
	if p.Description != nil {
		l.Description = p.Description
	}
	if p.FullText != nil {
		l.FullText = p.FullText
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
	if p.Jurisdiction != nil {
		l.Jurisdiction = p.Jurisdiction
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
	if p.RelatedLegislationID != nil {
		l.RelatedLegislationID = p.RelatedLegislationID
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

// LawListHandler returns one page of laws.
func LawListHandler(lawStore *store.LawStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, ok := parsePage(c)
		if !ok {
			return nil
		}

		f := store.LawFilter{
			Status:       c.Query("status"),
			Category:     c.Query("category"),
			Jurisdiction: c.Query("jurisdiction"),
			BranchID:     int64(c.QueryInt("branch_id")),
		}
		if f.Status != "" {
			if _, err := model.ParseLegalStatus(f.Status); err != nil {
				return detail(c, fiber.StatusUnprocessableEntity, err.Error())
			}
		}

		items, total, err := lawStore.List(c.UserContext(), f, page.Skip, page.Limit)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(listEnvelope{Items: items, Total: total, Skip: page.Skip, Limit: page.Limit})
	}
}

// LawGetHandler returns one law by id.
func LawGetHandler(lawStore *store.LawStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		return c.JSON(l)
	}
}

// LawCreateHandler creates a law. Duplicate codes yield 409.
func LawCreateHandler(lawStore *store.LawStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p lawPayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		l := &model.Law{Status: model.StatusActive, VersionNumber: 1}
		if !p.apply(c, l) {
			return nil
		}

		if err := lawStore.Create(c.UserContext(), l); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(l)
	}
}

// LawUpdateHandler patches a law; omitted fields keep their values.
func LawUpdateHandler(lawStore *store.LawStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p lawPayload
		if !parseBody(c, &p) {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		if p == (lawPayload{}) {
			return c.JSON(l)
		}

		if !p.apply(c, l) {
			return nil
		}
		if err := lawStore.Update(c.UserContext(), l); err != nil {
			return storeError(c, err)
		}

		return c.JSON(l)
	}
}

// LawDeleteHandler deletes a law together with its articles and clauses.
func LawDeleteHandler(lawStore *store.LawStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := lawStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "law")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type articlePayload struct {
	ArticleNumber *int    `json:"article_number"`
	Title         *string `json:"title"`
	Content       *string `json:"content"`
	Notes         *string `json:"notes"`
}

func (p *articlePayload) require(c *fiber.Ctx) bool {
	switch {
	case p.ArticleNumber == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "article_number is required")
		return false
	case p.Title == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	case p.Content == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "content is required")
		return false
	}
	return true
}

func (p *articlePayload) apply(c *fiber.Ctx, a *model.Article) bool {
	if p.ArticleNumber != nil {
		if *p.ArticleNumber <= 0 {
			_ = detail(c, fiber.StatusUnprocessableEntity, "article_number must be a positive integer")
			return false
		}
		a.ArticleNumber = *p.ArticleNumber
	}
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		a.Title = *p.Title
	}
	if p.Content != nil {
		if *p.Content == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "content cannot be empty")
			return false
		}
		a.Content = *p.Content
	}
	if p.Notes != nil {
		a.Notes = p.Notes
	}
	return true
}

// LawArticlesHandler lists the articles of a law in article order.
func LawArticlesHandler(lawStore *store.LawStore, articleStore *store.ArticleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		articles, err := articleStore.ListByLaw(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(articles)
	}
}

// ArticleCreateHandler adds an article to a law. Article numbers are
// unique per law; a duplicate yields 409.
func ArticleCreateHandler(lawStore *store.LawStore, articleStore *store.ArticleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		var p articlePayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		a := &model.Article{LawID: id}
		if !p.apply(c, a) {
			return nil
		}
		if err := articleStore.Create(c.UserContext(), a); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(a)
	}
}

// ArticleGetHandler returns one article by id.
func ArticleGetHandler(articleStore *store.ArticleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		a, err := articleStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if a == nil {
			return notFound(c, "article")
		}

		return c.JSON(a)
	}
}

// ArticleUpdateHandler patches an article, keeping its law.
func ArticleUpdateHandler(articleStore *store.ArticleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p articlePayload
		if !parseBody(c, &p) {
			return nil
		}

		a, err := articleStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if a == nil {
			return notFound(c, "article")
		}

		if p == (articlePayload{}) {
			return c.JSON(a)
		}

		if !p.apply(c, a) {
			return nil
		}
		if err := articleStore.Update(c.UserContext(), a); err != nil {
			return storeError(c, err)
		}

		return c.JSON(a)
	}
}

// ArticleDeleteHandler deletes an article together with its clauses.
func ArticleDeleteHandler(articleStore *store.ArticleStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := articleStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "article")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type clausePayload struct {
	ArticleID    *int64            `json:"article_id"`
	ClauseNumber *string           `json:"clause_number"`
	Title        *string           `json:"title"`
	Content      *string           `json:"content"`
	SubClauses   *model.StringList `json:"sub_clauses"`
	Notes        *string           `json:"notes"`
}

func (p *clausePayload) require(c *fiber.Ctx) bool {
	switch {
	case p.ClauseNumber == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "clause_number is required")
		return false
	case p.Title == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "title is required")
		return false
	case p.Content == nil:
		_ = detail(c, fiber.StatusUnprocessableEntity, "content is required")
		return false
	}
	return true
}

func (p *clausePayload) apply(c *fiber.Ctx, cl *model.Clause) bool {
	if p.ClauseNumber != nil {
		if *p.ClauseNumber == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "clause_number cannot be empty")
			return false
		}
		cl.ClauseNumber = *p.ClauseNumber
	}
	if p.Title != nil {
		if *p.Title == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "title cannot be empty")
			return false
		}
		cl.Title = *p.Title
	}
	if p.Content != nil {
		if *p.Content == "" {
			_ = detail(c, fiber.StatusUnprocessableEntity, "content cannot be empty")
			return false
		}
		cl.Content = *p.Content
	}
	if p.SubClauses != nil {
		cl.SubClauses = *p.SubClauses
	}
	if p.Notes != nil {
		cl.Notes = p.Notes
	}
	return true
}

// LawClausesHandler lists the clauses of a law, optionally narrowed to
// one article via the article_id query parameter.
func LawClausesHandler(lawStore *store.LawStore, clauseStore *store.ClauseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		if articleID := c.QueryInt("article_id"); articleID > 0 {
			clauses, err := clauseStore.ListByArticle(c.UserContext(), int64(articleID))
			if err != nil {
				return storeError(c, err)
			}
			return c.JSON(clauses)
		}

		clauses, err := clauseStore.ListByLaw(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}

		return c.JSON(clauses)
	}
}

// ClauseCreateHandler adds a clause to a law, optionally attached to one
// of its articles.
func ClauseCreateHandler(lawStore *store.LawStore, articleStore *store.ArticleStore, clauseStore *store.ClauseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		l, err := lawStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if l == nil {
			return notFound(c, "law")
		}

		var p clausePayload
		if !parseBody(c, &p) {
			return nil
		}
		if !p.require(c) {
			return nil
		}

		// An attached article must belong to the same law.
		if p.ArticleID != nil {
			a, err := articleStore.GetByID(c.UserContext(), *p.ArticleID)
			if err != nil {
				return storeError(c, err)
			}
			if a == nil || a.LawID != id {
				return detail(c, fiber.StatusUnprocessableEntity, "article does not belong to this law")
			}
		}

		cl := &model.Clause{LawID: id, ArticleID: p.ArticleID}
		if !p.apply(c, cl) {
			return nil
		}
		if err := clauseStore.Create(c.UserContext(), cl); err != nil {
			return storeError(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(cl)
	}
}

// ClauseGetHandler returns one clause by id.
func ClauseGetHandler(clauseStore *store.ClauseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		cl, err := clauseStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if cl == nil {
			return notFound(c, "clause")
		}

		return c.JSON(cl)
	}
}

// ClauseUpdateHandler patches a clause, keeping its law and article.
func ClauseUpdateHandler(clauseStore *store.ClauseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		var p clausePayload
		if !parseBody(c, &p) {
			return nil
		}

		cl, err := clauseStore.GetByID(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if cl == nil {
			return notFound(c, "clause")
		}

		if p == (clausePayload{}) {
			return c.JSON(cl)
		}

		if !p.apply(c, cl) {
			return nil
		}
		if err := clauseStore.Update(c.UserContext(), cl); err != nil {
			return storeError(c, err)
		}

		return c.JSON(cl)
	}
}

// ClauseDeleteHandler deletes a clause.
func ClauseDeleteHandler(clauseStore *store.ClauseStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return nil
		}

		deleted, err := clauseStore.Delete(c.UserContext(), id)
		if err != nil {
			return storeError(c, err)
		}
		if !deleted {
			return notFound(c, "clause")
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}
