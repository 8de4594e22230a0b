package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/openjuris/lexbank/internal/service"
	"github.com/openjuris/lexbank/internal/store"
)

// Deps bundles everything the API routes need.
type Deps struct {
	Branches    *store.BranchStore
	Sections    *store.SectionStore
	Legislation *store.LegislationStore
	Laws        *store.LawStore
	Articles    *store.ArticleStore
	Clauses     *store.ClauseStore
	Knowledge   *store.KnowledgeStore
	News        *store.NewsStore
	Library     *store.LibraryStore
	Resolver    *service.RefResolver
	Stats       *service.StatsService
}

// Register mounts the API under /api/v1. Requests for known paths with
// unknown methods get Fiber's default 405.
func Register(app *fiber.App, d Deps) {
	app.Get("/health", HealthHandler())

	v1 := app.Group("/api/v1")
	v1.Get("/stats", StatsHandler(d.Stats))

	kb := v1.Group("/knowledge-bank")
	kb.Get("/", KnowledgeListHandler(d.Knowledge))
	kb.Post("/", KnowledgeCreateHandler(d.Knowledge))
	kb.Get("/:id", KnowledgeGetHandler(d.Knowledge))
	kb.Patch("/:id", KnowledgeUpdateHandler(d.Knowledge))
	kb.Delete("/:id", KnowledgeDeleteHandler(d.Knowledge))
	kb.Get("/:id/references", KnowledgeReferencesHandler(d.Knowledge, d.Resolver))

	branches := v1.Group("/branches")
	branches.Get("/", BranchListHandler(d.Branches))
	branches.Post("/", BranchCreateHandler(d.Branches))
	branches.Get("/:id", BranchGetHandler(d.Branches))
	branches.Patch("/:id", BranchUpdateHandler(d.Branches))
	branches.Delete("/:id", BranchDeleteHandler(d.Branches))
	branches.Get("/:id/sections", BranchSectionsHandler(d.Branches, d.Sections))
	branches.Post("/:id/sections", SectionCreateHandler(d.Branches, d.Sections))

	sections := v1.Group("/sections")
	sections.Get("/:id", SectionGetHandler(d.Sections))
	sections.Patch("/:id", SectionUpdateHandler(d.Sections))
	sections.Delete("/:id", SectionDeleteHandler(d.Sections))

	legislation := v1.Group("/legislation")
	legislation.Get("/", LegislationListHandler(d.Legislation))
	legislation.Post("/", LegislationCreateHandler(d.Legislation))
	legislation.Get("/:id", LegislationGetHandler(d.Legislation))
	legislation.Patch("/:id", LegislationUpdateHandler(d.Legislation))
	legislation.Delete("/:id", LegislationDeleteHandler(d.Legislation))
	legislation.Get("/:id/amendments", LegislationAmendmentsHandler(d.Legislation))

	laws := v1.Group("/laws")
	laws.Get("/", LawListHandler(d.Laws))
	laws.Post("/", LawCreateHandler(d.Laws))
	laws.Get("/:id", LawGetHandler(d.Laws))
	laws.Patch("/:id", LawUpdateHandler(d.Laws))
	laws.Delete("/:id", LawDeleteHandler(d.Laws))
	laws.Get("/:id/articles", LawArticlesHandler(d.Laws, d.Articles))
	laws.Post("/:id/articles", ArticleCreateHandler(d.Laws, d.Articles))
	laws.Get("/:id/clauses", LawClausesHandler(d.Laws, d.Clauses))
	laws.Post("/:id/clauses", ClauseCreateHandler(d.Laws, d.Articles, d.Clauses))

	articles := v1.Group("/articles")
	articles.Get("/:id", ArticleGetHandler(d.Articles))
	articles.Patch("/:id", ArticleUpdateHandler(d.Articles))
	articles.Delete("/:id", ArticleDeleteHandler(d.Articles))

	clauses := v1.Group("/clauses")
	clauses.Get("/:id", ClauseGetHandler(d.Clauses))
	clauses.Patch("/:id", ClauseUpdateHandler(d.Clauses))
	clauses.Delete("/:id", ClauseDeleteHandler(d.Clauses))

	news := v1.Group("/news")
	news.Get("/", NewsListHandler(d.News))
	news.Post("/", NewsCreateHandler(d.News))
	news.Get("/slug/:slug", NewsGetBySlugHandler(d.News))
	news.Get("/:id", NewsGetHandler(d.News))
	news.Patch("/:id", NewsUpdateHandler(d.News))
	news.Delete("/:id", NewsDeleteHandler(d.News))

	library := v1.Group("/library")
	library.Get("/", LibraryListHandler(d.Library))
	library.Post("/", LibraryCreateHandler(d.Library))
	library.Get("/:id", LibraryGetHandler(d.Library))
	library.Patch("/:id", LibraryUpdateHandler(d.Library))
	library.Delete("/:id", LibraryDeleteHandler(d.Library))
	library.Get("/:id/download", LibraryDownloadHandler(d.Library))
}
