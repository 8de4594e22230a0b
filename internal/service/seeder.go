package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openjuris/lexbank/internal/model"
	"github.com/openjuris/lexbank/internal/store"
)

// SeedStats tracks seeding statistics.
type SeedStats struct {
	Created int
	Skipped int
}

// Seeder loads a small set of sample legal content through the stores.
// Re-running it is safe: rows that already exist are skipped.
type Seeder struct {
	branches    *store.BranchStore
	sections    *store.SectionStore
	legislation *store.LegislationStore
	laws        *store.LawStore
	articles    *store.ArticleStore
	clauses     *store.ClauseStore
	knowledge   *store.KnowledgeStore
	news        *store.NewsStore
	library     *store.LibraryStore
	logger      *slog.Logger
}

// NewSeeder creates a Seeder.
func NewSeeder(
	branches *store.BranchStore,
	sections *store.SectionStore,
	legislation *store.LegislationStore,
	laws *store.LawStore,
	articles *store.ArticleStore,
	clauses *store.ClauseStore,
	knowledge *store.KnowledgeStore,
	news *store.NewsStore,
	library *store.LibraryStore,
	logger *slog.Logger,
) *Seeder {
	return &Seeder{
		branches:    branches,
		sections:    sections,
		legislation: legislation,
		laws:        laws,
		articles:    articles,
		clauses:     clauses,
		knowledge:   knowledge,
		news:        news,
		library:     library,
		logger:      logger,
	}
}

func strPtr(s string) *string { return &s }

// track folds a create result into the stats, treating conflicts as skips.
func (s *Seeder) track(stats *SeedStats, kind, name string, err error) error {
	switch {
	case err == nil:
		s.logger.Info("seeded", "kind", kind, "name", name)
		stats.Created++
		return nil
	case errors.Is(err, store.ErrConflict):
		s.logger.Info("already present", "kind", kind, "name", name)
		stats.Skipped++
		return nil
	default:
		return fmt.Errorf("failed to seed %s %q: %w", kind, name, err)
	}
}

// Seed inserts the sample data set.
func (s *Seeder) Seed(ctx context.Context) (*SeedStats, error) {
	stats := &SeedStats{}

	branch := &model.Branch{
		Name:        "Civil Law",
		Code:        "CIV",
		Description: strPtr("Private-law matters: persons, property, obligations and contracts."),
		IsActive:    true,
	}
	if err := s.track(stats, "branch", branch.Code, s.branches.Create(ctx, branch)); err != nil {
		return stats, err
	}
	if branch.ID == 0 {
		existing, err := s.branches.GetByCode(ctx, branch.Code)
		if err != nil {
			return stats, err
		}
		if existing != nil {
			branch.ID = existing.ID
		}
	}

	section := &model.Section{
		BranchID:    branch.ID,
		Name:        "Obligations and Contracts",
		Code:        "OBL",
		Description: strPtr("Formation, performance and breach of contractual obligations."),
		IsActive:    true,
	}
	if err := s.track(stats, "section", section.Code, s.sections.Create(ctx, section)); err != nil {
		return stats, err
	}

	issued := time.Date(2019, 3, 12, 0, 0, 0, 0, time.UTC)
	legislation := &model.Legislation{
		Title:            "Electronic Transactions Act",
		LegislationCode:  "ETA-2019",
		Description:      strPtr("Recognises electronic records and signatures in civil transactions."),
		Content:          "Electronic records and electronic signatures shall not be denied legal effect solely because they are in electronic form.",
		DocumentType:     model.DocLegislation,
		Status:           model.StatusActive,
		IssuedDate:       issued,
		EffectiveDate:    &issued,
		IssuingAuthority: strPtr("National Assembly"),
		BranchID:         &branch.ID,
		Keywords:         model.StringList{"electronic", "signature", "contract"},
		VersionNumber:    1,
	}
	if err := s.track(stats, "legislation", legislation.LegislationCode, s.legislation.Create(ctx, legislation)); err != nil {
		return stats, err
	}

	law := &model.Law{
		Title:         "Law on Consumer Protection",
		LawCode:       "LCP-2015",
		Description:   strPtr("Baseline consumer rights in sales and service contracts."),
		Content:       "This law establishes the rights of consumers and the obligations of traders in consumer transactions.",
		Status:        model.StatusActive,
		IssuedDate:    time.Date(2015, 11, 2, 0, 0, 0, 0, time.UTC),
		Jurisdiction:  strPtr("national"),
		BranchID:      &branch.ID,
		VersionNumber: 1,
	}
	if err := s.track(stats, "law", law.LawCode, s.laws.Create(ctx, law)); err != nil {
		return stats, err
	}
	if law.ID == 0 {
		existing, err := s.laws.GetByCode(ctx, law.LawCode)
		if err != nil {
			return stats, err
		}
		if existing != nil {
			law.ID = existing.ID
		}
	}

	article := &model.Article{
		LawID:         law.ID,
		ArticleNumber: 1,
		Title:         "Scope",
		Content:       "This law applies to all consumer transactions concluded within the national territory.",
	}
	if err := s.track(stats, "article", "1", s.articles.Create(ctx, article)); err != nil {
		return stats, err
	}

	// Clauses carry no natural key, so only seed one alongside a freshly
	// created article.
	if article.ID != 0 {
		clause := &model.Clause{
			LawID:        law.ID,
			ArticleID:    &article.ID,
			ClauseNumber: "1.1",
			Title:        "Definition of consumer",
			Content:      "A consumer is any natural person acting outside a trade or profession.",
			SubClauses:   model.StringList{"Includes guarantors of consumer credit."},
		}
		if err := s.track(stats, "clause", clause.ClauseNumber, s.clauses.Create(ctx, clause)); err != nil {
			return stats, err
		}
	} else {
		stats.Skipped++
	}

	entry := &model.KnowledgeBase{
		Title:                 "When is an electronic signature binding?",
		Content:               "An electronic signature binds the signatory when it identifies the person and the person intended to sign. Qualified signatures carry a presumption of validity.",
		Summary:               strPtr("Conditions for binding electronic signatures."),
		Category:              "contracts",
		Status:                model.KnowledgePublished,
		Priority:              model.PriorityHigh,
		Author:                strPtr("editorial"),
		Tags:                  model.StringList{"electronic", "signature"},
		Keywords:              model.StringList{"e-signature", "validity"},
		RelatedLegislationIDs: model.IDList{legislation.ID},
		RelatedLawIDs:         model.IDList{law.ID},
		IsActive:              true,
	}
	if err := s.track(stats, "knowledge entry", entry.Title, s.knowledge.Create(ctx, entry)); err != nil {
		return stats, err
	}

	published := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	news := &model.News{
		Title:         "Consumer protection amendments enter into force",
		Content:       "The latest amendments to the consumer protection regime entered into force this week, extending withdrawal rights for distance contracts.",
		Slug:          strPtr(Slugify("Consumer protection amendments enter into force")),
		Summary:       strPtr("Withdrawal rights extended for distance contracts."),
		Category:      "legislation",
		Priority:      model.PriorityMedium,
		Author:        strPtr("editorial"),
		IsPublished:   true,
		PublishedDate: &published,
		RelatedLawIDs: model.IDList{law.ID},
		Tags:          model.StringList{"consumer", "amendment"},
	}
	if err := s.track(stats, "news", news.Title, s.news.Create(ctx, news)); err != nil {
		return stats, err
	}

	item := &model.LibraryItem{
		Title:         "Model distance-sales contract",
		Description:   strPtr("Annotated template for distance-sales agreements."),
		Category:      "templates",
		DocumentType:  model.DocArticle,
		FileName:      "distance-sales-template.pdf",
		FilePath:      "/library/distance-sales-template.pdf",
		FileMimeType:  strPtr("application/pdf"),
		Tags:          model.StringList{"template", "consumer"},
		RelatedLawIDs: model.IDList{law.ID},
		IsActive:      true,
	}
	if err := s.track(stats, "library item", item.Title, s.library.Create(ctx, item)); err != nil {
		return stats, err
	}

	s.logger.Info("seeding complete", "created", stats.Created, "skipped", stats.Skipped)
	return stats, nil
}
