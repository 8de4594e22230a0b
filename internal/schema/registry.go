// Package schema manages the relational schema for the legal content
// service. The registry is an explicit value constructed once at startup
// and passed to whoever needs it; there is no package-level model list.
package schema

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/openjuris/lexbank/internal/model"
)

// Registry holds the ordered set of models that make up the schema.
// Order matters: referenced tables migrate before their dependents.
type Registry struct {
	models []any
}

// NewRegistry returns the registry for the full legal content schema.
func NewRegistry() *Registry {
	return &Registry{
		models: []any{
			&model.Branch{},
			&model.Section{},
			&model.Legislation{},
			&model.Law{},
			&model.Article{},
			&model.Clause{},
			&model.KnowledgeBase{},
			&model.News{},
			&model.LibraryItem{},
		},
	}
}

// Models returns the registered models.
func (r *Registry) Models() []any {
	return r.models
}

// Migrate creates or updates all tables, indexes and constraints.
func (r *Registry) Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(r.models...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// foreignKeys are the referential-integrity rules AutoMigrate does not
// derive from struct tags on plain id columns. Owned children cascade;
// optional associations null out when the referenced row is deleted.
var foreignKeys = []string{
	`ALTER TABLE sections ADD CONSTRAINT fk_sections_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE CASCADE`,
	`ALTER TABLE articles ADD CONSTRAINT fk_articles_law
		FOREIGN KEY (law_id) REFERENCES laws(id) ON DELETE CASCADE`,
	`ALTER TABLE clauses ADD CONSTRAINT fk_clauses_law
		FOREIGN KEY (law_id) REFERENCES laws(id) ON DELETE CASCADE`,
	`ALTER TABLE clauses ADD CONSTRAINT fk_clauses_article
		FOREIGN KEY (article_id) REFERENCES articles(id) ON DELETE CASCADE`,
	`ALTER TABLE legislations ADD CONSTRAINT fk_legislations_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE SET NULL`,
	`ALTER TABLE legislations ADD CONSTRAINT fk_legislations_section
		FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE SET NULL`,
	`ALTER TABLE legislations ADD CONSTRAINT fk_legislations_parent
		FOREIGN KEY (parent_legislation_id) REFERENCES legislations(id) ON DELETE SET NULL`,
	`ALTER TABLE laws ADD CONSTRAINT fk_laws_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE SET NULL`,
	`ALTER TABLE laws ADD CONSTRAINT fk_laws_section
		FOREIGN KEY (section_id) REFERENCES sections(id) ON DELETE SET NULL`,
	`ALTER TABLE laws ADD CONSTRAINT fk_laws_legislation
		FOREIGN KEY (related_legislation_id) REFERENCES legislations(id) ON DELETE SET NULL`,
	`ALTER TABLE knowledge_base ADD CONSTRAINT fk_knowledge_base_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE SET NULL`,
	`ALTER TABLE news ADD CONSTRAINT fk_news_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE SET NULL`,
	`ALTER TABLE library_items ADD CONSTRAINT fk_library_items_branch
		FOREIGN KEY (branch_id) REFERENCES branches(id) ON DELETE SET NULL`,
}

// ApplyConstraints installs the foreign-key rules after migration.
// Already-present constraints are skipped.
func (r *Registry) ApplyConstraints(db *gorm.DB) error {
	for _, stmt := range foreignKeys {
		if err := db.Exec(stmt).Error; err != nil {
			// Re-running migrate against an existing schema hits
			// duplicate constraints; that is not a failure.
			if isDuplicateConstraint(err) {
				continue
			}
			return fmt.Errorf("failed to apply constraint: %w", err)
		}
	}
	return nil
}

// Setup connects with GORM and runs the full migration: tables, indexes,
// then foreign-key constraints.
func (r *Registry) Setup(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect with GORM: %w", err)
	}

	if err := r.Migrate(db); err != nil {
		return err
	}
	if err := r.ApplyConstraints(db); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection: %w", err)
	}
	return sqlDB.Close()
}
