package service

import (
	"context"
	"database/sql"
	"fmt"
)

// ContentStats is a snapshot of row counts across the content tables.
type ContentStats struct {
	Branches         int `json:"branches"`
	Sections         int `json:"sections"`
	Legislation      int `json:"legislation"`
	Laws             int `json:"laws"`
	Articles         int `json:"articles"`
	Clauses          int `json:"clauses"`
	KnowledgeEntries int `json:"knowledge_entries"`
	PublishedEntries int `json:"published_entries"`
	NewsItems        int `json:"news_items"`
	PublishedNews    int `json:"published_news"`
	LibraryItems     int `json:"library_items"`
}

// StatsService computes content statistics straight from the database.
type StatsService struct {
	db *sql.DB
}

// NewStatsService creates a StatsService.
func NewStatsService(db *sql.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	return n, nil
}

// Collect gathers row counts for every content table.
func (s *StatsService) Collect(ctx context.Context) (*ContentStats, error) {
	stats := &ContentStats{}

	queries := []struct {
		dst   *int
		query string
	}{
		{&stats.Branches, "SELECT COUNT(*) FROM branches"},
		{&stats.Sections, "SELECT COUNT(*) FROM sections"},
		{&stats.Legislation, "SELECT COUNT(*) FROM legislations"},
		{&stats.Laws, "SELECT COUNT(*) FROM laws"},
		{&stats.Articles, "SELECT COUNT(*) FROM articles"},
		{&stats.Clauses, "SELECT COUNT(*) FROM clauses"},
		{&stats.KnowledgeEntries, "SELECT COUNT(*) FROM knowledge_base"},
		{&stats.PublishedEntries, "SELECT COUNT(*) FROM knowledge_base WHERE status = 'published'"},
		{&stats.NewsItems, "SELECT COUNT(*) FROM news"},
		{&stats.PublishedNews, "SELECT COUNT(*) FROM news WHERE is_published"},
		{&stats.LibraryItems, "SELECT COUNT(*) FROM library_items"},
	}

	for _, q := range queries {
		n, err := s.count(ctx, q.query)
		if err != nil {
			return nil, err
		}
		*q.dst = n
	}

	return stats, nil
}
