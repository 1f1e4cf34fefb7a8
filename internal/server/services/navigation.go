package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmitrijs2005/citizenportal/internal/navigation"
	"github.com/dmitrijs2005/citizenportal/internal/server/repositories/repomanager"
)

// NavigationService records which portal pages citizens open.
type NavigationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	resolver    *navigation.Resolver
}

func NewNavigationService(db *sql.DB, m repomanager.RepositoryManager, resolver *navigation.Resolver) *NavigationService {
	return &NavigationService{db: db, repomanager: m, resolver: resolver}
}

// LogPageView stores a view of the page behind path. Paths that resolve to
// no page are ignored; the resolved name is returned, or "" when ignored.
func (s *NavigationService) LogPageView(ctx context.Context, email, path string) (string, error) {
	page, ok := s.resolver.Resolve(path)
	if !ok {
		return "", nil
	}
	if err := s.repomanager.PageViews(s.db).Create(ctx, email, page); err != nil {
		return "", err
	}
	return page, nil
}

// ViewsSince counts page views per page since t.
func (s *NavigationService) ViewsSince(ctx context.Context, t time.Time) (map[string]int64, error) {
	return s.repomanager.PageViews(s.db).CountSince(ctx, t)
}
