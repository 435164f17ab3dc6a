package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/glabrego/rickmorty-cli/internal/catalog"
	"github.com/glabrego/rickmorty-cli/internal/logging"
	"github.com/glabrego/rickmorty-cli/internal/prefs"
)

type CatalogClient interface {
	FetchPage(ctx context.Context, page int) (catalog.Page, error)
	FetchEpisode(ctx context.Context, id string) (catalog.EpisodeSummary, error)
}

// Service is what the terminal UI talks to: catalog reads plus the two
// persisted preference stores.
type Service struct {
	client   CatalogClient
	darkMode *prefs.DarkMode
	likes    *prefs.Likes
	log      *zap.Logger
}

func NewService(client CatalogClient, darkMode *prefs.DarkMode, likes *prefs.Likes, logger *zap.Logger) *Service {
	return &Service{client: client, darkMode: darkMode, likes: likes, log: logging.OrNop(logger)}
}

// FetchPage returns one catalog page. Catalog errors are passed through
// unwrapped so callers can inspect their type.
func (s *Service) FetchPage(ctx context.Context, page int) (catalog.Page, error) {
	start := time.Now()
	p, err := s.client.FetchPage(ctx, page)
	if err != nil {
		s.log.Warn("page load failed", zap.Int("page", page), zap.Duration("took", time.Since(start)), zap.Error(err))
		return catalog.Page{}, err
	}
	s.log.Debug("page loaded",
		zap.Int("page", p.Number),
		zap.Int("results", len(p.Results)),
		zap.Int("count", p.Info.Count),
		zap.Duration("took", time.Since(start)),
	)
	return p, nil
}

func (s *Service) FetchEpisode(ctx context.Context, id string) (catalog.EpisodeSummary, error) {
	ep, err := s.client.FetchEpisode(ctx, id)
	if err != nil {
		s.log.Warn("episode load failed", zap.String("episode_id", id), zap.Error(err))
		return catalog.EpisodeSummary{}, err
	}
	return ep, nil
}

func (s *Service) DarkMode() *prefs.DarkMode { return s.darkMode }

func (s *Service) Likes() *prefs.Likes { return s.likes }

// LikedCount is the number of characters currently liked, for the footer.
func (s *Service) LikedCount() (int, error) {
	ids, err := s.likes.LikedIDs()
	if err != nil {
		return 0, fmt.Errorf("count liked characters: %w", err)
	}
	return len(ids), nil
}
