package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/errgroup"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
)

const (
	defaultReferenceTTL = 5 * time.Minute
	minQueryLength      = 2
	defaultSearchLimit  = 20
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

type BackendClient interface {
	SearchCards(ctx context.Context, query string, limit int) ([]entity.CatalogCard, int, error)
	BrowseCards(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error)
	ListSets(ctx context.Context, game string) ([]entity.CardSet, error)
	ListLanguages(ctx context.Context, game string) ([]entity.CardLanguage, error)
	GetSettings(ctx context.Context) (entity.TradeSettings, error)
}

// SearchResult is one search answer; empty (not nil-error) below the minimum
// query length.
type SearchResult struct {
	Query string
	Cards []entity.CatalogCard
	Count int
}

// Service is the catalog read path: two independent cancellation lanes for
// search and browse, and a TTL cache for idempotent reference lookups.
type Service struct {
	client     BackendClient
	refCache   *cache.Cache
	searchLane lane
	browseLane lane
}

func NewService(client BackendClient) *Service {
	return &Service{
		client:   client,
		refCache: cache.New(defaultReferenceTTL, defaultReferenceTTL),
	}
}

func (s *Service) WithReferenceTTL(ttl time.Duration) *Service {
	if ttl > 0 {
		s.refCache = cache.New(ttl, ttl)
	}
	return s
}

// Search issues a lane-cancelled search. Queries shorter than two characters
// return an empty result without touching the network. A search superseded by
// a newer one fails with RequestSuperseded, which callers treat as silent.
func (s *Service) Search(ctx context.Context, query string, limit int) (SearchResult, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minQueryLength {
		return SearchResult{Query: query}, nil
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, seq := s.searchLane.begin(ctx)

	cards, count, err := s.client.SearchCards(ctx, query, limit)
	if err != nil {
		if errors.Is(err, context.Canceled) && !s.searchLane.current(seq) {
			return SearchResult{}, domain.NewError(errcodes.RequestSuperseded, "search superseded")
		}
		return SearchResult{}, fmt.Errorf("client.SearchCards: %w", err)
	}

	// The request may have completed just as a newer one started; its result
	// must still never be rendered.
	if !s.searchLane.current(seq) {
		return SearchResult{}, domain.NewError(errcodes.RequestSuperseded, "search superseded")
	}

	return SearchResult{Query: query, Cards: cards, Count: count}, nil
}

// Browse is paginated, facet-filtered listing on its own cancellation lane.
func (s *Service) Browse(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	ctx, seq := s.browseLane.begin(ctx)

	result, err := s.client.BrowseCards(ctx, page, limit, facets)
	if err != nil {
		if errors.Is(err, context.Canceled) && !s.browseLane.current(seq) {
			return entity.CardPage{}, domain.NewError(errcodes.RequestSuperseded, "browse superseded")
		}
		return entity.CardPage{}, fmt.Errorf("client.BrowseCards: %w", err)
	}

	if !s.browseLane.current(seq) {
		return entity.CardPage{}, domain.NewError(errcodes.RequestSuperseded, "browse superseded")
	}

	return result, nil
}

// ListSets serves reference data from the TTL cache, keyed by the full
// request including facet parameters.
func (s *Service) ListSets(ctx context.Context, game string) ([]entity.CardSet, error) {
	key := "sets?game=" + game

	if cached, found := s.refCache.Get(key); found {
		return cached.([]entity.CardSet), nil
	}

	sets, err := s.client.ListSets(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("client.ListSets: %w", err)
	}

	s.refCache.Set(key, sets, cache.DefaultExpiration)

	return sets, nil
}

func (s *Service) ListLanguages(ctx context.Context, game string) ([]entity.CardLanguage, error) {
	key := "languages?game=" + game

	if cached, found := s.refCache.Get(key); found {
		return cached.([]entity.CardLanguage), nil
	}

	languages, err := s.client.ListLanguages(ctx, game)
	if err != nil {
		return nil, fmt.Errorf("client.ListLanguages: %w", err)
	}

	s.refCache.Set(key, languages, cache.DefaultExpiration)

	return languages, nil
}

// RefreshReferenceData drops every cached reference lookup; the next reads
// hit the backend again. Bound to the user-initiated refresh action.
func (s *Service) RefreshReferenceData() {
	s.refCache.Flush()
}

// WarmReferenceData preloads sets and languages concurrently. Best effort.
func (s *Service) WarmReferenceData(ctx context.Context, game string) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.ListSets(ctx, game)
		return err
	})
	g.Go(func() error {
		_, err := s.ListLanguages(ctx, game)
		return err
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("warm reference data: %w", err)
	}

	return nil
}

// LoadSettings performs the one-time startup settings fetch. Callers keep
// their defaults when it fails; cart usability never blocks on this.
func (s *Service) LoadSettings(ctx context.Context) (entity.TradeSettings, error) {
	settings, err := s.client.GetSettings(ctx)
	if err != nil {
		logger(ctx).Warn("settings fetch failed, defaults stay in effect", "error", err)
		return entity.TradeSettings{}, fmt.Errorf("client.GetSettings: %w", err)
	}

	return settings, nil
}
