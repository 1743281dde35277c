package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tradein/internal/domain/service/catalog"
	"tradein/pkg/contextx"
)

const (
	queryBuffer  = 16
	resultBuffer = 4
)

var errHubNotRunning = errors.New("feed hub is not running")

// FeedHub runs one SearchFeed per shopper session so every kiosk gets its own
// debounce window. Feeds start lazily on first use and share the hub's
// lifetime.
type FeedHub struct {
	searcher CatalogSearcher
	debounce time.Duration
	limit    int

	mu     sync.Mutex
	runCtx context.Context //nolint:containedctx // feeds outlive the requests that spawn them
	cancel context.CancelFunc
	feeds  map[contextx.SessionID]*sessionFeed
}

type sessionFeed struct {
	queries chan string
	results chan catalog.SearchResult
	feed    *SearchFeed
}

func NewFeedHub(searcher CatalogSearcher, debounce time.Duration) *FeedHub {
	return &FeedHub{
		searcher: searcher,
		debounce: debounce,
		feeds:    make(map[contextx.SessionID]*sessionFeed),
	}
}

func (h *FeedHub) WithLimit(limit int) *FeedHub {
	h.limit = limit
	return h
}

func (h *FeedHub) Start(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.runCtx != nil {
		return errors.New("feed hub is already running")
	}

	h.runCtx, h.cancel = context.WithCancel(ctx)

	return nil
}

func (h *FeedHub) Stop() {
	h.mu.Lock()

	feeds := make([]*SearchFeed, 0, len(h.feeds))
	for _, sf := range h.feeds {
		feeds = append(feeds, sf.feed)
	}
	h.feeds = make(map[contextx.SessionID]*sessionFeed)

	if h.cancel != nil {
		h.cancel()
	}
	h.runCtx = nil
	h.cancel = nil

	h.mu.Unlock()

	for _, feed := range feeds {
		feed.Stop()
	}
}

// Push hands a keystroke to the session's feed. The newest query wins, so a
// full buffer evicts the oldest entry instead of blocking the caller.
func (h *FeedHub) Push(session contextx.SessionID, query string) error {
	sf, err := h.sessionFeed(session)
	if err != nil {
		return err
	}

	for {
		select {
		case sf.queries <- query:
			return nil
		default:
			select {
			case <-sf.queries:
			default:
			}
		}
	}
}

// Results returns the session's result stream, creating the feed when the
// stream is opened before the first keystroke.
func (h *FeedHub) Results(session contextx.SessionID) (<-chan catalog.SearchResult, error) {
	sf, err := h.sessionFeed(session)
	if err != nil {
		return nil, err
	}

	return sf.results, nil
}

func (h *FeedHub) sessionFeed(session contextx.SessionID) (*sessionFeed, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.runCtx == nil {
		return nil, errHubNotRunning
	}

	if sf, ok := h.feeds[session]; ok {
		return sf, nil
	}

	sf := &sessionFeed{
		queries: make(chan string, queryBuffer),
		results: make(chan catalog.SearchResult, resultBuffer),
	}
	sf.feed = NewSearchFeed(h.searcher, sf.queries, sf.results, h.debounce).WithLimit(h.limit)

	if err := sf.feed.Start(h.runCtx); err != nil {
		return nil, fmt.Errorf("feed.Start: %w", err)
	}

	h.feeds[session] = sf

	return sf, nil
}
