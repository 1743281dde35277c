package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"tradein/internal/domain"
	"tradein/internal/domain/service/catalog"
	"tradein/pkg/errcodes"
)

type CatalogSearcher interface {
	Search(ctx context.Context, query string, limit int) (catalog.SearchResult, error)
}

// SearchFeed turns a raw keystroke stream into debounced search results.
// Every query resets the quiet period; only the last one in a burst reaches
// the backend, and a result superseded mid-flight is dropped silently.
type SearchFeed struct {
	catalog CatalogSearcher
	queries <-chan string
	results chan<- catalog.SearchResult

	debounce time.Duration
	limit    int

	// Control fields
	mu         sync.Mutex
	cancelFunc context.CancelFunc
	isRunning  bool
	wg         sync.WaitGroup
}

func NewSearchFeed(
	catalogSearcher CatalogSearcher,
	queries <-chan string,
	results chan<- catalog.SearchResult,
	debounce time.Duration,
) *SearchFeed {
	return &SearchFeed{
		catalog:  catalogSearcher,
		queries:  queries,
		results:  results,
		debounce: debounce,
	}
}

func (w *SearchFeed) WithLimit(limit int) *SearchFeed {
	w.limit = limit
	return w
}

func (w *SearchFeed) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return errors.New("search feed is already running")
	}

	feedCtx, cancel := context.WithCancel(ctx)
	w.cancelFunc = cancel
	w.isRunning = true

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer func() {
			w.mu.Lock()
			w.isRunning = false
			w.cancelFunc = nil
			w.mu.Unlock()
		}()

		if err := w.Run(feedCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger(feedCtx).Error("search feed stopped", "error", err)
		}
	}()

	return nil
}

func (w *SearchFeed) Stop() {
	w.mu.Lock()

	if !w.isRunning {
		w.mu.Unlock()
		return
	}

	if w.cancelFunc != nil {
		w.cancelFunc()
	}
	w.mu.Unlock()

	w.wg.Wait()
}

func (w *SearchFeed) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.isRunning
}

func (w *SearchFeed) Run(ctx context.Context) error {
	logger(ctx).Info("search feed started", "debounce", w.debounce)

	debouncer := catalog.NewDebouncer(w.debounce)
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger(ctx).Info("search feed stopped")
			return ctx.Err()
		case query, ok := <-w.queries:
			if !ok {
				return nil
			}
			debouncer.Trigger(func() {
				w.searchOne(ctx, query)
			})
		}
	}
}

func (w *SearchFeed) searchOne(ctx context.Context, query string) {
	result, err := w.catalog.Search(ctx, query, w.limit)
	if err != nil {
		// A newer keystroke won; this result must never surface.
		if domain.HasCode(err, errcodes.RequestSuperseded) {
			return
		}
		logger(ctx).Error("search failed", "query", query, "error", err)
		return
	}

	select {
	case w.results <- result:
	case <-ctx.Done():
	}
}
