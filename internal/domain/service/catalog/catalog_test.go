package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradein/internal/domain"
	"tradein/internal/domain/entity"
	"tradein/pkg/errcodes"
)

// fakeBackend is a BackendClient with per-method hooks and call counters.
type fakeBackend struct {
	mu sync.Mutex

	searchFn    func(ctx context.Context, query string, limit int) ([]entity.CatalogCard, int, error)
	browseFn    func(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error)
	setsCalls   int
	langCalls   int
	searchCalls int
}

func (f *fakeBackend) SearchCards(ctx context.Context, query string, limit int) ([]entity.CatalogCard, int, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()

	if f.searchFn != nil {
		return f.searchFn(ctx, query, limit)
	}

	return []entity.CatalogCard{{ID: "card-" + query}}, 1, nil
}

func (f *fakeBackend) BrowseCards(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error) {
	if f.browseFn != nil {
		return f.browseFn(ctx, page, limit, facets)
	}

	return entity.CardPage{CurrentPage: page}, nil
}

func (f *fakeBackend) ListSets(_ context.Context, game string) ([]entity.CardSet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setsCalls++

	return []entity.CardSet{{Code: "SV01", Name: "Scarlet Dawn " + game}}, nil
}

func (f *fakeBackend) ListLanguages(_ context.Context, _ string) ([]entity.CardLanguage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.langCalls++

	return []entity.CardLanguage{{Code: "en", Name: "English"}}, nil
}

func (f *fakeBackend) GetSettings(_ context.Context) (entity.TradeSettings, error) {
	return entity.TradeSettings{}, errors.New("settings unavailable")
}

func TestSearchShortQueryIsEmptyWithoutNetwork(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "empty", query: ""},
		{name: "single rune", query: "a"},
		{name: "whitespace only", query: "   "},
		{name: "single rune padded", query: "  a  "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)
			backend := &fakeBackend{}
			service := NewService(backend)

			result, err := service.Search(context.Background(), tt.query, 0)
			rq.NoError(err)
			rq.Empty(result.Cards)
			rq.Zero(result.Count)
			rq.Zero(backend.searchCalls)
		})
	}
}

func TestSearchReturnsResult(t *testing.T) {
	rq := require.New(t)
	service := NewService(&fakeBackend{})

	result, err := service.Search(context.Background(), "  pikachu  ", 0)
	rq.NoError(err)
	rq.Equal("pikachu", result.Query)
	rq.Len(result.Cards, 1)
	rq.Equal(1, result.Count)
}

func TestLaneLastRequestWins(t *testing.T) {
	rq := require.New(t)

	var l lane

	ctx1, seq1 := l.begin(context.Background())
	ctx2, seq2 := l.begin(context.Background())

	rq.Error(ctx1.Err()) // first request canceled by the second
	rq.NoError(ctx2.Err())
	rq.False(l.current(seq1))
	rq.True(l.current(seq2))
}

func TestSearchSupersededMidFlight(t *testing.T) {
	rq := require.New(t)

	firstStarted := make(chan struct{})
	secondMayRun := make(chan struct{})

	backend := &fakeBackend{}
	backend.searchFn = func(ctx context.Context, query string, _ int) ([]entity.CatalogCard, int, error) {
		if query == "first" {
			close(firstStarted)
			<-ctx.Done()
			return nil, 0, ctx.Err()
		}

		<-secondMayRun
		return []entity.CatalogCard{{ID: "card-second"}}, 1, nil
	}

	service := NewService(backend)

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Search(context.Background(), "first", 0)
		firstDone <- err
	}()

	<-firstStarted

	secondDone := make(chan SearchResult, 1)
	go func() {
		result, err := service.Search(context.Background(), "second", 0)
		rq.NoError(err)
		secondDone <- result
	}()

	err := <-firstDone
	rq.True(domain.HasCode(err, errcodes.RequestSuperseded))

	close(secondMayRun)
	result := <-secondDone
	rq.Equal("card-second", result.Cards[0].ID)
}

func TestSearchCompletedButStaleIsSuppressed(t *testing.T) {
	rq := require.New(t)

	firstStarted := make(chan struct{})
	firstMayFinish := make(chan struct{})

	backend := &fakeBackend{}
	backend.searchFn = func(ctx context.Context, query string, _ int) ([]entity.CatalogCard, int, error) {
		if query == "first" {
			close(firstStarted)
			// Ignores cancellation and completes successfully anyway.
			<-firstMayFinish
			return []entity.CatalogCard{{ID: "card-first"}}, 1, nil
		}

		return []entity.CatalogCard{{ID: "card-second"}}, 1, nil
	}

	service := NewService(backend)

	firstDone := make(chan error, 1)
	go func() {
		_, err := service.Search(context.Background(), "first", 0)
		firstDone <- err
	}()

	<-firstStarted

	_, err := service.Search(context.Background(), "second", 0)
	rq.NoError(err)

	close(firstMayFinish)
	err = <-firstDone
	rq.True(domain.HasCode(err, errcodes.RequestSuperseded))
}

func TestBrowseNormalizesPaging(t *testing.T) {
	rq := require.New(t)

	backend := &fakeBackend{}

	var gotPage, gotLimit int
	backend.browseFn = func(_ context.Context, page, limit int, _ entity.BrowseFacets) (entity.CardPage, error) {
		gotPage, gotLimit = page, limit
		return entity.CardPage{CurrentPage: page}, nil
	}

	service := NewService(backend)

	_, err := service.Browse(context.Background(), 0, -1, entity.BrowseFacets{})
	rq.NoError(err)
	rq.Equal(1, gotPage)
	rq.Equal(defaultSearchLimit, gotLimit)
}

func TestReferenceCache(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	backend := &fakeBackend{}
	service := NewService(backend)

	for range 3 {
		sets, err := service.ListSets(ctx, "ptcg")
		rq.NoError(err)
		rq.Len(sets, 1)
	}
	rq.Equal(1, backend.setsCalls)

	// A different facet key is a different cache entry.
	_, err := service.ListSets(ctx, "mtg")
	rq.NoError(err)
	rq.Equal(2, backend.setsCalls)

	service.RefreshReferenceData()

	_, err = service.ListSets(ctx, "ptcg")
	rq.NoError(err)
	rq.Equal(3, backend.setsCalls)
}

func TestReferenceCacheHonorsConfiguredTTL(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()
	backend := &fakeBackend{}
	service := NewService(backend).WithReferenceTTL(20 * time.Millisecond)

	_, err := service.ListSets(ctx, "ptcg")
	rq.NoError(err)
	_, err = service.ListSets(ctx, "ptcg")
	rq.NoError(err)
	rq.Equal(1, backend.setsCalls)

	time.Sleep(50 * time.Millisecond)

	// The entry expired; the next read goes back to the backend.
	_, err = service.ListSets(ctx, "ptcg")
	rq.NoError(err)
	rq.Equal(2, backend.setsCalls)
}

func TestWarmReferenceData(t *testing.T) {
	rq := require.New(t)
	backend := &fakeBackend{}
	service := NewService(backend)

	rq.NoError(service.WarmReferenceData(context.Background(), "ptcg"))
	rq.Equal(1, backend.setsCalls)
	rq.Equal(1, backend.langCalls)
}

func TestLoadSettingsFailure(t *testing.T) {
	rq := require.New(t)
	service := NewService(&fakeBackend{})

	_, err := service.LoadSettings(context.Background())
	rq.Error(err)
}

func TestDebouncerOnlyLastTriggerFires(t *testing.T) {
	rq := require.New(t)

	debouncer := NewDebouncer(30 * time.Millisecond)
	defer debouncer.Stop()

	fired := make(chan int, 3)

	for i := 1; i <= 3; i++ {
		debouncer.Trigger(func() { fired <- i })
		time.Sleep(5 * time.Millisecond)
	}

	select {
	case got := <-fired:
		rq.Equal(3, got)
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("superseded trigger %d fired", got)
	case <-time.After(80 * time.Millisecond):
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	debouncer := NewDebouncer(20 * time.Millisecond)

	fired := make(chan struct{}, 1)
	debouncer.Trigger(func() { close(fired) })
	debouncer.Stop()

	select {
	case <-fired:
		t.Fatal("stopped trigger fired")
	case <-time.After(60 * time.Millisecond):
	}
}
