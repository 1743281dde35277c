package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tradein/pkg/contextx"
)

func TestFeedHubDeliversTrailingQuery(t *testing.T) {
	rq := require.New(t)

	searcher := &fakeSearcher{}
	hub := NewFeedHub(searcher, 40*time.Millisecond)
	rq.NoError(hub.Start(context.Background()))
	defer hub.Stop()

	session := contextx.SessionID("kiosk-1")
	results, err := hub.Results(session)
	rq.NoError(err)

	for _, query := range []string{"p", "pi", "pik", "pikachu"} {
		rq.NoError(hub.Push(session, query))
	}

	select {
	case result := <-results:
		rq.Equal("pikachu", result.Query)
	case <-time.After(time.Second):
		t.Fatal("no debounced result arrived")
	}

	rq.Equal([]string{"pikachu"}, searcher.calls())
}

func TestFeedHubIsolatesSessions(t *testing.T) {
	rq := require.New(t)

	hub := NewFeedHub(&fakeSearcher{}, 5*time.Millisecond)
	rq.NoError(hub.Start(context.Background()))
	defer hub.Stop()

	first := contextx.SessionID("kiosk-1")
	second := contextx.SessionID("kiosk-2")

	firstResults, err := hub.Results(first)
	rq.NoError(err)
	secondResults, err := hub.Results(second)
	rq.NoError(err)

	rq.NoError(hub.Push(first, "pikachu"))
	rq.NoError(hub.Push(second, "charizard"))

	select {
	case result := <-firstResults:
		rq.Equal("pikachu", result.Query)
	case <-time.After(time.Second):
		t.Fatal("first session got no result")
	}

	select {
	case result := <-secondResults:
		rq.Equal("charizard", result.Query)
	case <-time.After(time.Second):
		t.Fatal("second session got no result")
	}
}

func TestFeedHubRequiresStart(t *testing.T) {
	rq := require.New(t)

	hub := NewFeedHub(&fakeSearcher{}, time.Millisecond)

	rq.Error(hub.Push("kiosk-1", "pikachu"))

	_, err := hub.Results("kiosk-1")
	rq.Error(err)
}

func TestFeedHubStopShutsDownFeeds(t *testing.T) {
	rq := require.New(t)

	hub := NewFeedHub(&fakeSearcher{}, time.Millisecond)
	rq.NoError(hub.Start(context.Background()))
	rq.Error(hub.Start(context.Background())) // second start rejected

	sf, err := hub.sessionFeed("kiosk-1")
	rq.NoError(err)
	rq.True(sf.feed.IsRunning())

	hub.Stop()
	rq.False(sf.feed.IsRunning())
	rq.Error(hub.Push("kiosk-1", "pikachu"))

	// Restart after a clean stop is allowed.
	rq.NoError(hub.Start(context.Background()))
	hub.Stop()
}
