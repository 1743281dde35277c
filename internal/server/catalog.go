package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"git.appkode.ru/pub/go/failure"
	jsoniter "github.com/json-iterator/go"

	"tradein/internal/domain/entity"
	"tradein/internal/domain/service/catalog"
	"tradein/pkg/contextx"
	"tradein/pkg/errcodes"
	"tradein/pkg/httpx/reply"
	"tradein/pkg/httpx/req"
	"tradein/pkg/lox"
	"tradein/pkg/rest"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

type catalogService interface {
	Search(ctx context.Context, query string, limit int) (catalog.SearchResult, error)
	Browse(ctx context.Context, page, limit int, facets entity.BrowseFacets) (entity.CardPage, error)
	ListSets(ctx context.Context, game string) ([]entity.CardSet, error)
	ListLanguages(ctx context.Context, game string) ([]entity.CardLanguage, error)
	RefreshReferenceData()
}

type searchFeedHub interface {
	Push(session contextx.SessionID, query string) error
	Results(session contextx.SessionID) (<-chan catalog.SearchResult, error)
}

type CatalogServer struct {
	catalogService catalogService
	searchFeed     searchFeedHub
}

func NewCatalogServer(catalogService catalogService, searchFeed searchFeedHub) CatalogServer {
	return CatalogServer{
		catalogService: catalogService,
		searchFeed:     searchFeed,
	}
}

func (s CatalogServer) getV1CatalogSearch(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return err
	}

	result, err := s.catalogService.Search(ctx, r.URL.Query().Get("q"), limit)
	if err != nil {
		return asReplyError(fmt.Errorf("catalogService.Search: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.SearchResponse{
		Cards: lox.Map(result.Cards, newRESTCard),
		Count: result.Count,
	})

	return nil
}

func (s CatalogServer) getV1CatalogBrowse(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	page, err := queryInt(r, "page", 1)
	if err != nil {
		return err
	}

	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		return err
	}

	facets := entity.BrowseFacets{
		Set:      r.URL.Query().Get("set"),
		Language: r.URL.Query().Get("language"),
		Game:     r.URL.Query().Get("game"),
	}

	result, err := s.catalogService.Browse(ctx, page, limit, facets)
	if err != nil {
		return asReplyError(fmt.Errorf("catalogService.Browse: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.BrowseResponse{
		Cards:       lox.Map(result.Cards, newRESTCard),
		CurrentPage: result.CurrentPage,
		TotalPages:  result.TotalPages,
		TotalCards:  result.TotalCards,
	})

	return nil
}

func (s CatalogServer) getV1CatalogSets(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	sets, err := s.catalogService.ListSets(ctx, r.URL.Query().Get("game"))
	if err != nil {
		return asReplyError(fmt.Errorf("catalogService.ListSets: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.SetsResponse{
		Sets: lox.Map(sets, func(set entity.CardSet) rest.CardSet {
			return rest.CardSet{Code: set.Code, Name: set.Name, CardCount: set.CardCount}
		}),
	})

	return nil
}

func (s CatalogServer) getV1CatalogLanguages(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	languages, err := s.catalogService.ListLanguages(ctx, r.URL.Query().Get("game"))
	if err != nil {
		return asReplyError(fmt.Errorf("catalogService.ListLanguages: %w", err))
	}

	reply.JSON(ctx, w, http.StatusOK, rest.LanguagesResponse{
		Languages: lox.Map(languages, func(lang entity.CardLanguage) rest.CardLanguage {
			return rest.CardLanguage{Code: lang.Code, Name: lang.Name, CardCount: lang.CardCount}
		}),
	})

	return nil
}

func (s CatalogServer) postV1CatalogSearchFeed(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	var request rest.FeedQueryRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if err := s.searchFeed.Push(session, request.Q); err != nil {
		return fmt.Errorf("searchFeed.Push: %w", err)
	}

	reply.OK(w)

	return nil
}

// getV1CatalogSearchFeed streams debounced search results for the session as
// server-sent events until the client disconnects.
func (s CatalogServer) getV1CatalogSearchFeed(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	session, err := sessionFromContext(ctx)
	if err != nil {
		return err
	}

	results, err := s.searchFeed.Results(session)
	if err != nil {
		return fmt.Errorf("searchFeed.Results: %w", err)
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		return errors.New("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return nil
		case result, ok := <-results:
			if !ok {
				return nil
			}

			payload, err := json.Marshal(rest.SearchFeedEvent{
				Query: result.Query,
				Cards: lox.Map(result.Cards, newRESTCard),
				Count: result.Count,
			})
			if err != nil {
				return fmt.Errorf("json.Marshal: %w", err)
			}

			if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
				return nil
			}
			flusher.Flush()
		}
	}
}

func (s CatalogServer) postV1CatalogRefresh(w http.ResponseWriter, _ *http.Request) error {
	s.catalogService.RefreshReferenceData()

	reply.OK(w)

	return nil
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, failure.NewInvalidArgumentError(
			fmt.Errorf("strconv.Atoi(%s): %w", name, err).Error(),
			failure.WithCode(errcodes.InvalidPaging),
			failure.WithDescription(name+" must be an integer"),
		)
	}

	return v, nil
}
