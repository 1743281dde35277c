package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tradein/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) { //nolint:funlen
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			// unauthorized zone: the kiosk facade carries no user auth,
			// sessions are identified by header only
			r.Route("/catalog", func(r chi.Router) {
				r.Get("/search", handler(s.getV1CatalogSearch))
				r.Get("/search/feed", handler(s.getV1CatalogSearchFeed))
				r.Post("/search/feed", handler(s.postV1CatalogSearchFeed))
				r.Get("/browse", handler(s.getV1CatalogBrowse))
				r.Get("/sets", handler(s.getV1CatalogSets))
				r.Get("/languages", handler(s.getV1CatalogLanguages))
				r.Post("/refresh", handler(s.postV1CatalogRefresh))
			})
			r.Route("/cart", func(r chi.Router) {
				r.Get("/", handler(s.getV1Cart))
				r.Delete("/", handler(s.deleteV1Cart))
				r.Get("/quote", handler(s.getV1CartQuote))
				r.Post("/items", handler(s.postV1CartItems))
				r.Patch("/items/{index}", handler(s.patchV1CartItem))
				r.Delete("/items/{index}", handler(s.deleteV1CartItem))
			})
			r.Post("/submissions", handler(s.postV1Submissions))
			r.Get("/track/{number}", handler(s.getV1Track))
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
