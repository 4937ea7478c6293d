// Bookshelf - Book Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookshelf

package marketplace

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/bookshelf/internal/catalog"
	"github.com/tomtom215/bookshelf/internal/client"
	"github.com/tomtom215/bookshelf/internal/logging"
	"github.com/tomtom215/bookshelf/internal/middleware"
	"github.com/tomtom215/bookshelf/internal/recommend"
)

// Page is one category page of the storefront.
type Page struct {
	// Slug is the URL path segment.
	Slug string
	// Title is the heading and navigation label.
	Title string
	// Category is sent to the recommendations service.
	Category string
}

// DefaultPages are the shelves of the production catalog.
var DefaultPages = []Page{
	{Slug: "philosophy", Title: "Philosophy", Category: "philosophy"},
	{Slug: "literature", Title: "Literature", Category: "literature"},
	{Slug: "science", Title: "Science", Category: "science"},
}

// Config configures the storefront.
type Config struct {
	UserID     int64
	MaxResults int
	// Pages defaults to DefaultPages.
	Pages []Page
	// CORSOrigins is passed to the CORS middleware.
	CORSOrigins []string
}

// Storefront renders the marketplace pages.
type Storefront struct {
	recommender client.Recommender
	cfg         Config
	views       *renderer
}

type homeData struct {
	Nav []Page
}

type categoryData struct {
	Nav   []Page
	Page  Page
	Books []catalog.Book
}

type errorData struct {
	Nav     []Page
	Status  int
	Heading string
	Message string
}

// New creates a storefront that asks recommender for titles.
func New(recommender client.Recommender, cfg Config) (*Storefront, error) {
	if recommender == nil {
		return nil, errors.New("marketplace: nil recommender")
	}
	if len(cfg.Pages) == 0 {
		cfg.Pages = DefaultPages
	}

	views, err := newRenderer()
	if err != nil {
		return nil, err
	}

	return &Storefront{
		recommender: recommender,
		cfg:         cfg,
		views:       views,
	}, nil
}

// Router wires the storefront routes.
func (s *Storefront) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(s.cfg.CORSOrigins)))

	r.Get("/healthz", s.Healthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Use(chimiddleware.Compress(5, "text/html"))

		r.Get("/", s.Home)
		for _, page := range s.cfg.Pages {
			r.Get("/"+page.Slug, s.CategoryPage(page))
		}
		r.NotFound(s.NotFound)
	})

	return r
}

// Home renders the homepage.
func (s *Storefront) Home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, pageHome, homeData{Nav: s.cfg.Pages})
}

// CategoryPage returns the handler for one category page.
func (s *Storefront) CategoryPage(page Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		books, err := s.recommender.Recommend(r.Context(), s.cfg.UserID, page.Category, s.cfg.MaxResults)
		if err != nil {
			s.recommendFailed(w, r, page, err)
			return
		}

		s.render(w, r, http.StatusOK, pageCategory, categoryData{
			Nav:   s.cfg.Pages,
			Page:  page,
			Books: books,
		})
	}
}

func (s *Storefront) recommendFailed(w http.ResponseWriter, r *http.Request, page Page, err error) {
	if errors.Is(err, recommend.ErrCategoryNotFound) {
		logging.Ctx(r.Context()).Info().Str("category", page.Category).Msg("Category not in catalog")
		s.render(w, r, http.StatusNotFound, pageError, errorData{
			Nav:     s.cfg.Pages,
			Status:  http.StatusNotFound,
			Heading: "Shelf not found",
			Message: "We do not stock " + page.Title + " books yet.",
		})
		return
	}

	logging.Ctx(r.Context()).Warn().Err(err).Str("category", page.Category).Msg("Recommendations unavailable")
	s.render(w, r, http.StatusServiceUnavailable, pageError, errorData{
		Nav:     s.cfg.Pages,
		Status:  http.StatusServiceUnavailable,
		Heading: "Recommendations unavailable",
		Message: "Our recommendation service is taking a break. Please try again shortly.",
	})
}

// NotFound renders the 404 page for unknown paths.
func (s *Storefront) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, pageError, errorData{
		Nav:     s.cfg.Pages,
		Status:  http.StatusNotFound,
		Heading: "Page not found",
		Message: "There is nothing on this shelf.",
	})
}

// breakerState is implemented by client.CircuitBreakerClient.
type breakerState interface {
	State() string
}

// Healthz reports liveness and, when available, the breaker state.
func (s *Storefront) Healthz(w http.ResponseWriter, r *http.Request) {
	body := map[string]string{"status": "ok"}
	if b, ok := s.recommender.(breakerState); ok {
		body["recommendations_circuit"] = b.State()
	}

	data, err := json.Marshal(body)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(data)
}

func (s *Storefront) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	if err := s.views.render(w, status, page, data); err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("page", page).Msg("Failed to render page")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
