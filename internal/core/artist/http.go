// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package artist

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/artists/internal/platform/request"
	"github.com/taibuivan/artists/internal/platform/respond"
	"github.com/taibuivan/artists/internal/platform/validate"
)

type Handler struct {
	service *Service
}

// ListMeta accompanies the list view: how many records matched out of the
// full set, and the query and ordering that produced the view.
type ListMeta struct {
	Total   int     `json:"total"`
	Matched int     `json:"matched"`
	Query   string  `json:"query"`
	Sort    SortKey `json:"sort"`
}

// ValidationResult is the body of the validate endpoint. An empty Errors
// mapping means the payload can be submitted.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the artist sub-router, mounted under /api/v1/artists.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.listArtists)
	router.Get("/search", handler.searchArtists)
	router.Post("/validate", handler.validateArtist)
	router.Get("/{id}", handler.getArtist)

	router.Post("/", handler.createArtist)
	router.Patch("/{id}", handler.updateArtist)
	router.Delete("/{id}", handler.deleteArtist)
}

func (handler *Handler) listArtists(writer http.ResponseWriter, request *http.Request) {
	sortKey := DefaultSort
	if raw := requestutil.Query(request, "sort"); raw != "" {
		if err := (&validate.Validator{}).OneOf("sort", raw, SortKeys()...).Err(); err != nil {
			respond.Error(writer, request, err)
			return
		}
		sortKey = SortKey(raw)
	}

	listing, err := handler.service.Browse(request.Context(), requestutil.Query(request, "q"), sortKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.List(writer, listing.Artists, ListMeta{
		Total:   listing.Total,
		Matched: len(listing.Artists),
		Query:   listing.Query,
		Sort:    listing.Sort,
	})
}

func (handler *Handler) searchArtists(writer http.ResponseWriter, request *http.Request) {
	artists, err := handler.service.SearchArtists(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artists)
}

func (handler *Handler) validateArtist(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	fields := handler.service.Validate(input)
	respond.OK(writer, ValidationResult{Valid: len(fields) == 0, Errors: fields})
}

func (handler *Handler) getArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.GetArtist(request.Context(), artistID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

func (handler *Handler) createArtist(writer http.ResponseWriter, request *http.Request) {
	var input Input
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.CreateArtist(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, artist)
}

func (handler *Handler) updateArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var patch Patch
	if err := requestutil.DecodeJSON(writer, request, &patch); err != nil {
		respond.Error(writer, request, err)
		return
	}

	artist, err := handler.service.UpdateArtist(request.Context(), artistID, patch)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, artist)
}

func (handler *Handler) deleteArtist(writer http.ResponseWriter, request *http.Request) {
	artistID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.DeleteArtist(request.Context(), artistID); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
