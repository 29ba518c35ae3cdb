package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-catalog/internal/dto/request"
	"movie-catalog/internal/dto/response"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type MovieHandler struct {
	movies usecase.MovieService
	search usecase.SearchService
	log    *zap.Logger
}

func NewMovieHandler(movies usecase.MovieService, search usecase.SearchService, log *zap.Logger) *MovieHandler {
	return &MovieHandler{
		movies: movies,
		search: search,
		log:    log.With(zap.String("handler", "movie")),
	}
}

// GetMovies handles GET /api/movies. With any of title, genre, rating,
// startDate or endDate it searches, otherwise it lists everything.
func (h *MovieHandler) GetMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.SearchRequest{
		Title:     query.Get("title"),
		Genre:     query.Get("genre"),
		Rating:    query.Get("rating"),
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}

	if !req.HasCriteria() {
		movies, err := h.movies.ListAll(r.Context())
		if err != nil {
			h.handleServiceError(w, err, "list movies")
			return
		}
		utils.ResponseSuccess(w, "Movies retrieved successfully", response.MoviesToResponse(movies))
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		h.log.Debug("Invalid search parameters", zap.String("errors", utils.FormatValidationErrors(validationErrors)))
		utils.ResponseBadRequest(w, "Invalid search parameters", validationErrors)
		return
	}

	criteria, err := req.ToCriteria()
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	movies, err := h.search.Search(r.Context(), criteria)
	if err != nil {
		h.handleServiceError(w, err, "search movies")
		return
	}

	utils.ResponseSuccess(w, "Movies retrieved successfully", response.MoviesToResponse(movies))
}

// GetMovieByID handles GET /api/movies/{id}
func (h *MovieHandler) GetMovieByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	movie, err := h.movies.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err, "get movie by ID")
		return
	}

	utils.ResponseSuccess(w, "Movie retrieved successfully", response.MovieToResponse(movie))
}

// CreateMovie handles POST /api/movies
func (h *MovieHandler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeMovie(w, r)
	if !ok {
		return
	}

	candidate, err := req.ToEntity()
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	movie, err := h.movies.Create(r.Context(), candidate)
	if err != nil {
		h.handleServiceError(w, err, "create movie")
		return
	}

	w.Header().Set("Location", "/api/movies/"+movie.ID.String())
	utils.ResponseCreated(w, "Movie created successfully", response.MovieToResponse(movie))
}

// UpdateMovie handles PUT /api/movies/{id}
func (h *MovieHandler) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeMovie(w, r)
	if !ok {
		return
	}

	candidate, err := req.ToEntity()
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return
	}

	movie, err := h.movies.Update(r.Context(), id, candidate)
	if err != nil {
		h.handleServiceError(w, err, "update movie")
		return
	}

	utils.ResponseSuccess(w, "Movie updated successfully", response.MovieToResponse(movie))
}

// DeleteMovie handles DELETE /api/movies/{id}
func (h *MovieHandler) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := h.movieID(w, r)
	if !ok {
		return
	}

	if err := h.movies.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err, "delete movie")
		return
	}

	utils.ResponseNoContent(w)
}

func (h *MovieHandler) movieID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := utils.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid movie ID", map[string]string{"id": "Must be a valid UUID"})
		return uuid.Nil, false
	}
	return id, true
}

func (h *MovieHandler) decodeMovie(w http.ResponseWriter, r *http.Request) (*request.MovieRequest, bool) {
	var req request.MovieRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&req); err != nil {
		h.log.Debug("Invalid request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return nil, false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return nil, false
	}

	return &req, true
}

// handleServiceError maps service errors onto HTTP responses
func (h *MovieHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	var validationErr *usecase.ValidationError

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &validationErr):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, "Validation failed", validationErr.Fields())

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
