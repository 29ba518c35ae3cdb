package response

import (
	"time"

	"movie-catalog/internal/data/entity"
)

type MovieResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Director    *string   `json:"director"`
	Genre       *string   `json:"genre"`
	Rating      *float64  `json:"rating"`
	ReleaseDate *string   `json:"releaseDate"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Helper converters
func MovieToResponse(movie *entity.Movie) MovieResponse {
	var releaseDate *string
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format(entity.DateLayout)
		releaseDate = &formatted
	}

	return MovieResponse{
		ID:          movie.ID.String(),
		Title:       movie.Title,
		Description: movie.Description,
		Director:    movie.Director,
		Genre:       movie.Genre,
		Rating:      movie.Rating,
		ReleaseDate: releaseDate,
		CreatedAt:   movie.CreatedAt,
		UpdatedAt:   movie.UpdatedAt,
	}
}

func MoviesToResponse(movies []*entity.Movie) []MovieResponse {
	responses := make([]MovieResponse, len(movies))
	for i, movie := range movies {
		responses[i] = MovieToResponse(movie)
	}
	return responses
}
