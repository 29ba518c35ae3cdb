package request

import (
	"strings"

	"movie-catalog/internal/data/entity"
	"movie-catalog/internal/usecase"
	"movie-catalog/pkg/utils"
)

// MovieRequest is the body of both create and update. Update replaces
// the whole record, so omitted fields are cleared.
type MovieRequest struct {
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	Director    *string  `json:"director"`
	Genre       *string  `json:"genre"`
	Rating      *float64 `json:"rating"`
	ReleaseDate *string  `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
}

// ToEntity converts the request into a candidate movie. Call it only after
// the request passed utils.ValidateStruct.
func (r *MovieRequest) ToEntity() (*entity.Movie, error) {
	movie := &entity.Movie{
		Title:       r.Title,
		Description: r.Description,
		Director:    r.Director,
		Genre:       r.Genre,
		Rating:      r.Rating,
	}

	if r.ReleaseDate != nil {
		releaseDate, err := utils.OptionalDate(*r.ReleaseDate)
		if err != nil {
			return nil, err
		}
		movie.ReleaseDate = releaseDate
	}

	return movie, nil
}

// SearchRequest holds the raw query parameters of GET /api/movies.
type SearchRequest struct {
	Title     string `query:"title"`
	Genre     string `query:"genre"`
	Rating    string `query:"rating" validate:"omitempty,numeric"`
	StartDate string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
}

// HasCriteria reports whether any parameter carries a value. Blank values
// count as absent.
func (r *SearchRequest) HasCriteria() bool {
	for _, value := range []string{r.Title, r.Genre, r.Rating, r.StartDate, r.EndDate} {
		if strings.TrimSpace(value) != "" {
			return true
		}
	}
	return false
}

func (r *SearchRequest) ToCriteria() (usecase.SearchCriteria, error) {
	criteria := usecase.SearchCriteria{
		Title: utils.OptionalString(r.Title),
		Genre: utils.OptionalString(r.Genre),
	}

	var err error
	if criteria.MinRating, err = utils.OptionalFloat(r.Rating); err != nil {
		return usecase.SearchCriteria{}, err
	}
	if criteria.StartDate, err = utils.OptionalDate(r.StartDate); err != nil {
		return usecase.SearchCriteria{}, err
	}
	if criteria.EndDate, err = utils.OptionalDate(r.EndDate); err != nil {
		return usecase.SearchCriteria{}, err
	}

	return criteria, nil
}
