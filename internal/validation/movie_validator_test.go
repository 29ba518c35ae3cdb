package validation

import (
	"math"
	"testing"

	"movie-catalog/internal/data/entity"

	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestMovieValidator(t *testing.T) {
	v := NewMovieValidator()

	tests := []struct {
		name  string
		movie *entity.Movie
		want  []Violation
	}{
		{
			name:  "title only",
			movie: &entity.Movie{Title: "Inception"},
		},
		{
			name:  "rating lower bound",
			movie: &entity.Movie{Title: "Inception", Rating: ptr(0.0)},
		},
		{
			name:  "rating upper bound",
			movie: &entity.Movie{Title: "Inception", Rating: ptr(10.0)},
		},
		{
			name:  "rating below range",
			movie: &entity.Movie{Title: "Inception", Rating: ptr(-0.1)},
			want:  []Violation{{Field: "rating", Reason: "must be at least 0"}},
		},
		{
			name:  "rating above range",
			movie: &entity.Movie{Title: "X", Rating: ptr(10.1)},
			want:  []Violation{{Field: "rating", Reason: "must be at most 10"}},
		},
		{
			name:  "rating far above range",
			movie: &entity.Movie{Title: "X", Rating: ptr(15.0)},
			want:  []Violation{{Field: "rating", Reason: "must be at most 10"}},
		},
		{
			name:  "rating NaN",
			movie: &entity.Movie{Title: "X", Rating: ptr(math.NaN())},
			want:  []Violation{{Field: "rating", Reason: "must be at least 0"}},
		},
		{
			name:  "empty title",
			movie: &entity.Movie{Title: "", Rating: ptr(5.0)},
			want:  []Violation{{Field: "title", Reason: "must not be blank"}},
		},
		{
			name:  "whitespace title",
			movie: &entity.Movie{Title: " \t\n "},
			want:  []Violation{{Field: "title", Reason: "must not be blank"}},
		},
		{
			name:  "both fields",
			movie: &entity.Movie{Title: "  ", Rating: ptr(11.0)},
			want: []Violation{
				{Field: "rating", Reason: "must be at most 10"},
				{Field: "title", Reason: "must not be blank"},
			},
		},
		{
			name:  "nil movie",
			movie: nil,
			want:  []Violation{{Field: "movie", Reason: "is required"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(tt.movie)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMovieValidatorIsStateless(t *testing.T) {
	v := NewMovieValidator()
	bad := &entity.Movie{Title: ""}
	good := &entity.Movie{Title: "Heat"}

	for i := 0; i < 3; i++ {
		if got := v.Validate(bad); len(got) != 1 {
			t.Fatalf("iteration %d: Validate(bad) = %v, want one violation", i, got)
		}
		if got := v.Validate(good); got != nil {
			t.Fatalf("iteration %d: Validate(good) = %v, want nil", i, got)
		}
	}
}
