package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

// CreateReview records a review for a movie. Only users holding an active
// booking for the movie may review it, so cancelling a booking also revokes
// the right to review.
func (app *Application) CreateReview(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.CreateReviewRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	userID := app.contextGetUserId(r)

	_, err = app.bookingLedger.Get(r.Context(), userID, movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.forbiddenResponse(w, r, "You can only review movies you have a booking for")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	review := domain.Review{
		UserID:  userID,
		MovieID: movieID,
		Rating:  *input.Rating,
		Comment: input.Comment,
	}

	err = app.reviewRepo.Create(r.Context(), &review)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateReview):
			app.conflictResponse(w, r, errors.New("you already reviewed this movie"))
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.ReviewResponse{
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusCreated, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	// Reviews for a missing movie are a 404, not an empty list.
	_, err = app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	reviews, err := app.reviewRepo.GetAllByMovieId(r.Context(), movieID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.ReviewListResponse{
		Reviews: make([]api.ReviewResponse, len(reviews)),
	}

	for i, review := range reviews {
		resp.Reviews[i] = api.ReviewResponse{
			ReviewerName: review.ReviewerName,
			Rating:       review.Rating,
			Comment:      review.Comment,
			CreatedAt:    review.CreatedAt,
		}
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
