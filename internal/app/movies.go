package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	defaultSort     = "id"
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params, err := parseGetMoviesParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	filters := domain.MovieFilters{
		Page:     defaultPage,
		PageSize: defaultPageSize,
		Sort:     defaultSort,
	}

	if params.Page != nil {
		filters.Page = *params.Page
	}
	if params.PageSize != nil {
		filters.PageSize = *params.PageSize
	}
	if params.Sort != nil {
		filters.Sort = *params.Sort
	}
	if params.Term != nil {
		filters.Term = *params.Term
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), filters)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := api.MovieListResponse{
		Movies:   make([]api.MovieResponse, len(movies)),
		Metadata: toMetadataResponse(metadata),
	}

	for i, movie := range movies {
		resp.Movies[i] = toMovieResponse(movie)
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	if input.TicketPrice.IsNegative() {
		app.badRequestResponse(w, r, errors.New("ticket price must not be negative"))
		return
	}

	movie := domain.Movie{
		Title:       input.Title,
		Showtime:    input.Showtime,
		PosterUrl:   input.PosterUrl,
		TrailerUrl:  input.TrailerUrl,
		TicketPrice: input.TicketPrice,
		TotalSeats:  input.TotalSeats,
	}

	err = app.movieRepo.Create(r.Context(), &movie)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	headers := make(http.Header)
	headers.Set("Location", fmt.Sprintf("/movies/%d", movie.ID))

	err = app.writeJSON(w, http.StatusCreated, toMovieResponse(&movie), headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.UpdateMovieRequest

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

	movie, err := app.movieRepo.GetById(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	if input.Title != nil {
		movie.Title = *input.Title
	}
	if input.Showtime != nil {
		movie.Showtime = *input.Showtime
	}
	if input.PosterUrl != nil {
		movie.PosterUrl = *input.PosterUrl
	}
	if input.TrailerUrl != nil {
		movie.TrailerUrl = *input.TrailerUrl
	}
	if input.TicketPrice != nil {
		if input.TicketPrice.IsNegative() {
			app.badRequestResponse(w, r, errors.New("ticket price must not be negative"))
			return
		}

		movie.TicketPrice = *input.TicketPrice
	}

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.conflictResponse(w, r, errors.New("the movie was modified concurrently, please retry"))
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieResponse(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	err = app.movieRepo.Delete(r.Context(), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.background(func() {
		err := app.auditTrail.MovieDeleted(context.Background(), movieID)
		if err != nil {
			app.logger.Error("failed to record movie deletion", "movie_id", movieID, "error", err)
		}
	})

	w.WriteHeader(http.StatusNoContent)
}

func parseGetMoviesParams(r *http.Request) (api.GetMoviesParams, error) {
	var params api.GetMoviesParams

	values := r.URL.Query()

	if v := values.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("page must be an integer")
		}
		params.Page = &page
	}

	if v := values.Get("pageSize"); v != "" {
		pageSize, err := strconv.Atoi(v)
		if err != nil {
			return params, errors.New("pageSize must be an integer")
		}
		params.PageSize = &pageSize
	}

	if v := values.Get("sort"); v != "" {
		params.Sort = &v
	}

	if v := values.Get("term"); v != "" {
		params.Term = &v
	}

	return params, nil
}

func toMovieResponse(movie *domain.Movie) api.MovieResponse {
	return api.MovieResponse{
		Id:             movie.ID,
		Title:          movie.Title,
		Showtime:       movie.Showtime,
		PosterUrl:      movie.PosterUrl,
		TrailerUrl:     movie.TrailerUrl,
		TicketPrice:    movie.TicketPrice,
		TotalSeats:     movie.TotalSeats,
		AvailableSeats: movie.AvailableSeats,
		HouseFull:      movie.HouseFull,
	}
}

func toMetadataResponse(metadata *domain.Metadata) api.Metadata {
	if metadata == nil {
		return api.Metadata{}
	}

	return api.Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}
