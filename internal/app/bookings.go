package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/go-chi/chi/v5"
	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/event"
)

// CreateBooking books seats for the authenticated user on one movie. The
// booking record and the seat reservation commit or fail as one unit, so a
// response of 201 means the seats are held and anything else means the
// inventory is exactly as it was before the request.
func (app *Application) CreateBooking(w http.ResponseWriter, r *http.Request) {
	logger := app.contextGetLogger(r)

	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input api.CreateBookingRequest

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

	booking := domain.Booking{
		UserID:    app.contextGetUserId(r),
		MovieID:   movieID,
		SeatCount: input.SeatCount,
	}

	err = app.bookingLedger.Book(r.Context(), &booking)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateBooking):
			logger.Info("duplicate booking rejected", "movie_id", movieID)
			app.metrics.bookingsRejected.Add(r.Context(), 1)
			app.conflictResponse(w, r, errors.New("you already have a booking for this movie"))
		case errors.Is(err, domain.ErrInsufficientSeats):
			logger.Info("booking rejected, not enough seats", "movie_id", movieID, "seat_count", input.SeatCount)
			app.metrics.bookingsRejected.Add(r.Context(), 1)
			app.conflictResponse(w, r, errors.New("not enough seats available for this movie"))
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCreated.Add(r.Context(), 1)

	app.background(func() {
		app.notifyBookingCreated(booking)
	})

	err = app.writeJSON(w, http.StatusCreated, toBookingResponse(&booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CancelBooking(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	userID := app.contextGetUserId(r)

	err = app.bookingLedger.Cancel(r.Context(), userID, movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		case errors.Is(err, domain.ErrSeatsExceedCapacity):
			app.invariantViolationResponse(w, r, err)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	app.metrics.bookingsCancelled.Add(r.Context(), 1)

	app.background(func() {
		ctx := context.Background()

		err := app.auditTrail.BookingCancelled(ctx, userID, movieID)
		if err != nil {
			app.logger.Error("failed to record booking cancellation", "error", err)
		}

		err = app.events.BookingCancelled(ctx, event.BookingEvent{
			UserID:  userID,
			MovieID: movieID,
		})
		if err != nil {
			app.logger.Error("failed to publish booking cancellation", "error", err)
		}
	})

	w.WriteHeader(http.StatusNoContent)
}

// GetOwnBooking returns the caller's booking for a movie, or a JSON null body
// when no booking exists. Absence of a booking is a regular answer here, not
// an error.
func (app *Application) GetOwnBooking(w http.ResponseWriter, r *http.Request) {
	movieID, err := app.readMovieIDParam(r)
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	booking, err := app.bookingLedger.Get(r.Context(), app.contextGetUserId(r), movieID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			err = app.writeJSON(w, http.StatusOK, nil, nil)
			if err != nil {
				app.serverErrorResponse(w, r, err)
			}
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toBookingResponse(booking), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// VerifyBooking resolves a booking reference into the details shown at the
// door. It is unauthenticated so venue staff can use it.
func (app *Application) VerifyBooking(w http.ResponseWriter, r *http.Request) {
	reference, err := uuid.Parse(chi.URLParam(r, "reference"))
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	verification, err := app.bookingLedger.GetByReference(r.Context(), reference)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.BookingVerificationResponse{
		Reference:  verification.Reference,
		MovieTitle: verification.MovieTitle,
		Showtime:   verification.Showtime,
		SeatCount:  verification.SeatCount,
		HolderName: verification.HolderName,
		CreatedAt:  verification.CreatedAt,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// notifyBookingCreated fans the new booking out to the audit trail, the event
// broker and the confirmation email. Failures are logged and swallowed, the
// booking itself already committed.
func (app *Application) notifyBookingCreated(booking domain.Booking) {
	ctx := context.Background()

	err := app.auditTrail.BookingCreated(ctx, booking)
	if err != nil {
		app.logger.Error("failed to record booking creation", "error", err)
	}

	err = app.events.BookingCreated(ctx, event.BookingEvent{
		Reference: booking.Reference.String(),
		UserID:    booking.UserID,
		MovieID:   booking.MovieID,
		SeatCount: booking.SeatCount,
	})
	if err != nil {
		app.logger.Error("failed to publish booking creation", "error", err)
	}

	user, err := app.userRepo.GetById(ctx, booking.UserID)
	if err != nil {
		app.logger.Error("failed to load user for confirmation email", "error", err)
		return
	}

	movie, err := app.movieRepo.GetById(ctx, booking.MovieID)
	if err != nil {
		app.logger.Error("failed to load movie for confirmation email", "error", err)
		return
	}

	data := map[string]any{
		"firstName":  user.FirstName,
		"movieTitle": movie.Title,
		"showtime":   movie.Showtime.Format("Mon, 02 Jan 2006 15:04"),
		"seatCount":  booking.SeatCount,
		"reference":  booking.Reference,
	}

	err = app.mailer.Send(user.Email, "booking_confirmation.tmpl", data)
	if err != nil {
		app.logger.Error("failed to send confirmation email", "error", err)
	}
}

func toBookingResponse(booking *domain.Booking) api.BookingResponse {
	return api.BookingResponse{
		Id:         booking.ID,
		Reference:  booking.Reference,
		MovieId:    booking.MovieID,
		SeatCount:  booking.SeatCount,
		TotalPrice: booking.TotalPrice,
		CreatedAt:  booking.CreatedAt,
	}
}
