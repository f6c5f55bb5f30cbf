package app

import (
	"errors"
	"net/http"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

func (app *Application) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := app.contextGetUserId(r)

	user, err := app.userRepo.GetById(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			// The session outlived the account.
			app.notFoundResponse(w, r)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toUserResponse(user), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
