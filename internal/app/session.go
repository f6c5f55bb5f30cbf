package app

import (
	"net/http"

	"github.com/metinatakli/movie-booking-system/internal/domain"
)

type contextKey string

const loggerContextKey = contextKey("logger")

type sessionKey string

const (
	SessionKeyUserId = sessionKey("userID")
	SessionKeyRole   = sessionKey("userRole")
)

func (s sessionKey) String() string {
	return string(s)
}

func (app *Application) contextGetUserId(r *http.Request) int64 {
	userId, ok := r.Context().Value(SessionKeyUserId).(int64)
	if !ok {
		panic("missing user id from context")
	}

	return userId
}

func (app *Application) contextGetRole(r *http.Request) domain.Role {
	role, ok := r.Context().Value(SessionKeyRole).(domain.Role)
	if !ok {
		panic("missing user role from context")
	}

	return role
}
