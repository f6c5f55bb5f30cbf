package integration_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
	"createdAt": {},
}

func prepareRequest(method, path string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req := httptest.NewRequest(method, path, body)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indeterministic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		return k == "timestamp" || k == "requestId" || k == "createdAt" || k == "reference"
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}

// createTestUser inserts a user directly through the repository and returns it.
func createTestUser(t testing.TB, app *TestApp, email string) *domain.User {
	t.Helper()

	user := &domain.User{
		FirstName: TestUserFirstName,
		LastName:  TestUserLastName,
		Email:     email,
		Role:      domain.RoleUser,
	}
	require.NoError(t, user.Password.Set(TestUserPassword))
	require.NoError(t, app.UserRepo.Create(context.Background(), user))

	return user
}

// createTestMovie inserts a movie with the given capacity, fully available.
func createTestMovie(t testing.TB, app *TestApp, totalSeats int) *domain.Movie {
	t.Helper()

	movie := &domain.Movie{
		Title:       TestMovieTitle,
		Showtime:    time.Now().Add(72 * time.Hour),
		PosterUrl:   TestMoviePosterUrl,
		TicketPrice: decimal.RequireFromString(TestTicketPrice),
		TotalSeats:  totalSeats,
	}
	require.NoError(t, app.MovieRepo.Create(context.Background(), movie))

	return movie
}

// loginAs performs a real login request and returns the session cookie.
func loginAs(t testing.TB, app *TestApp, email string) *http.Cookie {
	t.Helper()

	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": TestUserPassword,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	res := rec.Result()
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)

	for _, cookie := range res.Cookies() {
		if cookie.Name == "session_id" {
			return cookie
		}
	}

	t.Fatal("login response missing session cookie")
	return nil
}

// movieSeatState reads the seat counters straight from the database.
type movieSeatState struct {
	TotalSeats     int
	AvailableSeats int
	HouseFull      bool
	BookedSeats    int
}

func readSeatState(t testing.TB, app *TestApp, movieID int64) movieSeatState {
	t.Helper()

	var state movieSeatState

	query := `
		SELECT m.total_seats, m.available_seats, m.house_full,
			COALESCE((SELECT SUM(b.seat_count) FROM bookings b WHERE b.movie_id = m.id), 0)
		FROM movies m
		WHERE m.id = $1`

	err := app.DB.QueryRow(context.Background(), query, movieID).
		Scan(&state.TotalSeats, &state.AvailableSeats, &state.HouseFull, &state.BookedSeats)
	require.NoError(t, err)

	return state
}

// requireConservation asserts that available seats plus booked seats equal
// capacity and that the sold-out flag agrees with the counter.
func requireConservation(t testing.TB, app *TestApp, movieID int64) {
	t.Helper()

	state := readSeatState(t, app, movieID)

	require.Equal(t, state.TotalSeats, state.AvailableSeats+state.BookedSeats,
		"seat conservation violated: total=%d available=%d booked=%d",
		state.TotalSeats, state.AvailableSeats, state.BookedSeats)

	require.Equal(t, state.AvailableSeats == 0, state.HouseFull,
		"house_full=%v disagrees with available_seats=%d", state.HouseFull, state.AvailableSeats)
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s-%d@example.com", prefix, time.Now().UnixNano())
}
