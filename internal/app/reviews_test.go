package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/metinatakli/movie-booking-system/api"
	"github.com/metinatakli/movie-booking-system/internal/domain"
	"github.com/metinatakli/movie-booking-system/internal/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReviewsTestSuite struct {
	suite.Suite
	app           *Application
	bookingLedger *mocks.MockBookingLedger
	reviewRepo    *mocks.MockReviewRepo
}

func (s *ReviewsTestSuite) SetupTest() {
	s.bookingLedger = new(mocks.MockBookingLedger)
	s.reviewRepo = &mocks.MockReviewRepo{}
	s.app = newTestApplication(func(a *Application) {
		a.bookingLedger = s.bookingLedger
		a.reviewRepo = s.reviewRepo
	})
}

func TestReviewsSuite(t *testing.T) {
	suite.Run(t, new(ReviewsTestSuite))
}

func (s *ReviewsTestSuite) TestCreateReview() {
	activeBooking := &domain.Booking{ID: 10, UserID: 1, MovieID: 1, SeatCount: 2}

	tests := []struct {
		name           string
		body           api.CreateReviewRequest
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name:           "missing rating fails validation",
			body:           api.CreateReviewRequest{Comment: "great"},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "is required",
		},
		{
			name:           "rating above five fails validation",
			body:           api.CreateReviewRequest{Rating: ptr(6)},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 5",
		},
		{
			name:           "comment too long fails validation",
			body:           api.CreateReviewRequest{Rating: ptr(4), Comment: string(make([]byte, 101))},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 100",
		},
		{
			name: "no booking means no review",
			body: api.CreateReviewRequest{Rating: ptr(4), Comment: "great"},
			setupMock: func() {
				s.bookingLedger.On("Get", mock.Anything, int64(1), int64(1)).Return(nil, domain.ErrRecordNotFound)
			},
			wantStatus:     http.StatusForbidden,
			wantErrMessage: "You can only review movies you have a booking for",
		},
		{
			name: "duplicate review",
			body: api.CreateReviewRequest{Rating: ptr(4), Comment: "great"},
			setupMock: func() {
				s.bookingLedger.On("Get", mock.Anything, int64(1), int64(1)).Return(activeBooking, nil)
				s.reviewRepo.CreateFunc = func(ctx context.Context, review *domain.Review) error {
					return domain.ErrDuplicateReview
				}
			},
			wantStatus:     http.StatusConflict,
			wantErrMessage: "you already reviewed this movie",
		},
		{
			name: "database error",
			body: api.CreateReviewRequest{Rating: ptr(4), Comment: "great"},
			setupMock: func() {
				s.bookingLedger.On("Get", mock.Anything, int64(1), int64(1)).Return(activeBooking, nil)
				s.reviewRepo.CreateFunc = func(ctx context.Context, review *domain.Review) error {
					return fmt.Errorf("database error")
				}
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "zero rating is a valid rating",
			body: api.CreateReviewRequest{Rating: ptr(0), Comment: "walked out"},
			setupMock: func() {
				s.bookingLedger.On("Get", mock.Anything, int64(1), int64(1)).Return(activeBooking, nil)
				s.reviewRepo.CreateFunc = func(ctx context.Context, review *domain.Review) error {
					review.ID = 5
					review.CreatedAt = time.Now()
					return nil
				}
			},
			wantStatus: http.StatusCreated,
		},
		{
			name: "successful review",
			body: api.CreateReviewRequest{Rating: ptr(5), Comment: "loved it"},
			setupMock: func() {
				s.bookingLedger.On("Get", mock.Anything, int64(1), int64(1)).Return(activeBooking, nil)
				s.reviewRepo.CreateFunc = func(ctx context.Context, review *domain.Review) error {
					review.ID = 6
					review.CreatedAt = time.Now()
					return nil
				}
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingLedger.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/movies/1/reviews", tt.body)
			r = withMovieID(r, "1")
			r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

			handler := s.app.requireAuthentication(http.HandlerFunc(s.app.CreateReview))
			handler = s.app.sessionManager.LoadAndSave(handler)
			handler.ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *ReviewsTestSuite) TestGetMovieReviews() {
	createdAt := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	s.Run("missing movie", func() {
		s.SetupTest()

		movieRepo := &mocks.MockMovieRepo{
			GetByIdFunc: func(ctx context.Context, id int64) (*domain.Movie, error) {
				return nil, domain.ErrRecordNotFound
			},
		}
		s.app.movieRepo = movieRepo

		w, r := executeRequest(s.T(), http.MethodGet, "/movies/99/reviews", nil)
		r = withMovieID(r, "99")
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

		handler := s.app.requireAuthentication(http.HandlerFunc(s.app.GetMovieReviews))
		handler = s.app.sessionManager.LoadAndSave(handler)
		handler.ServeHTTP(w, r)

		s.Equal(http.StatusNotFound, w.Code)
	})

	s.Run("reviews sorted by the repository are passed through", func() {
		s.SetupTest()

		s.app.movieRepo = &mocks.MockMovieRepo{
			GetByIdFunc: func(ctx context.Context, id int64) (*domain.Movie, error) {
				return &domain.Movie{ID: id, Title: "Dune"}, nil
			},
		}
		s.reviewRepo.GetAllByMovieIdFunc = func(ctx context.Context, movieID int64) ([]domain.ReviewSummary, error) {
			return []domain.ReviewSummary{
				{ReviewerName: "Alex", Rating: 5, Comment: "loved it", CreatedAt: createdAt},
				{ReviewerName: "Sam", Rating: 3, Comment: "fine", CreatedAt: createdAt},
			}, nil
		}

		w, r := executeRequest(s.T(), http.MethodGet, "/movies/1/reviews", nil)
		r = withMovieID(r, "1")
		r = setupTestSession(s.T(), s.app, r, 1, domain.RoleUser)

		handler := s.app.requireAuthentication(http.HandlerFunc(s.app.GetMovieReviews))
		handler = s.app.sessionManager.LoadAndSave(handler)
		handler.ServeHTTP(w, r)

		s.Equal(http.StatusOK, w.Code)

		var response api.ReviewListResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
		s.Len(response.Reviews, 2)
		s.Equal("Alex", response.Reviews[0].ReviewerName)
		s.Equal(5, response.Reviews[0].Rating)
	})
}
