// Package api defines the request and response types of the HTTP contract.
package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,alpha,max=50"`
	LastName  string `json:"lastName" validate:"required,alpha,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserResponse struct {
	Id        int64     `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type GetMoviesParams struct {
	Page     *int    `validate:"omitempty,min=1"`
	PageSize *int    `validate:"omitempty,min=1,max=100"`
	Sort     *string `validate:"omitempty,oneof=id title showtime -id -title -showtime"`
	Term     *string `validate:"omitempty,max=100"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type MovieResponse struct {
	Id             int64           `json:"id"`
	Title          string          `json:"title"`
	Showtime       time.Time       `json:"showtime"`
	PosterUrl      string          `json:"posterUrl"`
	TrailerUrl     string          `json:"trailerUrl"`
	TicketPrice    decimal.Decimal `json:"ticketPrice"`
	TotalSeats     int             `json:"totalSeats"`
	AvailableSeats int             `json:"availableSeats"`
	HouseFull      bool            `json:"houseFull"`
}

type MovieListResponse struct {
	Movies   []MovieResponse `json:"movies"`
	Metadata Metadata        `json:"metadata"`
}

type CreateMovieRequest struct {
	Title       string          `json:"title" validate:"required,max=200"`
	Showtime    time.Time       `json:"showtime" validate:"required"`
	PosterUrl   string          `json:"posterUrl" validate:"omitempty,url"`
	TrailerUrl  string          `json:"trailerUrl" validate:"omitempty,url"`
	TicketPrice decimal.Decimal `json:"ticketPrice"`
	TotalSeats  int             `json:"totalSeats" validate:"required,min=1,max=2000"`
}

type UpdateMovieRequest struct {
	Title       *string          `json:"title" validate:"omitempty,max=200"`
	Showtime    *time.Time       `json:"showtime"`
	PosterUrl   *string          `json:"posterUrl" validate:"omitempty,url"`
	TrailerUrl  *string          `json:"trailerUrl" validate:"omitempty,url"`
	TicketPrice *decimal.Decimal `json:"ticketPrice"`
}

type CreateBookingRequest struct {
	SeatCount int `json:"seatCount" validate:"required,min=1,max=4"`
}

type BookingResponse struct {
	Id         int64           `json:"id"`
	Reference  uuid.UUID       `json:"reference"`
	MovieId    int64           `json:"movieId"`
	SeatCount  int             `json:"seatCount"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type BookingVerificationResponse struct {
	Reference  uuid.UUID `json:"reference"`
	MovieTitle string    `json:"movieTitle"`
	Showtime   time.Time `json:"showtime"`
	SeatCount  int       `json:"seatCount"`
	HolderName string    `json:"holderName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type CreateReviewRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=0,max=5"`
	Comment string `json:"comment" validate:"max=100"`
}

type ReviewResponse struct {
	ReviewerName string    `json:"reviewerName"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	CreatedAt    time.Time `json:"createdAt"`
}

type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}
