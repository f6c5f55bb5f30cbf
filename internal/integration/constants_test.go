package integration_test

const (
	TestUserFirstName = "John"
	TestUserLastName  = "Doe"
	TestUserPassword  = "Test123!@#"

	TestMovieTitle     = "Test Movie"
	TestMoviePosterUrl = "https://example.com/poster.jpg"
	TestTicketPrice    = "12.50"
)
