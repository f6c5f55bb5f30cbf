package main

import (
	"os"

	"github.com/metinatakli/movie-booking-system/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
