package app

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type metrics struct {
	bookingsCreated   metric.Int64Counter
	bookingsCancelled metric.Int64Counter
	bookingsRejected  metric.Int64Counter
}

func newMetrics() metrics {
	meter := otel.Meter("github.com/metinatakli/movie-booking-system")

	return metrics{
		bookingsCreated:   newCounter(meter, "bookings.created", "Number of bookings successfully created"),
		bookingsCancelled: newCounter(meter, "bookings.cancelled", "Number of bookings cancelled"),
		bookingsRejected:  newCounter(meter, "bookings.rejected", "Number of booking attempts rejected as duplicate or sold out"),
	}
}

func newCounter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		panic(err)
	}

	return counter
}
