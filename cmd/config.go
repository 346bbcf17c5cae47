package cmd

import "time"

// Config carries everything the application reads from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL      string
	AmqpExchange string

	JWTSecret string

	// TaxRate is the sales tax applied at checkout, e.g. "0.08".
	TaxRate string

	// ServiceRequestRetention is how long resolved service requests are
	// kept before the cleanup job deletes them.
	ServiceRequestRetention time.Duration
}
