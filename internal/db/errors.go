package db

import "errors"

var (
	// ErrInvalidConfig is returned when a backend configuration fails validation.
	ErrInvalidConfig = errors.New("invalid database configuration")

	// ErrConnection is returned when the driver cannot open or reach the database.
	ErrConnection = errors.New("database connection failed")

	// ErrNotInitialized is returned when a connection is requested from a handle
	// that was never successfully initialized.
	ErrNotInitialized = errors.New("database not initialized")
)
