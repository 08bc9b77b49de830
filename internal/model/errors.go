package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player id already registered")

	// Phase errors
	ErrInsufficientPlayers = errors.New("insufficient players to start round")
)
