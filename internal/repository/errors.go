// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across repositories
// so that handlers can translate failure scenarios into HTTP responses
// without inspecting driver-specific error strings.
package repository

import "errors"

// ErrEmailExists is returned when inserting a user whose email is already
// registered. Handlers translate this into HTTP 400 so that a duplicate
// registration looks like any other validation failure.
var ErrEmailExists = errors.New("email already exists")

// ErrRecipeNotFound is returned when a recipe cannot be found in the DB.
var ErrRecipeNotFound = errors.New("recipe not found")

// ErrUserNotFound is returned when a user cannot be found in the DB.
var ErrUserNotFound = errors.New("user not found")

// ErrTokenNotFound is returned when a presented auth token matches no
// stored hash. Middleware treats this as an anonymous caller, never as a
// server failure.
var ErrTokenNotFound = errors.New("token not found")
