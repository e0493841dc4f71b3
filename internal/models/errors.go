// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced tenant, theme, category, or
// product does not exist (or belongs to another tenant).
var ErrNotFound = errors.New("not found")

// ErrConflict marks a tenant whose themes violate the single-active rule.
// The theme service repairs this state itself and only logs it.
var ErrConflict = errors.New("conflicting theme state")

// ConflictError describes a tenant with several active themes. Winner is
// the configuration kept active by the repair. It matches ErrConflict.
type ConflictError struct {
	TenantID uuid.UUID
	WinnerID uuid.UUID
	Active   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("tenant %s has %d active themes, keeping %s", e.TenantID, e.Active, e.WinnerID)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}

// StorageError wraps a backend failure. Handlers log Err and answer with a
// generic message so backend details never reach clients.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err as a StorageError for op. Returns nil for a nil err.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}
