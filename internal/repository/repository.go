package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres). Every operation takes the storage
// session it runs on explicitly; callers own the session's lifetime.

// Querier is a storage session: *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrDuplicatePhone is returned by ApplicantRepository.Create when another applicant
// already holds the phone number.
var ErrDuplicatePhone = errors.New("applicant phone already exists")
