package repository

import (
	"context"

	"applicantpool/internal/model"
)

// ApplicantRepository defines data access for applicants using SQL queries only.
type ApplicantRepository interface {
	// FindByPhone returns the applicant holding phone, or sql.ErrNoRows.
	FindByPhone(ctx context.Context, q Querier, phone string) (*model.Applicant, error)

	// FindByLaborID returns the first applicant (lowest id) with laborID, or sql.ErrNoRows.
	FindByLaborID(ctx context.Context, q Querier, laborID string) (*model.Applicant, error)

	// Create inserts a new applicant and returns it with its assigned ID.
	// A phone conflict yields ErrDuplicatePhone. When the conflict is absorbed by the insert
	// itself q stays usable for a follow-up lookup; a raised unique violation is mapped to the
	// same error but aborts an enclosing Postgres transaction.
	Create(ctx context.Context, q Querier, a *model.Applicant) (*model.Applicant, error)

	// Count returns the number of applicants.
	Count(ctx context.Context, q Querier) (int, error)
}
