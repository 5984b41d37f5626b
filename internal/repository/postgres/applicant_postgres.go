package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
)

// ApplicantPostgres is a PostgreSQL implementation of repository.ApplicantRepository.
// It uses parameterized queries and contains no business logic.
type ApplicantPostgres struct{}

// NewApplicantPostgres creates a new ApplicantPostgres repository.
func NewApplicantPostgres() *ApplicantPostgres {
	return &ApplicantPostgres{}
}

var _ repository.ApplicantRepository = (*ApplicantPostgres)(nil)

// FindByPhone fetches the applicant holding phone.
func (r *ApplicantPostgres) FindByPhone(ctx context.Context, q repository.Querier, phone string) (*model.Applicant, error) {
	const query = `
		SELECT id, full_name, phone, labor_id
		FROM applicants
		WHERE phone = $1
	`
	return scanApplicant(q.QueryRowContext(ctx, query, phone))
}

// FindByLaborID fetches the oldest applicant with laborID. Labor ids are not unique in practice.
func (r *ApplicantPostgres) FindByLaborID(ctx context.Context, q repository.Querier, laborID string) (*model.Applicant, error) {
	const query = `
		SELECT id, full_name, phone, labor_id
		FROM applicants
		WHERE labor_id = $1
		ORDER BY id
		LIMIT 1
	`
	return scanApplicant(q.QueryRowContext(ctx, query, laborID))
}

// Create inserts an applicant. A conflicting non-empty phone inserts nothing and returns
// repository.ErrDuplicatePhone; the statement waits for a concurrent inserter of the same
// phone to finish first, so the caller can look the winner up afterwards. A raised 23505
// (e.g. from a unique index the ON CONFLICT target does not cover) is mapped to the same error,
// but Postgres has then aborted the transaction and q cannot run further statements.
func (r *ApplicantPostgres) Create(ctx context.Context, q repository.Querier, a *model.Applicant) (*model.Applicant, error) {
	const query = `
		INSERT INTO applicants (full_name, phone, labor_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (phone) WHERE phone <> '' DO NOTHING
		RETURNING id, full_name, phone, labor_id
	`
	out, err := scanApplicant(q.QueryRowContext(ctx, query, a.FullName, a.Phone, a.LaborID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isUniqueViolation(err) {
			return nil, repository.ErrDuplicatePhone
		}
		return nil, err
	}
	return out, nil
}

// Count returns the number of applicants.
func (r *ApplicantPostgres) Count(ctx context.Context, q repository.Querier) (int, error) {
	const query = `SELECT COUNT(*) FROM applicants`
	var n int
	if err := q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func scanApplicant(row *sql.Row) (*model.Applicant, error) {
	var a model.Applicant
	if err := row.Scan(&a.ID, &a.FullName, &a.Phone, &a.LaborID); err != nil {
		return nil, err
	}
	return &a, nil
}
