package postgres

import (
	"context"
	"database/sql"
	"time"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
)

// ApplicationPostgres is a PostgreSQL implementation of repository.ApplicationRepository.
type ApplicationPostgres struct{}

// NewApplicationPostgres creates a new ApplicationPostgres repository.
func NewApplicationPostgres() *ApplicationPostgres {
	return &ApplicationPostgres{}
}

var _ repository.ApplicationRepository = (*ApplicationPostgres)(nil)

// Create appends an application row and returns the stored record.
func (r *ApplicationPostgres) Create(ctx context.Context, q repository.Querier, app *model.Application) (*model.Application, error) {
	const query = `
		INSERT INTO applications (applicant_id, position, application_date, source_file)
		VALUES ($1, $2, $3, $4)
		RETURNING id, applicant_id, position, application_date, source_file
	`
	row := q.QueryRowContext(ctx, query,
		app.ApplicantID,
		app.Position,
		app.ApplicationDate,
		app.SourceFile,
	)
	var out model.Application
	if err := row.Scan(
		&out.ID,
		&out.ApplicantID,
		&out.Position,
		&out.ApplicationDate,
		&out.SourceFile,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// Search filters by substring containment on the stored position (strpos, so LIKE
// metacharacters in the needle match literally) and an inclusive date range.
func (r *ApplicationPostgres) Search(ctx context.Context, q repository.Querier, f repository.SearchFilter) ([]model.ApplicationRecord, error) {
	const query = `
		SELECT a.id, a.applicant_id, a.position, a.application_date, a.source_file,
		       p.id, p.full_name, p.phone, p.labor_id
		FROM applications a
		JOIN applicants p ON p.id = a.applicant_id
		WHERE strpos(a.position, $1) > 0
		  AND ($2::date IS NULL OR a.application_date >= $2::date)
		  AND ($3::date IS NULL OR a.application_date <= $3::date)
		ORDER BY a.application_date DESC, a.id DESC
	`
	rows, err := q.QueryContext(ctx, query, f.Position, nullDate(f.From), nullDate(f.To))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.ApplicationRecord, 0)
	for rows.Next() {
		var rec model.ApplicationRecord
		if err := rows.Scan(
			&rec.Application.ID,
			&rec.Application.ApplicantID,
			&rec.Application.Position,
			&rec.Application.ApplicationDate,
			&rec.Application.SourceFile,
			&rec.Applicant.ID,
			&rec.Applicant.FullName,
			&rec.Applicant.Phone,
			&rec.Applicant.LaborID,
		); err != nil {
			return nil, err
		}
		items = append(items, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of applications.
func (r *ApplicationPostgres) Count(ctx context.Context, q repository.Querier) (int, error) {
	const query = `SELECT COUNT(*) FROM applications`
	var n int
	if err := q.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountByPosition groups applications by position, skipping empty positions.
func (r *ApplicationPostgres) CountByPosition(ctx context.Context, q repository.Querier) ([]model.PositionCount, error) {
	const query = `
		SELECT position, COUNT(*) AS total
		FROM applications
		WHERE position <> ''
		GROUP BY position
		ORDER BY total DESC, position ASC
	`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.PositionCount, 0)
	for rows.Next() {
		var pc model.PositionCount
		if err := rows.Scan(&pc.Name, &pc.Count); err != nil {
			return nil, err
		}
		items = append(items, pc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Recent returns the newest applications. The applicant join is a LEFT JOIN so a dangling
// reference still yields a row with ApplicantFound=false.
func (r *ApplicationPostgres) Recent(ctx context.Context, q repository.Querier, limit int) ([]model.RecentActivity, error) {
	const query = `
		SELECT a.id, a.position, a.application_date, p.full_name
		FROM applications a
		LEFT JOIN applicants p ON p.id = a.applicant_id
		ORDER BY a.application_date DESC, a.id DESC
		LIMIT $1
	`
	rows, err := q.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.RecentActivity, 0, limit)
	for rows.Next() {
		var (
			ra   model.RecentActivity
			name sql.NullString
		)
		if err := rows.Scan(&ra.ApplicationID, &ra.Position, &ra.ApplicationDate, &name); err != nil {
			return nil, err
		}
		ra.ApplicantName = name.String
		ra.ApplicantFound = name.Valid
		items = append(items, ra)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// DistinctPositions returns the distinct non-empty positions.
func (r *ApplicationPostgres) DistinctPositions(ctx context.Context, q repository.Querier) ([]string, error) {
	const query = `SELECT DISTINCT position FROM applications WHERE position <> ''`
	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]string, 0)
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func nullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
