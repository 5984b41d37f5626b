package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var applicantColumns = []string{"id", "full_name", "phone", "labor_id"}

func TestApplicantPostgres_FindByPhone(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicantPostgres()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applicants WHERE phone = ?").
			WithArgs("+251911223344").
			WillReturnRows(sqlmock.NewRows(applicantColumns).AddRow(7, "Abebe Kebede", "+251911223344", "L-100"))

		a, err := repo.FindByPhone(ctx, db, "+251911223344")

		assert.NoError(t, err)
		require.NotNil(t, a)
		assert.Equal(t, int64(7), a.ID)
		assert.Equal(t, "Abebe Kebede", a.FullName)
		assert.Equal(t, "L-100", a.LaborID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM applicants WHERE phone = ?").
			WithArgs("+251900000000").
			WillReturnError(sql.ErrNoRows)

		a, err := repo.FindByPhone(ctx, db, "+251900000000")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, a)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantPostgres_FindByLaborID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicantPostgres()

	mock.ExpectQuery("SELECT (.+) FROM applicants WHERE labor_id = \\$1 ORDER BY id LIMIT 1").
		WithArgs("L-100").
		WillReturnRows(sqlmock.NewRows(applicantColumns).AddRow(3, "Almaz", "", "L-100"))

	a, err := repo.FindByLaborID(context.Background(), db, "L-100")

	assert.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, int64(3), a.ID)
	assert.Empty(t, a.Phone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewApplicantPostgres()
	ctx := context.Background()
	in := &model.Applicant{FullName: "Abebe Kebede", Phone: "+251911223344", LaborID: "L-100"}

	t.Run("inserted", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO applicants (.+) ON CONFLICT \\(phone\\) WHERE phone <> '' DO NOTHING").
			WithArgs(in.FullName, in.Phone, in.LaborID).
			WillReturnRows(sqlmock.NewRows(applicantColumns).AddRow(11, in.FullName, in.Phone, in.LaborID))

		out, err := repo.Create(ctx, db, in)

		assert.NoError(t, err)
		require.NotNil(t, out)
		assert.Equal(t, int64(11), out.ID)
		assert.Equal(t, in.Phone, out.Phone)
	})

	t.Run("phone conflict", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO applicants").
			WithArgs(in.FullName, in.Phone, in.LaborID).
			WillReturnRows(sqlmock.NewRows(applicantColumns))

		out, err := repo.Create(ctx, db, in)

		assert.ErrorIs(t, err, repository.ErrDuplicatePhone)
		assert.Nil(t, out)
	})

	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO applicants").
			WithArgs(in.FullName, in.Phone, in.LaborID).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "uq_applicants_phone"})

		out, err := repo.Create(ctx, db, in)

		assert.ErrorIs(t, err, repository.ErrDuplicatePhone)
		assert.Nil(t, out)
	})

	t.Run("database error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO applicants").
			WithArgs(in.FullName, in.Phone, in.LaborID).
			WillReturnError(errors.New("connection reset"))

		out, err := repo.Create(ctx, db, in)

		assert.EqualError(t, err, "connection reset")
		assert.NotErrorIs(t, err, repository.ErrDuplicatePhone)
		assert.Nil(t, out)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantPostgres_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM applicants").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(42))

	n, err := NewApplicantPostgres().Count(context.Background(), db)

	assert.NoError(t, err)
	assert.Equal(t, 42, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
