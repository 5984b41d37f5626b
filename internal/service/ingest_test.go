package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"applicantpool/internal/model"
	repoMocks "applicantpool/internal/repository/mocks"
	"applicantpool/internal/spreadsheet"
	"applicantpool/internal/storage"
	storeMocks "applicantpool/internal/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	eat          = time.FixedZone("EAT", 3*60*60)
	uploadHeader = []string{spreadsheet.ColPosition, spreadsheet.ColDate, spreadsheet.ColPhone, spreadsheet.ColLaborID, spreadsheet.ColFullName}
)

func csvUpload(t *testing.T, rows ...[]string) io.Reader {
	t.Helper()
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	require.NoError(t, w.WriteAll(rows))
	return &b
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type ingestFixture struct {
	svc          *ingestService
	db           sqlmock.Sqlmock
	sessions     Sessions
	store        *storeMocks.MockStorage
	applicants   *memoryApplicants
	applications *memoryApplications
}

func newIngestFixture(t *testing.T) *ingestFixture {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	applicants, applications := newMemoryStore()
	store := new(storeMocks.MockStorage)
	svc := NewIngestService(db, store, NewApplicantDirectory(applicants), NewApplicationLedger(applications), zap.NewNop(), eat, nil).(*ingestService)
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 22, 30, 0, 0, time.UTC) }

	return &ingestFixture{svc: svc, db: sqlMock, sessions: db, store: store, applicants: applicants, applications: applications}
}

func (f *ingestFixture) expectArchive(ext, contentType string) {
	f.store.On("Put", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "originals/") && strings.HasSuffix(key, ext)
	}), mock.Anything, mock.MatchedBy(func(opt storage.PutObjectOptions) bool {
		return opt.ContentType == contentType && opt.Size > 0
	})).Return(storage.ObjectInfo{}, nil)
}

func TestIngestService_Upload_RepeatedPhoneInOneBatch(t *testing.T) {
	f := newIngestFixture(t)
	f.expectArchive(".csv", "text/csv")
	f.db.ExpectBegin()
	f.db.ExpectCommit()

	res, err := f.svc.Upload(context.Background(), "march.csv", csvUpload(t,
		uploadHeader,
		[]string{"Driver", "2024-01-10", "0911223344", "", "Abebe Kebede"},
		[]string{"driver", "2024-02-05", "0911223344", "", "Abebe Kebede"},
	))

	require.NoError(t, err)
	assert.Equal(t, "march.csv", res.Filename)
	assert.Equal(t, UploadStats{NewApplicants: 1, ExistingApplicants: 1, ApplicationsAdded: 2}, res.Stats)
	assert.Len(t, f.applicants.rows, 1)
	assert.Equal(t, "+251911223344", f.applicants.rows[0].Phone)
	require.Len(t, f.applications.rows, 2)
	for _, app := range f.applications.rows {
		assert.Equal(t, f.applicants.rows[0].ID, app.ApplicantID)
		assert.Equal(t, "driver", app.Position)
		assert.Equal(t, "march.csv", app.SourceFile)
	}
	assert.NoError(t, f.db.ExpectationsWereMet())
	f.store.AssertExpectations(t)

	search := NewSearchService(f.sessions, f.applicants, f.applications, t.TempDir(), zap.NewNop(), eat)

	all, err := search.Search(context.Background(), SearchQuery{Position: "driver"})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, date(2024, 2, 5), all[0].Application.ApplicationDate)
	assert.Equal(t, date(2024, 1, 10), all[1].Application.ApplicationDate)

	unique, err := search.Search(context.Background(), SearchQuery{Position: "driver", UniqueOnly: true})
	require.NoError(t, err)
	require.Len(t, unique, 1)
	assert.Equal(t, date(2024, 2, 5), unique[0].Application.ApplicationDate)
}

func TestIngestService_Upload_EquivalentPhoneFormsResolveToOneApplicant(t *testing.T) {
	f := newIngestFixture(t)
	f.expectArchive(".csv", "text/csv")
	f.db.ExpectBegin()
	f.db.ExpectCommit()

	res, err := f.svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Cook", "2024-01-10", "251911223344", "", "Sara"},
		[]string{"Cook", "2024-01-11", "+251911223344", "", "Sara"},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.NewApplicants)
	assert.Equal(t, 1, res.Stats.ExistingApplicants)
	assert.Len(t, f.applicants.rows, 1)
}

func TestIngestService_Upload_MissingDateUsesLocalToday(t *testing.T) {
	f := newIngestFixture(t)
	f.expectArchive(".csv", "text/csv")
	f.db.ExpectBegin()
	f.db.ExpectCommit()

	_, err := f.svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Cook", "", "0911000000", "", "Sara"},
		[]string{"Cook", "not a date", "0911000001", "", "Hana"},
	))

	require.NoError(t, err)
	// 22:30 UTC on March 1st is already March 2nd in EAT.
	for _, app := range f.applications.rows {
		assert.Equal(t, date(2024, 3, 2), app.ApplicationDate)
	}
}

func TestIngestService_Upload_RejectsBeforePersisting(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		body     func(t *testing.T) io.Reader
		wantErr  error
		wantMsg  string
	}{
		{
			name:     "unsupported extension",
			filename: "scan.pdf",
			body:     func(t *testing.T) io.Reader { return strings.NewReader("whatever") },
			wantErr:  ErrUnsupportedFileType,
		},
		{
			name:     "unreadable workbook",
			filename: "broken.xlsx",
			body:     func(t *testing.T) io.Reader { return strings.NewReader("not a zip archive") },
			wantErr:  ErrUnreadableFile,
		},
		{
			name:     "missing required columns",
			filename: "partial.csv",
			body: func(t *testing.T) io.Reader {
				return csvUpload(t,
					[]string{spreadsheet.ColPosition, spreadsheet.ColPhone},
					[]string{"Driver", "0911223344"},
				)
			},
			wantErr: ErrMissingColumns,
			wantMsg: spreadsheet.ColFullName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newIngestFixture(t)

			res, err := f.svc.Upload(context.Background(), tt.filename, tt.body(t))

			assert.ErrorIs(t, err, tt.wantErr)
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.Nil(t, res)
			assert.Empty(t, f.applicants.rows)
			assert.Empty(t, f.applications.rows)
			f.store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			assert.NoError(t, f.db.ExpectationsWereMet())
		})
	}
}

func TestIngestService_Upload_NilReader(t *testing.T) {
	f := newIngestFixture(t)
	_, err := f.svc.Upload(context.Background(), "a.csv", nil)
	assert.ErrorIs(t, err, ErrReaderNil)
}

func TestIngestService_Upload_RowFailureRollsBackBatch(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applicants, _ := newMemoryStore()
	mApps := new(repoMocks.MockApplicationRepository)
	mApps.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(&model.Application{ID: 1}, nil).Once()
	mApps.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection lost")).Once()

	mStore := new(storeMocks.MockStorage)
	var archived string
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { archived = args.String(1) }).
		Return(storage.ObjectInfo{}, nil)
	mStore.On("Delete", mock.Anything, mock.MatchedBy(func(key string) bool { return key == archived })).Return(nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()

	svc := NewIngestService(db, mStore, NewApplicantDirectory(applicants), NewApplicationLedger(mApps), zap.NewNop(), eat, nil)
	res, err := svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Driver", "2024-01-10", "0911223344", "", "Abebe"},
		[]string{"Driver", "2024-01-11", "0922334455", "", "Kebede"},
	))

	assert.Nil(t, res)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 3: append application: connection lost")
	assert.NoError(t, sqlMock.ExpectationsWereMet())
	mStore.AssertExpectations(t)
}

func TestIngestService_Upload_ArchiveCleanupFailure(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	applicants, applications := newMemoryStore()
	mStore := new(storeMocks.MockStorage)
	mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(storage.ObjectInfo{}, nil)
	mStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("bucket gone"))

	sqlMock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	svc := NewIngestService(db, mStore, NewApplicantDirectory(applicants), NewApplicationLedger(applications), zap.NewNop(), eat, nil)
	_, err = svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Driver", "2024-01-10", "0911223344", "", "Abebe"},
	))

	require.Error(t, err)
	assert.Equal(t, "ingest failed: begin tx: too many connections; archive cleanup failed: bucket gone", err.Error())
}

func TestIngestService_Upload_ArchiveFailure(t *testing.T) {
	f := newIngestFixture(t)
	f.store.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.ObjectInfo{}, errors.New("access denied"))

	_, err := f.svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Driver", "2024-01-10", "0911223344", "", "Abebe"},
	))

	assert.EqualError(t, err, "archive upload: access denied")
	assert.Empty(t, f.applicants.rows)
	assert.NoError(t, f.db.ExpectationsWereMet())
}

func TestIngestService_Upload_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics, err := NewIngestMetrics(reg)
	require.NoError(t, err)

	f := newIngestFixture(t)
	f.svc.metrics = metrics
	f.expectArchive(".csv", "text/csv")
	f.db.ExpectBegin()
	f.db.ExpectCommit()

	_, err = f.svc.Upload(context.Background(), "batch.csv", csvUpload(t,
		uploadHeader,
		[]string{"Driver", "2024-01-10", "0911223344", "", "Abebe"},
		[]string{"Driver", "2024-01-11", "0911223344", "", "Abebe"},
	))
	require.NoError(t, err)
	_, _ = f.svc.Upload(context.Background(), "scan.pdf", strings.NewReader("x"))

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.uploads.WithLabelValues("committed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.uploads.WithLabelValues("rejected")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.applicants.WithLabelValues("new")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.applicants.WithLabelValues("existing")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.applications))

	_, err = NewIngestMetrics(reg)
	assert.Error(t, err, "collectors register once per registry")
}
