package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"applicantpool/internal/cleaner"
	"applicantpool/internal/database"
	"applicantpool/internal/repository"
	"applicantpool/internal/spreadsheet"
	"applicantpool/internal/storage"
)

var tracer = otel.Tracer("applicantpool/internal/service")

// UploadStats summarises one committed upload.
type UploadStats struct {
	NewApplicants      int `json:"new_applicants"`
	ExistingApplicants int `json:"existing_applicants"`
	ApplicationsAdded  int `json:"applications_added"`
}

// UploadResult is returned for a committed upload.
type UploadResult struct {
	Filename   string
	ArchiveKey string
	Stats      UploadStats
}

// IngestService turns uploaded spreadsheets into applicants and applications.
type IngestService interface {
	// Upload parses the file, validates its columns, archives the raw bytes and then applies
	// every row inside one transaction. Either all rows are persisted or none are, and the
	// archived copy is removed again when the batch fails.
	Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error)
}

type ingestService struct {
	db        Sessions
	store     storage.Storage
	directory ApplicantDirectory
	ledger    ApplicationLedger
	log       *zap.Logger
	loc       *time.Location
	metrics   *IngestMetrics
	now       func() time.Time
}

// NewIngestService constructs an IngestService. loc decides the calendar date used for rows
// without a usable date. metrics may be nil.
func NewIngestService(db Sessions, store storage.Storage, directory ApplicantDirectory, ledger ApplicationLedger, log *zap.Logger, loc *time.Location, metrics *IngestMetrics) IngestService {
	if loc == nil {
		loc = time.UTC
	}
	return &ingestService{
		db:        db,
		store:     store,
		directory: directory,
		ledger:    ledger,
		log:       log.With(zap.String("component", "ingest")),
		loc:       loc,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *ingestService) Upload(ctx context.Context, filename string, r io.Reader) (*UploadResult, error) {
	if r == nil {
		return nil, ErrReaderNil
	}
	filename = filepath.Base(filename)

	ctx, span := tracer.Start(ctx, "IngestService.Upload",
		trace.WithAttributes(attribute.String("upload.filename", filename)))
	defer span.End()

	start := time.Now()
	log := s.log.With(zap.String("filename", filename))

	table, data, err := s.parse(filename, r)
	if err != nil {
		s.metrics.rejected()
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload rejected")
		log.Warn("upload_rejected", zap.Error(err))
		return nil, err
	}
	span.SetAttributes(attribute.Int("upload.rows", len(table.Rows)))
	log.Info("upload_started", zap.Int("rows", len(table.Rows)), zap.Int("bytes", len(data)))

	key := path.Join("originals", uuid.NewString()+strings.ToLower(filepath.Ext(filename)))
	if _, err := s.store.Put(ctx, key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: spreadsheet.ContentTypeOf(filename),
		Metadata: map[string]string{
			"original-filename": url.PathEscape(filename),
		},
	}); err != nil {
		s.metrics.failed()
		span.RecordError(err)
		span.SetStatus(codes.Error, "archive failed")
		return nil, fmt.Errorf("archive upload: %w", err)
	}

	today := s.now().In(s.loc)
	var stats UploadStats
	err = database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		stats = UploadStats{}
		for _, row := range table.Rows {
			if err := s.applyRow(ctx, tx, log, row, filename, today, &stats); err != nil {
				return fmt.Errorf("row %d: %w", row.Line, err)
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.failed()
		span.RecordError(err)
		span.SetStatus(codes.Error, "batch rolled back")
		log.Error("upload_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))

		// Rollback: remove the archived original so storage matches the database.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("ingest failed: %v; archive cleanup failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("ingest failed: %w", err)
	}

	s.metrics.committed(stats)
	log.Info("upload_committed",
		zap.String("archive_key", key),
		zap.Int("new_applicants", stats.NewApplicants),
		zap.Int("existing_applicants", stats.ExistingApplicants),
		zap.Int("applications_added", stats.ApplicationsAdded),
		zap.Duration("duration", time.Since(start)),
	)

	return &UploadResult{Filename: filename, ArchiveKey: key, Stats: stats}, nil
}

// parse reads and validates the upload before anything is persisted.
func (s *ingestService) parse(filename string, r io.Reader) (*spreadsheet.Table, []byte, error) {
	if !spreadsheet.Supported(filename) {
		return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, filepath.Ext(filename))
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}

	table, err := spreadsheet.Read(filename, bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, spreadsheet.ErrUnsupportedFormat) {
			return nil, nil, fmt.Errorf("%w: %v", ErrUnsupportedFileType, err)
		}
		return nil, nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
	}

	if missing := table.MissingColumns(spreadsheet.RequiredColumns); len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return table, data, nil
}

func (s *ingestService) applyRow(ctx context.Context, q repository.Querier, log *zap.Logger, row spreadsheet.Row, sourceFile string, today time.Time, stats *UploadStats) error {
	phone := cleaner.Phone(row.Get(spreadsheet.ColPhone))
	laborID := cleaner.Text(row.Get(spreadsheet.ColLaborID))
	fullName := cleaner.Text(row.Get(spreadsheet.ColFullName))
	position := cleaner.Text(row.Get(spreadsheet.ColPosition))
	date := cleaner.Date(row.Get(spreadsheet.ColDate), today)

	if phone != "" && !cleaner.IsValidPhone(phone) {
		log.Warn("phone_not_normalized", zap.Int("line", row.Line), zap.String("phone", phone))
	}

	applicant, created, err := s.directory.ResolveOrCreate(ctx, q, phone, laborID, fullName)
	if err != nil {
		return err
	}
	if created {
		stats.NewApplicants++
	} else {
		stats.ExistingApplicants++
	}

	if _, err := s.ledger.Append(ctx, q, applicant.ID, position, date, sourceFile); err != nil {
		return err
	}
	stats.ApplicationsAdded++
	return nil
}
