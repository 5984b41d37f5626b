package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"applicantpool/internal/cleaner"
	"applicantpool/internal/model"
	"applicantpool/internal/repository"
	"applicantpool/internal/spreadsheet"
)

const (
	recentActivityLimit = 10
	// UnknownApplicant replaces the name of an application whose applicant does not resolve.
	UnknownApplicant = "Unknown"
)

// SearchQuery selects applications by position substring and an inclusive date range.
type SearchQuery struct {
	Position   string
	From       *time.Time
	To         *time.Time
	UniqueOnly bool
}

// Statistics is the dashboard summary of the ledger.
type Statistics struct {
	TotalApplicants   int
	TotalApplications int
	Positions         []model.PositionCount
	Recent            []model.RecentActivity
}

// Export describes a generated spreadsheet on local disk.
type Export struct {
	Path  string
	Name  string
	Count int
}

// SearchService answers read-only questions about applicants and applications.
type SearchService interface {
	// Search returns matches newest first. With UniqueOnly only the most recent match of
	// each applicant is kept.
	Search(ctx context.Context, q SearchQuery) ([]model.ApplicationRecord, error)

	// Export runs Search and writes the result to a spreadsheet. An empty result yields
	// ErrNoResults and no file.
	Export(ctx context.Context, q SearchQuery) (*Export, error)

	// Statistics returns totals, per-position counts and the latest applications.
	Statistics(ctx context.Context) (*Statistics, error)

	// Positions returns every non-empty position once, sorted alphabetically.
	Positions(ctx context.Context) ([]string, error)
}

type searchService struct {
	db           Sessions
	applicants   repository.ApplicantRepository
	applications repository.ApplicationRepository
	exportDir    string
	log          *zap.Logger
	loc          *time.Location
	now          func() time.Time
}

// NewSearchService constructs a SearchService. Exports are written to exportDir and named
// after the current time in loc.
func NewSearchService(db Sessions, applicants repository.ApplicantRepository, applications repository.ApplicationRepository, exportDir string, log *zap.Logger, loc *time.Location) SearchService {
	if loc == nil {
		loc = time.UTC
	}
	return &searchService{
		db:           db,
		applicants:   applicants,
		applications: applications,
		exportDir:    exportDir,
		log:          log.With(zap.String("component", "search")),
		loc:          loc,
		now:          time.Now,
	}
}

// ParseDateBound parses an optional YYYY-MM-DD bound. An empty string means no bound.
func ParseDateBound(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := cleaner.ParseISODate(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

func (s *searchService) Search(ctx context.Context, q SearchQuery) ([]model.ApplicationRecord, error) {
	needle := cleaner.Position(q.Position)
	if needle == "" {
		return nil, ErrPositionRequired
	}

	ctx, span := tracer.Start(ctx, "SearchService.Search", trace.WithAttributes(
		attribute.String("search.position", needle),
		attribute.Bool("search.unique_only", q.UniqueOnly),
	))
	defer span.End()

	var records []model.ApplicationRecord
	err := withConn(ctx, s.db, func(conn repository.Querier) error {
		var err error
		records, err = s.applications.Search(ctx, conn, repository.SearchFilter{
			Position: needle,
			From:     q.From,
			To:       q.To,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("search applications: %w", err)
	}

	if q.UniqueOnly {
		records = collapseByApplicant(records)
	}
	span.SetAttributes(attribute.Int("search.results", len(records)))
	return records, nil
}

func (s *searchService) Export(ctx context.Context, q SearchQuery) (*Export, error) {
	records, err := s.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoResults
	}

	name := spreadsheet.ExportFileName(q.Position, s.now().In(s.loc))
	path, err := spreadsheet.SaveExport(s.exportDir, name, records)
	if err != nil {
		return nil, fmt.Errorf("write export: %w", err)
	}

	s.log.Info("export_written", zap.String("file", name), zap.Int("rows", len(records)))
	return &Export{Path: path, Name: name, Count: len(records)}, nil
}

func (s *searchService) Statistics(ctx context.Context) (*Statistics, error) {
	ctx, span := tracer.Start(ctx, "SearchService.Statistics")
	defer span.End()

	var st Statistics
	err := withConn(ctx, s.db, func(conn repository.Querier) error {
		var err error
		if st.TotalApplicants, err = s.applicants.Count(ctx, conn); err != nil {
			return fmt.Errorf("count applicants: %w", err)
		}
		if st.TotalApplications, err = s.applications.Count(ctx, conn); err != nil {
			return fmt.Errorf("count applications: %w", err)
		}
		if st.Positions, err = s.applications.CountByPosition(ctx, conn); err != nil {
			return fmt.Errorf("count by position: %w", err)
		}
		if st.Recent, err = s.applications.Recent(ctx, conn, recentActivityLimit); err != nil {
			return fmt.Errorf("recent applications: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i := range st.Recent {
		if !st.Recent[i].ApplicantFound {
			s.log.Warn("application_without_applicant", zap.Int64("application_id", st.Recent[i].ApplicationID))
			st.Recent[i].ApplicantName = UnknownApplicant
		}
	}
	return &st, nil
}

func (s *searchService) Positions(ctx context.Context) ([]string, error) {
	var raw []string
	err := withConn(ctx, s.db, func(conn repository.Querier) error {
		var err error
		raw, err = s.applications.DistinctPositions(ctx, conn)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p == "" {
			continue
		}
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	sort.Strings(out)
	return out, nil
}

// collapseByApplicant keeps the first record per applicant dedup key. Input is newest first,
// so the kept record is the applicant's most recent match.
func collapseByApplicant(records []model.ApplicationRecord) []model.ApplicationRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.ApplicationRecord, 0, len(records))
	for _, rec := range records {
		key := rec.Applicant.DedupKey()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, rec)
	}
	return out
}
