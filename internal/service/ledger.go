package service

import (
	"context"
	"fmt"
	"time"

	"applicantpool/internal/cleaner"
	"applicantpool/internal/model"
	"applicantpool/internal/repository"
)

// ApplicationLedger appends application events.
type ApplicationLedger interface {
	// Append records one application for applicantID. Position is stored lower-cased and
	// date as a calendar date.
	Append(ctx context.Context, q repository.Querier, applicantID int64, position string, date time.Time, sourceFile string) (*model.Application, error)
}

type applicationLedger struct {
	repo repository.ApplicationRepository
}

// NewApplicationLedger constructs an ApplicationLedger over repo.
func NewApplicationLedger(repo repository.ApplicationRepository) ApplicationLedger {
	return &applicationLedger{repo: repo}
}

func (l *applicationLedger) Append(ctx context.Context, q repository.Querier, applicantID int64, position string, date time.Time, sourceFile string) (*model.Application, error) {
	app, err := l.repo.Create(ctx, q, &model.Application{
		ApplicantID:     applicantID,
		Position:        cleaner.Position(position),
		ApplicationDate: cleaner.DateOnly(date),
		SourceFile:      sourceFile,
	})
	if err != nil {
		return nil, fmt.Errorf("append application: %w", err)
	}
	return app, nil
}
