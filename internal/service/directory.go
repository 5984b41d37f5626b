package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
)

// ApplicantDirectory maps an incoming row to an existing or newly created applicant.
type ApplicantDirectory interface {
	// ResolveOrCreate looks the applicant up by phone, then by labor id, and creates it when
	// neither matches. A created applicant is written through q immediately so later rows on
	// the same session find it. Existing applicants are returned as stored; their fields are
	// never updated from the incoming values.
	ResolveOrCreate(ctx context.Context, q repository.Querier, phone, laborID, fullName string) (*model.Applicant, bool, error)
}

type applicantDirectory struct {
	repo repository.ApplicantRepository
}

// NewApplicantDirectory constructs an ApplicantDirectory over repo.
func NewApplicantDirectory(repo repository.ApplicantRepository) ApplicantDirectory {
	return &applicantDirectory{repo: repo}
}

func (d *applicantDirectory) ResolveOrCreate(ctx context.Context, q repository.Querier, phone, laborID, fullName string) (*model.Applicant, bool, error) {
	if phone != "" {
		a, err := d.repo.FindByPhone(ctx, q, phone)
		if err == nil {
			return a, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("find applicant by phone: %w", err)
		}
	}

	if laborID != "" {
		a, err := d.repo.FindByLaborID(ctx, q, laborID)
		if err == nil {
			return a, false, nil
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return nil, false, fmt.Errorf("find applicant by labor id: %w", err)
		}
	}

	created, err := d.repo.Create(ctx, q, &model.Applicant{
		FullName: fullName,
		Phone:    phone,
		LaborID:  laborID,
	})
	if err == nil {
		return created, true, nil
	}
	if !errors.Is(err, repository.ErrDuplicatePhone) {
		return nil, false, fmt.Errorf("create applicant: %w", err)
	}

	// Another session created this phone between our lookup and insert.
	a, err := d.repo.FindByPhone(ctx, q, phone)
	if err != nil {
		return nil, false, fmt.Errorf("find applicant after phone conflict: %w", err)
	}
	return a, false, nil
}
