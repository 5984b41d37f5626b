package repository

import (
	"context"
	"time"

	"applicantpool/internal/model"
)

// SearchFilter selects applications whose position contains Position and whose date lies
// within [From, To]. Nil bounds are open.
type SearchFilter struct {
	Position string
	From     *time.Time
	To       *time.Time
}

// ApplicationRepository defines data access for applications.
type ApplicationRepository interface {
	// Create appends an application and returns it with its assigned ID.
	Create(ctx context.Context, q Querier, app *model.Application) (*model.Application, error)

	// Search returns matching applications joined with their applicant,
	// newest application date first, ties broken by descending id.
	Search(ctx context.Context, q Querier, f SearchFilter) ([]model.ApplicationRecord, error)

	// Count returns the number of applications.
	Count(ctx context.Context, q Querier) (int, error)

	// CountByPosition returns application counts per non-empty position, largest first.
	CountByPosition(ctx context.Context, q Querier) ([]model.PositionCount, error)

	// Recent returns the latest applications with the owning applicant's name when it resolves.
	Recent(ctx context.Context, q Querier, limit int) ([]model.RecentActivity, error)

	// DistinctPositions returns every non-empty position value, in no particular order.
	DistinctPositions(ctx context.Context, q Querier) ([]string, error)
}
