package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"

	"applicantpool/internal/model"
	"applicantpool/internal/repository"
)

// memoryApplicants is an in-memory ApplicantRepository honouring the phone uniqueness rule.
type memoryApplicants struct {
	mu     sync.Mutex
	nextID int64
	rows   []model.Applicant
}

func (m *memoryApplicants) FindByPhone(_ context.Context, _ repository.Querier, phone string) (*model.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.Phone == phone {
			a := a
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryApplicants) FindByLaborID(_ context.Context, _ repository.Querier, laborID string) (*model.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.rows {
		if a.LaborID == laborID {
			a := a
			return &a, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memoryApplicants) Create(_ context.Context, _ repository.Querier, a *model.Applicant) (*model.Applicant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.Phone != "" {
		for _, existing := range m.rows {
			if existing.Phone == a.Phone {
				return nil, repository.ErrDuplicatePhone
			}
		}
	}
	m.nextID++
	out := *a
	out.ID = m.nextID
	m.rows = append(m.rows, out)
	return &out, nil
}

func (m *memoryApplicants) Count(context.Context, repository.Querier) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

// memoryApplications is an in-memory ApplicationRepository joined against applicants.
type memoryApplications struct {
	mu         sync.Mutex
	nextID     int64
	rows       []model.Application
	applicants *memoryApplicants
}

func (m *memoryApplications) Create(_ context.Context, _ repository.Querier, app *model.Application) (*model.Application, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	out := *app
	out.ID = m.nextID
	m.rows = append(m.rows, out)
	return &out, nil
}

func (m *memoryApplications) applicant(id int64) (model.Applicant, bool) {
	m.applicants.mu.Lock()
	defer m.applicants.mu.Unlock()
	for _, a := range m.applicants.rows {
		if a.ID == id {
			return a, true
		}
	}
	return model.Applicant{}, false
}

func (m *memoryApplications) sorted() []model.Application {
	m.mu.Lock()
	rows := append([]model.Application(nil), m.rows...)
	m.mu.Unlock()
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].ApplicationDate.Equal(rows[j].ApplicationDate) {
			return rows[i].ApplicationDate.After(rows[j].ApplicationDate)
		}
		return rows[i].ID > rows[j].ID
	})
	return rows
}

func (m *memoryApplications) Search(_ context.Context, _ repository.Querier, f repository.SearchFilter) ([]model.ApplicationRecord, error) {
	out := make([]model.ApplicationRecord, 0)
	for _, app := range m.sorted() {
		if !strings.Contains(app.Position, f.Position) {
			continue
		}
		if f.From != nil && app.ApplicationDate.Before(*f.From) {
			continue
		}
		if f.To != nil && app.ApplicationDate.After(*f.To) {
			continue
		}
		a, ok := m.applicant(app.ApplicantID)
		if !ok {
			continue
		}
		out = append(out, model.ApplicationRecord{Application: app, Applicant: a})
	}
	return out, nil
}

func (m *memoryApplications) Count(context.Context, repository.Querier) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

func (m *memoryApplications) CountByPosition(context.Context, repository.Querier) ([]model.PositionCount, error) {
	counts := map[string]int{}
	for _, app := range m.sorted() {
		if app.Position != "" {
			counts[app.Position]++
		}
	}
	out := make([]model.PositionCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, model.PositionCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memoryApplications) Recent(_ context.Context, _ repository.Querier, limit int) ([]model.RecentActivity, error) {
	out := make([]model.RecentActivity, 0, limit)
	for _, app := range m.sorted() {
		if len(out) == limit {
			break
		}
		a, ok := m.applicant(app.ApplicantID)
		out = append(out, model.RecentActivity{
			ApplicationID:   app.ID,
			ApplicantName:   a.FullName,
			ApplicantFound:  ok,
			Position:        app.Position,
			ApplicationDate: app.ApplicationDate,
		})
	}
	return out, nil
}

func (m *memoryApplications) DistinctPositions(context.Context, repository.Querier) ([]string, error) {
	var out []string
	for _, app := range m.sorted() {
		if app.Position != "" {
			out = append(out, app.Position)
		}
	}
	return out, nil
}

func newMemoryStore() (*memoryApplicants, *memoryApplications) {
	applicants := &memoryApplicants{}
	return applicants, &memoryApplications{applicants: applicants}
}
