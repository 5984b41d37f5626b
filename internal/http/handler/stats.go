package handler

import (
	"github.com/gofiber/fiber/v2"

	"applicantpool/internal/model"
	"applicantpool/internal/service"
)

// RecentActivityItem is one of the latest applications.
type RecentActivityItem struct {
	Date      string `json:"date" example:"2024-02-05"`
	Applicant string `json:"applicant" example:"Abebe Kebede"`
	Position  string `json:"position" example:"driver"`
}

// StatsResponse summarises the stored data.
type StatsResponse struct {
	TotalApplicants   int                   `json:"total_applicants" example:"120"`
	TotalApplications int                   `json:"total_applications" example:"310"`
	Positions         []model.PositionCount `json:"positions"`
	RecentActivity    []RecentActivityItem  `json:"recent_activity"`
}

// PositionsResponse lists known positions.
type PositionsResponse struct {
	Positions []string `json:"positions"`
}

// Stats godoc
// @Summary      Statistics
// @Description  Totals, application counts per position (largest first) and the ten most recent applications.
// @Tags         applicants
// @Produce      json
// @Success      200  {object}  StatsResponse
// @Failure      500  {object}  ErrorPayload
// @Router       /stats [get]
func Stats(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		st, err := svc.Statistics(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}

		recent := make([]RecentActivityItem, 0, len(st.Recent))
		for _, r := range st.Recent {
			recent = append(recent, RecentActivityItem{
				Date:      r.ApplicationDate.Format(dateLayout),
				Applicant: r.ApplicantName,
				Position:  r.Position,
			})
		}
		positions := st.Positions
		if positions == nil {
			positions = []model.PositionCount{}
		}

		return c.JSON(StatsResponse{
			TotalApplicants:   st.TotalApplicants,
			TotalApplications: st.TotalApplications,
			Positions:         positions,
			RecentActivity:    recent,
		})
	}
}

// Positions godoc
// @Summary      List positions
// @Description  Every distinct non-empty position, sorted alphabetically.
// @Tags         applicants
// @Produce      json
// @Success      200  {object}  PositionsResponse
// @Failure      500  {object}  ErrorPayload
// @Router       /positions [get]
func Positions(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		positions, err := svc.Positions(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(PositionsResponse{Positions: positions})
	}
}
