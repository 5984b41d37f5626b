package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"applicantpool/internal/model"
	"applicantpool/internal/service"
	"applicantpool/internal/spreadsheet"
)

const (
	outputJSON  = "json"
	outputExcel = "excel"
	dateLayout  = "2006-01-02"
)

// searchRequest is the search form. Dates are validated by the service so malformed values
// surface as INVALID_DATE.
type searchRequest struct {
	Position     string `form:"position" validate:"notblank"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	UniqueOnly   string `form:"unique_only" validate:"omitempty,formbool"`
	OutputFormat string `form:"output_format" validate:"omitempty,oneof=json excel"`
}

// ApplicantItem is one search hit in JSON output.
type ApplicantItem struct {
	FullName        string `json:"full_name" example:"Abebe Kebede"`
	Phone           string `json:"phone" example:"+251911223344"`
	LaborID         string `json:"labor_id" example:"LB-1029"`
	Position        string `json:"position" example:"driver"`
	ApplicationDate string `json:"application_date" example:"2024-02-05"`
	SourceFile      string `json:"source_file" example:"registrations_march.xlsx"`
}

// SearchResponse is the JSON form of a search.
type SearchResponse struct {
	Count      int             `json:"count" example:"1"`
	Position   string          `json:"position" example:"driver"`
	Applicants []ApplicantItem `json:"applicants"`
}

// formBool reads a boolean form value the way HTML forms send it: checkboxes post "on",
// other clients post true/false, 1/0 or yes/no. An absent value is false.
func formBool(v string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "off", "no", "n", "f":
		return false, true
	case "true", "1", "on", "yes", "y", "t":
		return true, true
	}
	return false, false
}

func toApplicantItems(records []model.ApplicationRecord) []ApplicantItem {
	items := make([]ApplicantItem, 0, len(records))
	for _, r := range records {
		items = append(items, ApplicantItem{
			FullName:        r.Applicant.FullName,
			Phone:           r.Applicant.Phone,
			LaborID:         r.Applicant.LaborID,
			Position:        r.Application.Position,
			ApplicationDate: r.Application.ApplicationDate.Format(dateLayout),
			SourceFile:      r.Application.SourceFile,
		})
	}
	return items
}

// Search godoc
// @Summary      Search applications
// @Description  Finds applications whose position contains the given text, optionally within an inclusive date range. Returns JSON or an Excel download.
// @Tags         applicants
// @Accept       x-www-form-urlencoded
// @Accept       multipart/form-data
// @Produce      json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        position       formData  string  true   "Position substring"
// @Param        start_date     formData  string  false  "Earliest application date (YYYY-MM-DD)"
// @Param        end_date       formData  string  false  "Latest application date (YYYY-MM-DD)"
// @Param        unique_only    formData  string  false  "Keep only the most recent application per applicant (true/false, on, 1/0, yes/no)"
// @Param        output_format  formData  string  false  "json or excel"  Enums(json, excel)  default(excel)
// @Success      200  {object}  SearchResponse
// @Failure      400  {object}  ErrorPayload
// @Failure      404  {object}  ErrorPayload
// @Failure      500  {object}  ErrorPayload
// @Router       /search [post]
func Search(svc service.SearchService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid form body")
		}
		if msg := validateRequest(req); msg != "" {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", msg)
		}

		uniqueOnly, _ := formBool(req.UniqueOnly)

		from, err := service.ParseDateBound(req.StartDate)
		if err != nil {
			return writeServiceError(c, err)
		}
		to, err := service.ParseDateBound(req.EndDate)
		if err != nil {
			return writeServiceError(c, err)
		}

		q := service.SearchQuery{
			Position:   req.Position,
			From:       from,
			To:         to,
			UniqueOnly: uniqueOnly,
		}

		if req.OutputFormat == outputJSON {
			records, err := svc.Search(c.UserContext(), q)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(SearchResponse{
				Count:      len(records),
				Position:   req.Position,
				Applicants: toApplicantItems(records),
			})
		}

		exp, err := svc.Export(c.UserContext(), q)
		if err != nil {
			return writeServiceError(c, err)
		}
		if err := c.Download(exp.Path, exp.Name); err != nil {
			return writeServiceError(c, err)
		}
		c.Set(fiber.HeaderContentType, spreadsheet.ContentType)
		return nil
	}
}
