package handler

import (
	"github.com/gofiber/fiber/v2"

	"applicantpool/internal/service"
)

// UploadResponse reports the outcome of a committed upload.
type UploadResponse struct {
	Success  bool                `json:"success" example:"true"`
	Message  string              `json:"message" example:"File processed successfully"`
	Stats    service.UploadStats `json:"stats"`
	Filename string              `json:"filename" example:"registrations_march.xlsx"`
}

// Upload godoc
// @Summary      Upload a registration spreadsheet
// @Description  Parses an .xlsx, .xlsm, .xls or .csv file and records one application per row. The whole file is applied atomically.
// @Tags         applicants
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Spreadsheet file"
// @Success      200   {object}  UploadResponse
// @Failure      400   {object}  ErrorPayload
// @Failure      500   {object}  ErrorPayload
// @Router       /upload [post]
func Upload(svc service.IngestService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		res, err := svc.Upload(c.UserContext(), fh.Filename, f)
		if err != nil {
			return writeServiceError(c, err)
		}

		return c.JSON(UploadResponse{
			Success:  true,
			Message:  "File processed successfully",
			Stats:    res.Stats,
			Filename: res.Filename,
		})
	}
}
