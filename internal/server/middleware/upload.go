package middleware

import (
	"github.com/doafacil/doafacil/internal/models"
	"github.com/labstack/echo/v4"
)

// uploadField is the multipart form field carrying product images.
const uploadField = "images"

// UploadedFiles extracts the uploaded image descriptors from a multipart
// request, preserving upload order. Non-multipart requests yield nil.
func UploadedFiles(c echo.Context) []models.UploadedFile {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil
	}

	headers := form.File[uploadField]
	if len(headers) == 0 {
		return nil
	}

	files := make([]models.UploadedFile, 0, len(headers))
	for _, h := range headers {
		files = append(files, models.UploadedFile{
			Filename: h.Filename,
			Size:     h.Size,
		})
	}
	return files
}
