package api

import (
	"errors"
	"net/http"

	"fitplan/training-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// ExportHandler serves plan exports.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export renders the workspace plan in the requested format.
// Query params: format=csv|document (default csv), archive=true to also
// store the export and receive a download link. A workspace with no
// weeks answers 422 before any formatter runs.
func (h *ExportHandler) Export(c *gin.Context) {
	format := service.ExportFormat(c.DefaultQuery("format", string(service.FormatCSV)))
	archive := c.Query("archive") == "true"

	result, err := h.exportService.Export(c.Request.Context(), getUserFromContext(c), format, archive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNothingToExport):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, service.ErrUnknownFormat):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrArchiveDisabled):
			abortWithError(c, http.StatusConflict, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "export failed, please try again")
		}
		return
	}

	if result.ArchiveURL != "" {
		c.JSON(http.StatusOK, gin.H{
			"filename":    result.Filename,
			"downloadUrl": result.ArchiveURL,
		})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
