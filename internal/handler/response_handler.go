package handler

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qtirender/internal/domain"
	"qtirender/internal/export"
	"qtirender/internal/middleware"
	"qtirender/internal/service"
)

// ResponseHandler handles learner response endpoints.
type ResponseHandler struct {
	itemService     service.ItemService
	responseService service.ResponseService
}

// NewResponseHandler creates a new ResponseHandler.
func NewResponseHandler(itemService service.ItemService, responseService service.ResponseService) *ResponseHandler {
	return &ResponseHandler{itemService: itemService, responseService: responseService}
}

// Submit handles POST /api/v1/items/:id/responses
// @Summary Submit answers
// @Description Record the caller's answers to a rendered item, replacing an earlier submission
// @Tags responses
// @Accept json
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param request body SubmitResponseRequest true "Answers keyed by response identifier"
// @Success 201 {object} Response{data=domain.Response} "Response recorded"
// @Failure 400 {object} ErrorResponseBody "Empty or unknown answers"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Failure 409 {object} ErrorResponseBody "Item not rendered yet"
// @Security BearerAuth
// @Router /items/{id}/responses [post]
func (h *ResponseHandler) Submit(c *gin.Context) {
	learnerID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	var req SubmitResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "answers are required")
		return
	}

	resp, err := h.responseService.Submit(c.Request.Context(), learnerID, itemID, req.Answers)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, resp)
}

// List handles GET /api/v1/items/:id/responses
// @Summary List responses to an item
// @Tags responses
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.Response,meta=PagMeta} "List of responses"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id}/responses [get]
func (h *ResponseHandler) List(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	offset, limit := parsePagination(c)

	responses, total, err := h.responseService.ListByItem(c.Request.Context(), itemID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, responses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Export handles GET /api/v1/items/:id/responses/export
// @Summary Export responses
// @Description Download every response to an item as CSV or XLSX, one column per response identifier
// @Tags responses
// @Produce text/csv,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "Item ID (UUID)"
// @Param format query string false "Export format" Enums(csv, xlsx) default(csv)
// @Success 200 {file} file "Export file"
// @Failure 400 {object} ErrorResponseBody "Unsupported format"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id}/responses/export [get]
func (h *ResponseHandler) Export(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}
	format, err := domain.ParseExportFormat(c.Query("format"))
	if err != nil {
		HandleError(c, err)
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), itemID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := export.BuildFilename(item.Title, format, time.Now())
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	// Headers are already sent; a failure here can only be logged.
	if err := h.responseService.Export(c.Request.Context(), item, format, c.Writer); err != nil {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] export of item %s failed: %v", requestID, item.ID, err)
	}
}
