package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"qtirender/internal/middleware"
	"qtirender/internal/service"
)

// ItemHandler handles item management endpoints.
type ItemHandler struct {
	itemService  service.ItemService
	maxBodyBytes int64
}

// NewItemHandler creates a new ItemHandler. maxBodyBytes caps the create
// request body; zero disables the cap.
func NewItemHandler(itemService service.ItemService, maxBodyBytes int64) *ItemHandler {
	return &ItemHandler{itemService: itemService, maxBodyBytes: maxBodyBytes}
}

// Create handles POST /api/v1/items
// @Summary Create an item
// @Description Store item markup and queue it for accessible rendering
// @Tags items
// @Accept json
// @Produce json
// @Param request body CreateItemRequest true "Item details"
// @Success 201 {object} Response{data=domain.Item} "Item created and queued"
// @Failure 400 {object} ErrorResponseBody "Invalid request"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 403 {object} ErrorResponseBody "Insufficient role"
// @Failure 413 {object} ErrorResponseBody "Markup too large"
// @Security BearerAuth
// @Router /items [post]
func (h *ItemHandler) Create(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}

	limitBody(c, h.maxBodyBytes)

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isBodyTooLarge(err) {
			respondBodyTooLarge(c)
			return
		}
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "title and source_html are required")
		return
	}

	item, err := h.itemService.Create(c.Request.Context(), service.CreateItemInput{
		Title:      req.Title,
		SourceHTML: req.SourceHTML,
		CreatedBy:  userID,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, item)
}

// List handles GET /api/v1/items
// @Summary List items
// @Tags items
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} Response{data=[]domain.Item,meta=PagMeta} "List of items"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Security BearerAuth
// @Router /items [get]
func (h *ItemHandler) List(c *gin.Context) {
	offset, limit := parsePagination(c)

	items, total, err := h.itemService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, items, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/items/:id
// @Summary Get an item
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=domain.Item} "Item"
// @Failure 400 {object} ErrorResponseBody "Invalid item ID"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id} [get]
func (h *ItemHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	item, err := h.itemService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, item)
}

// Snapshot handles GET /api/v1/items/:id/snapshot
// @Summary Get snapshot URL
// @Description Presigned URL of the standalone rendered HTML page
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=SnapshotResponse} "Presigned snapshot URL"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Failure 409 {object} ErrorResponseBody "Item not rendered yet"
// @Security BearerAuth
// @Router /items/{id}/snapshot [get]
func (h *ItemHandler) Snapshot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	url, err := h.itemService.SnapshotURL(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, SnapshotResponse{URL: url})
}

// SnapshotContent handles GET /api/v1/items/:id/snapshot/content
// @Summary Get snapshot page
// @Description The standalone rendered HTML page, read from storage
// @Tags items
// @Produce html
// @Param id path string true "Item ID (UUID)"
// @Success 200 {string} string "Snapshot page"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Failure 409 {object} ErrorResponseBody "Item not rendered yet"
// @Security BearerAuth
// @Router /items/{id}/snapshot/content [get]
func (h *ItemHandler) SnapshotContent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	data, err := h.itemService.SnapshotContent(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Cache-Control", "private, max-age=300")
	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// Rerender handles POST /api/v1/items/:id/rerender
// @Summary Queue an item for rendering again
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Item requeued"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id}/rerender [post]
func (h *ItemHandler) Rerender(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	if err := h.itemService.Requeue(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "item queued for rendering"})
}

// Delete handles DELETE /api/v1/items/:id
// @Summary Delete an item
// @Description Delete an item, its responses and its snapshot
// @Tags items
// @Produce json
// @Param id path string true "Item ID (UUID)"
// @Success 200 {object} Response{data=MessageResponse} "Item deleted"
// @Failure 404 {object} ErrorResponseBody "Item not found"
// @Security BearerAuth
// @Router /items/{id} [delete]
func (h *ItemHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid item ID")
		return
	}

	if err := h.itemService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, MessageResponse{Message: "item deleted"})
}
