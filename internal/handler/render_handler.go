package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"qtirender/internal/port"
	"qtirender/internal/render"
	"qtirender/internal/style"
)

// RenderHandler renders markup without storing it.
type RenderHandler struct {
	renderer     port.FragmentRenderer
	maxBodyBytes int64
}

// NewRenderHandler creates a new RenderHandler. maxBodyBytes caps the request
// body; zero disables the cap.
func NewRenderHandler(renderer port.FragmentRenderer, maxBodyBytes int64) *RenderHandler {
	return &RenderHandler{renderer: renderer, maxBodyBytes: maxBodyBytes}
}

// Render handles POST /api/v1/render
// @Summary Render markup
// @Description Label the inline blanks of an HTML fragment. Accepts a JSON body or raw text/html in any charset.
// @Tags render
// @Accept json,html
// @Produce json
// @Param request body RenderRequest true "Markup to render"
// @Success 200 {object} Response{data=RenderResult} "Rendered fragment"
// @Failure 400 {object} ErrorResponseBody "Invalid request or empty markup"
// @Failure 401 {object} ErrorResponseBody "Unauthorized"
// @Failure 413 {object} ErrorResponseBody "Markup too large"
// @Security BearerAuth
// @Router /render [post]
func (h *RenderHandler) Render(c *gin.Context) {
	limitBody(c, h.maxBodyBytes)

	var markup string
	contentType := c.GetHeader("Content-Type")
	if strings.HasPrefix(contentType, "text/html") {
		decoded, err := render.ReadMarkup(c.Request.Body, contentType)
		if isBodyTooLarge(err) {
			respondBodyTooLarge(c)
			return
		}
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "could not decode markup")
			return
		}
		markup = decoded
	} else {
		var req RenderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			if isBodyTooLarge(err) {
				respondBodyTooLarge(c)
				return
			}
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "markup is required")
			return
		}
		markup = req.Markup
	}

	out, err := h.renderer.Render(c.Request.Context(), markup)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, RenderResult{
		RenderedFragment: *out,
		StyleTags:        style.Tags(out.Styles),
	})
}
