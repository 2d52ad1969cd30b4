package handler

import (
	"errors"
	"fmt"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/logger"
	"github.com/LoganMichel/logmi-app/pkg/qr"
	"github.com/LoganMichel/logmi-app/pkg/response"
	"github.com/LoganMichel/logmi-app/pkg/validator"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// LinktreeHandler manages profile links over /api/linktree. Profile links are
// addressed by ID rather than short code, and their public redirect lives
// under /links/go/:linkID so the same link can be renamed or retargeted
// without breaking printed QR codes.
type LinktreeHandler struct {
	links   LinkManager
	qr      qr.Encoder
	baseURL string
}

func NewLinktreeHandler(links LinkManager, encoder qr.Encoder, baseURL string) *LinktreeHandler {
	return &LinktreeHandler{links: links, qr: encoder, baseURL: baseURL}
}

type profileLinkResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	LongURL      string    `json:"long_url"`
	Owner        string    `json:"owner"`
	RedirectURL  string    `json:"redirect_url"`
	IsActive     bool      `json:"is_active"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    string    `json:"created_at"`
	ClickCount   *int64    `json:"click_count,omitempty"`
	QRBase64     string    `json:"qr_base64,omitempty"`
}

func (h *LinktreeHandler) redirectURL(id uuid.UUID) string {
	return fmt.Sprintf("%s/links/go/%s", h.baseURL, id)
}

func (h *LinktreeHandler) toResponse(link *domain.Link, clicks *int64) profileLinkResponse {
	return profileLinkResponse{
		ID:           link.ID,
		Name:         link.Name,
		LongURL:      link.LongURL,
		Owner:        link.Owner,
		RedirectURL:  h.redirectURL(link.ID),
		IsActive:     link.IsActive,
		DisplayOrder: link.DisplayOrder,
		CreatedAt:    link.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ClickCount:   clicks,
	}
}

func (h *LinktreeHandler) withQR(c *gin.Context, resp *profileLinkResponse) {
	encoded, err := h.qr.EncodeBase64(resp.RedirectURL + "?qrcode=true")
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("qr encoding failed", "error", err)
		return
	}
	resp.QRBase64 = encoded
}

// Create handles POST /api/linktree/links.
func (h *LinktreeHandler) Create(c *gin.Context) {
	var req domain.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	link, err := h.links.CreateLinktreeLink(c.Request.Context(), &req)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("create link failed", "error", err)
		response.InternalServerError(c, "failed to create link")
		return
	}

	resp := h.toResponse(link, nil)
	h.withQR(c, &resp)
	response.Created(c, "link created", resp)
}

// List handles GET /api/linktree/links?owner=.
func (h *LinktreeHandler) List(c *gin.Context) {
	owner := c.Query("owner")
	if owner == "" {
		response.BadRequest(c, "owner query parameter is required")
		return
	}

	links, err := h.links.ListLinktree(c.Request.Context(), owner)
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("list links failed", "error", err)
		response.InternalServerError(c, "failed to list links")
		return
	}

	out := make([]profileLinkResponse, 0, len(links))
	for i := range links {
		clicks := links[i].ClickCount
		out = append(out, h.toResponse(&links[i].Link, &clicks))
	}
	response.OK(c, "links retrieved", out)
}

// Get handles GET /api/linktree/links/:linkID.
func (h *LinktreeHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		response.NotFound(c, "link not found")
		return
	}

	link, err := h.links.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "link not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("get link failed", "error", err)
		response.InternalServerError(c, "failed to fetch link")
		return
	}

	resp := h.toResponse(link, nil)
	h.withQR(c, &resp)
	response.OK(c, "link retrieved", resp)
}

// Update handles PATCH /api/linktree/links/:linkID.
func (h *LinktreeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		response.NotFound(c, "link not found")
		return
	}

	var req domain.UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	link, err := h.links.UpdateLink(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "link not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("update link failed", "error", err)
		response.InternalServerError(c, "failed to update link")
		return
	}
	response.OK(c, "link updated", h.toResponse(link, nil))
}

// Delete handles DELETE /api/linktree/links/:linkID.
func (h *LinktreeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("linkID"))
	if err != nil {
		response.NotFound(c, "link not found")
		return
	}

	if err := h.links.DeleteLink(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "link not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("delete link failed", "error", err)
		response.InternalServerError(c, "failed to delete link")
		return
	}
	response.OK(c, "link deleted", nil)
}
