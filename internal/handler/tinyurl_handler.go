package handler

import (
	"context"
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

type LinkManager interface {
	ShortenURL(ctx context.Context, req *domain.ShortenRequest) (*domain.Link, error)
	CreateLinktreeLink(ctx context.Context, req *domain.CreateLinkRequest) (*domain.Link, error)
	ListTinyURLs(ctx context.Context) ([]domain.LinkWithClicks, error)
	ListLinktree(ctx context.Context, owner string) ([]domain.LinkWithClicks, error)
	GetByShortCode(ctx context.Context, shortCode string) (*domain.Link, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Link, error)
	UpdateLink(ctx context.Context, id uuid.UUID, req *domain.UpdateLinkRequest) (*domain.Link, error)
	DeleteLink(ctx context.Context, id uuid.UUID) error
	DeleteByShortCode(ctx context.Context, shortCode string) error
}

// TinyURLHandler manages shortened URLs over /api/tinyurl.
type TinyURLHandler struct {
	links   LinkManager
	qr      qr.Encoder
	baseURL string
}

func NewTinyURLHandler(links LinkManager, encoder qr.Encoder, baseURL string) *TinyURLHandler {
	return &TinyURLHandler{links: links, qr: encoder, baseURL: baseURL}
}

type shortURLResponse struct {
	ID         uuid.UUID `json:"id"`
	ShortCode  string    `json:"short_code"`
	ShortURL   string    `json:"short_url"`
	LongURL    string    `json:"long_url"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  string    `json:"created_at"`
	ClickCount *int64    `json:"click_count,omitempty"`
	QRBase64   string    `json:"qr_base64,omitempty"`
}

func (h *TinyURLHandler) shortURL(shortCode string) string {
	return fmt.Sprintf("%s/%s", h.baseURL, shortCode)
}

func (h *TinyURLHandler) toResponse(link *domain.Link, clicks *int64) shortURLResponse {
	return shortURLResponse{
		ID:         link.ID,
		ShortCode:  link.ShortCode,
		ShortURL:   h.shortURL(link.ShortCode),
		LongURL:    link.LongURL,
		IsActive:   link.IsActive,
		CreatedAt:  link.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		ClickCount: clicks,
	}
}

// Shorten handles POST /api/tinyurl/urls.
func (h *TinyURLHandler) Shorten(c *gin.Context) {
	var req domain.ShortenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return
	}

	link, err := h.links.ShortenURL(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCodeTaken):
			response.Conflict(c, "short code already in use")
		case errors.Is(err, domain.ErrCodeSpaceExhausted):
			response.UnprocessableEntity(c, "could not allocate a unique short code")
		default:
			logger.FromContext(c.Request.Context()).Error("shorten failed", "error", err)
			response.InternalServerError(c, "failed to create short URL")
		}
		return
	}

	resp := h.toResponse(link, nil)
	if req.WantQR {
		// The QR target carries the marker so scans are attributed separately
		// from direct visits.
		encoded, err := h.qr.EncodeBase64(h.shortURL(link.ShortCode) + "?qrcode=true")
		if err != nil {
			logger.FromContext(c.Request.Context()).Error("qr encoding failed", "error", err)
		} else {
			resp.QRBase64 = encoded
		}
	}
	response.Created(c, "short URL created", resp)
}

// List handles GET /api/tinyurl/urls.
func (h *TinyURLHandler) List(c *gin.Context) {
	links, err := h.links.ListTinyURLs(c.Request.Context())
	if err != nil {
		logger.FromContext(c.Request.Context()).Error("list urls failed", "error", err)
		response.InternalServerError(c, "failed to list short URLs")
		return
	}

	out := make([]shortURLResponse, 0, len(links))
	for i := range links {
		clicks := links[i].ClickCount
		out = append(out, h.toResponse(&links[i].Link, &clicks))
	}
	response.OK(c, "short URLs retrieved", out)
}

// Get handles GET /api/tinyurl/urls/:shortCode.
func (h *TinyURLHandler) Get(c *gin.Context) {
	link, err := h.links.GetByShortCode(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "short URL not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("get url failed", "error", err)
		response.InternalServerError(c, "failed to fetch short URL")
		return
	}
	response.OK(c, "short URL retrieved", h.toResponse(link, nil))
}

// Delete handles DELETE /api/tinyurl/urls/:shortCode.
func (h *TinyURLHandler) Delete(c *gin.Context) {
	err := h.links.DeleteByShortCode(c.Request.Context(), c.Param("shortCode"))
	if err != nil {
		if errors.Is(err, domain.ErrLinkNotFound) {
			response.NotFound(c, "short URL not found")
			return
		}
		logger.FromContext(c.Request.Context()).Error("delete url failed", "error", err)
		response.InternalServerError(c, "failed to delete short URL")
		return
	}
	response.OK(c, "short URL deleted", nil)
}
