package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/LoganMichel/logmi-app/internal/domain"
	"github.com/LoganMichel/logmi-app/internal/logger"
	"github.com/LoganMichel/logmi-app/pkg/detector"
	"github.com/LoganMichel/logmi-app/pkg/response"
	"github.com/gin-gonic/gin"
)

// trackTimeout bounds the fire-and-forget click recording so a slow geo
// lookup or insert cannot pile up goroutines.
const trackTimeout = 5 * time.Second

type RedirectResolver interface {
	ResolveShortCode(ctx context.Context, shortCode string) (*domain.Link, error)
	ResolveLinkID(ctx context.Context, rawID string) (*domain.Link, error)
	TrackClick(ctx context.Context, link *domain.Link, cc domain.ClickContext) error
}

// RedirectHandler serves the two public redirect routes. Click recording is
// decoupled from the response: the visitor gets their 302 regardless of
// whether the click event lands, and persistence failures are logged, not
// surfaced.
type RedirectHandler struct {
	resolver RedirectResolver
}

func NewRedirectHandler(resolver RedirectResolver) *RedirectHandler {
	return &RedirectHandler{resolver: resolver}
}

// RedirectShortCode handles GET /:shortCode.
func (h *RedirectHandler) RedirectShortCode(c *gin.Context) {
	shortCode := c.Param("shortCode")
	h.redirect(c, func(ctx context.Context) (*domain.Link, error) {
		return h.resolver.ResolveShortCode(ctx, shortCode)
	})
}

// RedirectLink handles GET /links/go/:linkID.
func (h *RedirectHandler) RedirectLink(c *gin.Context) {
	linkID := c.Param("linkID")
	h.redirect(c, func(ctx context.Context) (*domain.Link, error) {
		return h.resolver.ResolveLinkID(ctx, linkID)
	})
}

func (h *RedirectHandler) redirect(c *gin.Context, resolve func(ctx context.Context) (*domain.Link, error)) {
	ctx := c.Request.Context()

	link, err := resolve(ctx)
	if err != nil {
		// Visitors always get a plain not-found, whatever went wrong.
		if !errors.Is(err, domain.ErrLinkNotFound) {
			logger.FromContext(ctx).Error("redirect resolution failed", "error", err)
		}
		response.NotFound(c, "link not found")
		return
	}

	cc := clickContext(c)
	go func() {
		trackCtx, cancel := context.WithTimeout(context.Background(), trackTimeout)
		defer cancel()
		if err := h.resolver.TrackClick(trackCtx, link, cc); err != nil {
			logger.FromContext(ctx).Error("click recording failed", "error", err)
		}
	}()

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, link.LongURL)
}

func clickContext(c *gin.Context) domain.ClickContext {
	return domain.ClickContext{
		UserAgent: c.Request.UserAgent(),
		IPAddress: detector.GetClientIP(
			c.Request.RemoteAddr,
			c.GetHeader("X-Forwarded-For"),
			c.GetHeader("X-Real-IP"),
		),
		ViaQR: strings.EqualFold(c.Query("qrcode"), "true"),
	}
}
