package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mostruario/internal/common"
	"mostruario/pkg/logger"
)

// AuditMiddleware writes an audit entry for operational requests.
// It also attaches the request ID to the request context.
type AuditMiddleware struct {
	log *logger.Logger
}

// NewAuditMiddleware creates a new audit middleware instance
func NewAuditMiddleware(log *logger.Logger) *AuditMiddleware {
	return &AuditMiddleware{log: log.With("audit", true)}
}

// AuditRequest audits mutating requests and failed requests. Health checks,
// docs and static files are skipped.
func (m *AuditMiddleware) AuditRequest() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = c.Response().Header().Get(echo.HeaderXRequestID)
			}
			if requestID == "" {
				requestID = uuid.NewString()
				c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			}
			c.SetRequest(req.WithContext(common.WithRequestID(req.Context(), requestID)))

			start := time.Now()
			err := next(c)

			if !m.shouldAudit(req.Method, req.URL.Path, err) {
				return err
			}

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			fields := []interface{}{
				"request_id", requestID,
				"method", req.Method,
				"path", req.URL.Path,
				"route", c.Path(),
				"status", status,
				"ip", c.RealIP(),
				"user_agent", req.UserAgent(),
				"duration", time.Since(start),
			}
			if err != nil {
				m.log.Warn("request audited", append(fields, "error", err.Error())...)
				return err
			}
			m.log.Info("request audited", fields...)
			return nil
		}
	}
}

// shouldAudit reports whether a request is worth an audit entry
func (m *AuditMiddleware) shouldAudit(method, path string, reqErr error) bool {
	if shouldSkipLogging(method, path) {
		return false
	}
	if reqErr != nil {
		return true
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func shouldSkipLogging(method, path string) bool {
	if method != http.MethodGet && method != http.MethodHead {
		return false
	}
	for _, prefix := range []string{"/health", "/swagger", "/assets/", "/branding/", "/favicon", "/robots.txt"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
