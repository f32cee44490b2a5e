package middleware

import (
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersionContextKey holds the resolved version in the echo context
const APIVersionContextKey = "api_version"

type VersionState string

const (
	VersionActive     VersionState = "active"
	VersionDeprecated VersionState = "deprecated"
	VersionSunset     VersionState = "sunset"
)

// APIVersion describes one published version of the JSON API
type APIVersion struct {
	Version    string       `json:"version"`
	State      VersionState `json:"status"`
	SunsetDate *time.Time   `json:"sunset_date,omitempty"`
	Message    string       `json:"message,omitempty"`
}

// VersionMiddleware tags /vN routes with version headers and rejects unknown versions
type VersionMiddleware struct {
	versions       map[string]APIVersion
	defaultVersion string
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		versions: map[string]APIVersion{
			"v1": {Version: "v1", State: VersionActive, Message: "Current stable catalog API"},
		},
		defaultVersion: "v1",
	}
}

// VersionHeader sets X-API-Version and, for deprecated versions, the sunset headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			info, ok := vm.versions[version]
			if !ok {
				return next(c)
			}
			if info.State == VersionDeprecated && info.SunsetDate != nil {
				sunset := info.SunsetDate.UTC()
				h.Set("X-API-Deprecated", "true")
				h.Set("X-API-Sunset", sunset.Format(time.RFC3339))
				h.Set("Warning", `299 mostruario "API `+version+` is deprecated and will be removed on `+sunset.Format("2006-01-02")+`"`)
			}
			if info.Message != "" {
				h.Set("X-API-Message", info.Message)
			}
			return next(c)
		}
	}
}

// VersionRoute returns the /version group with version headers attached
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string) *echo.Group {
	return e.Group("/"+version, vm.VersionHeader(version))
}

// APIVersionResolver stores the requested version in the context. Unversioned paths
// (the HTML page, assets, health) get the default version.
func (vm *VersionMiddleware) APIVersionResolver() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			version := extractVersionFromPath(c.Request().URL.Path)
			if version == "" {
				version = vm.defaultVersion
			} else if info, ok := vm.versions[version]; !ok || info.State == VersionSunset {
				return echo.NewHTTPError(http.StatusNotFound,
					"Unsupported API version (supported: "+strings.Join(vm.servedVersions(), ", ")+")")
			}
			c.Set(APIVersionContextKey, version)
			return next(c)
		}
	}
}

// extractVersionFromPath returns "vN" for paths whose first segment is /vN
func extractVersionFromPath(path string) string {
	segment, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if len(segment) < 2 || segment[0] != 'v' {
		return ""
	}
	n, err := strconv.Atoi(segment[1:])
	if err != nil || n <= 0 {
		return ""
	}
	return "v" + strconv.Itoa(n)
}

func (vm *VersionMiddleware) servedVersions() []string {
	served := make([]string, 0, len(vm.versions))
	for version, info := range vm.versions {
		if info.State != VersionSunset {
			served = append(served, version)
		}
	}
	sort.Strings(served)
	return served
}
