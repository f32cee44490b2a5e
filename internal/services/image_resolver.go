package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"mostruario/internal/caching"
	"mostruario/internal/models"
	"mostruario/pkg/logger"
)

// AssetURLPrefix is where the HTTP layer serves files from the asset root
const AssetURLPrefix = "/assets/"

// RemoteImageSource locates an image outside the asset root.
// exists is false when the source knows the image is missing.
type RemoteImageSource interface {
	Name() string
	Locate(ctx context.Context, relPath string) (imageURL string, exists bool, err error)
}

// BaseURLSource joins a fixed base URL with the stored relative path.
// With probing enabled it issues a HEAD request and caches the outcome.
type BaseURLSource struct {
	baseURL  string
	probe    bool
	probeTTL time.Duration
	client   *http.Client
	cache    caching.CacheService
}

func NewBaseURLSource(baseURL string, probe bool, probeTTL, timeout time.Duration, cache caching.CacheService) *BaseURLSource {
	return &BaseURLSource{
		baseURL:  baseURL,
		probe:    probe,
		probeTTL: probeTTL,
		client:   &http.Client{Timeout: timeout},
		cache:    cache,
	}
}

func (s *BaseURLSource) Name() string { return "base-url" }

func (s *BaseURLSource) Locate(ctx context.Context, relPath string) (string, bool, error) {
	imageURL := strings.TrimRight(s.baseURL, "/") + "/" + escapePath(relPath)
	if !s.probe {
		return imageURL, true, nil
	}

	if s.cache != nil {
		if exists, found, err := s.cache.GetImageProbe(ctx, imageURL); err == nil && found {
			return imageURL, exists, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, imageURL, nil)
	if err != nil {
		return imageURL, false, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return imageURL, false, fmt.Errorf("probe %s: %w", imageURL, err)
	}
	resp.Body.Close()

	exists := resp.StatusCode < http.StatusBadRequest
	if s.cache != nil {
		_ = s.cache.SetImageProbe(ctx, imageURL, exists, s.probeTTL)
	}
	return imageURL, exists, nil
}

// MinioImageSource serves images from an object store bucket through presigned URLs
type MinioImageSource struct {
	minio  MinioService
	bucket string
	expiry time.Duration
}

func NewMinioImageSource(minio MinioService, bucket string, expiry time.Duration) *MinioImageSource {
	return &MinioImageSource{minio: minio, bucket: bucket, expiry: expiry}
}

func (s *MinioImageSource) Name() string { return "minio" }

func (s *MinioImageSource) Locate(ctx context.Context, relPath string) (string, bool, error) {
	exists, err := s.minio.ObjectExists(ctx, s.bucket, relPath)
	if err != nil || !exists {
		return "", false, err
	}
	imageURL, err := s.minio.GetPresignedURL(ctx, s.bucket, relPath, s.expiry)
	if err != nil {
		return "", false, err
	}
	return imageURL, true, nil
}

// ImageResolver picks an image for a row: a local asset, then the remote source,
// then a placeholder labeled with the row's reference. It never fails.
type ImageResolver struct {
	assetRoot      string
	remote         RemoteImageSource
	placeholderURL string
	log            *logger.Logger

	local       atomic.Int64
	remoteHits  atomic.Int64
	placeholder atomic.Int64
}

// NewImageResolver creates a resolver. remote may be nil to skip the remote tier.
func NewImageResolver(assetRoot string, remote RemoteImageSource, placeholderURL string, log *logger.Logger) *ImageResolver {
	return &ImageResolver{
		assetRoot:      assetRoot,
		remote:         remote,
		placeholderURL: placeholderURL,
		log:            log,
	}
}

func (r *ImageResolver) Resolve(ctx context.Context, row models.CatalogRow) models.ImageAsset {
	fallback := r.PlaceholderURL(row.Reference)
	asset := models.ImageAsset{Source: models.ImageSourcePlaceholder, URL: fallback, FallbackURL: fallback}

	rel := cleanRelativePath(row.ImagePath)
	if rel == "" {
		r.placeholder.Add(1)
		return asset
	}

	if r.assetRoot != "" {
		if info, err := os.Stat(filepath.Join(r.assetRoot, filepath.FromSlash(rel))); err == nil && info.Mode().IsRegular() {
			r.local.Add(1)
			asset.Source = models.ImageSourceLocal
			asset.URL = AssetURLPrefix + escapePath(rel)
			return asset
		}
	}

	if r.remote != nil {
		imageURL, exists, err := r.remote.Locate(ctx, rel)
		if err != nil {
			r.log.Debug("remote image lookup failed", "source", r.remote.Name(), "path", rel, "error", err)
		}
		if err == nil && exists && imageURL != "" {
			r.remoteHits.Add(1)
			asset.Source = models.ImageSourceRemote
			asset.URL = imageURL
			return asset
		}
	}

	r.placeholder.Add(1)
	return asset
}

// PlaceholderURL builds the generated placeholder for a reference
func (r *ImageResolver) PlaceholderURL(reference string) string {
	sep := "?"
	if strings.Contains(r.placeholderURL, "?") {
		sep = "&"
	}
	return r.placeholderURL + sep + "text=" + url.QueryEscape(strings.TrimSpace(reference))
}

// Stats returns resolution counts since start
func (r *ImageResolver) Stats() models.ResolverStats {
	return models.ResolverStats{
		Local:       r.local.Load(),
		Remote:      r.remoteHits.Load(),
		Placeholder: r.placeholder.Load(),
	}
}

// cleanRelativePath turns a stored locator into a slash-separated path that cannot
// escape the asset root. Empty or root-only paths yield "".
func cleanRelativePath(stored string) string {
	p := strings.ReplaceAll(strings.TrimSpace(stored), `\`, "/")
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	if p == "." {
		return ""
	}
	return p
}

func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
