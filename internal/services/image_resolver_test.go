package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mostruario/internal/caching"
	"mostruario/internal/models"
	"mostruario/pkg/logger"
)

const testPlaceholder = "https://placehold.co/400x300"

type MockRemoteImageSource struct {
	mock.Mock
}

func (m *MockRemoteImageSource) Name() string { return "mock" }

func (m *MockRemoteImageSource) Locate(ctx context.Context, relPath string) (string, bool, error) {
	args := m.Called(ctx, relPath)
	return args.String(0), args.Bool(1), args.Error(2)
}

func writeAsset(t *testing.T, root, rel string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte("jpeg"), 0o644))
}

func TestImageResolver_LocalAssetWins(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "imagens/001/a b.jpg")
	remote := &MockRemoteImageSource{}
	resolver := NewImageResolver(root, remote, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "R1", ImagePath: `imagens\001\a b.jpg`})

	assert.Equal(t, models.ImageSourceLocal, asset.Source)
	assert.Equal(t, "/assets/imagens/001/a%20b.jpg", asset.URL)
	assert.Equal(t, testPlaceholder+"?text=R1", asset.FallbackURL)
	remote.AssertNotCalled(t, "Locate", mock.Anything, mock.Anything)
}

func TestImageResolver_RemoteWhenNotLocal(t *testing.T) {
	remote := &MockRemoteImageSource{}
	remote.On("Locate", mock.Anything, "imagens/002/b.jpg").Return("https://cdn.example/imagens/002/b.jpg", true, nil).Once()
	resolver := NewImageResolver(t.TempDir(), remote, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "R2", ImagePath: "imagens/002/b.jpg"})

	assert.Equal(t, models.ImageSourceRemote, asset.Source)
	assert.Equal(t, "https://cdn.example/imagens/002/b.jpg", asset.URL)
	remote.AssertExpectations(t)
}

func TestImageResolver_PlaceholderScenario(t *testing.T) {
	remote := &MockRemoteImageSource{}
	remote.On("Locate", mock.Anything, "x.jpg").Return("", false, nil).Once()
	resolver := NewImageResolver(t.TempDir(), remote, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "REF 9", ImagePath: "x.jpg"})

	assert.Equal(t, models.ImageSourcePlaceholder, asset.Source)
	assert.Equal(t, testPlaceholder+"?text=REF+9", asset.URL)
}

func TestImageResolver_RemoteErrorFallsBack(t *testing.T) {
	remote := &MockRemoteImageSource{}
	remote.On("Locate", mock.Anything, "x.jpg").Return("https://cdn.example/x.jpg", true, errors.New("timeout")).Once()
	resolver := NewImageResolver("", remote, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "R", ImagePath: "x.jpg"})

	assert.Equal(t, models.ImageSourcePlaceholder, asset.Source)
}

func TestImageResolver_EmptyPathAndStats(t *testing.T) {
	root := t.TempDir()
	writeAsset(t, root, "a.jpg")
	resolver := NewImageResolver(root, nil, testPlaceholder, logger.Nop())
	ctx := context.Background()

	resolver.Resolve(ctx, models.CatalogRow{Reference: "R1", ImagePath: "  "})
	resolver.Resolve(ctx, models.CatalogRow{Reference: "R2", ImagePath: "a.jpg"})
	resolver.Resolve(ctx, models.CatalogRow{Reference: "R3", ImagePath: "missing.jpg"})

	stats := resolver.Stats()
	assert.Equal(t, int64(1), stats.Local)
	assert.Equal(t, int64(0), stats.Remote)
	assert.Equal(t, int64(2), stats.Placeholder)
}

func TestImageResolver_PathCannotEscapeRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "assets")
	require.NoError(t, os.MkdirAll(root, 0o755))
	writeAsset(t, parent, "secret.jpg")
	resolver := NewImageResolver(root, nil, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "R", ImagePath: "../secret.jpg"})

	assert.Equal(t, models.ImageSourcePlaceholder, asset.Source)
}

func TestImageResolver_DirectoryIsNotAnImage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "imagens"), 0o755))
	resolver := NewImageResolver(root, nil, testPlaceholder, logger.Nop())

	asset := resolver.Resolve(context.Background(), models.CatalogRow{Reference: "R", ImagePath: "imagens"})

	assert.Equal(t, models.ImageSourcePlaceholder, asset.Source)
}

func TestPlaceholderURL(t *testing.T) {
	resolver := NewImageResolver("", nil, testPlaceholder, logger.Nop())
	assert.Equal(t, testPlaceholder+"?text=A%26B+%2F+C", resolver.PlaceholderURL(" A&B / C "))

	withQuery := NewImageResolver("", nil, testPlaceholder+"?font=roboto", logger.Nop())
	assert.Equal(t, testPlaceholder+"?font=roboto&text=X", withQuery.PlaceholderURL("X"))
}

func TestCleanRelativePath(t *testing.T) {
	tests := map[string]string{
		`imagens\001\a.jpg`: "imagens/001/a.jpg",
		"/imagens/a.jpg":    "imagens/a.jpg",
		"./a/../b.jpg":      "b.jpg",
		"../../etc/passwd":  "etc/passwd",
		"":                  "",
		"/":                 "",
		"  imagens/a.jpg  ": "imagens/a.jpg",
	}
	for input, expected := range tests {
		assert.Equal(t, expected, cleanRelativePath(input), "input %q", input)
	}
}

func TestBaseURLSource_WithoutProbe(t *testing.T) {
	source := NewBaseURLSource("https://raw.example/repo/main/", false, time.Minute, time.Second, nil)

	url, exists, err := source.Locate(context.Background(), "imagens/001/a b.jpg")

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://raw.example/repo/main/imagens/001/a%20b.jpg", url)
	assert.Equal(t, "base-url", source.Name())
}

func TestBaseURLSource_ProbeIsCached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, http.MethodHead, r.Method)
		if r.URL.Path == "/found.jpg" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cache := caching.NewMemoryCacheService()
	source := NewBaseURLSource(server.URL, true, time.Minute, time.Second, cache)
	ctx := context.Background()

	_, exists, err := source.Locate(ctx, "found.jpg")
	require.NoError(t, err)
	assert.True(t, exists)

	_, exists, err = source.Locate(ctx, "missing.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	_, exists, err = source.Locate(ctx, "found.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
	_, exists, _ = source.Locate(ctx, "missing.jpg")
	assert.False(t, exists)

	assert.Equal(t, int32(2), hits.Load())
}

func TestBaseURLSource_ProbeUnreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	addr := server.URL
	server.Close()

	source := NewBaseURLSource(addr, true, time.Minute, 500*time.Millisecond, nil)

	_, exists, err := source.Locate(context.Background(), "a.jpg")

	assert.Error(t, err)
	assert.False(t, exists)
}
