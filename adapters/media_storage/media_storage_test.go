package media_storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// 1x1 lossless WebP.
const webpBase64 = "UklGRhoAAABXRUJQVlA4TA0AAAAvAAAAEAcQERGIiP4HAA=="

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	good := pngBytes(t)
	webp, err := base64.StdEncoding.DecodeString(webpBase64)
	require.NoError(t, err)
	mux := http.NewServeMux()
	mux.HandleFunc("/me.png", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(good)
	})
	mux.HandleFunc("/logo.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"></svg>`))
	})
	mux.HandleFunc("/me.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		w.Write(webp)
	})
	mux.HandleFunc("/me.avif", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/avif")
		w.Write([]byte("\x00\x00\x00\x1cftypavif\x00\x00\x00\x00avifmif1"))
	})
	mux.HandleFunc("/page.html", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html></html>"))
	})
	mux.HandleFunc("/corrupt.webp", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		w.Write([]byte("not a webp at all"))
	})
	mux.HandleFunc("/corrupt.jpg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		w.Write([]byte("definitely not a jpeg"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPImageLoader(t *testing.T) {
	srv := newImageServer(t)
	loader := NewHTTPImageLoader(srv.Client())
	ctx := context.Background()

	assert.NoError(t, loader.Load(ctx, srv.URL+"/me.png"))
	assert.NoError(t, loader.Load(ctx, srv.URL+"/logo.svg"))

	err := loader.Load(ctx, srv.URL+"/missing.png")
	assert.ErrorIs(t, err, avatar.ErrImageLoad)
	assert.Contains(t, err.Error(), "404")

	assert.ErrorIs(t, loader.Load(ctx, srv.URL+"/corrupt.jpg"), avatar.ErrImageLoad)
}

func TestHTTPImageLoader_ModernFormats(t *testing.T) {
	srv := newImageServer(t)
	loader := NewHTTPImageLoader(srv.Client())
	ctx := context.Background()

	assert.NoError(t, loader.Load(ctx, srv.URL+"/me.webp"))
	assert.NoError(t, loader.Load(ctx, srv.URL+"/me.avif"))

	assert.ErrorIs(t, loader.Load(ctx, srv.URL+"/corrupt.webp"), avatar.ErrImageLoad)
	assert.ErrorIs(t, loader.Load(ctx, srv.URL+"/page.html"), avatar.ErrImageLoad)

	r := avatar.NewResolver(srv.URL+"/me.webp", "Ashwin Nambiar", avatar.SizeLarge)
	r.Attempt(ctx, loader)
	assert.True(t, r.Resolve().IsImage())
}

func TestHTTPImageLoader_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	err := NewHTTPImageLoader(nil).Load(context.Background(), addr+"/me.png")
	assert.ErrorIs(t, err, avatar.ErrImageLoad)
}

func TestHTTPImageLoader_RelativeRefsAreNotProbed(t *testing.T) {
	loader := NewHTTPImageLoader(nil)
	assert.NoError(t, loader.Load(context.Background(), "/images/me.jpg"))
	assert.NoError(t, loader.Load(context.Background(), "images/me.jpg"))
}

func TestHTTPImageLoader_FeedsResolver(t *testing.T) {
	srv := newImageServer(t)
	loader := NewHTTPImageLoader(srv.Client())

	broken := avatar.NewResolver(srv.URL+"/missing.png", "Ashwin Nambiar", avatar.SizeLarge)
	broken.Attempt(context.Background(), loader)
	assert.Equal(t, avatar.KindPlaceholder, broken.Resolve().Kind)

	ok := avatar.NewResolver(srv.URL+"/me.png", "Ashwin Nambiar", avatar.SizeLarge)
	ok.Attempt(context.Background(), loader)
	assert.True(t, ok.Resolve().IsImage())
}

func TestCloudinaryAdapter(t *testing.T) {
	var cfg config.Config
	cfg.Cloudinary.CloudName = "demo"
	cfg.Cloudinary.ApiKey = "key"
	cfg.Cloudinary.ApiSecret = "secret"

	b, err := NewCloudinaryAdapter(cfg, logger.NewNop())
	require.NoError(t, err)

	u, err := b.AvatarURL("cloudinary:portfolio/me", avatar.SizeLarge)
	require.NoError(t, err)
	assert.Contains(t, u, "res.cloudinary.com/demo/image/upload/")
	assert.Contains(t, u, "c_fill,g_face,w_256,h_256")
	assert.Contains(t, u, "portfolio/me")
	assert.NotContains(t, u, "cloudinary:")

	_, err = b.AvatarURL("cloudinary:", avatar.SizeLarge)
	assert.Error(t, err)

	for _, ref := range []string{"https://example.com/me.jpg", "/images/me.jpg", "images/me.jpg", "portfolio/me", "data:image/png;base64,iVBORw0KGgo=", ""} {
		got, err := b.AvatarURL(ref, avatar.SizeSmall)
		require.NoError(t, err)
		assert.Equal(t, ref, got)
	}
}

func TestCloudinaryAdapter_RequiresCloudName(t *testing.T) {
	_, err := NewCloudinaryAdapter(config.Config{}, logger.NewNop())
	assert.Error(t, err)
}

func TestPassthroughURLBuilder(t *testing.T) {
	got, err := NewPassthroughURLBuilder().AvatarURL("portfolio/me", avatar.SizeMedium)
	require.NoError(t, err)
	assert.Equal(t, "portfolio/me", got)
}

func TestNewAvatarURLBuilder(t *testing.T) {
	b, err := NewAvatarURLBuilder(config.Config{}, logger.NewNop())
	require.NoError(t, err)
	got, err := b.AvatarURL("portfolio/me", avatar.SizeLarge)
	require.NoError(t, err)
	assert.Equal(t, "portfolio/me", got)

	var cfg config.Config
	cfg.Cloudinary.CloudName = "demo"
	b, err = NewAvatarURLBuilder(cfg, logger.NewNop())
	require.NoError(t, err)
	got, err = b.AvatarURL("cloudinary:portfolio/me", avatar.SizeLarge)
	require.NoError(t, err)
	assert.Contains(t, got, "res.cloudinary.com/demo")
}
