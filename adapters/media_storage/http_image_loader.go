package media_storage

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	_ "golang.org/x/image/webp"

	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/pkg/tracing"
)

type httpImageLoader struct {
	client *http.Client
}

// NewHTTPImageLoader fetches absolute http(s) image references once and
// checks that the body decodes as an image. Other references are left to the
// browser and count as loaded.
func NewHTTPImageLoader(client *http.Client) avatar.ImageLoader {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpImageLoader{client: client}
}

func (l *httpImageLoader) Load(ctx context.Context, imageRef string) (err error) {
	u, perr := url.Parse(imageRef)
	if perr != nil {
		return fmt.Errorf("%w: unparseable reference: %v", avatar.ErrImageLoad, perr)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil
	}

	ctx, span := tracing.Tracer().Start(ctx, "avatar.load")
	span.SetAttributes(attribute.String("image.host", u.Host))
	defer func() {
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageRef, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", avatar.ErrImageLoad, err)
	}
	req.Header.Set("Accept", "image/*")

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", avatar.ErrImageLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", avatar.ErrImageLoad, resp.StatusCode)
	}

	mt, _, _ := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if mt == "image/svg+xml" {
		return nil
	}

	if _, _, err := image.DecodeConfig(resp.Body); err != nil {
		// Formats without a Go decoder (AVIF, HEIC, ...) are left to the
		// browser when the server labels them as images.
		if errors.Is(err, image.ErrFormat) && strings.HasPrefix(mt, "image/") && !decodable[mt] {
			return nil
		}
		return fmt.Errorf("%w: decode: %v", avatar.ErrImageLoad, err)
	}
	return nil
}

// decodable lists the content types with a registered decoder. A body that
// claims one of these must decode.
var decodable = map[string]bool{
	"image/gif":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}
