package media_storage

import (
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-page/internal/application/service"
	"github.com/khoahotran/portfolio-page/internal/config"
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
	"github.com/khoahotran/portfolio-page/pkg/logger"
)

type cloudinaryAdapter struct {
	cld *cloudinary.Cloudinary
}

// PublicIDPrefix marks an image reference as a Cloudinary public ID, as in
// "cloudinary:portfolio/me".
const PublicIDPrefix = "cloudinary:"

// NewCloudinaryAdapter builds delivery URLs for "cloudinary:" references.
// Every other reference is returned untouched.
func NewCloudinaryAdapter(cfg config.Config, log logger.Logger) (service.AvatarURLBuilder, error) {
	if cfg.Cloudinary.CloudName == "" {
		return nil, fmt.Errorf("cloudinary cloud_name has not config")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.ApiKey,
		cfg.Cloudinary.ApiSecret,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init cloudinary: %w", err)
	}

	log.Info("Cloudinary avatar URLs enabled", zap.String("cloud_name", cfg.Cloudinary.CloudName))
	return &cloudinaryAdapter{cld: cld}, nil
}

func (a *cloudinaryAdapter) AvatarURL(imageRef string, size avatar.Size) (string, error) {
	publicID, ok := strings.CutPrefix(imageRef, PublicIDPrefix)
	if !ok {
		return imageRef, nil
	}
	if publicID == "" {
		return "", fmt.Errorf("empty cloudinary public id")
	}

	img, err := a.cld.Image(publicID)
	if err != nil {
		return "", fmt.Errorf("failed to create cloudinary asset: %w", err)
	}

	// Twice the CSS size for high-density screens.
	px := size.Pixels() * 2
	img.Transformation = fmt.Sprintf("c_fill,g_face,w_%d,h_%d,f_auto,q_auto", px, px)

	u, err := img.String()
	if err != nil {
		return "", fmt.Errorf("failed to build avatar URL: %w", err)
	}
	return u, nil
}

// NewAvatarURLBuilder picks Cloudinary when a cloud name is configured.
func NewAvatarURLBuilder(cfg config.Config, log logger.Logger) (service.AvatarURLBuilder, error) {
	if cfg.Cloudinary.CloudName == "" {
		return NewPassthroughURLBuilder(), nil
	}
	return NewCloudinaryAdapter(cfg, log)
}

type passthroughURLBuilder struct{}

// NewPassthroughURLBuilder is used when Cloudinary is not configured.
func NewPassthroughURLBuilder() service.AvatarURLBuilder {
	return passthroughURLBuilder{}
}

func (passthroughURLBuilder) AvatarURL(imageRef string, _ avatar.Size) (string, error) {
	return imageRef, nil
}
