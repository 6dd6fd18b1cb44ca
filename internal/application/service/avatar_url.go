package service

import (
	"github.com/khoahotran/portfolio-page/internal/domain/avatar"
)

// AvatarURLBuilder turns a profile image reference into the URL the page
// should load for the given avatar size.
type AvatarURLBuilder interface {
	AvatarURL(imageRef string, size avatar.Size) (string, error)
}
