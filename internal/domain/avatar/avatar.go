package avatar

import (
	"context"
	"errors"
	"html/template"
	"net/url"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"
)

// DefaultInitials is shown when the display name yields no usable token.
const DefaultInitials = "YN"

const maxInitials = 2

type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Pixels returns the rendered edge length of the avatar square.
func (s Size) Pixels() int {
	switch s {
	case SizeSmall:
		return 40
	case SizeLarge:
		return 128
	default:
		return 80
	}
}

// Class returns the CSS sizing classes for the avatar element.
func (s Size) Class() string {
	switch s {
	case SizeSmall:
		return "w-10 h-10 text-sm"
	case SizeLarge:
		return "w-32 h-32 text-3xl"
	default:
		return "w-20 h-20 text-xl"
	}
}

type Kind string

const (
	KindImage       Kind = "image"
	KindPlaceholder Kind = "placeholder"
)

// ErrImageLoad is the only failure an avatar knows about. Loaders wrap it;
// the resolver swallows it.
var ErrImageLoad = errors.New("image load failure")

// ImageLoader performs one load of an image reference and reports whether
// it could be fetched and decoded.
type ImageLoader interface {
	Load(ctx context.Context, imageRef string) error
}

// Display is what the markup layer draws for one avatar. Initials are always
// populated so an image display can still fall back in the browser.
type Display struct {
	Kind     Kind
	ImageRef string
	Initials string
	Alt      string
	Size     Size
}

func (d Display) IsImage() bool {
	return d.Kind == KindImage
}

// Src is the image reference trusted for an <img src> attribute. It is empty
// unless the display is an image with a renderable reference.
func (d Display) Src() template.URL {
	if !d.IsImage() || !Renderable(d.ImageRef) {
		return ""
	}
	return template.URL(d.ImageRef)
}

// Renderable reports whether ref can be used as an image source: an http(s)
// URL, a relative path or a data:image/ URI.
func Renderable(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return true
	case "data":
		return strings.HasPrefix(strings.ToLower(ref), "data:image/")
	}
	return false
}

// Initials abbreviates a display name to at most two upper-case letters.
func Initials(name string) string {
	tokens := strings.Fields(name)
	if len(tokens) == 0 {
		return DefaultInitials
	}
	if len(tokens) > maxInitials {
		tokens = tokens[:maxInitials]
	}

	var b strings.Builder
	for _, tok := range tokens {
		r, _ := utf8.DecodeRuneInString(tok)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// Resolver decides between image and initials for a single avatar instance.
// A load failure is sticky for the lifetime of the resolver.
type Resolver struct {
	imageRef  string
	name      string
	size      Size
	failed    atomic.Bool
	attempted atomic.Bool
}

// NewResolver starts an avatar instance. A reference that no browser could
// render counts as already failed.
func NewResolver(imageRef, name string, size Size) *Resolver {
	r := &Resolver{
		imageRef: strings.TrimSpace(imageRef),
		name:     name,
		size:     size,
	}
	if r.HasImage() && !Renderable(r.imageRef) {
		r.failed.Store(true)
	}
	return r
}

func (r *Resolver) HasImage() bool {
	return r.imageRef != ""
}

func (r *Resolver) Failed() bool {
	return r.failed.Load()
}

// ReportLoadFailure records that the image could not be shown. It may be
// called from any goroutine, any number of times.
func (r *Resolver) ReportLoadFailure() {
	r.failed.Store(true)
}

// Attempt loads the image at most once for this instance. A loader error is
// recorded as a failure and not returned.
func (r *Resolver) Attempt(ctx context.Context, loader ImageLoader) {
	if loader == nil || !r.HasImage() || r.Failed() {
		return
	}
	if !r.attempted.CompareAndSwap(false, true) {
		return
	}
	if err := loader.Load(ctx, r.imageRef); err != nil {
		r.ReportLoadFailure()
	}
}

func (r *Resolver) Resolve() Display {
	d := Display{
		Initials: Initials(r.name),
		Alt:      r.name,
		Size:     r.size,
	}
	if r.HasImage() && !r.Failed() {
		d.Kind = KindImage
		d.ImageRef = r.imageRef
		return d
	}
	d.Kind = KindPlaceholder
	return d
}
