package usecase

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"interiorhub-web/internal/domain"
)

var absoluteHTTP = regexp.MustCompile(`(?i)^https?://`)

type ViewerUsecase struct {
	capability domain.ModelCapability
	hostSuffix string
}

// NewViewerUsecase takes the hosting domain suffix whose absolute URLs are rewritten to root-relative paths.
func NewViewerUsecase(capability domain.ModelCapability, hostSuffix string) *ViewerUsecase {
	return &ViewerUsecase{
		capability: capability,
		hostSuffix: hostSuffix,
	}
}

// ActiveVariant returns the requested variant when the product knows it, else the default variant.
func ActiveVariant(p *domain.Product, requested string) string {
	if requested != "" {
		if _, ok := p.Views.Get(requested); ok {
			return requested
		}
		for _, vm := range p.GLTF.Variants {
			if vm.Name == requested {
				return requested
			}
		}
	}
	return p.DefaultVariant()
}

// GalleryImages is views[variant] when present, else the product images.
func GalleryImages(p *domain.Product, variant string) []string {
	if variant != "" {
		if imgs, ok := p.Views.Get(variant); ok {
			return imgs
		}
	}
	return p.Images
}

// Select decides between the 3D model and the image gallery.
// The model is only handed out once the renderer is confirmed available; until then the
// selection is a loading placeholder and a background load is kicked off.
func (u *ViewerUsecase) Select(ctx context.Context, p *domain.Product, requestedVariant string, index int) domain.ViewerSelection {
	variant := ActiveVariant(p, requestedVariant)

	variants := p.Views.Names()
	if len(variants) == 0 {
		for _, vm := range p.GLTF.Variants {
			variants = append(variants, vm.Name)
		}
	}

	sel := domain.ViewerSelection{
		Mode:     domain.ViewerModeGallery,
		Variant:  variant,
		Variants: variants,
		Gallery:  domain.NewGallery(GalleryImages(p, variant), index),
	}

	if p.GLTF.IsZero() {
		return sel
	}
	src := NormalizeModelLocator(p.GLTF.Resolve(variant), u.hostSuffix)
	if src == "" {
		return sel
	}

	// A failed renderer never recovers; stay on the image gallery.
	if u.capability != nil && u.capability.Err() != nil {
		return sel
	}
	if u.capability == nil || !u.capability.Ready() {
		if u.capability != nil {
			u.capability.Load(ctx)
		}
		sel.Mode = domain.ViewerModePlaceholder
		return sel
	}

	var poster string
	if len(p.Images) > 0 {
		poster = p.Images[0]
	}
	alt := p.Title
	if alt == "" {
		alt = "3D model"
	}
	sel.Mode = domain.ViewerModeModel
	sel.ScriptURL = u.capability.ScriptURL()
	sel.Model = &domain.ModelView{
		Src:           src,
		Alt:           alt,
		Poster:        poster,
		CameraControl: true,
		AutoRotate:    true,
		AR:            true,
		ShadowIntens:  "1",
		Exposure:      "1",
	}
	return sel
}

// NormalizeModelLocator cleans up a model locator before it reaches the renderer:
//  1. a duplicated "/<suffix>/" segment collapses to "/"
//  2. absolute URLs on the hosting domain become path?query#fragment
//  3. bare relative paths get a leading "/"
func NormalizeModelLocator(locator, hostSuffix string) string {
	s := strings.TrimSpace(locator)
	if s == "" {
		return ""
	}

	if hostSuffix != "" {
		s = strings.ReplaceAll(s, "/"+hostSuffix+"/", "/")
	}

	if absoluteHTTP.MatchString(s) {
		if u, err := url.Parse(s); err == nil && hostSuffix != "" && strings.HasSuffix(u.Hostname(), hostSuffix) {
			s = u.EscapedPath()
			if u.RawQuery != "" {
				s += "?" + u.RawQuery
			}
			if u.Fragment != "" {
				s += "#" + u.EscapedFragment()
			}
			if s == "" {
				s = "/"
			}
		}
	}

	if !strings.HasPrefix(s, "/") && !absoluteHTTP.MatchString(s) {
		s = "/" + s
	}
	return s
}
