package domain

import (
	"context"
	"errors"
)

var ErrCapabilityUnavailable = errors.New("model rendering capability unavailable")

// ModelCapability is the lazily loaded, process-wide 3D model renderer.
type ModelCapability interface {
	// Ready reports whether the renderer is confirmed available.
	Ready() bool
	// Load starts loading the renderer once. Repeated calls are no-ops.
	Load(ctx context.Context)
	// ScriptURL is the location pages include once Ready reports true.
	ScriptURL() string
	// Err is non-nil once loading has failed. The failure is final and
	// wraps ErrCapabilityUnavailable.
	Err() error
}

// ViewerMode tells the presentation layer what to draw.
type ViewerMode string

const (
	ViewerModeModel       ViewerMode = "model"
	ViewerModePlaceholder ViewerMode = "model-loading"
	ViewerModeGallery     ViewerMode = "gallery"
)

// ModelView describes the renderable 3D element.
type ModelView struct {
	Src           string `json:"src"`
	Alt           string `json:"alt"`
	Poster        string `json:"poster,omitempty"`
	CameraControl bool   `json:"cameraControls"`
	AutoRotate    bool   `json:"autoRotate"`
	AR            bool   `json:"ar"`
	ShadowIntens  string `json:"shadowIntensity"`
	Exposure      string `json:"exposure"`
}

// ViewerSelection is the media viewer decision for one product + variant.
type ViewerSelection struct {
	Mode      ViewerMode `json:"mode"`
	Variant   string     `json:"variant"`
	Variants  []string   `json:"variants"`
	Model     *ModelView `json:"model,omitempty"`
	Gallery   Gallery    `json:"gallery"`
	ScriptURL string     `json:"scriptUrl,omitempty"`
}

var (
	ErrMediaNotFound    = errors.New("media not found")
	ErrUnsupportedMedia = errors.New("unsupported media type")
)
