package domain

import (
	"context"
	"time"
)

// SavedDesign is one "Save Design" click: a product and the variant that was on screen.
type SavedDesign struct {
	ID        string    `json:"id"`
	Product   string    `json:"product"`
	Variant   string    `json:"variant"`
	CreatedAt time.Time `json:"createdAt"`
}

// DesignRepository is an append-only, per-visitor store. Entries are never pruned.
type DesignRepository interface {
	Append(ctx context.Context, visitorID string, design SavedDesign) error
	List(ctx context.Context, visitorID string) ([]SavedDesign, error)
}

type visitorCtxKey struct{}

// VisitorContextKey carries the visitor ID set by the visitor middleware.
var VisitorContextKey = visitorCtxKey{}

// VisitorFromContext returns the visitor ID, or "" outside the visitor middleware.
func VisitorFromContext(ctx context.Context) string {
	id, _ := ctx.Value(VisitorContextKey).(string)
	return id
}
