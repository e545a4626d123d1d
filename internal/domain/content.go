package domain

import "context"

// CategoryTile is a fixed home-page category entry linking to /category/{slug}.
type CategoryTile struct {
	Title    string `json:"title" yaml:"title"`
	Slug     string `json:"slug" yaml:"slug"`
	Subtitle string `json:"subtitle" yaml:"subtitle"`
}

// Video is a blog/project walkthrough entry.
type Video struct {
	ID      int    `json:"id" yaml:"id"`
	Src     string `json:"src" yaml:"src"`
	Title   string `json:"title" yaml:"title"`
	Caption string `json:"caption,omitempty" yaml:"caption"`
}

// SiteContent is the editorial content that is not part of the product catalog.
type SiteContent struct {
	Categories []CategoryTile `yaml:"categories"`
	Videos     []Video        `yaml:"videos"`
}

type ContentRepository interface {
	Load(ctx context.Context) (*SiteContent, error)
}
