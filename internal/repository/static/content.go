package static

import (
	"context"
	"fmt"
	"os"
	"strings"

	"interiorhub-web/internal/domain"

	"gopkg.in/yaml.v3"
)

const defaultVideoCaption = "Watch complete design & execution"

type contentRepository struct {
	path string
}

// NewContentRepository reads site content from path, or the embedded copy when path is empty.
func NewContentRepository(path string) domain.ContentRepository {
	return &contentRepository{path: strings.TrimSpace(path)}
}

func (r *contentRepository) Load(ctx context.Context) (*domain.SiteContent, error) {
	var (
		data []byte
		err  error
	)
	if r.path == "" {
		data, err = dataFS.ReadFile("data/content.yaml")
	} else {
		data, err = os.ReadFile(r.path)
	}
	if err != nil {
		return nil, fmt.Errorf("read site content: %w", err)
	}

	var content domain.SiteContent
	if err := yaml.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	for i := range content.Videos {
		if strings.TrimSpace(content.Videos[i].Caption) == "" {
			content.Videos[i].Caption = defaultVideoCaption
		}
	}
	return &content, nil
}
