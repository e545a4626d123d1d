package v1

import (
	"bytes"
	"encoding/xml"
	"net/http"

	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
)

const (
	sitemapNS      = "http://www.sitemaps.org/schemas/sitemap/0.9"
	sitemapImageNS = "http://www.google.com/schemas/sitemap-image/1.1"
)

type SitemapHandler struct {
	usecase *usecase.SitemapUsecase
}

func NewSitemapHandler(uc *usecase.SitemapUsecase) *SitemapHandler {
	return &SitemapHandler{usecase: uc}
}

type urlSet struct {
	XMLName xml.Name  `xml:"urlset"`
	Xmlns   string    `xml:"xmlns,attr"`
	ImageNS string    `xml:"xmlns:image,attr"`
	URLs    []urlItem `xml:"url"`
}

type urlItem struct {
	Loc        string      `xml:"loc"`
	LastMod    string      `xml:"lastmod,omitempty"`
	ChangeFreq string      `xml:"changefreq,omitempty"`
	Priority   float32     `xml:"priority,omitempty"`
	Images     []imageItem `xml:"image:image"`
}

type imageItem struct {
	Loc string `xml:"image:loc"`
}

// ServeHTTP writes the sitemap with product gallery images attached to each product URL.
func (h *SitemapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	items, err := h.usecase.GenerateSitemap(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to generate sitemap")
		http.Error(w, "Failed to generate sitemap", http.StatusInternalServerError)
		return
	}

	set := urlSet{Xmlns: sitemapNS, ImageNS: sitemapImageNS, URLs: make([]urlItem, len(items))}
	for i, item := range items {
		u := urlItem{
			Loc:        item.Loc,
			LastMod:    item.LastMod,
			ChangeFreq: item.ChangeFreq,
			Priority:   item.Priority,
		}
		for _, img := range item.Images {
			u.Images = append(u.Images, imageItem{Loc: img})
		}
		set.URLs[i] = u
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(set); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to encode sitemap")
		http.Error(w, "Failed to encode sitemap", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	buf.WriteTo(w)
}
