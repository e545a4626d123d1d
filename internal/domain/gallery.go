package domain

// Keyboard keys understood by the gallery modal.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyEscape     = "Escape"
)

// Gallery is an image list with a main-index pointer and a full-screen modal flag.
// The index always stays within [0, len(Images)-1] (0 for an empty gallery).
type Gallery struct {
	Images    []string `json:"images"`
	Index     int      `json:"index"`
	ModalOpen bool     `json:"modalOpen"`
}

// NewGallery builds a gallery with the index clamped to the image list.
func NewGallery(images []string, index int) Gallery {
	g := Gallery{Images: images}
	g.Index = g.clamp(index)
	return g
}

func (g Gallery) clamp(i int) int {
	last := len(g.Images) - 1
	if last < 0 {
		last = 0
	}
	if i < 0 {
		return 0
	}
	if i > last {
		return last
	}
	return i
}

// Main returns the image at the current index, or the placeholder for an empty gallery.
func (g Gallery) Main() string {
	if len(g.Images) == 0 {
		return PlaceholderImage
	}
	return g.Images[g.Index]
}

// Select moves the main pointer, clamped.
func (g Gallery) Select(i int) Gallery {
	g.Index = g.clamp(i)
	return g
}

// Open shows the modal at index i. An empty gallery never opens.
func (g Gallery) Open(i int) Gallery {
	if len(g.Images) == 0 {
		return g
	}
	g.Index = g.clamp(i)
	g.ModalOpen = true
	return g
}

func (g Gallery) Prev() Gallery { return g.Select(g.Index - 1) }

func (g Gallery) Next() Gallery { return g.Select(g.Index + 1) }

// HandleKey applies modal keyboard navigation. Keys are ignored while the modal is closed.
func (g Gallery) HandleKey(key string) Gallery {
	if !g.ModalOpen {
		return g
	}
	switch key {
	case KeyEscape:
		g.ModalOpen = false
	case KeyArrowLeft:
		g = g.Prev()
	case KeyArrowRight:
		g = g.Next()
	}
	return g
}

// HasPrev and HasNext drive the modal arrows.
func (g Gallery) HasPrev() bool { return g.Index > 0 }

func (g Gallery) HasNext() bool { return g.Index < len(g.Images)-1 }

// Position is the 1-based index shown as "n / total".
func (g Gallery) Position() int { return g.Index + 1 }
