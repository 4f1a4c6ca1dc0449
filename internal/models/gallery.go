package models

import "time"

// MediaKind tells photos and videos apart in the gallery.
type MediaKind string

const (
	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

// GalleryItem is one photo or video shown in the gallery.
type GalleryItem struct {
	ID        string    `json:"id,omitempty"`
	Title     string    `json:"title" validate:"required"`
	ImageURL  string    `json:"image_url" validate:"required,mediaref"`
	Type      MediaKind `json:"type" validate:"oneof=photo video"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// IsVideo reports whether the item is a video.
func (g GalleryItem) IsVideo() bool {
	return g.Type == MediaVideo
}

// Testimonial is a quote from a pilgrim. Testimonials are static content.
type Testimonial struct {
	Name      string `json:"name"`
	ContentEN string `json:"content_en"`
	ContentSO string `json:"content_so"`
	Rating    int    `json:"rating"`
	Image     string `json:"image"`
}

// Stars returns a slice with one entry per rating point, for templates.
func (t Testimonial) Stars() []struct{} {
	if t.Rating <= 0 {
		return nil
	}
	return make([]struct{}, t.Rating)
}
