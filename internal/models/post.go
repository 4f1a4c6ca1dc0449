package models

import "time"

// Post is a group update published on the Groups Updates page.
type Post struct {
	ID        string    `json:"id,omitempty"`
	TitleEN   string    `json:"title_en" validate:"required"`
	TitleSO   string    `json:"title_so" validate:"required"`
	ContentEN string    `json:"content_en" validate:"required"`
	ContentSO string    `json:"content_so" validate:"required"`
	ImageURL  *string   `json:"image_url" validate:"omitempty,mediaref"`
	VideoURL  *string   `json:"video_url" validate:"omitempty,mediaref"`
	CreatedAt time.Time `json:"created_at,omitzero"`
	UpdatedAt time.Time `json:"updated_at,omitzero"`
}

// OptionalString maps an empty form value to a null column.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Deref returns the pointed-to string or "".
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Image returns the image reference or "".
func (p Post) Image() string { return Deref(p.ImageURL) }

// Video returns the video reference or "".
func (p Post) Video() string { return Deref(p.VideoURL) }
