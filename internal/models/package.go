package models

import (
	"strings"
	"time"
)

// Category tags a package as a Hajj or an Umrah offer.
type Category string

const (
	CategoryHajj  Category = "hajj"
	CategoryUmrah Category = "umrah"
)

// Package is a Hajj or Umrah offer listed on the site.
type Package struct {
	ID            string    `json:"id,omitempty"`
	TitleEN       string    `json:"title_en" validate:"required"`
	TitleSO       string    `json:"title_so" validate:"required"`
	DescriptionEN string    `json:"description_en" validate:"required"`
	DescriptionSO string    `json:"description_so" validate:"required"`
	Price         float64   `json:"price" validate:"gte=0"`
	Duration      string    `json:"duration" validate:"required"`
	Inclusions    []string  `json:"inclusions"`
	ImageURL      string    `json:"image_url" validate:"required,mediaref"`
	Type          Category  `json:"type" validate:"oneof=hajj umrah"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// ParseInclusions splits editor text into one inclusion per line, dropping
// blank lines.
func ParseInclusions(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// FormatInclusions is the inverse of ParseInclusions.
func FormatInclusions(items []string) string {
	return strings.Join(items, "\n")
}

// Highlights returns at most n inclusions for list cards.
func (p Package) Highlights(n int) []string {
	if len(p.Inclusions) <= n {
		return p.Inclusions
	}
	return p.Inclusions[:n]
}
