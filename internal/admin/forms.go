package admin

import (
	"strconv"
	"strings"

	"github.com/abstravel/site/internal/models"
)

// PackageForm is the package editor as submitted. Price stays text so the
// form can be re-rendered exactly as typed.
type PackageForm struct {
	TitleEN       string `form:"title_en" validate:"required"`
	TitleSO       string `form:"title_so" validate:"required"`
	DescriptionEN string `form:"description_en" validate:"required"`
	DescriptionSO string `form:"description_so" validate:"required"`
	Price         string `form:"price" validate:"required,numeric"`
	Duration      string `form:"duration" validate:"required"`
	Inclusions    string `form:"inclusions"`
	ImageURL      string `form:"image_url" validate:"required,mediaref"`
	Type          string `form:"type" validate:"oneof=hajj umrah"`
}

// NewPackageForm is the empty editor; new packages default to umrah.
func NewPackageForm() PackageForm {
	return PackageForm{Type: string(models.CategoryUmrah)}
}

func (f PackageForm) Package() (models.Package, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return models.Package{}, &InvalidError{Err: err}
	}
	return models.Package{
		TitleEN:       strings.TrimSpace(f.TitleEN),
		TitleSO:       strings.TrimSpace(f.TitleSO),
		DescriptionEN: f.DescriptionEN,
		DescriptionSO: f.DescriptionSO,
		Price:         price,
		Duration:      strings.TrimSpace(f.Duration),
		Inclusions:    models.ParseInclusions(strings.ReplaceAll(f.Inclusions, "\r\n", "\n")),
		ImageURL:      strings.TrimSpace(f.ImageURL),
		Type:          models.Category(f.Type),
	}, nil
}

func PackageFormFrom(p models.Package) PackageForm {
	return PackageForm{
		TitleEN:       p.TitleEN,
		TitleSO:       p.TitleSO,
		DescriptionEN: p.DescriptionEN,
		DescriptionSO: p.DescriptionSO,
		Price:         strconv.FormatFloat(p.Price, 'f', -1, 64),
		Duration:      p.Duration,
		Inclusions:    models.FormatInclusions(p.Inclusions),
		ImageURL:      p.ImageURL,
		Type:          string(p.Type),
	}
}

type PostForm struct {
	TitleEN   string `form:"title_en" validate:"required"`
	TitleSO   string `form:"title_so" validate:"required"`
	ContentEN string `form:"content_en" validate:"required"`
	ContentSO string `form:"content_so" validate:"required"`
	ImageURL  string `form:"image_url" validate:"omitempty,mediaref"`
	VideoURL  string `form:"video_url" validate:"omitempty,mediaref"`
}

func (f PostForm) Post() models.Post {
	return models.Post{
		TitleEN:   strings.TrimSpace(f.TitleEN),
		TitleSO:   strings.TrimSpace(f.TitleSO),
		ContentEN: f.ContentEN,
		ContentSO: f.ContentSO,
		ImageURL:  models.OptionalString(strings.TrimSpace(f.ImageURL)),
		VideoURL:  models.OptionalString(strings.TrimSpace(f.VideoURL)),
	}
}

func PostFormFrom(p models.Post) PostForm {
	return PostForm{
		TitleEN:   p.TitleEN,
		TitleSO:   p.TitleSO,
		ContentEN: p.ContentEN,
		ContentSO: p.ContentSO,
		ImageURL:  p.Image(),
		VideoURL:  p.Video(),
	}
}

// GalleryForm adds one item. ImageURL may be left empty when a file is
// uploaded alongside.
type GalleryForm struct {
	Title    string `form:"title" validate:"required"`
	ImageURL string `form:"image_url" validate:"omitempty,mediaref"`
	Type     string `form:"type" validate:"oneof=photo video"`
}

func NewGalleryForm() GalleryForm {
	return GalleryForm{Type: string(models.MediaPhoto)}
}

func (f GalleryForm) Item() models.GalleryItem {
	return models.GalleryItem{
		Title:    strings.TrimSpace(f.Title),
		ImageURL: strings.TrimSpace(f.ImageURL),
		Type:     models.MediaKind(f.Type),
	}
}
