package content

import (
	"fmt"
	"strconv"
	"time"

	"github.com/abstravel/site/internal/models"
)

const pexels = "https://images.pexels.com/photos/"

func pexelsImage(id string, width int) string {
	return fmt.Sprintf("%s%s/pexels-photo-%s.jpeg?auto=compress&cs=tinysrgb&w=%d", pexels, id, id, width)
}

// SamplePackages is shown when the packages read fails.
func SamplePackages() []models.Package {
	now := time.Now().UTC()
	return []models.Package{
		{
			ID:            "1",
			TitleEN:       "Premium Umrah Package",
			TitleSO:       "Xirmada Cumrada Premium",
			DescriptionEN: "Luxury Umrah experience with 5-star accommodation",
			DescriptionSO: "Khibrad Cumro raaxo leh oo leh hoy 5-xiddigood ah",
			Price:         2500,
			Duration:      "10 Days",
			Inclusions:    []string{"5-Star Hotels", "Airport Transfers", "Ziyarat Tours", "Group Leader"},
			ImageURL:      "/P2.jpeg",
			Type:          models.CategoryUmrah,
			CreatedAt:     now,
		},
		{
			ID:            "2",
			TitleEN:       "Economy Umrah Package",
			TitleSO:       "Xirmada Cumrada Dhaqaale",
			DescriptionEN: "Affordable Umrah package with comfortable accommodation",
			DescriptionSO: "Xirmad Cumro ah oo la awoodi karo oo leh hoy raaxo leh",
			Price:         1500,
			Duration:      "7 Days",
			Inclusions:    []string{"3-Star Hotels", "Airport Transfers", "Group Leader"},
			ImageURL:      "/PACKAGE.jpeg",
			Type:          models.CategoryUmrah,
			CreatedAt:     now,
		},
		{
			ID:            "3",
			TitleEN:       "Hajj Package 2025",
			TitleSO:       "Xirmada Xajka 2025",
			DescriptionEN: "Complete Hajj package with full guidance",
			DescriptionSO: "Xirmad Xaj dhamaystiran oo leh hago buuxa",
			Price:         5500,
			Duration:      "21 Days",
			Inclusions:    []string{"4-Star Hotels", "All Meals", "Transportation", "Experienced Guide"},
			ImageURL:      pexelsImage("12871775", 800),
			Type:          models.CategoryHajj,
			CreatedAt:     now,
		},
	}
}

// SamplePosts is shown when the posts read fails.
func SamplePosts() []models.Post {
	return []models.Post{
		{
			ID:        "1",
			TitleEN:   "Umrah Group December 2024 - Arrival Update",
			TitleSO:   "Kooxda Cumrada December 2024 - Warbixin Soo Gaadhista",
			ContentEN: "Alhamdulillah! Our December Umrah group has safely arrived in Makkah. The pilgrims are in good health and spirits. May Allah accept their worship.",
			ContentSO: "Alxamdu lillaahi! Kooxdayada Cumrada December waxay si badbaado ah ugu soo gaaddheen Makkah. Xujajku waxay ku jiraan caafimaad iyo ruux fiican. Eebe ha aqbalo cibaadooda.",
			ImageURL:  models.OptionalString(pexelsImage("631477", 800)),
			CreatedAt: time.Date(2024, 12, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID:        "2",
			TitleEN:   "Hajj 2024 Completion - Alhamdulillah",
			TitleSO:   "Xajka 2024 Dhammaadkiisa - Alxamdu lillaahi",
			ContentEN: "Our Hajj pilgrims have successfully completed their pilgrimage. We are proud to announce that all 45 pilgrims have returned home safely with accepted Hajj, InshaAllah.",
			ContentSO: "Xujajkeenna Xajku si guul leh ayey u dhammeeyeen safarkooda. Waxaan ku faanaa in dhammaan 45-ka xujaaj ay si badbaado ah ugu soo laabtreen guriga iyagoo leh Xaj la aqbalay, Inshaa Allaah.",
			ImageURL:  models.OptionalString(pexelsImage("8761418", 800)),
			CreatedAt: time.Date(2024, 7, 20, 14, 15, 0, 0, time.UTC),
		},
	}
}

// SampleGallery holds the six photos and three video thumbnails of the
// public gallery.
func SampleGallery() []models.GalleryItem {
	photos := []string{"631477", "8761418", "12871775", "2233391", "11375599", "14542119"}
	videos := []struct{ title, photo string }{
		{"Umrah Group 2024", "631477"},
		{"Hajj Journey Highlights", "8761418"},
		{"Pilgrims Testimonials", "12871775"},
	}

	items := make([]models.GalleryItem, 0, len(photos)+len(videos))
	for i, id := range photos {
		items = append(items, models.GalleryItem{
			ID:       strconv.Itoa(i + 1),
			Title:    "Gallery " + strconv.Itoa(i+1),
			ImageURL: pexelsImage(id, 800),
			Type:     models.MediaPhoto,
		})
	}
	for i, v := range videos {
		items = append(items, models.GalleryItem{
			ID:       strconv.Itoa(len(photos) + i + 1),
			Title:    v.title,
			ImageURL: pexelsImage(v.photo, 800),
			Type:     models.MediaVideo,
		})
	}
	return items
}

// Testimonials are static; there is no collection behind them.
func Testimonials() []models.Testimonial {
	return []models.Testimonial{
		{
			Name:      "Ahmed Mohamed",
			ContentEN: "ABS Travel made my Umrah journey unforgettable. The service was exceptional and the guidance was perfect.",
			ContentSO: "ABS Travel safarkayga Cumrada ma illoobi karo ayey ka dhigtay. Adeeggu wuxuu ahaa mid heer sare ah, hagitaankuna wuu kamali ahaa.",
			Rating:    5,
			Image:     pexelsImage("2379004", 400),
		},
		{
			Name:      "Fatima Hassan",
			ContentEN: "Professional service from start to finish. The hotels were excellent and the transportation was very comfortable.",
			ContentSO: "Adeeg xirfad leh tan iyo bilowga ilaa dhammaadka. Hoteeladu waxay ahaayeen kuwo heer sare ah, gaadiidkuna aad buu u raaxo badnaa.",
			Rating:    5,
			Image:     pexelsImage("1181686", 400),
		},
		{
			Name:      "Omar Ali",
			ContentEN: "The best Hajj experience I could have asked for. ABS Travel took care of everything perfectly.",
			ContentSO: "Khibradda Xajka ugu fiican oo aan codsadi karay. ABS Travel wax walba si fiican ayey u qabtay.",
			Rating:    5,
			Image:     pexelsImage("2379005", 400),
		},
	}
}

// Offer is one card on the services page.
type Offer struct {
	Icon          string
	TitleEN       string
	TitleSO       string
	DescriptionEN string
	DescriptionSO string
}

func Services() []Offer {
	return []Offer{
		{"kaaba", "Hajj & Umrah Services", "Adeegga Xajka iyo Cumrada", "Complete pilgrimage packages with expert guidance", "Xirmooyin dhamaystiran oo leh hago takhasuus ah"},
		{"hotel", "Makkah & Madina Hotels", "Hotelada Makkah iyo Madina", "Premium accommodation near holy sites", "Hoy heer sare ah oo u dhow meelaha barakeysan"},
		{"plane", "Local & International Ticketing", "Tikidho Gudaha iyo Dibadda", "Affordable flight tickets worldwide", "Tikidho diyaaradeed oo qiimo jaban oo caalami ah"},
		{"passport", "Umrah Visas", "Viisoyinka Cumrada", "Fast visa processing and documentation", "Habaynta degdeg ah ee viisada iyo dukumentiyada"},
		{"bus", "Makkah & Madina Transport", "Basaska Makkah iyo Madina", "Comfortable transportation between holy cities", "Gaadiid raaxo leh oo u dhexeeya magaalooyinka barakeysan"},
		{"ticket", "Affordable Tickets", "Tikidho Qiimo Jaban", "Best prices for your travel needs", "Qiimaha ugu fiican ee baahiyahaaga safarka"},
		{"stamp", "Kenya Entry Visas", "Viisoyinka Dal Ku Galka Kenya", "Assistance with Kenya visa applications", "Caawimaad viisada Kenya ee codsashada"},
		{"calendar", "Monthly Umrah Packages", "Xirmooyin Cumro Bil Walba", "Flexible monthly pilgrimage options", "Ikhtiyaarooyin macquul ah oo bil walba ah"},
	}
}
