package store

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"lsers_hub_backend/internal/category"
	"lsers_hub_backend/internal/domain"
)

var seedPhotoIDs = []string{
	"1507003211-a90c1637-c24c-4608-8d2e-71fbb9226f2c",
	"1438761681-c6cb0372-6b8c-4b42-96dc-4fdfba394b65",
	"1500648767791-00dcc994a43e",
	"1494790108-ea87e2ac-c304-4554-aa09-f8c8093e5610",
	"1472099645-e36c4e4a70f6",
	"1539571696357-5a69c17a67c6",
	"1506794778202-cad84cf45f1d",
	"1544005313-94ddf0286df2",
}

var seedPortfolio = []domain.PortfolioItem{
	{
		Photo:       domain.RefPhoto("https://images.unsplash.com/photo-1581092160607-ee22621ddbb3?w=800&h=600&fit=crop"),
		Title:       "Smart Home Installation",
		Description: "Complete rewiring and smart control panel integration for a luxury villa.",
	},
	{
		Photo:       domain.RefPhoto("https://images.unsplash.com/photo-1504148455328-497c1121d494?w=800&h=600&fit=crop"),
		Title:       "Modern Lighting Design",
		Description: "Architectural lighting setup for a high-end restaurant in Monrovia.",
	},
	{
		Photo:       domain.RefPhoto("https://images.unsplash.com/photo-1484154218962-a197022b5858?w=800&h=600&fit=crop"),
		Title:       "Kitchen Renovation",
		Description: "Full plumbing and appliance installation for a modern home makeover.",
	},
}

// DefaultPoints is the welcome balance every device starts with.
const DefaultPoints = 250

// DefaultProviders builds one sample provider per catalog category, ids 1..N in catalog order.
// The generator is seeded so every call returns the same collection.
func DefaultProviders() []domain.Provider {
	rng := rand.New(rand.NewPCG(2024, 231))
	cats := category.NewStaticRepository().FindAll(context.Background())
	providers := make([]domain.Provider, 0, len(cats))

	for i, cat := range cats {
		id := int64(i + 1)
		lat := 6.31 + (rng.Float64()-0.5)*0.1
		lon := -10.8 + (rng.Float64()-0.5)*0.15
		portfolio := make([]domain.PortfolioItem, len(seedPortfolio))
		copy(portfolio, seedPortfolio)

		providers = append(providers, domain.Provider{
			ID:             id,
			Name:           fmt.Sprintf("Expert %s 1", cat.Title),
			Category:       cat.ID,
			Phone:          fmt.Sprintf("+23177%d", 1000000+rng.IntN(9000000)),
			PriceValue:     float64(30 + rng.IntN(100)),
			Bio:            fmt.Sprintf("Professional %s with extensive experience in %s. Highly recommended in the community for high-quality workmanship and reliability.", cat.Title, cat.Description),
			Experience:     fmt.Sprintf("%d years", 3+rng.IntN(10)),
			Specialties:    strings.Split(cat.Description, " & "),
			Certifications: []string{"Verified Professional", "Safe Work Certified"},
			Languages:      []string{"English"},
			CompletedJobs:  50 + rng.IntN(500),
			ResponseTime:   "15 mins",
			Status:         domain.ProviderActive,
			Availability:   domain.AvailableNow,
			Latitude:       &lat,
			Longitude:      &lon,
			Photo:          domain.RefPhoto(fmt.Sprintf("https://images.unsplash.com/photo-%s?w=400&h=400&fit=crop", seedPhotoIDs[(i+2)%len(seedPhotoIDs)])),
			Portfolio:      portfolio,
		})
	}
	return providers
}

// DefaultUsers are the sample accounts; each is also in the PIN registry with PIN 1234.
func DefaultUsers() []domain.User {
	providerID := int64(1)
	return []domain.User{
		{ID: 1, Name: "Test User", Email: "user@lsers.pro", ProviderID: &providerID, Role: domain.RoleUser},
		{ID: 2, Name: "John Doe", Email: "john@test.com", Role: domain.RoleUser},
		{ID: 3, Name: "Massa Washington", Email: "massa@test.com", Role: domain.RoleUser},
		{ID: 4, Name: "AB Motors", Email: "ab@test.com", Role: domain.RoleUser},
		{ID: 5, Name: "Fatu Kromah", Email: "fatu@test.com", Role: domain.RoleUser},
	}
}

// DefaultReviews dates the sample reviews relative to now.
func DefaultReviews(now time.Time) []domain.Review {
	daysAgo := func(d int) int64 { return now.Add(-time.Duration(d) * 24 * time.Hour).UnixMilli() }
	return []domain.Review{
		{ID: 1, ProviderID: 1, AuthorID: 2, AuthorName: "John Doe", Rating: 5, Comment: "Absolutely phenomenal work! The wiring was done perfectly and they were very professional. Highly recommend.", Timestamp: daysAgo(2)},
		{ID: 2, ProviderID: 1, AuthorID: 3, AuthorName: "Massa Washington", Rating: 4, Comment: "Great service, very knowledgeable. They arrived on time and fixed the issue quickly. Would use again.", Timestamp: daysAgo(5)},
		{ID: 3, ProviderID: 2, AuthorID: 5, AuthorName: "Fatu Kromah", Rating: 5, Comment: "Fixed my leaking pipe in under an hour. Very clean work and fair pricing. A lifesaver!", Timestamp: daysAgo(1)},
		{ID: 4, ProviderID: 3, AuthorID: 2, AuthorName: "John Doe", Rating: 3, Comment: "Did an okay job hanging the shelves, but was a bit late.", Timestamp: daysAgo(10)},
		{ID: 5, ProviderID: 13, AuthorID: 3, AuthorName: "Massa Washington", Rating: 5, Comment: "My PC is running faster than ever! They identified the problem right away and had it fixed the same day.", Timestamp: daysAgo(3)},
	}
}

func DefaultProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          1,
			Title:       "Slightly Used iPhone 13 Pro",
			Price:       650,
			Description: "Excellent condition iPhone 13 Pro, 256GB in Sierra Blue. No scratches on the screen, battery health at 92%. Comes with original box.",
			SellerName:  "John Doe",
			SellerID:    2,
			SellerPhone: "+231776966080",
			Photos:      []domain.Photo{domain.RefPhoto("https://images.unsplash.com/photo-1632569623239-2d9d136fa5a5?w=400&h=400&fit=crop")},
			Location:    "Sinkor, Monrovia",
			Condition:   domain.ConditionUsedLikeNew,
		},
		{
			ID:          2,
			Title:       "Hand-carved Wooden Mask",
			Price:       45,
			Description: "Beautiful, authentic Liberian wooden mask, perfect for home decor. Carved from local mahogany by a master artisan.",
			SellerName:  "Massa Washington",
			SellerID:    3,
			SellerPhone: "+231776966081",
			Photos:      []domain.Photo{domain.RefPhoto("https://images.unsplash.com/photo-1534399124424-023a7b539c27?w=400&h=400&fit=crop")},
			Location:    "Waterside Market",
			Condition:   domain.ConditionNew,
		},
		{
			ID:          3,
			Title:       "2018 Toyota RAV4",
			Price:       18500,
			Description: "Reliable and well-maintained 2018 Toyota RAV4. Low mileage, clean interior, recently serviced. Great for Liberian roads.",
			SellerName:  "AB Motors",
			SellerID:    4,
			SellerPhone: "+231776966082",
			Photos:      []domain.Photo{domain.RefPhoto("https://images.unsplash.com/photo-1594053097223-f42aa39f2caf?w=400&h=400&fit=crop")},
			Location:    "Paynesville",
			Condition:   domain.ConditionUsedGood,
		},
		{
			ID:          4,
			Title:       "Brand New Samsung 55\" Smart TV",
			Price:       800,
			Description: "Unopened Samsung 55-inch Crystal UHD 4K Smart TV. Won it in a raffle, but already have a good TV. My loss is your gain!",
			SellerName:  "Fatu Kromah",
			SellerID:    5,
			SellerPhone: "+231776966083",
			Photos:      []domain.Photo{domain.RefPhoto("https://images.unsplash.com/photo-1622219890522-132d74a496a7?w=400&h=400&fit=crop")},
			Location:    "Congo Town",
			Condition:   domain.ConditionNew,
		},
	}
}

func DefaultSiteContent() domain.SiteContent {
	return domain.SiteContent{
		Stats: domain.SiteStats{
			Pros:    domain.StatItem{Value: "2,500+", Label: "Verified Pros"},
			Clients: domain.StatItem{Value: "15k+", Label: "Happy Clients"},
			Items:   domain.StatItem{Value: "1,000s", Label: "of Items"},
			Support: domain.StatItem{Value: "24h", Label: "Support"},
		},
		Socials: domain.SocialLinks{Facebook: "FB", Instagram: "IG", Twitter: "TW"},
		FooterLabels: domain.FooterLabels{
			ExploreTitle: "Explore",
			HowItWorks:   "How it works",
			ServiceList:  "Service List",
			Points:       "Points & Rewards",
			Dashboard:    "Provider Dashboard",
			SupportTitle: "Support",
			HelpCenter:   "Help Center",
			Safety:       "Safety Guide",
			TOS:          "Terms of Service",
			Contact:      "Contact Support",
		},
		Tagline:       "Making professional services accessible through skill, trust, and community opportunity. Based in Monrovia, serving globally.",
		CopyrightYear: "2024",
		MadeIn:        "Made with ❤️ in Liberia",
		OperatingIn:   "Operating Globally",
	}
}

func DefaultProperties() []domain.Property {
	return []domain.Property{
		{
			ID: 1, Title: "Luxury Oceanview Villa", Location: "Monrovia, Robertsfield Hwy", PricePerNight: 150, Rating: 4.9, Reviews: 42,
			PhotoID:     "1564013799-b1ddec28a941",
			Description: "Experience the ultimate beach getaway in our stunning 3-bedroom villa. Featuring panoramic ocean views, private beach access, and a fully equipped modern kitchen.",
			HostName:    "Kema Johnson", HostPhone: "+231776966080",
			Amenities: []string{"Free WiFi", "Private Pool", "Air Conditioning", "Security 24/7"},
		},
		{
			ID: 2, Title: "Modern City Apartment", Location: "Sinkor, 12th Street", PricePerNight: 85, Rating: 4.7, Reviews: 128,
			PhotoID:     "1502672260266-1c1ef2d93688",
			Description: "Perfect for business travelers, this sleek apartment is located in the heart of Sinkor. Close to UN offices, restaurants, and shopping centers.",
			HostName:    "Musa Kamara", HostPhone: "+231776966081",
			Amenities: []string{"High-speed Internet", "Work Space", "Generator Backup", "Laundry"},
		},
		{
			ID: 3, Title: "Peaceful Garden Cottage", Location: "Paynesville, Rehab", PricePerNight: 65, Rating: 4.8, Reviews: 15,
			PhotoID:     "1580587771525-78b9ec3bca4b",
			Description: "Tucked away in a quiet neighborhood, this cozy cottage is surrounded by lush tropical gardens. A perfect retreat for couples or solo travelers.",
			HostName:    "Sarah Doe", HostPhone: "+231776966082",
			Amenities: []string{"Tropical Garden", "Breakfast Included", "Kitchenette", "Free Parking"},
		},
		{
			ID: 4, Title: "Executive Penthouse Suite", Location: "Mamba Point", PricePerNight: 210, Rating: 5.0, Reviews: 8,
			PhotoID:     "1512917774080-9991f1c4c750",
			Description: "The most exclusive stay in Mamba Point. Overlooking the Atlantic Ocean, this penthouse offers world-class luxury and unmatched privacy.",
			HostName:    "Ambassador Suites", HostPhone: "+231776966083",
			Amenities: []string{"Private Elevator", "Concierge", "Gym Access", "Rooftop Terrace"},
		},
	}
}

func DefaultBookingHistory() []domain.BookingHistoryItem {
	return []domain.BookingHistoryItem{
		{ID: "bh1", Type: "service", Name: "Plumbing Service", ProviderOrHost: "Expert Plumber 1", Date: "2024-07-15", Status: "Completed", Cost: 75, Icon: "🔧"},
		{ID: "bh2", Type: "property", Name: "Luxury Oceanview Villa", ProviderOrHost: "Kema Johnson", Date: "2024-07-20", Status: "Upcoming", Cost: 450, Icon: "🏡"},
		{ID: "bh3", Type: "service", Name: "Electrician", ProviderOrHost: "Expert Electrician 1", Date: "2024-06-01", Status: "Completed", Cost: 120, Icon: "⚡"},
		{ID: "bh4", Type: "service", Name: "Graphics Design", ProviderOrHost: "Expert Graphics Design 1", Date: "2024-05-25", Status: "Cancelled", Cost: 250, Icon: "🎨"},
		{ID: "bh5", Type: "property", Name: "Modern City Apartment", ProviderOrHost: "Musa Kamara", Date: "2024-04-10", Status: "Completed", Cost: 170, Icon: "🏢"},
	}
}
