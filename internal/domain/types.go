package domain

import (
	"fmt"
	"regexp"
	"strconv"

	"lsers_hub_backend/internal/platform/geo"
)

// Role is the privilege level of a User.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ProviderStatus is the moderation state of a provider listing.
type ProviderStatus string

const (
	ProviderActive   ProviderStatus = "active"
	ProviderInactive ProviderStatus = "inactive"
	ProviderPending  ProviderStatus = "pending"
)

func (s ProviderStatus) Valid() bool {
	switch s {
	case ProviderActive, ProviderInactive, ProviderPending:
		return true
	}
	return false
}

// Availability is how soon a provider can start.
type Availability string

const (
	AvailableNow      Availability = "now"
	AvailableToday    Availability = "today"
	AvailableTomorrow Availability = "tomorrow"
)

func (a Availability) Valid() bool {
	switch a {
	case AvailableNow, AvailableToday, AvailableTomorrow:
		return true
	}
	return false
}

// ProductCondition describes a marketplace item.
type ProductCondition string

const (
	ConditionNew         ProductCondition = "New"
	ConditionUsedLikeNew ProductCondition = "Used - Like New"
	ConditionUsedGood    ProductCondition = "Used - Good"
	ConditionUsedFair    ProductCondition = "Used - Fair"
)

func (c ProductCondition) Valid() bool {
	switch c {
	case ConditionNew, ConditionUsedLikeNew, ConditionUsedGood, ConditionUsedFair:
		return true
	}
	return false
}

// Theme is the UI color scheme preference.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// PortfolioItem is one showcased job on a provider profile.
type PortfolioItem struct {
	Photo       Photo  `json:"photo"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Provider is a service professional listing.
// Distance and aggregate rating are derived per request and never stored here.
type Provider struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	Phone          string          `json:"phone"`
	WhatsApp       string          `json:"whatsapp,omitempty"`
	PriceValue     float64         `json:"priceValue"`
	Bio            string          `json:"bio"`
	Experience     string          `json:"experience"`
	Specialties    []string        `json:"specialties"`
	Certifications []string        `json:"certifications"`
	Languages      []string        `json:"languages"`
	CompletedJobs  int             `json:"completedJobs"`
	ResponseTime   string          `json:"responseTime"`
	Status         ProviderStatus  `json:"status"`
	Availability   Availability    `json:"availability"`
	Latitude       *float64        `json:"latitude,omitempty"`
	Longitude      *float64        `json:"longitude,omitempty"`
	Photo          Photo           `json:"photo"`
	Portfolio      []PortfolioItem `json:"portfolio"`
}

// Location reports the stored coordinate, if both halves are present.
func (p Provider) Location() (geo.Point, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return geo.Point{}, false
	}
	return geo.Point{Lat: *p.Latitude, Lon: *p.Longitude}, true
}

// Product is a peer-to-peer marketplace item. Seller fields are copied at creation time.
type Product struct {
	ID          int64            `json:"id"`
	Title       string           `json:"title"`
	Price       float64          `json:"price"`
	Description string           `json:"description"`
	SellerID    int64            `json:"sellerId"`
	SellerName  string           `json:"sellerName"`
	SellerPhone string           `json:"sellerPhone"`
	Photos      []Photo          `json:"photos"`
	Location    string           `json:"location"`
	Condition   ProductCondition `json:"condition"`
}

// User is an application identity, distinct from the PIN registry entry with the same name.
type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	ProviderID *int64 `json:"providerId,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Review is a rating left by a user on a provider. AuthorName is a snapshot.
type Review struct {
	ID         int64  `json:"id"`
	ProviderID int64  `json:"providerId"`
	AuthorID   int64  `json:"authorId"`
	AuthorName string `json:"authorName"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Timestamp  int64  `json:"timestamp"`
}

// Sender identifies who wrote a chat message.
type Sender string

const (
	SenderUser     Sender = "user"
	SenderProvider Sender = "provider"
	SenderSystem   Sender = "system"
)

// ChatMessage is one entry in an append-only chat thread. Timestamp is unix milliseconds.
type ChatMessage struct {
	Sender    Sender `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}

var chatIDPattern = regexp.MustCompile(`^u(\d+)-p(\d+)$`)

// ChatID is the thread key for a (user, provider) pair.
func ChatID(userID, providerID int64) string {
	return fmt.Sprintf("u%d-p%d", userID, providerID)
}

// ParseChatID splits a thread key back into its user and provider ids.
func ParseChatID(id string) (userID, providerID int64, ok bool) {
	m := chatIDPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, 0, false
	}
	u, err1 := strconv.ParseInt(m[1], 10, 64)
	p, err2 := strconv.ParseInt(m[2], 10, 64)
	if err1 != nil || err2 != nil {
		return 0, 0, false
	}
	return u, p, true
}

// FavoriteType is the kind of entity a favorite points at.
type FavoriteType string

const (
	FavoriteProvider FavoriteType = "provider"
	FavoriteProduct  FavoriteType = "product"
)

func (t FavoriteType) Valid() bool {
	return t == FavoriteProvider || t == FavoriteProduct
}

// FavoriteItem is a member of a user's favorites set.
type FavoriteItem struct {
	Type FavoriteType `json:"type"`
	ID   int64        `json:"id"`
}

// SecurityQuestionAnswer is one recovery question slot.
type SecurityQuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RegisteredUser is a PIN registry entry.
type RegisteredUser struct {
	Name              string                   `json:"name"`
	PinHash           string                   `json:"pinHash"`
	SecurityQuestions []SecurityQuestionAnswer `json:"securityQuestions"`
}

// Property is a short-term rental listing.
type Property struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	Location      string   `json:"location"`
	PricePerNight float64  `json:"pricePerNight"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	PhotoID       string   `json:"photoId"`
	Description   string   `json:"description"`
	HostName      string   `json:"hostName"`
	HostPhone     string   `json:"hostPhone"`
	Amenities     []string `json:"amenities"`
}

// BookingHistoryItem is a past or upcoming booking shown on the history screen.
type BookingHistoryItem struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	ProviderOrHost string  `json:"providerOrHost"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	Cost           float64 `json:"cost"`
	Icon           string  `json:"icon"`
}

// StatItem is a headline number on the landing page.
type StatItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type SiteStats struct {
	Pros    StatItem `json:"pros"`
	Clients StatItem `json:"clients"`
	Items   StatItem `json:"items"`
	Support StatItem `json:"support"`
}

type SocialLinks struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

type FooterLabels struct {
	ExploreTitle string `json:"exploreTitle"`
	HowItWorks   string `json:"howItWorks"`
	ServiceList  string `json:"serviceList"`
	Points       string `json:"points"`
	Dashboard    string `json:"dashboard"`
	SupportTitle string `json:"supportTitle"`
	HelpCenter   string `json:"helpCenter"`
	Safety       string `json:"safety"`
	TOS          string `json:"tos"`
	Contact      string `json:"contact"`
}

// SiteContent is the admin-editable landing page and footer copy.
type SiteContent struct {
	Stats         SiteStats    `json:"stats"`
	Socials       SocialLinks  `json:"socials"`
	FooterLabels  FooterLabels `json:"footerLabels"`
	Tagline       string       `json:"tagline"`
	CopyrightYear string       `json:"copyrightYear"`
	MadeIn        string       `json:"madeIn"`
	OperatingIn   string       `json:"operatingIn"`
}
