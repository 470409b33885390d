package category

// Group clusters categories on the landing grid.
type Group string

const (
	GroupHome         Group = "home"
	GroupTech         Group = "tech"
	GroupCreative     Group = "creative"
	GroupProfessional Group = "professional"
	GroupTransport    Group = "transport"
	GroupPersonal     Group = "personal"
	GroupFood         Group = "food"
	GroupSecurity     Group = "security"
	GroupOutdoor      Group = "outdoor"
	GroupEvent        Group = "event"
)

// ServiceCategory is one entry of the fixed service catalog. ID doubles as the slug.
type ServiceCategory struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	Group       Group  `json:"group"`
}

// ListQuery filters the catalog listing.
type ListQuery struct {
	Group Group `form:"group" binding:"omitempty,oneof=home tech creative professional transport personal food security outdoor event"`
}
