package provider

import (
	"sort"
	"strconv"
	"strings"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/geo"
	"lsers_hub_backend/internal/review"
)

// BuildViews attaches distance from user and aggregate rating to each provider, keeping order.
func BuildViews(providers []domain.Provider, ratings map[int64]review.Aggregate, user geo.Point) []View {
	views := make([]View, 0, len(providers))
	for _, p := range providers {
		v := View{Provider: p, Rating: ratings[p.ID]}
		if loc, ok := p.Location(); ok {
			d := geo.Haversine(user, loc)
			v.Distance = &d
		}
		views = append(views, v)
	}
	return views
}

// Filter keeps the views matching every criterion of f.
func Filter(views []View, f ListFilter) []View {
	query := strings.ToLower(strings.TrimSpace(f.Search))
	maxDistance, hasMaxDistance := distanceLimit(f.Distance)

	out := make([]View, 0, len(views))
	for _, v := range views {
		if v.Category != f.Category {
			continue
		}
		if f.MinRating > 0 && v.Rating.Average < f.MinRating {
			continue
		}
		if !inPriceBracket(v.PriceValue, f.Price) {
			continue
		}
		if hasMaxDistance && (v.Distance == nil || *v.Distance > maxDistance) {
			continue
		}
		if f.Availability != "" && f.Availability != "all" && string(v.Availability) != f.Availability {
			continue
		}
		if query != "" && !matchesSearch(v.Provider, query) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func inPriceBracket(price float64, bracket string) bool {
	switch bracket {
	case PriceUnder50:
		return price < 50
	case Price50To100:
		return price >= 50 && price <= 100
	case PriceOver100:
		return price > 100
	default:
		return true
	}
}

func distanceLimit(bracket string) (float64, bool) {
	if bracket == "" || bracket == "all" {
		return 0, false
	}
	miles, err := strconv.ParseFloat(bracket, 64)
	if err != nil {
		return 0, false
	}
	return miles, true
}

func matchesSearch(p domain.Provider, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) || strings.Contains(strings.ToLower(p.Bio), query) {
		return true
	}
	for _, s := range p.Specialties {
		if strings.Contains(strings.ToLower(s), query) {
			return true
		}
	}
	return false
}

// Sort orders views in place. Ties keep their relative order.
func Sort(views []View, key string) {
	switch key {
	case SortRating:
		sort.SliceStable(views, func(i, j int) bool { return views[i].Rating.Average > views[j].Rating.Average })
	case SortPrice:
		sort.SliceStable(views, func(i, j int) bool { return views[i].PriceValue < views[j].PriceValue })
	default:
		sort.SliceStable(views, func(i, j int) bool { return closer(views[i], views[j]) })
	}
}

// closer sorts by ascending distance, providers without one last.
func closer(a, b View) bool {
	switch {
	case a.Distance == nil:
		return false
	case b.Distance == nil:
		return true
	default:
		return *a.Distance < *b.Distance
	}
}

// SortAdmin orders the admin table by one column.
func SortAdmin(views []View, by, order string) {
	if by == "" {
		return
	}
	desc := order == "desc"
	less := func(i, j int) bool {
		a, b := views[i], views[j]
		switch by {
		case "name":
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		case "category":
			return a.Category < b.Category
		case "rating":
			return a.Rating.Average < b.Rating.Average
		case "completedJobs":
			return a.CompletedJobs < b.CompletedJobs
		case "status":
			return a.Status < b.Status
		}
		return false
	}
	sort.SliceStable(views, func(i, j int) bool {
		if desc {
			return less(j, i)
		}
		return less(i, j)
	})
}
