package provider

import (
	"testing"

	"lsers_hub_backend/internal/domain"
	"lsers_hub_backend/internal/platform/geo"
	"lsers_hub_backend/internal/review"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func fixtureProviders() []domain.Provider {
	return []domain.Provider{
		{ID: 1, Name: "Ada Wires", Category: "electrician", PriceValue: 45, Availability: domain.AvailableNow, Latitude: ptr(6.316), Longitude: ptr(-10.805), Bio: "Solar installs", Specialties: []string{"Wiring"}},
		{ID: 2, Name: "Ben Volt", Category: "electrician", PriceValue: 100, Availability: domain.AvailableToday, Latitude: ptr(6.35), Longitude: ptr(-10.80)},
		{ID: 3, Name: "Cy Spark", Category: "electrician", PriceValue: 50, Availability: domain.AvailableNow},
		{ID: 4, Name: "Dee Pipe", Category: "plumber", PriceValue: 20, Availability: domain.AvailableNow, Latitude: ptr(6.315), Longitude: ptr(-10.804)},
		{ID: 5, Name: "Eve Amp", Category: "electrician", PriceValue: 150, Availability: domain.AvailableTomorrow, Latitude: ptr(6.40), Longitude: ptr(-10.70)},
	}
}

var origin = geo.Point{Lat: 6.315, Lon: -10.804}

func ids(views []View) []int64 {
	out := make([]int64, 0, len(views))
	for _, v := range views {
		out = append(out, v.ID)
	}
	return out
}

func TestBuildViewsDistance(t *testing.T) {
	views := BuildViews(fixtureProviders(), nil, origin)
	require.Len(t, views, 5)
	assert.Nil(t, views[2].Distance)
	require.NotNil(t, views[3].Distance)
	assert.Zero(t, *views[3].Distance)
}

func TestFilterCategoryIsExactSubset(t *testing.T) {
	views := BuildViews(fixtureProviders(), nil, origin)
	got := Filter(views, ListFilter{Category: "electrician"})
	assert.Equal(t, []int64{1, 2, 3, 5}, ids(got))
	for _, v := range got {
		assert.Equal(t, "electrician", v.Category)
	}
}

func TestFilterBrackets(t *testing.T) {
	views := BuildViews(fixtureProviders(), map[int64]review.Aggregate{
		1: {Average: 4.5, Count: 2}, 2: {Average: 3, Count: 1},
	}, origin)

	tests := []struct {
		name string
		f    ListFilter
		want []int64
	}{
		{"under50", ListFilter{Category: "electrician", Price: PriceUnder50}, []int64{1}},
		{"50-100 inclusive", ListFilter{Category: "electrician", Price: Price50To100}, []int64{2, 3}},
		{"over100", ListFilter{Category: "electrician", Price: PriceOver100}, []int64{5}},
		{"min rating", ListFilter{Category: "electrician", MinRating: 4}, []int64{1}},
		{"within 1 mile drops unknown distance", ListFilter{Category: "electrician", Distance: "1"}, []int64{1}},
		{"within 5 miles", ListFilter{Category: "electrician", Distance: "5"}, []int64{1, 2}},
		{"availability", ListFilter{Category: "electrician", Availability: "now"}, []int64{1, 3}},
		{"search specialty", ListFilter{Category: "electrician", Search: "WIRING"}, []int64{1}},
		{"search bio", ListFilter{Category: "electrician", Search: "solar"}, []int64{1}},
		{"search name", ListFilter{Category: "electrician", Search: "volt"}, []int64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(views, tt.f)))
		})
	}
}

func TestSortOrders(t *testing.T) {
	base := BuildViews(fixtureProviders(), map[int64]review.Aggregate{
		1: {Average: 3}, 2: {Average: 5}, 5: {Average: 3},
	}, origin)
	electricians := Filter(base, ListFilter{Category: "electrician"})

	byRating := append([]View(nil), electricians...)
	Sort(byRating, SortRating)
	// 1 and 5 tie on 3.0 and keep their order.
	assert.Equal(t, []int64{2, 1, 5, 3}, ids(byRating))
	for i := 1; i < len(byRating); i++ {
		assert.GreaterOrEqual(t, byRating[i-1].Rating.Average, byRating[i].Rating.Average)
	}

	byPrice := append([]View(nil), electricians...)
	Sort(byPrice, SortPrice)
	for i := 1; i < len(byPrice); i++ {
		assert.LessOrEqual(t, byPrice[i-1].PriceValue, byPrice[i].PriceValue)
	}

	byDistance := append([]View(nil), electricians...)
	Sort(byDistance, SortDefault)
	assert.Equal(t, []int64{1, 2, 5, 3}, ids(byDistance))
}

func TestSortAdmin(t *testing.T) {
	views := BuildViews(fixtureProviders(), nil, origin)
	SortAdmin(views, "name", "desc")
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(views))

	SortAdmin(views, "completedJobs", "asc")
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids(views))
}
