package review

// Aggregate is the derived rating of one provider.
type Aggregate struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}

// CreateReviewRequest is the body of a new review.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,gte=1,lte=5" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" binding:"required,max=2000" validate:"required,max=2000"`
}

// ReviewsResponse bundles a provider's reviews with their aggregate.
type ReviewsResponse struct {
	Reviews   interface{} `json:"reviews"`
	Aggregate Aggregate   `json:"aggregate"`
}
