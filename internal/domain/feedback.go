package domain

const (
	MinRating = 0
	MaxRating = 5
)

// Feedback is the rating and comment a user attached to a book. It is keyed
// by book id and lives apart from column membership.
type Feedback struct {
	Rating   int    `json:"rating" validate:"gte=0,lte=5"`
	Comments string `json:"comments" validate:"max=4000"`
}

// IsZero reports whether f carries nothing worth storing.
func (f Feedback) IsZero() bool {
	return f.Rating == 0 && f.Comments == ""
}
