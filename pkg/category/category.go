package category

// Category is a spending category a subscription is filed under.
// Names are unique case-insensitively.
type Category struct {
	ID   int
	Name string
}
