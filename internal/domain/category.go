package domain

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryDraft is a validated category ready for persistence.
type CategoryDraft struct {
	Name string
}
