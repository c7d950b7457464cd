package model

// Category groups cars. NormalizedName is the URL slug used for routing (e.g. "sedan").
type Category struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	NormalizedName string `json:"normalizedName"`
}

// Car is a catalog entry.
// Image holds the object storage key of the picture; ImageURL is a short-lived link
// resolved on detail reads and never persisted.
type Car struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	MimeType    string    `json:"mimeType,omitempty"`
	CategoryID  int       `json:"categoryId"`
	Category    *Category `json:"category,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}
