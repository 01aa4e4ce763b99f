package model

// Category tags a message with the mood it serves.
type Category string

const (
	CategoryComforting   Category = "comforting"
	CategoryMotivational Category = "motivational"
	CategoryMindfulness  Category = "mindfulness"
)

// Categories lists the categories a user can toggle, in display order.
var Categories = []Category{
	CategoryComforting,
	CategoryMotivational,
	CategoryMindfulness,
}

// Message is a single catalog entry.
type Message struct {
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}
