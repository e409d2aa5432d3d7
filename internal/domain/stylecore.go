// File: internal/domain/stylecore.go
package domain

// StyleCore is a canonical fashion-aesthetic label, e.g.
// "Modern – Luxe Minimalist". Read-only reference data, matched by fuzzy
// substring against the parsed style text.
type StyleCore struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Base        string `json:"base" gorm:"not null"`
	Flavor      string `json:"flavor"`
	FullLabel   string `json:"full_label" gorm:"not null"`
	Description string `json:"description"`
}
