// File: internal/dtos/requests.go
package dtos

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AnalyzeRequest struct {
	ImageData string `json:"image_data"`
	Tone      string `json:"tone,omitempty"`
}

type CheckoutRequest struct {
	PriceID string `json:"price_id"`
}

type GrantCreditsRequest struct {
	UserID uint `json:"user_id"`
	Amount int  `json:"amount"`
}
