package contacts

import "time"

// Contact holds the CRM details saved for one chat.
type Contact struct {
	ID        string    `json:"id"`
	ChatID    string    `json:"chat_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Company   string    `json:"company"`
	Notes     string    `json:"notes"`
	Platform  string    `json:"platform"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SaveRequest creates or replaces the contact of a chat.
type SaveRequest struct {
	ChatID   string `json:"chatId" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Platform string `json:"platform" validate:"required,oneof=whatsapp instagram facebook"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Notes    string `json:"notes"`
}

// UpdateRequest patches a contact; nil fields are left unchanged.
type UpdateRequest struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`
	Notes   *string `json:"notes,omitempty"`
}
