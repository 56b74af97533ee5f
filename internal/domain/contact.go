package domain

import "time"

// ContactSubmission is one contact-form submission. Created once, persisted,
// never mutated.
type ContactSubmission struct {
	ID        string    `json:"id,omitempty"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
