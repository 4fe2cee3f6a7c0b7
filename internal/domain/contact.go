package domain

// ============================================================
// Contact — Request / Response types (matches frontend API contract)
// ============================================================

// DefaultContactMessage replaces an absent optional message before the
// submission is processed. The validator never injects it; the service does.
const DefaultContactMessage = "No message provided"

// ContactSubmission is the normalized payload after schema validation.
// Message may still be empty here; the service applies the default.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message,omitempty"`
}

// ContactData is the processed submission returned inside the success
// envelope of POST /v1/contact.
type ContactData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"` // ISO-8601
}

// ContactResponse is the 200 body for POST /v1/contact.
type ContactResponse struct {
	Success bool         `json:"success"`
	Data    *ContactData `json:"data"`
}
