// Package validation holds the declarative request schemas. Everything here
// is pure: no I/O, no clock, identical input always yields identical output,
// and a payload is either fully valid or rejected wholesale.
package validation

import (
	"strings"

	"github.com/boddenberg/credits-checkout-go/internal/domain"

	"github.com/badoux/checkmail"
)

// Validation messages exposed to callers. These are part of the API
// contract, so keep them stable.
const (
	MsgNameRequired   = "Name is required"
	MsgInvalidEmail   = "Invalid email format"
	MsgMessageType    = "Message must be a string"
	MsgInvalidBody    = "Invalid JSON body"
	MsgPriceRequired  = "Price ID is required"
	MsgValidationFail = "Validation failed"
)

// Result is the tagged outcome of schema-checking a payload.
// Exactly one of Data/Errors is meaningful, discriminated by Valid.
type Result struct {
	Valid  bool
	Data   domain.ContactSubmission
	Errors domain.FieldErrors
}

// Contact validates an arbitrary decoded JSON object against the contact
// schema: required non-empty name, required well-formed email, optional
// string message. Defaults are not injected here; the service owns that.
func Contact(payload map[string]any) Result {
	errs := domain.FieldErrors{}

	name, _ := payload["name"].(string)
	if name == "" {
		errs["name"] = append(errs["name"], MsgNameRequired)
	}

	email, emailIsString := payload["email"].(string)
	if !emailIsString || !emailFormatOK(email) {
		errs["email"] = append(errs["email"], MsgInvalidEmail)
	}

	var message string
	if raw, present := payload["message"]; present && raw != nil {
		s, ok := raw.(string)
		if !ok {
			errs["message"] = append(errs["message"], MsgMessageType)
		}
		message = s
	}

	if len(errs) > 0 {
		return Result{Valid: false, Errors: errs}
	}

	return Result{
		Valid: true,
		Data: domain.ContactSubmission{
			Name:    name,
			Email:   email,
			Message: message,
		},
	}
}

// emailFormatOK checks local-part "@" domain, with the domain containing at
// least one dot. checkmail covers the grammar; the dot rule is ours since
// bare hostnames ("user@localhost") are not deliverable addresses here.
func emailFormatOK(email string) bool {
	if checkmail.ValidateFormat(email) != nil {
		return false
	}
	at := strings.LastIndex(email, "@")
	return at >= 0 && strings.Contains(email[at+1:], ".")
}
