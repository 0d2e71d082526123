package controller

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidName  = errors.New("name must not be empty")
	ErrInvalidEmail = errors.New("email is not a valid address")
)

// ValidateRegistration checks that name is not blank and that email is a
// single bare address such as "ana@example.com".
func ValidateRegistration(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return ErrInvalidName
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return ErrInvalidEmail
	}
	return nil
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidName):
		return "Please fill in the name."
	case errors.Is(err, ErrInvalidEmail):
		return "Please enter a valid e-mail address."
	}
	return err.Error()
}

// Fields is a Form backed by plain strings.
type Fields struct {
	NameValue   string
	EmailValue  string
	SearchValue string
	// Focused is the input holding focus after the last Reset.
	Focused string
}

func (f *Fields) Name() string       { return f.NameValue }
func (f *Fields) Email() string      { return f.EmailValue }
func (f *Fields) SearchTerm() string { return f.SearchValue }

// Reset clears name and email and focuses name. The search term is kept.
func (f *Fields) Reset() {
	f.NameValue = ""
	f.EmailValue = ""
	f.Focused = "name"
}
