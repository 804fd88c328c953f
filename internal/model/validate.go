package model

import (
	"net/mail"
	"strings"
	"unicode/utf8"
)

// FieldError reports a single violated validation rule. Validation
// functions return rules in declaration order so callers can choose
// between surfacing only the first violation or all of them.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validEmail(s string) bool {
	a, err := mail.ParseAddress(s)
	if err != nil || a.Address != s {
		return false
	}
	// ParseAddress accepts dotless domains like "a@b"; require a dot.
	domain := s[strings.LastIndex(s, "@")+1:]
	return strings.Contains(domain, ".")
}

// runeLen counts characters, not bytes: "éé" is two characters.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// ValidateRegister checks the registration payload: name at least 3
// characters, syntactically valid email, password at least 5.
func ValidateRegister(name, email, password string) []FieldError {
	var errs []FieldError
	if runeLen(name) < 3 {
		errs = append(errs, FieldError{Field: "name", Message: "Enter a Valid Name"})
	}
	if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "Enter a Valid email"})
	}
	if runeLen(password) < 5 {
		errs = append(errs, FieldError{Field: "password", Message: "Enter a Valid password.minimum of 5"})
	}
	return errs
}

// ValidateLogin checks the login payload.
func ValidateLogin(email, password string) []FieldError {
	var errs []FieldError
	if !validEmail(email) {
		errs = append(errs, FieldError{Field: "email", Message: "Enter a Valid email"})
	}
	if runeLen(password) < 5 {
		errs = append(errs, FieldError{Field: "password", Message: "Password cannot be blank and should be minimum 5 letters"})
	}
	return errs
}

// ValidateNewNote checks a note creation payload: title at least 3
// characters, description at least 5. The tag is optional.
func ValidateNewNote(title, description string) []FieldError {
	var errs []FieldError
	if runeLen(title) < 3 {
		errs = append(errs, FieldError{Field: "title", Message: "Title must be at least 3 characters"})
	}
	if runeLen(description) < 5 {
		errs = append(errs, FieldError{Field: "description", Message: "Description must be at least 5 characters"})
	}
	return errs
}
