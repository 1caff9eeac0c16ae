// Package signup validates public registrations and records them.
package signup

import (
	"errors"
	"regexp"
	"strings"

	"github.com/oaiiae/hackathon-signup/datastores"
)

// Reasons a candidate is rejected, usable with [errors.Is].
var (
	ErrEmptyName          = errors.New("EmptyName")
	ErrEmptyEmail         = errors.New("EmptyEmail")
	ErrInvalidEmailFormat = errors.New("InvalidEmailFormat")
	ErrMissingCategory    = errors.New("MissingCategory")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError carries the first rule a candidate broke.
type ValidationError struct {
	Reason  error
	Field   string
	Message string // shown to the submitter
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Reason }

type Candidate struct {
	Name     string
	Email    string
	Interest string
}

type Rules struct {
	RequireInterest bool
}

// Validate applies the rules in order and returns the first failure.
func Validate(c Candidate, rules Rules) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return &ValidationError{ErrEmptyName, "name", "Por favor, insira seu nome"}
	case strings.TrimSpace(c.Email) == "":
		return &ValidationError{ErrEmptyEmail, "email", "Por favor, insira seu email"}
	case !emailPattern.MatchString(strings.TrimSpace(c.Email)):
		return &ValidationError{ErrInvalidEmailFormat, "email", "Por favor, insira um email válido"}
	}

	interest, err := datastores.ParseInterest(c.Interest)
	if err != nil || (rules.RequireInterest && interest == datastores.InterestNone) {
		return &ValidationError{ErrMissingCategory, "interest", "Por favor, escolha um desafio"}
	}
	return nil
}
