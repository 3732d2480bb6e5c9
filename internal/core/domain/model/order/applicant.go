package order

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"visadesk/internal/pkg/errs"
)

// Gender of the applicant as printed in visa forms.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// Validate checks the gender against the known values.
func (g Gender) Validate() error {
	if g != Male && g != Female {
		return errs.NewValueIsInvalidErrorWithCause("gender", fmt.Errorf("%q is not a valid gender", string(g)))
	}
	return nil
}

// Applicant is the person an order is filed for. It belongs to exactly one
// order and is replaced in place when the order is updated.
type Applicant struct {
	firstName string
	lastName  string
	email     string
	gender    Gender
}

// NewApplicant validates and builds an Applicant.
func NewApplicant(firstName, lastName, email string, gender Gender) (Applicant, error) {
	a := Applicant{
		firstName: strings.TrimSpace(firstName),
		lastName:  strings.TrimSpace(lastName),
		email:     strings.TrimSpace(email),
		gender:    gender,
	}

	if err := errors.Join(
		requireText("first_name", a.firstName),
		requireText("last_name", a.lastName),
		validateEmail(a.email),
		gender.Validate(),
	); err != nil {
		return Applicant{}, err
	}

	return a, nil
}

func (a Applicant) FirstName() string {
	return a.firstName
}

func (a Applicant) LastName() string {
	return a.lastName
}

func (a Applicant) Email() string {
	return a.email
}

func (a Applicant) Gender() Gender {
	return a.gender
}

// FullName joins first and last name.
func (a Applicant) FullName() string {
	return a.firstName + " " + a.lastName
}

func requireText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return errs.NewValueIsRequiredError("email")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("email", err)
	}
	return nil
}
