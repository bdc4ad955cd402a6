package web

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldTeamName is the only field of the team creation form.
const FieldTeamName = "team_name"

// ValidationCode identifies which rule rejected a field.
type ValidationCode string

const (
	MissingField ValidationCode = "MissingField"
	TooShort     ValidationCode = "TooShort"
)

// FieldError is a client-side validation failure that blocks submission.
type FieldError struct {
	Field   string
	Code    ValidationCode
	Message string
}

func (e FieldError) Error() string { return e.Message }

// TeamFormInput is the payload the form collects.
type TeamFormInput struct {
	TeamName string `json:"team_name" form:"team_name" validate:"required,min=2"`
}

// fieldRules maps a field and the validator tag that failed to the error shown under the input.
var fieldRules = map[string]map[string]FieldError{
	FieldTeamName: {
		"required": {Field: FieldTeamName, Code: MissingField, Message: "Team name is required"},
		"min":      {Field: FieldTeamName, Code: TooShort, Message: "Team name must be at least 2 characters"},
	},
}

// Modal is the error dialog shown for transport failures.
type Modal struct {
	Title   string
	Message string
}

var _ ErrorPresenter = (*Form)(nil)

// Form holds the state of one rendering of the team creation form.
type Form struct {
	Input       TeamFormInput
	FieldErrors map[string]FieldError
	RootError   string
	Submitting  bool
	Modal       *Modal
}

// NewForm returns a form prefilled with input.
func NewForm(input TeamFormInput) *Form {
	return &Form{Input: input, FieldErrors: make(map[string]FieldError)}
}

// ClearErrors drops field, root and modal errors left from a previous attempt.
func (f *Form) ClearErrors() {
	f.FieldErrors = make(map[string]FieldError)
	f.RootError = ""
	f.Modal = nil
}

// SetRootError sets the form-wide error.
func (f *Form) SetRootError(message string) {
	f.RootError = message
}

// ShowError opens the error modal.
func (f *Form) ShowError(message, title string) {
	f.Modal = &Modal{Title: title, Message: message}
}

// FieldError returns the message for a field, or "" when the field is valid.
func (f *Form) FieldError(field string) string {
	return f.FieldErrors[field].Message
}

// Valid reports whether no field errors are set.
func (f *Form) Valid() bool {
	return len(f.FieldErrors) == 0
}

// FormValidator applies the registered field rules to a form.
type FormValidator struct {
	validate *validator.Validate
}

// NewFormValidator creates a validator that reports fields by their form name.
func NewFormValidator() *FormValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return &FormValidator{validate: v}
}

// Validate trims the input and records field errors on the form.
func (fv *FormValidator) Validate(f *Form) bool {
	f.Input.TeamName = strings.TrimSpace(f.Input.TeamName)

	err := fv.validate.Struct(f.Input)
	if err == nil {
		return true
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		f.SetRootError(genericFailureMessage)
		return false
	}

	for _, fe := range validationErrors {
		rule, ok := fieldRules[fe.Field()][fe.Tag()]
		if !ok {
			rule = FieldError{Field: fe.Field(), Message: fe.Error()}
		}
		if _, seen := f.FieldErrors[rule.Field]; !seen {
			f.FieldErrors[rule.Field] = rule
		}
	}
	return false
}
