// Package validation holds the form rules shared by the CLI and the
// gateway: login, password reset, profile edits, concerns, feedback and
// M-PESA top-ups.
package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Simatwa/house-rental-management-system/internal/dtos"
	"github.com/Simatwa/house-rental-management-system/internal/utils"
)

const MinPasswordLength = 8

// PasswordRequirements lists the rules in the order they are checked.
var PasswordRequirements = []string{
	"At least 8 characters",
	"One uppercase letter",
	"One lowercase letter",
	"One number",
	"One special character",
}

var (
	upperRe      = regexp.MustCompile(`[A-Z]`)
	lowerRe      = regexp.MustCompile(`[a-z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
	specialRe    = regexp.MustCompile(`[^A-Za-z0-9]`)
	resetTokenRe = regexp.MustCompile(`^[A-Z\d]{6,}$`)
)

// Messages for fields whose "required" failure reads better than the
// generic one.
var requiredMessages = map[string]string{
	"username": "Username or email is required",
	"password": "Password is required",
}

var validate = New()

// New returns a validator with the portal's custom tags registered and
// JSON field names reported in errors.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if label := fld.Tag.Get("label"); label != "" {
			return label
		}
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return len(PasswordIssues(fl.Field().String())) == 0
	})
	_ = v.RegisterValidation("resettoken", func(fl validator.FieldLevel) bool {
		return resetTokenRe.MatchString(fl.Field().String())
	})
	return v
}

// Struct validates s with the shared validator.
func Struct(s any) error {
	return validate.Struct(s)
}

// PasswordIssues returns one message per password rule that pw breaks.
func PasswordIssues(pw string) []string {
	var issues []string
	if len([]rune(pw)) < MinPasswordLength {
		issues = append(issues, "Password must be at least 8 characters long")
	}
	if !upperRe.MatchString(pw) {
		issues = append(issues, "Password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(pw) {
		issues = append(issues, "Password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(pw) {
		issues = append(issues, "Password must contain at least one number")
	}
	if !specialRe.MatchString(pw) {
		issues = append(issues, "Password must contain at least one special character")
	}
	return issues
}

// FormatErrors converts validator errors into response details. Errors of
// any other type yield nil.
func FormatErrors(err error) []dtos.ValidationErrorDetail {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return nil
	}

	var details []dtos.ValidationErrorDetail
	for _, fe := range errs {
		field := fe.Field()
		if fe.Tag() == "password" {
			value, _ := fe.Value().(string)
			for _, msg := range PasswordIssues(value) {
				details = append(details, dtos.ValidationErrorDetail{
					Field:   field,
					Message: msg,
					Code:    "validation_password",
				})
			}
			continue
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   field,
			Message: message(fe),
			Code:    "validation_" + fe.Tag(),
		})
	}
	return details
}

// Check validates s and wraps any failure in a 400 AppError carrying the
// per-field details.
func Check(s any) error {
	err := Struct(s)
	if err == nil {
		return nil
	}
	return &utils.AppError{
		StatusCode: http.StatusBadRequest,
		Code:       utils.ErrCodeValidation,
		Message:    Summary(err),
		Details:    FormatErrors(err),
		Err:        err,
	}
}

// Summary joins the messages of FormatErrors into one line.
func Summary(err error) string {
	details := FormatErrors(err)
	if len(details) == 0 {
		if err == nil {
			return ""
		}
		return err.Error()
	}
	msgs := make([]string, 0, len(details))
	for _, d := range details {
		msgs = append(msgs, d.Message)
	}
	return strings.Join(msgs, "; ")
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[field]; ok {
			return msg
		}
		return fmt.Sprintf("Field '%s' is required", field)
	case "resettoken":
		return "Invalid reset token format"
	case "eqfield":
		return "Passwords don't match"
	case "email":
		return fmt.Sprintf("Field '%s' must be a valid email address", field)
	case "e164":
		return fmt.Sprintf("Field '%s' must be a phone number in international format, e.g. +254712345678", field)
	case "min":
		return fmt.Sprintf("Field '%s' must be at least %s in length", field, fe.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must not exceed %s in length", field, fe.Param())
	case "gt":
		return fmt.Sprintf("Field '%s' must be greater than %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("Field '%s' must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", field, fe.Tag())
	}
}
