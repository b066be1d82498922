package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/proposalgen/proposal-backend/internal/models"
)

// Константы валидации
const (
	MinUsernameLength     = 4
	MaxUsernameLength     = 25
	MinProjectNameLength  = 2
	MaxProjectNameLength  = 100
	MinDescriptionLength  = 20
	MaxDescriptionLength  = 500
	MinAudienceLength     = 2
	MaxAudienceLength     = 100
	MinMobileNumberLength = 11
	MaxMobileNumberLength = 12
	MinBudget             = 0.01
	MaxBudget             = 1000000000000.0
	MinDurationWeeks      = 1
	MaxDurationWeeks      = 520
)

var (
	emailLocalRegex  = regexp.MustCompile(`^[a-z0-9._+-]+$`)
	emailDomainRegex = regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	usernameRegex    = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	mobileRegex      = regexp.MustCompile(`^\+?[0-9]+$`)
)

// FieldError - ошибка конкретного поля формы.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors - набор ошибок формы.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, "; ")
}

func (e *Errors) add(field string, err error) {
	if err != nil {
		*e = append(*e, FieldError{Field: field, Message: err.Error()})
	}
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return fmt.Errorf("email is required")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email address")
	}

	localPart, domainPart := parts[0], parts[1]
	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("invalid email address")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("invalid email address")
	}

	if !emailLocalRegex.MatchString(localPart) || !emailDomainRegex.MatchString(domainPart) {
		return fmt.Errorf("invalid email address")
	}

	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username is required")
	}

	if err := ValidateLength("username", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username may only contain letters, digits and underscores")
	}

	if unicode.IsDigit(rune(username[0])) {
		return fmt.Errorf("username must not start with a digit")
	}

	return nil
}

// ValidateRequired проверяет, что строка не пустая, и её длину.
func ValidateRequired(fieldName, value string, min, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return ValidateLength(fieldName, strings.TrimSpace(value), min, max)
}

// ValidateChoice проверяет, что значение входит в допустимый набор.
func ValidateChoice(fieldName, value string, choices map[string]struct{}) error {
	if _, ok := choices[value]; !ok {
		return fmt.Errorf("%s has an unsupported value %q", fieldName, value)
	}
	return nil
}

// ValidateBudget проверяет бюджет проекта.
func ValidateBudget(budget float64) error {
	if math.IsNaN(budget) || math.IsInf(budget, 0) {
		return fmt.Errorf("budget must be a number")
	}
	if budget < MinBudget {
		return fmt.Errorf("budget must be at least %.2f", MinBudget)
	}
	if budget > MaxBudget {
		return fmt.Errorf("budget must not exceed %.0f", MaxBudget)
	}
	return nil
}

// ValidateDuration проверяет срок проекта в неделях.
func ValidateDuration(weeks int) error {
	if weeks < MinDurationWeeks {
		return fmt.Errorf("duration must be at least %d week", MinDurationWeeks)
	}
	if weeks > MaxDurationWeeks {
		return fmt.Errorf("duration must not exceed %d weeks", MaxDurationWeeks)
	}
	return nil
}

// ValidateMobileNumber проверяет необязательный номер телефона.
func ValidateMobileNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil
	}
	if err := ValidateLength("mobile number", number, MinMobileNumberLength, MaxMobileNumberLength); err != nil {
		return err
	}
	if !mobileRegex.MatchString(number) {
		return fmt.Errorf("mobile number may only contain digits and a leading +")
	}
	return nil
}

// ValidateProposalRequest проверяет все поля формы генерации.
// Возвращает Errors со всеми найденными ошибками или nil.
func ValidateProposalRequest(req models.ProposalRequest) error {
	var errs Errors

	errs.add("project_name", ValidateRequired("project name", req.ProjectName, MinProjectNameLength, MaxProjectNameLength))
	// название попадает в заголовок документа, перевод строки сломал бы шапку
	if strings.ContainsAny(req.ProjectName, "\r\n") {
		errs.add("project_name", fmt.Errorf("project name must be a single line"))
	}
	errs.add("project_type", ValidateChoice("project type", req.ProjectType, models.ValidProjectTypes))
	errs.add("description", ValidateRequired("description", req.Description, MinDescriptionLength, MaxDescriptionLength))
	errs.add("budget", ValidateBudget(req.Budget))
	errs.add("duration_weeks", ValidateDuration(req.DurationWeeks))
	errs.add("writing_style", ValidateChoice("writing style", req.WritingStyle, models.ValidWritingStyles))
	errs.add("complexity", ValidateChoice("complexity", req.Complexity, models.ValidComplexities))
	errs.add("audience", ValidateRequired("audience", req.Audience, MinAudienceLength, MaxAudienceLength))
	errs.add("contact_email", ValidateEmail(req.ContactEmail))
	errs.add("mobile_number", ValidateMobileNumber(req.MobileNumber))

	if _, ok := models.LanguageNames[req.Language]; !ok {
		errs.add("language", fmt.Errorf("language %q is not supported", req.Language))
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
