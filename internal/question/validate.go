package question

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Issue captures a validation problem with a record field.
type Issue struct {
	Field   string
	Message string
}

// ValidationError reports one or more validation issues.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return "question validation failed"
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("question validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

func (collector *issueCollector) add(field, message string) {
	collector.issues = append(collector.issues, Issue{Field: field, Message: message})
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the structural requirements of a single record.
func Validate(q Question) error {
	collector := &issueCollector{}
	validateInto(collector, "", q)
	return collector.result()
}

// ValidateCollection validates every record and rejects duplicate ids.
func ValidateCollection(questions []Question) error {
	collector := &issueCollector{}
	seen := map[string]struct{}{}
	for i, q := range questions {
		prefix := fmt.Sprintf("questions[%d]", i)
		validateInto(collector, prefix, q)
		if q.ID == "" {
			continue
		}
		if _, exists := seen[q.ID]; exists {
			collector.add(prefix+".id", fmt.Sprintf("duplicate id %q", q.ID))
			continue
		}
		seen[q.ID] = struct{}{}
	}
	return collector.result()
}

// CheckAnswerRange reports whether correctAnswer indexes into choices.
// It is advisory: callers decide whether an out-of-range answer matters.
func CheckAnswerRange(q Question) *Issue {
	if q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Choices) {
		return nil
	}
	return &Issue{
		Field:   "correctAnswer",
		Message: fmt.Sprintf("%d is outside choices[0..%d)", q.CorrectAnswer, len(q.Choices)),
	}
}

func validateInto(collector *issueCollector, prefix string, q Question) {
	if strings.TrimSpace(q.ID) != q.ID {
		collector.add(joinField(prefix, "id"), "must not have surrounding whitespace")
	}
	err := structValidator.Struct(q)
	if err == nil {
		return
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		collector.add(joinField(prefix, "record"), err.Error())
		return
	}
	for _, fieldErr := range fieldErrs {
		collector.add(joinField(prefix, fieldErr.Field()), describeTag(fieldErr))
	}
}

func describeTag(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must include at least one entry"
	default:
		return fmt.Sprintf("failed %s check", fieldErr.Tag())
	}
}

func joinField(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "." + field
}
