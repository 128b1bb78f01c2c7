// Package validation holds the guard checks run before an item or
// configuration is used, backed by go-playground/validator.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/matsen/zotion/internal/reference"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator instance.
// It registers the "notionid" tag, which accepts a UUID with or without dashes.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("notionid", func(fl validator.FieldLevel) bool {
			_, err := uuid.Parse(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// FieldError describes one failed check.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s failed %s=%s", e.Field, e.Tag, e.Param)
	}
	return fmt.Sprintf("%s failed %s", e.Field, e.Tag)
}

// Error is returned when a struct fails validation.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Error()
	}
	return strings.Join(msgs, "; ")
}

// Struct validates s and converts validator errors to *Error.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// ErrInvalidItem is wrapped by every ValidateItem failure.
var ErrInvalidItem = errors.New("invalid reference")

// syncable is the subset of an item the sync pass requires.
type syncable struct {
	Title string `validate:"required"`
}

// ValidateItem checks that item carries the fields needed to match it against
// Notion. The returned error wraps ErrInvalidItem.
func ValidateItem(item reference.Item) error {
	if item.Data == nil {
		return fmt.Errorf("%w: missing key 'data'", ErrInvalidItem)
	}
	title, ok := item.Title()
	if !ok {
		return fmt.Errorf("%w: missing key 'title'", ErrInvalidItem)
	}
	if err := Struct(syncable{Title: strings.TrimSpace(title)}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidItem, err)
	}
	return nil
}

// ValidCreator reports whether c names a person or an organization.
func ValidCreator(c reference.Creator) bool {
	return c.Name != nil || c.FirstName != nil || c.LastName != nil
}

// ValidTag reports whether t carries a tag string.
func ValidTag(t reference.Tag) bool {
	return t.Tag != nil
}
