package content

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a whole document before it is saved.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New("content: nil document")
	}
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("invalid content: %w", err)
	}
	return nil
}

func validateItem(item any) error {
	if err := validate.Struct(item); err != nil {
		return fmt.Errorf("invalid item: %w", err)
	}
	return nil
}
