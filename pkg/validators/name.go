package validators

import (
	"errors"
	"unicode/utf8"
)

var (
	ErrNameEmpty    = errors.New("no name provided")
	ErrNameTooShort = errors.New("name must be at least 3 characters long")
	ErrNameTooLong  = errors.New("name is too long")
)

func NameValidator(n string) error {
	if n == "" {
		return ErrNameEmpty
	}

	if utf8.RuneCountInString(n) < 3 {
		return ErrNameTooShort
	}

	if utf8.RuneCountInString(n) > 100 {
		return ErrNameTooLong
	}

	return nil
}
