package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is the store-level miss. Note a record outside the bound
// scope also reports as ErrNotFound: tenant isolation makes foreign rows
// indistinguishable from absent ones.
var ErrNotFound = errors.New("repository: record not found")

// IsNotFound reports whether err is a store-level miss.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
