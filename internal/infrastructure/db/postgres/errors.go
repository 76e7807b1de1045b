package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// translate maps driver-level failures onto domain errors. It relies on
// gorm.Config.TranslateError being enabled in Open.
func translate(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrDuplicate
	}
	return err
}

func notFound(err error, entity string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFound(entity, id)
	}
	return err
}
