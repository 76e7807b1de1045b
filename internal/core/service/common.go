package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
	"github.com/bookstore/catalog-api/internal/core/form"
	"github.com/bookstore/catalog-api/internal/core/ports"
)

// uniqueViolation re-expresses a store duplicate as a validation error on field.
func uniqueViolation(err error, field string) error {
	if errors.Is(err, domain.ErrDuplicate) {
		return form.FieldError(field, form.MsgAlreadyUsed)
	}
	return err
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

// auditor records committed mutations. A failing audit log never fails the
// request; it is only logged.
type auditor struct {
	log    ports.AuditLog
	logger zerolog.Logger
}

func (a auditor) record(ctx context.Context, entity string, id uint, action domain.AuditAction, label string) {
	if a.log == nil {
		return
	}
	entry := domain.AuditEntry{
		Entity:   entity,
		EntityID: id,
		Action:   action,
		Label:    label,
		At:       time.Now().UTC(),
	}
	if err := a.log.Record(ctx, entry); err != nil {
		a.logger.Warn().Err(err).
			Str("entity", entity).
			Uint("id", id).
			Str("action", string(action)).
			Msg("audit record failed")
	}
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
