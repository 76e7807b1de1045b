package queue

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

type recordingSink struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
	err     error
}

func (s *recordingSink) Record(_ context.Context, entry domain.AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return s.err
}

func (s *recordingSink) recorded() []domain.AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditEntry(nil), s.entries...)
}

func entry(entity string, id uint, action domain.AuditAction) domain.AuditEntry {
	return domain.AuditEntry{Entity: entity, EntityID: id, Action: action, At: time.Now().UTC()}
}

func TestDispatcher_PreservesPerRecordOrder(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(4, 0, sink, zerolog.Nop())
	d.Start(context.Background())

	actions := []domain.AuditAction{domain.AuditCreated, domain.AuditUpdated, domain.AuditImageUpdated, domain.AuditDeleted}
	for _, a := range actions {
		if err := d.Record(context.Background(), entry(domain.EntityBook, 7, a)); err != nil {
			t.Fatalf("record %s: %v", a, err)
		}
		if err := d.Record(context.Background(), entry(domain.EntityAuthor, 3, a)); err != nil {
			t.Fatalf("record %s: %v", a, err)
		}
	}
	d.Close()

	got := sink.recorded()
	if len(got) != 2*len(actions) {
		t.Fatalf("expected %d entries, got %d", 2*len(actions), len(got))
	}
	var books []domain.AuditAction
	for _, e := range got {
		if e.Entity == domain.EntityBook {
			books = append(books, e.Action)
		}
	}
	for i, a := range actions {
		if books[i] != a {
			t.Errorf("book entry %d: expected %s, got %s", i, a, books[i])
		}
	}
}

func TestDispatcher_QueueFull(t *testing.T) {
	d := NewDispatcher(1, 1, &recordingSink{}, zerolog.Nop())

	if err := d.Record(context.Background(), entry(domain.EntityGenre, 1, domain.AuditCreated)); err != nil {
		t.Fatalf("first record: %v", err)
	}
	err := d.Record(context.Background(), entry(domain.EntityGenre, 1, domain.AuditUpdated))
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcher_RecordAfterClose(t *testing.T) {
	d := NewDispatcher(2, 0, &recordingSink{}, zerolog.Nop())
	d.Start(context.Background())
	d.Close()
	d.Close()

	err := d.Record(context.Background(), entry(domain.EntityBook, 1, domain.AuditCreated))
	if !errors.Is(err, ErrQueueClosed) {
		t.Fatalf("expected ErrQueueClosed, got %v", err)
	}
}

func TestDispatcher_SinkErrorDoesNotStopWorker(t *testing.T) {
	sink := &recordingSink{err: errors.New("mongo down")}
	d := NewDispatcher(1, 0, sink, zerolog.Nop())
	d.Start(context.Background())

	for i := uint(1); i <= 3; i++ {
		if err := d.Record(context.Background(), entry(domain.EntityBook, i, domain.AuditCreated)); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	d.Close()

	if n := len(sink.recorded()); n != 3 {
		t.Fatalf("expected 3 attempted writes, got %d", n)
	}
}
