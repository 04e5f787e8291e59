package wizard

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/jkleczar/wypadek/internal/report"
)

// ErrSaveInFlight is returned when a save is requested while a previous one
// has not resolved yet (e.g. a double-click on the save control).
var ErrSaveInFlight = errors.New("zapis w toku")

// Saver persists a report and returns its id, assigning one on first save.
type Saver interface {
	SaveReport(ctx context.Context, rec *report.Record) (string, error)
}

// Session owns one record for the lifetime of one user session and funnels
// saves through an in-flight guard so at most one save runs at a time.
type Session struct {
	Wizard *Wizard
	rec    *report.Record
	saver  Saver
	saving atomic.Bool
}

// NewSession creates a session with a fresh record. saver may be nil, in
// which case Save reports persistence as unavailable.
func NewSession(saver Saver) *Session {
	return NewSessionWith(saver, report.New())
}

// NewSessionWith creates a session over an existing record, e.g. one
// loaded from storage to resume.
func NewSessionWith(saver Saver, rec *report.Record) *Session {
	if rec == nil {
		rec = report.New()
	}
	return &Session{
		Wizard: New(rec),
		rec:    rec,
		saver:  saver,
	}
}

// Record returns the session's shared record.
func (s *Session) Record() *report.Record { return s.rec }

// Save persists the record. The record keeps whatever id the saver assigned,
// so later saves update in place. Failures leave the in-memory record and
// any generated document untouched.
func (s *Session) Save(ctx context.Context) (string, error) {
	if s.saver == nil {
		return "", errors.New("zapis niedostępny: brak magazynu")
	}
	if !s.saving.CompareAndSwap(false, true) {
		return "", ErrSaveInFlight
	}
	defer s.saving.Store(false)

	id, err := s.saver.SaveReport(ctx, s.rec)
	if err != nil {
		return "", err
	}
	s.rec.ID = id
	return id, nil
}
