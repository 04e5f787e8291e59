// Package chat drives the conversational intake of an accident report.
// A Backend produces one Turn per user message; the Engine owns the
// current state index and merges extracted fields into the record.
package chat

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jkleczar/wypadek/internal/report"
)

// Turn is a single assistant reply.
type Turn struct {
	Message       string         `json:"message"`
	Suggestions   []string       `json:"suggestions,omitempty"`
	Extracted     report.Partial `json:"extractedData,omitempty"`
	NextState     int            `json:"nextState"`
	Terminal      bool           `json:"isComplete,omitempty"`
	OfferDocument bool           `json:"shouldGenerateDocument,omitempty"`
}

// Backend turns a user message into a Turn. Implementations must not
// mutate the record; field changes travel in Turn.Extracted and are
// applied by the Engine.
type Backend interface {
	Greet(rec *report.Record) Turn
	Respond(ctx context.Context, state int, input string, rec *report.Record) (Turn, error)
}

// Registry resolves business data for a NIP, typically from CEIDG.
type Registry interface {
	BusinessByNIP(ctx context.Context, nip string) (report.Partial, error)
}

// Engine sequences a conversation over a single record.
type Engine struct {
	backend Backend
	rec     *report.Record
	state   int
}

func NewEngine(backend Backend, rec *report.Record) *Engine {
	if rec == nil {
		rec = report.New()
	}
	return &Engine{backend: backend, rec: rec}
}

func (e *Engine) Record() *report.Record { return e.rec }

func (e *Engine) State() int { return e.state }

// SetState positions the engine, for resuming a stored conversation.
// Out-of-range values fall back to the opening state.
func (e *Engine) SetState(state int) {
	if state < 0 || state > MaxState {
		state = 0
	}
	e.state = state
}

// Greet returns the opening message without consuming input.
func (e *Engine) Greet() Turn {
	return e.backend.Greet(e.rec)
}

// Send processes one user message. On backend failure the state and
// record are left untouched so the caller can retry.
func (e *Engine) Send(ctx context.Context, input string) (Turn, error) {
	turn, err := e.backend.Respond(ctx, e.state, input, e.rec)
	if err != nil {
		return Turn{}, err
	}
	if len(turn.Extracted) > 0 {
		if err := report.Apply(e.rec, turn.Extracted); err != nil {
			return Turn{}, err
		}
	}
	next := turn.NextState
	if next < 0 || next > MaxState {
		next = 0
	}
	log.Debug().Int("from", e.state).Int("to", next).Msg("chat transition")
	e.state = next
	return turn, nil
}
