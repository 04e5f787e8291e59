package chat

import (
	"context"
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/jkleczar/wypadek/internal/report"
)

//go:embed script.yaml
var scriptYAML []byte

// MaxState is the highest state index the scripted assistant knows.
const MaxState = 21

type stateSpec struct {
	ID                  int      `yaml:"id"`
	Name                string   `yaml:"name"`
	Next                int      `yaml:"next"`
	AltNext             int      `yaml:"altNext"`
	OK                  string   `yaml:"ok"`
	AltOK               string   `yaml:"altOk"`
	OKSuggestions       []string `yaml:"okSuggestions"`
	Reprompt            string   `yaml:"reprompt"`
	RepromptSuggestions []string `yaml:"repromptSuggestions"`
}

// Script is the question data the scripted backend interprets. Keeping
// prompts, suggestions and transition targets in one embedded document
// keeps the handler code free of copy.
type Script struct {
	Greeting            string      `yaml:"greeting"`
	GreetingSuggestions []string    `yaml:"greetingSuggestions"`
	States              []stateSpec `yaml:"states"`
	Reset               string      `yaml:"reset"`

	byID map[int]stateSpec
}

// LoadScript parses and validates the embedded question script.
func LoadScript() (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(scriptYAML, &s); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	s.byID = make(map[int]stateSpec, len(s.States))
	for _, st := range s.States {
		if st.ID < 0 || st.ID > MaxState {
			return nil, fmt.Errorf("script state %d out of range", st.ID)
		}
		if _, dup := s.byID[st.ID]; dup {
			return nil, fmt.Errorf("script state %d declared twice", st.ID)
		}
		if st.Next < 0 || st.Next > MaxState {
			return nil, fmt.Errorf("script state %d: next %d out of range", st.ID, st.Next)
		}
		if st.AltNext < 0 || st.AltNext > MaxState {
			return nil, fmt.Errorf("script state %d: altNext %d out of range", st.ID, st.AltNext)
		}
		s.byID[st.ID] = st
	}
	for id := 0; id <= MaxState; id++ {
		if _, ok := s.byID[id]; !ok {
			return nil, fmt.Errorf("script is missing state %d", id)
		}
	}
	return &s, nil
}

// State returns the spec for a state id.
func (s *Script) State(id int) (stateSpec, bool) {
	st, ok := s.byID[id]
	return st, ok
}

// ScriptedBackend walks the deterministic 22-question intake script.
type ScriptedBackend struct {
	script   *Script
	registry Registry
	now      func() time.Time
}

// NewScripted builds the scripted backend. The registry may be nil, in
// which case the business step degrades to manual entry.
func NewScripted(registry Registry) (*ScriptedBackend, error) {
	script, err := LoadScript()
	if err != nil {
		return nil, err
	}
	return &ScriptedBackend{script: script, registry: registry, now: time.Now}, nil
}

func (b *ScriptedBackend) Greet(_ *report.Record) Turn {
	return Turn{
		Message:     b.script.Greeting,
		Suggestions: b.script.GreetingSuggestions,
	}
}

func (b *ScriptedBackend) ok(spec stateSpec, extracted report.Partial, args ...any) Turn {
	msg := spec.OK
	if len(args) > 0 {
		msg = fmt.Sprintf(spec.OK, args...)
	}
	return Turn{
		Message:     msg,
		Suggestions: spec.OKSuggestions,
		Extracted:   extracted,
		NextState:   spec.Next,
	}
}

func (b *ScriptedBackend) reprompt(spec stateSpec) Turn {
	return Turn{
		Message:     spec.Reprompt,
		Suggestions: spec.RepromptSuggestions,
		NextState:   spec.ID,
	}
}

// Respond never fails: unparseable input re-enters the same state with a
// clarifying re-prompt, and an unknown state index resets to the start.
func (b *ScriptedBackend) Respond(ctx context.Context, state int, input string, rec *report.Record) (Turn, error) {
	spec, known := b.script.State(state)
	if !known {
		log.Warn().Int("state", state).Msg("unknown chat state, resetting")
		return Turn{Message: b.script.Reset, NextState: 0}, nil
	}

	input = strings.TrimSpace(input)
	lower := strings.ToLower(input)

	switch state {
	case 0:
		return b.handleReportType(spec, lower), nil
	case 1:
		return b.handleProxyQuestion(spec, lower), nil
	case 2:
		return b.handleProxyData(spec, input), nil
	case 3:
		name := CapitalizeName(input)
		if name == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuredName": name}, name), nil
	case 4:
		surname := CapitalizeName(input)
		if surname == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuredSurname": surname}, rec.InjuredName, surname), nil
	case 5:
		pesel := ExtractPESEL(input)
		if pesel == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuredPesel": pesel}), nil
	case 6:
		return b.handleEmail(spec, input, lower), nil
	case 7:
		return b.handleNIP(ctx, spec, input), nil
	case 8:
		date := ExtractDate(input, b.now())
		if date == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"accidentDate": date}, date), nil
	case 9:
		at := ExtractTime(input)
		if at == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"accidentTime": at}, at), nil
	case 10:
		if utf8.RuneCountInString(input) < 10 {
			return b.reprompt(spec), nil
		}
		ctxNote := ""
		if rec.PKDDescription != "" {
			ctxNote = " (" + rec.PKDDescription + ")"
		}
		return b.ok(spec, report.Partial{"accidentLocation": input}, ctxNote), nil
	case 11:
		return b.handleWorkRelated(spec, lower, rec), nil
	case 12:
		if utf8.RuneCountInString(input) < 20 {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"activityBeforeAccident": input}), nil
	case 13:
		return b.handleSuddenness(spec, lower), nil
	case 14:
		return b.handleSequence(spec, input, lower, rec), nil
	case 15:
		if input == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"externalCause": input}, input), nil
	case 16:
		if utf8.RuneCountInString(input) < 30 {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"causeDetails": input}), nil
	case 17:
		if input == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuryType": input}, input), nil
	case 18:
		if input == "" {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuryLocation": input}, input), nil
	case 19:
		if utf8.RuneCountInString(input) < 20 {
			return b.reprompt(spec), nil
		}
		return b.ok(spec, report.Partial{"injuryDescription": input}), nil
	case 20:
		return b.handleMedicalAttention(spec, lower), nil
	case 21:
		return b.handleCompletion(spec, rec), nil
	}
	return Turn{Message: b.script.Reset, NextState: 0}, nil
}

var reportTypeLabels = map[report.Type]string{
	report.TypeAccident:    "zawiadomienie o wypadku",
	report.TypeExplanation: "wyjaśnienia poszkodowanego",
	report.TypeBoth:        "zawiadomienie i wyjaśnienia",
}

func (b *ScriptedBackend) handleReportType(spec stateSpec, lower string) Turn {
	var t report.Type
	switch {
	case strings.Contains(lower, "1"), strings.Contains(lower, "zawiadomienie"):
		t = report.TypeAccident
	case strings.Contains(lower, "2"), strings.Contains(lower, "wyjaśnienia"), strings.Contains(lower, "wyjasnienia"):
		t = report.TypeExplanation
	case strings.Contains(lower, "3"), strings.Contains(lower, "oba"), strings.Contains(lower, "obie"):
		t = report.TypeBoth
	default:
		return b.reprompt(spec)
	}
	return b.ok(spec, report.Partial{"reportType": string(t)}, reportTypeLabels[t])
}

func (b *ScriptedBackend) handleProxyQuestion(spec stateSpec, lower string) Turn {
	isProxy := strings.Contains(lower, "tak") ||
		strings.Contains(lower, "pełnomocnik") ||
		strings.Contains(lower, "pelnomocnik")
	if isProxy {
		return Turn{
			Message:   spec.AltOK,
			Extracted: report.Partial{"isProxy": true},
			NextState: spec.AltNext,
		}
	}
	return b.ok(spec, report.Partial{"isProxy": false})
}

func (b *ScriptedBackend) handleProxyData(spec stateSpec, input string) Turn {
	if len(strings.Fields(input)) < 2 {
		return b.reprompt(spec)
	}
	return b.ok(spec, report.Partial{"proxyName": input}, input)
}

func (b *ScriptedBackend) handleEmail(spec stateSpec, input, lower string) Turn {
	if IsSkip(lower) || strings.Contains(lower, "nie") {
		return Turn{
			Message:   spec.AltOK,
			Extracted: report.Partial{"injuredEmail": ""},
			NextState: spec.Next,
		}
	}
	if report.ValidEmail(input) {
		return b.ok(spec, report.Partial{"injuredEmail": input})
	}
	return b.reprompt(spec)
}

func (b *ScriptedBackend) handleNIP(ctx context.Context, spec stateSpec, input string) Turn {
	nip := report.NormalizeNIP(input)
	if !report.ValidNIP(nip) {
		return b.reprompt(spec)
	}
	extracted := report.Partial{"nip": nip}

	if b.registry != nil {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		business, err := b.registry.BusinessByNIP(ctx, nip)
		if err == nil && len(business) > 0 {
			for k, v := range business {
				extracted[k] = v
			}
			return b.ok(spec, extracted,
				str(business["businessName"]),
				str(business["businessAddress"]),
				str(business["pkdCode"]),
				str(business["pkdDescription"]),
			)
		}
		if err != nil {
			log.Warn().Err(err).Msg("ceidg lookup failed, continuing without business data")
		}
	}

	return Turn{
		Message:   spec.AltOK,
		Extracted: extracted,
		NextState: spec.Next,
	}
}

func (b *ScriptedBackend) handleWorkRelated(spec stateSpec, lower string, rec *report.Record) Turn {
	related := strings.Contains(lower, "tak") ||
		strings.Contains(lower, "podczas") ||
		strings.Contains(lower, "prac") ||
		strings.Contains(lower, "jednak")
	if related {
		return b.ok(spec, report.Partial{"wasWorkRelated": string(report.AnswerYes)})
	}
	// First "nie" asks for confirmation; the second one is accepted.
	if rec.WasWorkRelated == report.AnswerNo {
		return Turn{
			Message:   spec.AltOK,
			Extracted: report.Partial{"wasWorkRelated": string(report.AnswerNo)},
			NextState: spec.Next,
		}
	}
	return Turn{
		Message:     spec.Reprompt,
		Suggestions: spec.RepromptSuggestions,
		Extracted:   report.Partial{"wasWorkRelated": string(report.AnswerNo)},
		NextState:   spec.ID,
	}
}

func (b *ScriptedBackend) handleSuddenness(spec stateSpec, lower string) Turn {
	sudden := strings.Contains(lower, "tak") || strings.Contains(lower, "nagł")
	if sudden {
		return b.ok(spec, report.Partial{"wasSudden": string(report.AnswerYes)})
	}
	return Turn{
		Message:   spec.AltOK,
		Extracted: report.Partial{"wasSudden": string(report.AnswerNo)},
		NextState: spec.Next,
	}
}

// Sequence collection loops until three steps arrive, or until the user
// closes it with "koniec" once at least two are recorded.
func (b *ScriptedBackend) handleSequence(spec stateSpec, input, lower string, rec *report.Record) Turn {
	if IsDone(lower) {
		if len(rec.AccidentSequence) >= 2 {
			return Turn{
				Message:   fmt.Sprintf(spec.AltOK, len(rec.AccidentSequence)),
				NextState: spec.AltNext,
			}
		}
		return b.reprompt(spec)
	}
	if input == "" {
		return b.reprompt(spec)
	}

	seq := report.AppendStep(rec.AccidentSequence, input, "")
	extracted := report.Partial{"accidentSequence": seq}
	if len(seq) >= 3 {
		return Turn{
			Message:   fmt.Sprintf(spec.AltOK, len(seq)),
			Extracted: extracted,
			NextState: spec.AltNext,
		}
	}
	return b.ok(spec, extracted, len(seq))
}

func (b *ScriptedBackend) handleMedicalAttention(spec stateSpec, lower string) Turn {
	had := strings.Contains(lower, "tak") ||
		strings.Contains(lower, "szpital") ||
		strings.Contains(lower, "lekarz") ||
		strings.Contains(lower, "przychodnia")

	turn := Turn{
		Suggestions:   spec.OKSuggestions,
		NextState:     spec.Next,
		Terminal:      true,
		OfferDocument: true,
	}
	if had {
		turn.Message = spec.OK
		turn.Extracted = report.Partial{
			"medicalAttention": string(report.AnswerYes),
			"hospitalName":     "Do uzupełnienia",
		}
		return turn
	}
	turn.Message = spec.AltOK
	turn.Extracted = report.Partial{
		"medicalAttention": string(report.AnswerNo),
		"hospitalName":     "",
	}
	return turn
}

func (b *ScriptedBackend) handleCompletion(spec stateSpec, rec *report.Record) Turn {
	turn := b.ok(spec, nil,
		rec.InjuredName, rec.InjuredSurname,
		rec.NIP, rec.AccidentDate,
		rec.ExternalCause, rec.InjuryType,
	)
	turn.Terminal = true
	turn.OfferDocument = true
	return turn
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
