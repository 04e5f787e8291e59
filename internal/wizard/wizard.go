// Package wizard sequences the step-by-step form over the shared report
// record. Navigation is clamped to the fixed step list; validation stays with
// the steps, which call Advance only here so the gate is in one place.
package wizard

import (
	"github.com/jkleczar/wypadek/internal/report"
	"github.com/jkleczar/wypadek/internal/validate"
)

// Step identifies a position in the fixed form sequence.
type Step int

// The form steps, in order.
const (
	StepWelcome Step = iota
	StepReportType
	StepReporterInfo
	StepBusinessInfo
	StepAccidentDetails
	StepAccidentSequence
	StepInjuryDetails
	StepReview
	StepDone
)

var stepTitles = map[Step]string{
	StepWelcome:          "Witamy",
	StepReportType:       "Rodzaj zgłoszenia",
	StepReporterInfo:     "Dane zgłaszającego",
	StepBusinessInfo:     "Działalność gospodarcza",
	StepAccidentDetails:  "Szczegóły zdarzenia",
	StepAccidentSequence: "Przebieg wypadku",
	StepInjuryDetails:    "Obrażenia",
	StepReview:           "Przegląd dokumentu",
	StepDone:             "Zakończenie",
}

// Title returns the step's display title.
func (s Step) Title() string { return stepTitles[s] }

var stepValidators = map[Step]func(*report.Record) validate.Errors{
	StepWelcome:          validate.None,
	StepReportType:       validate.ReportType,
	StepReporterInfo:     validate.ReporterInfo,
	StepBusinessInfo:     validate.BusinessInfo,
	StepAccidentDetails:  validate.AccidentDetails,
	StepAccidentSequence: validate.AccidentSequence,
	StepInjuryDetails:    validate.InjuryDetails,
	StepReview:           validate.None,
	StepDone:             validate.None,
}

// Wizard holds the current step index and the shared record. The record is
// owned by the session, not by any single step.
type Wizard struct {
	step Step
	rec  *report.Record
}

// New starts a wizard at the welcome step over the given record.
func New(rec *report.Record) *Wizard {
	return &Wizard{rec: rec}
}

// Record exposes the shared record.
func (w *Wizard) Record() *report.Record { return w.rec }

// Step returns the current step.
func (w *Wizard) Step() Step { return w.step }

// Next moves one step forward, clamped to the last step. It does not
// validate; use Advance for the validated path.
func (w *Wizard) Next() {
	if w.step < StepDone {
		w.step++
	}
}

// Previous moves one step back, clamped to the first step.
func (w *Wizard) Previous() {
	if w.step > StepWelcome {
		w.step--
	}
}

// Validate runs the current step's validator against the record.
func (w *Wizard) Validate() validate.Errors {
	return stepValidators[w.step](w.rec)
}

// Advance validates the current step and moves forward only when it passes.
func (w *Wizard) Advance() (validate.Errors, bool) {
	errs := w.Validate()
	if !errs.OK() {
		return errs, false
	}
	w.Next()
	return errs, true
}

// UpdateData merges a partial update into the shared record.
func (w *Wizard) UpdateData(p report.Partial) error {
	return report.Apply(w.rec, p)
}

// EnterFormMode is called when the user switches from the chat surface to
// the form. If the chat already established a report type, the welcome step
// is skipped.
func (w *Wizard) EnterFormMode() {
	if w.step == StepWelcome && w.rec.ReportType != report.TypeUnset {
		w.step = StepReportType
	}
}

// Analyze runs the completeness analyzer and writes the derived lists back
// into the record, as the review step does on entry.
func (w *Wizard) Analyze() report.Analysis {
	a := report.Analyze(w.rec)
	a.WriteBack(w.rec)
	return a
}
