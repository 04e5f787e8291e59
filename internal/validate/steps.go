// Package validate holds the per-step form validators. Validators are pure
// and synchronous; a step may advance only when its validator returns no
// errors. Messages are the inline field messages shown next to the inputs.
package validate

import (
	"github.com/jkleczar/wypadek/internal/report"
)

// Errors maps field name to its inline message. An empty map means the step
// may proceed.
type Errors map[string]string

// OK reports whether validation passed.
func (e Errors) OK() bool { return len(e) == 0 }

// ReportType requires a chosen report type.
func ReportType(r *report.Record) Errors {
	errs := Errors{}
	if r.ReportType == report.TypeUnset {
		errs["reportType"] = "Wybierz rodzaj zgłoszenia"
	}
	return errs
}

// ReporterInfo validates the reporter and injured-party step.
func ReporterInfo(r *report.Record) Errors {
	errs := Errors{}
	if r.InjuredName == "" {
		errs["injuredName"] = "Imię jest wymagane"
	}
	if r.InjuredSurname == "" {
		errs["injuredSurname"] = "Nazwisko jest wymagane"
	}
	switch {
	case r.InjuredPesel == "":
		errs["injuredPesel"] = "PESEL jest wymagany"
	case !report.ValidPESEL(r.InjuredPesel):
		errs["injuredPesel"] = "PESEL musi składać się z 11 cyfr"
	}
	if r.InjuredEmail != "" && !report.ValidEmail(r.InjuredEmail) {
		errs["injuredEmail"] = "Nieprawidłowy format email"
	}
	if r.InjuredPhone != "" && !report.ValidPhone(r.InjuredPhone) {
		errs["injuredPhone"] = "Nieprawidłowy numer telefonu"
	}
	if r.IsProxy && r.ProxyName == "" {
		errs["proxyName"] = "Imię i nazwisko pełnomocnika jest wymagane"
	}
	return errs
}

// BusinessInfo validates the business identity step.
func BusinessInfo(r *report.Record) Errors {
	errs := Errors{}
	if r.NIP == "" && r.REGON == "" {
		errs["nip"] = "Podaj NIP lub REGON działalności"
	}
	if r.NIP != "" && !report.ValidNIP(r.NIP) {
		errs["nip"] = "NIP musi składać się z 10 cyfr"
	}
	if r.REGON != "" && !report.ValidREGON(r.REGON) {
		errs["regon"] = "REGON musi składać się z 9 cyfr"
	}
	if r.PKDCode == "" {
		errs["pkdCode"] = "Należy pobrać dane z CEIDG"
	}
	return errs
}

// AccidentDetails validates the when/where/work-relatedness step.
func AccidentDetails(r *report.Record) Errors {
	errs := Errors{}
	if r.AccidentDate == "" {
		errs["accidentDate"] = "Data wypadku jest wymagana"
	}
	if r.AccidentTime == "" {
		errs["accidentTime"] = "Godzina wypadku jest wymagana"
	}
	if r.AccidentLocation == "" {
		errs["accidentLocation"] = "Miejsce wypadku jest wymagane"
	}
	if r.WasWorkRelated == report.AnswerUnset {
		errs["wasWorkRelated"] = "Odpowiedź jest wymagana"
	}
	if r.ActivityBeforeAccident == "" {
		errs["activityBeforeAccident"] = "Opis czynności jest wymagany"
	}
	if r.WasSudden == report.AnswerUnset {
		errs["wasSudden"] = "Odpowiedź jest wymagana"
	}
	return errs
}

// AccidentSequence validates the step-by-step narrative and cause step.
func AccidentSequence(r *report.Record) Errors {
	errs := Errors{}
	for _, s := range r.AccidentSequence {
		if s.Description == "" {
			errs["sequence"] = "Wszystkie kroki muszą mieć opis"
			break
		}
	}
	if len(r.AccidentSequence) < 2 {
		errs["sequence"] = "Dodaj przynajmniej 2 kroki opisujące przebieg wypadku"
	}
	if !r.HasExternalCause() {
		errs["externalCause"] = "Wskazanie przyczyny zewnętrznej jest wymagane"
	}
	if r.CauseDetails == "" {
		errs["causeDetails"] = "Szczegółowy opis przyczyny jest wymagany"
	}
	return errs
}

// InjuryDetails validates the injury step.
func InjuryDetails(r *report.Record) Errors {
	errs := Errors{}
	if r.InjuryType == "" {
		errs["injuryType"] = "Rodzaj obrażenia jest wymagany"
	}
	if r.InjuryLocation == "" {
		errs["injuryLocation"] = "Lokalizacja urazu jest wymagana"
	}
	if r.InjuryDescription == "" {
		errs["injuryDescription"] = "Opis obrażeń jest wymagany"
	}
	if r.MedicalAttention == report.AnswerUnset {
		errs["medicalAttention"] = "Odpowiedź jest wymagana"
	}
	if r.MedicalAttention == report.AnswerYes && r.HospitalName == "" {
		errs["hospitalName"] = "Nazwa placówki medycznej jest wymagana"
	}
	return errs
}

// None is the validator for steps without rules (welcome, review, done).
func None(*report.Record) Errors { return Errors{} }

// Hints returns the soft helper texts a step shows for the current answers.
// Hints never block navigation.
func Hints(r *report.Record) []string {
	var hints []string
	if r.WasWorkRelated == report.AnswerNo {
		hints = append(hints, "Jeśli zdarzenie nie było związane z wykonywaną działalnością, może nie zostać uznane za wypadek przy pracy.")
	}
	if r.WasSudden == report.AnswerNo {
		hints = append(hints, "Brak nagłości może oznaczać, że to nie był wypadek, ale choroba zawodowa.")
	}
	return hints
}
