package report

// Analysis is the analyzer's output: ordered, human-readable lists the
// review step shows and the renderer appends to the document.
type Analysis struct {
	MissingElements   []string `json:"missingElements"`
	RequiredDocuments []string `json:"requiredDocuments"`
	Recommendations   []string `json:"recommendations"`
}

// Standing attachments every notification needs, appended unconditionally.
const (
	docSickLeave = "Zaświadczenie lekarskie o czasowej niezdolności do pracy (ZUS Z-3)"
	docCEIDG     = "Kopia wpisu do CEIDG lub zaświadczenie o prowadzeniu działalności"
)

// Analyze computes the completeness checklist for a record. It is pure: the
// record is not modified, and the rule order fixes the output order. A NIP or
// REGON that fails its format check counts as unset here; so does the "brak"
// external-cause sentinel.
func Analyze(r *Record) Analysis {
	a := Analysis{
		MissingElements:   []string{},
		RequiredDocuments: []string{},
		Recommendations:   []string{},
	}

	if r.IsProxy && !r.HasProxyDocument {
		a.MissingElements = append(a.MissingElements, "Pełnomocnictwo (dokument)")
		a.RequiredDocuments = append(a.RequiredDocuments, "Pełnomocnictwo (oryginał lub urzędowo poświadczony odpis)")
	}

	if !ValidNIP(r.NIP) && !ValidREGON(r.REGON) {
		a.MissingElements = append(a.MissingElements, "Dane firmy (NIP/REGON)")
	}

	if r.WasSudden == AnswerNo {
		a.Recommendations = append(a.Recommendations, "Wypadek musi być nagły. Opisz, co wydarzyło się niespodziewanie.")
	}

	if !r.HasExternalCause() {
		a.MissingElements = append(a.MissingElements, "Co spowodowało wypadek? (Przyczyna)")
		a.Recommendations = append(a.Recommendations, "Wskaż przyczynę zewnętrzną (np. śliska podłoga, awaria maszyny).")
	}

	if r.InjuryDescription == "" {
		a.MissingElements = append(a.MissingElements, "Opis urazu (co się stało?)")
	}

	if r.WasWorkRelated == AnswerNo {
		a.Recommendations = append(a.Recommendations, "Aby uznać wypadek przy pracy, zdarzenie musi mieć związek z działalnością firmy.")
	}

	if r.MedicalAttention == AnswerYes {
		a.RequiredDocuments = append(a.RequiredDocuments, "Karta informacyjna ze szpitala lub zaświadczenie lekarskie")
	}

	if len(r.AccidentSequence) < 2 {
		a.MissingElements = append(a.MissingElements, "Dokładny przebieg zdarzenia (krok po kroku)")
	}

	if r.ActivityBeforeAccident == "" {
		a.MissingElements = append(a.MissingElements, "Co robiono tuż przed wypadkiem?")
	}

	a.RequiredDocuments = append(a.RequiredDocuments, docSickLeave, docCEIDG)
	return a
}

// WriteBack merges an analysis into the record's derived fields. Kept
// separate from Analyze so the analyzer itself stays pure.
func (a Analysis) WriteBack(r *Record) {
	r.MissingElements = a.MissingElements
	r.RequiredDocuments = a.RequiredDocuments
	r.Recommendations = a.Recommendations
}

// Complete reports whether nothing is missing.
func (a Analysis) Complete() bool { return len(a.MissingElements) == 0 }
