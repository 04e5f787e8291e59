package render

import (
	"fmt"
	"strings"

	"github.com/jkleczar/wypadek/internal/report"
)

const rule = "================================================================"

// Text renders the record as a printable plain-text document. Optional
// sections (proxy, BHP, witnesses, required documents) are omitted when
// empty instead of leaving blank headers.
func Text(rec *report.Record) string {
	var b strings.Builder

	b.WriteString("ZAKŁAD UBEZPIECZEŃ SPOŁECZNYCH\n")
	b.WriteString(rule + "\n")
	b.WriteString(rec.Title() + "\n")
	b.WriteString("Dokument wygenerowany automatycznie\n")
	b.WriteString(rule + "\n\n")

	if rec.IsProxy {
		b.WriteString("ZGŁASZAJĄCY (PEŁNOMOCNIK)\n")
		field(&b, "Imię i nazwisko", rec.ProxyName)
		field(&b, "Relacja do poszkodowanego", rec.ProxyRelation)
		if !rec.HasProxyDocument {
			b.WriteString("  UWAGA: do zgłoszenia należy dołączyć pełnomocnictwo\n")
			b.WriteString("  (oryginał lub urzędowo poświadczony odpis).\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("I. DANE PŁATNIKA SKŁADEK (FIRMA)\n")
	field(&b, "NIP", rec.NIP)
	field(&b, "REGON", rec.REGON)
	field(&b, "Nazwa", rec.BusinessName)
	field(&b, "Adres", rec.BusinessAddress)
	if rec.PKDCode != "" || rec.PKDDescription != "" {
		field(&b, "PKD", strings.TrimSpace(rec.PKDCode+" - "+rec.PKDDescription))
	}
	b.WriteString("\n")

	b.WriteString("II. DANE POSZKODOWANEGO\n")
	field(&b, "Imię", rec.InjuredName)
	field(&b, "Nazwisko", rec.InjuredSurname)
	field(&b, "PESEL", rec.InjuredPesel)
	field(&b, "Email", rec.InjuredEmail)
	field(&b, "Telefon", rec.InjuredPhone)
	b.WriteString("\n")

	b.WriteString("III. INFORMACJE O WYPADKU\n")
	field(&b, "Data", rec.AccidentDate)
	field(&b, "Godzina", rec.AccidentTime)
	field(&b, "Miejsce", rec.AccidentLocation)
	field(&b, "Nagły", answerLabel(rec.WasSudden))
	field(&b, "Związek z pracą", answerLabel(rec.WasWorkRelated))
	field(&b, "Przyczyna zewnętrzna", rec.ExternalCause)
	b.WriteString("\n")

	b.WriteString("IV. OKOLICZNOŚCI I PRZYCZYNY (OPIS SZCZEGÓŁOWY)\n")
	if rec.ActivityBeforeAccident != "" {
		b.WriteString("  Czynności przed wypadkiem:\n")
		b.WriteString("  " + rec.ActivityBeforeAccident + "\n")
	}
	if len(rec.AccidentSequence) > 0 {
		b.WriteString("  Przebieg:\n")
		for _, step := range rec.AccidentSequence {
			line := fmt.Sprintf("  %d. %s", step.Step, step.Description)
			if step.Time != "" {
				line += " (" + step.Time + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	if rec.CauseDetails != "" {
		b.WriteString("  Przyczyna:\n")
		b.WriteString("  " + rec.CauseDetails + "\n")
	}
	b.WriteString("\n")

	b.WriteString("V. OBRAŻENIA\n")
	field(&b, "Rodzaj", rec.InjuryType)
	field(&b, "Część ciała", rec.InjuryLocation)
	field(&b, "Opis", rec.InjuryDescription)
	field(&b, "Pomoc medyczna", answerLabel(rec.MedicalAttention))
	field(&b, "Placówka", rec.HospitalName)
	b.WriteString("\n")

	if rec.ReportType == report.TypeExplanation || rec.ReportType == report.TypeBoth {
		b.WriteString("VI. INFORMACJE DODATKOWE (BHP, MASZYNY)\n")
		if s := rec.SafetyInfo; s != nil {
			field(&b, "Maszyny", s.MachineStatus)
			field(&b, "Środki ochrony", s.ProtectiveGear)
			field(&b, "Szkolenia", s.Trainings)
			field(&b, "Stan", s.Sobriety)
		} else {
			b.WriteString("  Brak szczegółowych danych o BHP.\n")
		}
		b.WriteString("\n")
	}

	if len(rec.Witnesses) > 0 {
		b.WriteString("ŚWIADKOWIE\n")
		for i, w := range rec.Witnesses {
			line := fmt.Sprintf("  %d. %s", i+1, w.Name)
			if w.Contact != "" {
				line += " (" + w.Contact + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if len(rec.RequiredDocuments) > 0 {
		b.WriteString("WYMAGANE DOKUMENTY\n")
		for _, doc := range rec.RequiredDocuments {
			b.WriteString("  - " + doc + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\n")
	b.WriteString("Oświadczam, że powyższe dane są zgodne z prawdą.\n\n")
	b.WriteString("Data: ....................    Podpis poszkodowanego: ....................\n\n")
	b.WriteString("Dokument należy wydrukować, podpisać i złożyć w ZUS\n")
	b.WriteString("osobiście lub elektronicznie przez PUE/eZUS.\n")

	return b.String()
}

func field(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "  %s: %s\n", label, value)
}

func answerLabel(a report.Answer) string {
	switch a {
	case report.AnswerYes:
		return "TAK"
	case report.AnswerNo:
		return "NIE"
	}
	return ""
}
