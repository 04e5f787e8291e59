package render

import (
	"fmt"
	"strings"

	"github.com/jkleczar/wypadek/internal/report"
)

// Markdown renders the record for terminal preview and export. Same
// section order as the plain-text document.
func Markdown(rec *report.Record) string {
	var b strings.Builder

	b.WriteString("# " + rec.Title() + "\n\n")
	b.WriteString("*Zakład Ubezpieczeń Społecznych, dokument wygenerowany automatycznie*\n\n")

	if rec.IsProxy {
		b.WriteString("## Zgłaszający (pełnomocnik)\n\n")
		mdField(&b, "Imię i nazwisko", rec.ProxyName)
		mdField(&b, "Relacja", rec.ProxyRelation)
		if !rec.HasProxyDocument {
			b.WriteString("\n> ⚠️ Do zgłoszenia należy dołączyć pełnomocnictwo (oryginał lub urzędowo poświadczony odpis).\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("## I. Dane płatnika składek (firma)\n\n")
	mdField(&b, "NIP", rec.NIP)
	mdField(&b, "REGON", rec.REGON)
	mdField(&b, "Nazwa", rec.BusinessName)
	mdField(&b, "Adres", rec.BusinessAddress)
	if rec.PKDCode != "" || rec.PKDDescription != "" {
		mdField(&b, "PKD", strings.TrimSpace(rec.PKDCode+" - "+rec.PKDDescription))
	}
	b.WriteString("\n## II. Dane poszkodowanego\n\n")
	mdField(&b, "Imię", rec.InjuredName)
	mdField(&b, "Nazwisko", rec.InjuredSurname)
	mdField(&b, "PESEL", rec.InjuredPesel)
	mdField(&b, "Email", rec.InjuredEmail)
	mdField(&b, "Telefon", rec.InjuredPhone)

	b.WriteString("\n## III. Informacje o wypadku\n\n")
	mdField(&b, "Data", rec.AccidentDate)
	mdField(&b, "Godzina", rec.AccidentTime)
	mdField(&b, "Miejsce", rec.AccidentLocation)
	mdField(&b, "Nagły", answerLabel(rec.WasSudden))
	mdField(&b, "Związek z pracą", answerLabel(rec.WasWorkRelated))
	mdField(&b, "Przyczyna zewnętrzna", rec.ExternalCause)

	b.WriteString("\n## IV. Okoliczności i przyczyny\n\n")
	if rec.ActivityBeforeAccident != "" {
		b.WriteString("**Czynności przed wypadkiem:** " + rec.ActivityBeforeAccident + "\n\n")
	}
	if len(rec.AccidentSequence) > 0 {
		b.WriteString("**Przebieg:**\n\n")
		for _, step := range rec.AccidentSequence {
			line := fmt.Sprintf("%d. %s", step.Step, step.Description)
			if step.Time != "" {
				line += " (" + step.Time + ")"
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}
	if rec.CauseDetails != "" {
		b.WriteString("**Przyczyna:** " + rec.CauseDetails + "\n\n")
	}

	b.WriteString("## V. Obrażenia\n\n")
	mdField(&b, "Rodzaj", rec.InjuryType)
	mdField(&b, "Część ciała", rec.InjuryLocation)
	mdField(&b, "Opis", rec.InjuryDescription)
	mdField(&b, "Pomoc medyczna", answerLabel(rec.MedicalAttention))
	mdField(&b, "Placówka", rec.HospitalName)

	if rec.ReportType == report.TypeExplanation || rec.ReportType == report.TypeBoth {
		b.WriteString("\n## VI. Informacje dodatkowe (BHP, maszyny)\n\n")
		if s := rec.SafetyInfo; s != nil {
			mdField(&b, "Maszyny", s.MachineStatus)
			mdField(&b, "Środki ochrony", s.ProtectiveGear)
			mdField(&b, "Szkolenia", s.Trainings)
			mdField(&b, "Stan", s.Sobriety)
		} else {
			b.WriteString("Brak szczegółowych danych o BHP.\n")
		}
	}

	if len(rec.Witnesses) > 0 {
		b.WriteString("\n## Świadkowie\n\n")
		for i, w := range rec.Witnesses {
			line := fmt.Sprintf("%d. %s", i+1, w.Name)
			if w.Contact != "" {
				line += " (" + w.Contact + ")"
			}
			b.WriteString(line + "\n")
		}
	}

	if len(rec.RequiredDocuments) > 0 {
		b.WriteString("\n## Wymagane dokumenty\n\n")
		for _, doc := range rec.RequiredDocuments {
			b.WriteString("- " + doc + "\n")
		}
	}

	b.WriteString("\n---\n\nOświadczam, że powyższe dane są zgodne z prawdą.\n")
	return b.String()
}

func mdField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "- **%s:** %s\n", label, value)
}
