package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/jkleczar/wypadek/internal/report"
)

// PDF renders the record as a single-page A4 document in the fixed
// layout ZUS clerks are used to. The built-in Helvetica font cannot
// render Polish diacritics, so every string is folded to base Latin on
// the way out; the record itself keeps its diacritics.
func PDF(rec *report.Record) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(15, 15, 15)
	doc.AddPage()
	pageW, _ := doc.GetPageSize()
	contentW := pageW - 30

	write := func(style string, size float64, h float64, text string) {
		doc.SetFont("Helvetica", style, size)
		doc.CellFormat(contentW, h, Fold(text), "", 1, "L", false, 0, "")
	}
	section := func(title string) {
		doc.Ln(3)
		doc.SetFillColor(230, 230, 230)
		doc.SetFont("Helvetica", "B", 10)
		doc.CellFormat(contentW, 7, Fold(title), "", 1, "L", true, 0, "")
		doc.Ln(1)
	}
	pair := func(label, value string) {
		if value == "" {
			return
		}
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(45, 6, Fold(label+":"), "", 0, "L", false, 0, "")
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(contentW-45, 6, Fold(value), "", "L", false)
	}
	block := func(text string) {
		doc.SetFont("Helvetica", "", 9)
		doc.MultiCell(contentW, 5, Fold(text), "1", "L", false)
	}

	write("B", 10, 6, "ZAKŁAD UBEZPIECZEŃ SPOŁECZNYCH")
	doc.Ln(2)
	write("B", 15, 8, rec.Title())
	doc.SetTextColor(120, 120, 120)
	write("", 8, 4, "Dokument wygenerowany automatycznie")
	doc.SetTextColor(0, 0, 0)

	if rec.IsProxy {
		section("ZGŁASZAJĄCY (PEŁNOMOCNIK)")
		pair("Imię i nazwisko", rec.ProxyName)
		pair("Relacja", rec.ProxyRelation)
		if !rec.HasProxyDocument {
			pair("Uwaga", "wymagane pełnomocnictwo (oryginał lub odpis)")
		}
	}

	section("I. DANE PŁATNIKA SKŁADEK (FIRMA)")
	pair("NIP", rec.NIP)
	pair("REGON", rec.REGON)
	pair("Nazwa", rec.BusinessName)
	pair("Adres", rec.BusinessAddress)
	if rec.PKDCode != "" || rec.PKDDescription != "" {
		pair("PKD", strings.TrimSpace(rec.PKDCode+" - "+rec.PKDDescription))
	}

	section("II. DANE POSZKODOWANEGO")
	pair("Imię", rec.InjuredName)
	pair("Nazwisko", rec.InjuredSurname)
	pair("PESEL", rec.InjuredPesel)
	pair("Email", rec.InjuredEmail)

	section("III. INFORMACJE O WYPADKU")
	pair("Data", rec.AccidentDate)
	pair("Godzina", rec.AccidentTime)
	pair("Miejsce", rec.AccidentLocation)
	pair("Nagły", answerLabel(rec.WasSudden))
	pair("Związek z pracą", answerLabel(rec.WasWorkRelated))
	pair("Przyczyna zewnętrzna", rec.ExternalCause)

	section("IV. OKOLICZNOŚCI I PRZYCZYNY (OPIS SZCZEGÓŁOWY)")
	var desc strings.Builder
	if rec.ActivityBeforeAccident != "" {
		desc.WriteString("Czynności przed wypadkiem:\n" + rec.ActivityBeforeAccident + "\n\n")
	}
	if len(rec.AccidentSequence) > 0 {
		desc.WriteString("Przebieg:\n")
		for _, step := range rec.AccidentSequence {
			line := fmt.Sprintf("- %s", step.Description)
			if step.Time != "" {
				line += " (" + step.Time + ")"
			}
			desc.WriteString(line + "\n")
		}
		desc.WriteString("\n")
	}
	if rec.CauseDetails != "" {
		desc.WriteString("Przyczyna:\n" + rec.CauseDetails + "\n\n")
	}
	if rec.InjuryDescription != "" {
		desc.WriteString("Uraz:\n" + rec.InjuryDescription)
	}
	block(desc.String())

	if rec.ReportType == report.TypeExplanation || rec.ReportType == report.TypeBoth {
		section("V. INFORMACJE DODATKOWE (BHP, MASZYNY)")
		var safety strings.Builder
		if s := rec.SafetyInfo; s != nil {
			if s.MachineStatus != "" {
				safety.WriteString("Maszyny: " + s.MachineStatus + "\n")
			}
			if s.ProtectiveGear != "" {
				safety.WriteString("Środki ochrony: " + s.ProtectiveGear + "\n")
			}
			if s.Trainings != "" {
				safety.WriteString("Szkolenia: " + s.Trainings + "\n")
			}
			if s.Sobriety != "" {
				safety.WriteString("Stan: " + s.Sobriety + "\n")
			}
		} else {
			safety.WriteString("Brak szczegółowych danych o BHP.")
		}
		block(safety.String())
	}

	if len(rec.Witnesses) > 0 {
		section("ŚWIADKOWIE")
		for i, w := range rec.Witnesses {
			line := fmt.Sprintf("%d. %s", i+1, w.Name)
			if w.Contact != "" {
				line += " (" + w.Contact + ")"
			}
			write("", 9, 5, line)
		}
	}

	// Footer pinned above the bottom margin.
	doc.SetY(-45)
	write("", 10, 6, "Oświadczam, że powyższe dane są zgodne z prawdą.")
	doc.Ln(8)
	doc.SetFont("Helvetica", "", 8)
	doc.Line(pageW-75, doc.GetY(), pageW-15, doc.GetY())
	doc.SetX(pageW - 75)
	doc.CellFormat(60, 5, Fold("Podpis poszkodowanego"), "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName is the suggested download name for the rendered document.
func FileName(rec *report.Record) string {
	if rec.ReportType == report.TypeExplanation {
		return "ZUS_Wyjasnienia.pdf"
	}
	return "ZUS_Zawiadomienie.pdf"
}
