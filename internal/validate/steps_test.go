package validate

import (
	"testing"

	"github.com/jkleczar/wypadek/internal/report"
	"github.com/stretchr/testify/assert"
)

func TestReporterInfo(t *testing.T) {
	rec := report.New()

	errs := ReporterInfo(rec)
	assert.Equal(t, "Imię jest wymagane", errs["injuredName"])
	assert.Equal(t, "PESEL jest wymagany", errs["injuredPesel"])

	rec.InjuredName = "Jan"
	rec.InjuredSurname = "Kowalski"
	rec.InjuredPesel = "1234567890" // one digit short
	errs = ReporterInfo(rec)
	assert.Equal(t, "PESEL musi składać się z 11 cyfr", errs["injuredPesel"])

	rec.InjuredPesel = "12345678901"
	assert.True(t, ReporterInfo(rec).OK())
}

func TestReporterInfoProxyRequiresName(t *testing.T) {
	rec := report.New()
	rec.InjuredName = "Jan"
	rec.InjuredSurname = "Kowalski"
	rec.InjuredPesel = "12345678901"
	rec.IsProxy = true

	errs := ReporterInfo(rec)
	assert.Equal(t, "Imię i nazwisko pełnomocnika jest wymagane", errs["proxyName"])

	rec.ProxyName = "Anna Nowak"
	assert.True(t, ReporterInfo(rec).OK())
}

func TestReporterInfoOptionalFormats(t *testing.T) {
	rec := report.New()
	rec.InjuredName = "Jan"
	rec.InjuredSurname = "Kowalski"
	rec.InjuredPesel = "12345678901"

	rec.InjuredEmail = "nie-email"
	assert.Equal(t, "Nieprawidłowy format email", ReporterInfo(rec)["injuredEmail"])
	rec.InjuredEmail = "jan@firma.pl"
	assert.True(t, ReporterInfo(rec).OK())

	rec.InjuredPhone = "123"
	assert.Equal(t, "Nieprawidłowy numer telefonu", ReporterInfo(rec)["injuredPhone"])
}

func TestBusinessInfo(t *testing.T) {
	rec := report.New()
	errs := BusinessInfo(rec)
	assert.Equal(t, "Podaj NIP lub REGON działalności", errs["nip"])

	rec.NIP = "123-456-78-90"
	rec.PKDCode = "62.01"
	assert.True(t, BusinessInfo(rec).OK(), "dashes are stripped before the digit check")

	rec.NIP = "12345"
	errs = BusinessInfo(rec)
	assert.Equal(t, "NIP musi składać się z 10 cyfr", errs["nip"])

	rec.NIP = ""
	rec.REGON = "12345678"
	errs = BusinessInfo(rec)
	assert.Equal(t, "REGON musi składać się z 9 cyfr", errs["regon"])
}

func TestAccidentSequenceStep(t *testing.T) {
	rec := report.New()
	rec.AccidentSequence = report.Renumber([]report.SequenceStep{{Description: "upadek"}})
	rec.ExternalCause = report.CauseUndetermined

	errs := AccidentSequence(rec)
	assert.Equal(t, "Dodaj przynajmniej 2 kroki opisujące przebieg wypadku", errs["sequence"])
	assert.Equal(t, "Wskazanie przyczyny zewnętrznej jest wymagane", errs["externalCause"], "brak sentinel is not a cause")
	assert.Equal(t, "Szczegółowy opis przyczyny jest wymagany", errs["causeDetails"])

	rec.AccidentSequence = report.AppendStep(rec.AccidentSequence, "uderzenie o posadzkę", "")
	rec.ExternalCause = "śliska podłoga"
	rec.CauseDetails = "rozlany olej przy maszynie, brak oznakowania"
	assert.True(t, AccidentSequence(rec).OK())
}

func TestInjuryDetailsConditionalHospital(t *testing.T) {
	rec := report.New()
	rec.InjuryType = "złamanie"
	rec.InjuryLocation = "ręka prawa"
	rec.InjuryDescription = "złamanie kości promieniowej"
	rec.MedicalAttention = report.AnswerYes

	errs := InjuryDetails(rec)
	assert.Equal(t, "Nazwa placówki medycznej jest wymagana", errs["hospitalName"])

	rec.HospitalName = "SOR Szpital Wolski"
	assert.True(t, InjuryDetails(rec).OK())

	rec.MedicalAttention = report.AnswerNo
	rec.HospitalName = ""
	assert.True(t, InjuryDetails(rec).OK())
}

func TestHints(t *testing.T) {
	rec := report.New()
	assert.Empty(t, Hints(rec))

	rec.WasWorkRelated = report.AnswerNo
	rec.WasSudden = report.AnswerNo
	assert.Len(t, Hints(rec), 2)
}
