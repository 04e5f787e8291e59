// Package report defines the accident report record shared by the form
// wizard and the chat assistant, and the pure operations over it: partial
// merge, sequence renumbering and completeness analysis.
package report

import "time"

// Type classifies what the user wants to file with ZUS.
type Type string

// Report types. TypeBoth requests the notification and the injured party's
// explanations in one go.
const (
	TypeUnset       Type = ""
	TypeAccident    Type = "accident"
	TypeExplanation Type = "explanation"
	TypeBoth        Type = "both"
)

// Answer is a yes/no field in its Polish form. The zero value means the
// question has not been answered yet.
type Answer string

const (
	AnswerUnset Answer = ""
	AnswerYes   Answer = "tak"
	AnswerNo    Answer = "nie"
)

// CauseUndetermined is the sentinel value for ExternalCause meaning the user
// could not name a cause. It is treated as absent by the analyzer.
const CauseUndetermined = "brak"

// SequenceStep is one entry of the step-by-step accident narrative.
// Steps are numbered 1..n and stay contiguous; use Renumber after edits.
type SequenceStep struct {
	Step        int    `json:"step"`
	Description string `json:"description"`
	Time        string `json:"time,omitempty"`
}

// Witness of the accident.
type Witness struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// SafetyInfo carries the optional BHP details collected for explanation-type
// reports.
type SafetyInfo struct {
	Trainings      string `json:"trainings,omitempty"`
	ProtectiveGear string `json:"protectiveGear,omitempty"`
	MachineStatus  string `json:"machineStatus,omitempty"`
	Sobriety       string `json:"sobriety,omitempty"`
}

// Record is the single accident report accumulated across all steps. Both
// interaction surfaces mutate it exclusively through Apply.
type Record struct {
	ID        string    `json:"id,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`

	ReportType Type `json:"reportType"`

	// Reporter identity.
	IsProxy          bool   `json:"isProxy"`
	HasProxyDocument bool   `json:"hasProxyDocument"`
	ProxyName        string `json:"proxyName"`
	ProxyRelation    string `json:"proxyRelation"`

	// Injured party.
	InjuredName    string `json:"injuredName"`
	InjuredSurname string `json:"injuredSurname"`
	InjuredPesel   string `json:"injuredPesel"`
	InjuredEmail   string `json:"injuredEmail"`
	InjuredPhone   string `json:"injuredPhone"`

	// Business identity.
	NIP             string `json:"nip"`
	REGON           string `json:"regon"`
	PKDCode         string `json:"pkdCode"`
	PKDDescription  string `json:"pkdDescription"`
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`

	// Incident facts.
	AccidentDate           string `json:"accidentDate"`
	AccidentTime           string `json:"accidentTime"`
	AccidentLocation       string `json:"accidentLocation"`
	WasWorkRelated         Answer `json:"wasWorkRelated"`
	ActivityBeforeAccident string `json:"activityBeforeAccident"`

	// Incident narrative.
	AccidentSequence []SequenceStep `json:"accidentSequence"`
	WasSudden        Answer         `json:"wasSudden"`
	ExternalCause    string         `json:"externalCause"`
	CauseDetails     string         `json:"causeDetails"`

	// Injury facts.
	InjuryType        string `json:"injuryType"`
	InjuryLocation    string `json:"injuryLocation"`
	InjuryDescription string `json:"injuryDescription"`
	MedicalAttention  Answer `json:"medicalAttention"`
	HospitalName      string `json:"hospitalName"`

	Witnesses  []Witness   `json:"witnesses"`
	SafetyInfo *SafetyInfo `json:"safetyInfo,omitempty"`

	// Derived lists, written only by the analyzer.
	MissingElements   []string `json:"missingElements"`
	RequiredDocuments []string `json:"requiredDocuments"`
	Recommendations   []string `json:"recommendations"`
}

// New returns an empty record ready for a session.
func New() *Record {
	return &Record{
		AccidentSequence:  []SequenceStep{},
		Witnesses:         []Witness{},
		MissingElements:   []string{},
		RequiredDocuments: []string{},
		Recommendations:   []string{},
	}
}

// HasExternalCause reports whether a real external cause has been recorded.
// The "brak" sentinel counts as absent.
func (r *Record) HasExternalCause() bool {
	return r.ExternalCause != "" && r.ExternalCause != CauseUndetermined
}

// Title returns the formal document title for the chosen report type.
func (r *Record) Title() string {
	if r.ReportType == TypeExplanation {
		return "ZAPIS WYJAŚNIEŃ POSZKODOWANEGO"
	}
	return "ZAWIADOMIENIE O WYPADKU PRZY PRACY"
}
