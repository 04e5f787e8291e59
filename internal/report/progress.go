package report

import "math"

// Progress returns the fill percentage over the twelve key fields the chat
// side panel tracks. "brak" counts as empty.
func Progress(r *Record) int {
	fields := []string{
		r.InjuredName,
		r.InjuredSurname,
		r.InjuredPesel,
		r.NIP,
		r.PKDCode,
		r.AccidentDate,
		r.AccidentTime,
		r.AccidentLocation,
		r.ActivityBeforeAccident,
		r.ExternalCause,
		r.InjuryType,
		r.InjuryDescription,
	}
	filled := 0
	for _, f := range fields {
		if f != "" && f != CauseUndetermined {
			filled++
		}
	}
	return int(math.Round(float64(filled) / float64(len(fields)) * 100))
}
