package report

// Renumber returns seq with Step fields rewritten to the contiguous 1-based
// order of the slice. The slice is modified in place and returned.
func Renumber(seq []SequenceStep) []SequenceStep {
	for i := range seq {
		seq[i].Step = i + 1
	}
	return seq
}

// AppendStep adds a narrative step at the end of the sequence.
func AppendStep(seq []SequenceStep, description, at string) []SequenceStep {
	seq = append(seq, SequenceStep{Description: description, Time: at})
	return Renumber(seq)
}

// RemoveStep deletes the entry with the given step number and renumbers the
// remainder. Unknown step numbers are ignored.
func RemoveStep(seq []SequenceStep, step int) []SequenceStep {
	for i := range seq {
		if seq[i].Step == step {
			seq = append(seq[:i], seq[i+1:]...)
			break
		}
	}
	return Renumber(seq)
}
