package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/jkleczar/wypadek/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNavigationClamps(t *testing.T) {
	w := New(report.New())

	w.Previous()
	assert.Equal(t, StepWelcome, w.Step(), "previous clamps at the first step")

	for i := 0; i < 20; i++ {
		w.Next()
	}
	assert.Equal(t, StepDone, w.Step(), "next clamps at the last step")
}

func TestAdvanceGatesOnValidation(t *testing.T) {
	w := New(report.New())
	w.Next() // welcome has no rules

	errs, ok := w.Advance()
	assert.False(t, ok)
	assert.Equal(t, StepReportType, w.Step())
	assert.Contains(t, errs, "reportType")

	require.NoError(t, w.UpdateData(report.Partial{"reportType": "accident"}))
	_, ok = w.Advance()
	assert.True(t, ok)
	assert.Equal(t, StepReporterInfo, w.Step())
}

func TestEnterFormModeSkipsWelcome(t *testing.T) {
	w := New(report.New())
	w.EnterFormMode()
	assert.Equal(t, StepWelcome, w.Step(), "no report type chosen yet")

	require.NoError(t, w.UpdateData(report.Partial{"reportType": "both"}))
	w.EnterFormMode()
	assert.Equal(t, StepReportType, w.Step())

	w.Next()
	w.EnterFormMode()
	assert.Equal(t, StepReporterInfo, w.Step(), "only the welcome step is skipped")
}

func TestAnalyzeWritesBack(t *testing.T) {
	w := New(report.New())
	a := w.Analyze()
	assert.Equal(t, a.MissingElements, w.Record().MissingElements)
	assert.Equal(t, a.RequiredDocuments, w.Record().RequiredDocuments)
}

type fakeSaver struct {
	calls   int
	started chan struct{}
	block   chan struct{}
	err     error
}

func (f *fakeSaver) SaveReport(_ context.Context, rec *report.Record) (string, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
	}
	if f.block != nil {
		<-f.block
	}
	if f.err != nil {
		return "", f.err
	}
	if rec.ID != "" {
		return rec.ID, nil
	}
	return "raport-1", nil
}

func TestSessionSaveAssignsIDOnce(t *testing.T) {
	saver := &fakeSaver{}
	s := NewSession(saver)

	id, err := s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "raport-1", id)
	assert.Equal(t, "raport-1", s.Record().ID)

	id, err = s.Save(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "raport-1", id, "second save updates in place")
}

func TestSessionSaveInFlightGuard(t *testing.T) {
	saver := &fakeSaver{started: make(chan struct{}), block: make(chan struct{})}
	s := NewSession(saver)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = s.Save(context.Background())
	}()

	<-saver.started
	_, err := s.Save(context.Background())
	assert.ErrorIs(t, err, ErrSaveInFlight)

	close(saver.block)
	<-done
	assert.Equal(t, 1, saver.calls)
}

func TestSessionSaveFailureLeavesRecord(t *testing.T) {
	saver := &fakeSaver{err: errors.New("magazyn niedostępny")}
	s := NewSession(saver)
	require.NoError(t, report.Apply(s.Record(), report.Partial{"injuredName": "Jan"}))

	_, err := s.Save(context.Background())
	require.Error(t, err)
	assert.Empty(t, s.Record().ID)
	assert.Equal(t, "Jan", s.Record().InjuredName)
}
