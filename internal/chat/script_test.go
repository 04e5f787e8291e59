package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkleczar/wypadek/internal/report"
)

func TestLoadScript_CoversEveryState(t *testing.T) {
	script, err := LoadScript()
	require.NoError(t, err)

	for id := 0; id <= MaxState; id++ {
		spec, ok := script.State(id)
		require.True(t, ok, "state %d missing", id)
		assert.NotEmpty(t, spec.Name, "state %d has no name", id)
		assert.NotEmpty(t, spec.OK, "state %d has no success message", id)
		assert.GreaterOrEqual(t, spec.Next, 0)
		assert.LessOrEqual(t, spec.Next, MaxState)
	}
	assert.NotEmpty(t, script.Greeting)
	assert.NotEmpty(t, script.Reset)
}

func newScriptedEngine(t *testing.T, registry Registry) *Engine {
	t.Helper()
	backend, err := NewScripted(registry)
	require.NoError(t, err)
	return NewEngine(backend, report.New())
}

func TestReportTypeState(t *testing.T) {
	ctx := context.Background()

	t.Run("recognized option advances", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		turn, err := e.Send(ctx, "Zawiadomienie o wypadku")
		require.NoError(t, err)
		assert.Equal(t, 1, e.State())
		assert.Equal(t, report.TypeAccident, e.Record().ReportType)
		assert.Contains(t, turn.Message, "zawiadomienie o wypadku")
	})

	t.Run("digit shortcut", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		_, err := e.Send(ctx, "2")
		require.NoError(t, err)
		assert.Equal(t, report.TypeExplanation, e.Record().ReportType)
	})

	t.Run("unrecognized input re-prompts in place", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		turn, err := e.Send(ctx, "dzień dobry")
		require.NoError(t, err)
		assert.Equal(t, 0, e.State())
		assert.Equal(t, report.TypeUnset, e.Record().ReportType)
		assert.Contains(t, turn.Message, "Zawiadomienie o wypadku")
		assert.Len(t, turn.Suggestions, 3)
	})
}

func TestProxyBranch(t *testing.T) {
	ctx := context.Background()

	e := newScriptedEngine(t, nil)
	_, err := e.Send(ctx, "1")
	require.NoError(t, err)

	_, err = e.Send(ctx, "Tak, jestem pełnomocnikiem")
	require.NoError(t, err)
	assert.Equal(t, 2, e.State())
	assert.True(t, e.Record().IsProxy)

	// A single word is not a full name.
	turn, err := e.Send(ctx, "Jan")
	require.NoError(t, err)
	assert.Equal(t, 2, e.State())
	assert.Contains(t, turn.Message, "pełne imię i nazwisko")

	turn, err = e.Send(ctx, "Jan Kowalski")
	require.NoError(t, err)
	assert.Equal(t, 3, e.State())
	assert.Equal(t, "Jan Kowalski", e.Record().ProxyName)
	assert.Contains(t, turn.Message, "pełnomocnictwo")
}

func TestProxyBranchSkipped(t *testing.T) {
	e := newScriptedEngine(t, nil)
	ctx := context.Background()
	_, err := e.Send(ctx, "1")
	require.NoError(t, err)
	_, err = e.Send(ctx, "Nie, zgłaszam swój wypadek")
	require.NoError(t, err)
	assert.Equal(t, 3, e.State())
	assert.False(t, e.Record().IsProxy)
}

func TestSequenceLoop(t *testing.T) {
	ctx := context.Background()

	t.Run("auto-advance at three steps", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		e.SetState(14)
		for _, step := range []string{"Wszedłem na drabinę", "Drabina się zachwiała"} {
			turn, err := e.Send(ctx, step)
			require.NoError(t, err)
			assert.Equal(t, 14, turn.NextState)
		}
		turn, err := e.Send(ctx, "Spadłem na posadzkę")
		require.NoError(t, err)
		assert.Equal(t, 15, e.State())
		assert.Contains(t, turn.Message, "3 krok")
		require.Len(t, e.Record().AccidentSequence, 3)
		assert.Equal(t, 1, e.Record().AccidentSequence[0].Step)
		assert.Equal(t, 3, e.Record().AccidentSequence[2].Step)
	})

	t.Run("koniec closes with two steps", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		e.SetState(14)
		_, err := e.Send(ctx, "Wszedłem na drabinę")
		require.NoError(t, err)
		_, err = e.Send(ctx, "Spadłem")
		require.NoError(t, err)
		_, err = e.Send(ctx, "Koniec opisu")
		require.NoError(t, err)
		assert.Equal(t, 15, e.State())
		assert.Len(t, e.Record().AccidentSequence, 2)
	})

	t.Run("koniec with one step re-prompts", func(t *testing.T) {
		e := newScriptedEngine(t, nil)
		e.SetState(14)
		_, err := e.Send(ctx, "Wszedłem na drabinę")
		require.NoError(t, err)
		_, err = e.Send(ctx, "koniec")
		require.NoError(t, err)
		assert.Equal(t, 14, e.State())
		assert.Len(t, e.Record().AccidentSequence, 1)
	})
}

func TestWorkRelatedConfirmation(t *testing.T) {
	ctx := context.Background()
	e := newScriptedEngine(t, nil)
	e.SetState(11)

	turn, err := e.Send(ctx, "Nie, to była prywatna sprawa")
	require.NoError(t, err)
	assert.Equal(t, 11, e.State())
	assert.Equal(t, report.AnswerNo, e.Record().WasWorkRelated)
	assert.Contains(t, turn.Message, "UWAGA")

	// The confirmed "no" is accepted the second time around.
	_, err = e.Send(ctx, "Nie miał związku")
	require.NoError(t, err)
	assert.Equal(t, 12, e.State())
	assert.Equal(t, report.AnswerNo, e.Record().WasWorkRelated)
}

type fakeRegistry struct {
	business report.Partial
	err      error
	calls    int
}

func (f *fakeRegistry) BusinessByNIP(_ context.Context, _ string) (report.Partial, error) {
	f.calls++
	return f.business, f.err
}

func TestNIPStateWithRegistry(t *testing.T) {
	ctx := context.Background()
	reg := &fakeRegistry{business: report.Partial{
		"businessName":    `P.H.U. "KOWALSKI" Jan Kowalski`,
		"businessAddress": "ul. Przykładowa 123, 00-001 Warszawa",
		"pkdCode":         "62.01",
		"pkdDescription":  "Działalność związana z oprogramowaniem",
	}}
	e := newScriptedEngine(t, reg)
	e.SetState(7)

	turn, err := e.Send(ctx, "123-456-78-90")
	require.NoError(t, err)
	assert.Equal(t, 1, reg.calls)
	assert.Equal(t, 8, e.State())
	assert.Equal(t, "1234567890", e.Record().NIP)
	assert.Equal(t, "62.01", e.Record().PKDCode)
	assert.Contains(t, turn.Message, "KOWALSKI")
}

func TestNIPStateDegradesWithoutRegistry(t *testing.T) {
	ctx := context.Background()
	e := newScriptedEngine(t, nil)
	e.SetState(7)

	turn, err := e.Send(ctx, "1234567890")
	require.NoError(t, err)
	assert.Equal(t, 8, e.State())
	assert.Equal(t, "1234567890", e.Record().NIP)
	assert.Contains(t, turn.Message, "uzupełnimy")
	assert.Empty(t, e.Record().BusinessName)
}

func TestUnknownStateResets(t *testing.T) {
	backend, err := NewScripted(nil)
	require.NoError(t, err)

	turn, err := backend.Respond(context.Background(), 99, "cokolwiek", report.New())
	require.NoError(t, err)
	assert.Equal(t, 0, turn.NextState)
	assert.Contains(t, turn.Message, "od nowa")
}

// Walks the whole script from greeting to completion on the happy path.
func TestFullConversation(t *testing.T) {
	ctx := context.Background()
	e := newScriptedEngine(t, nil)

	greet := e.Greet()
	assert.Contains(t, greet.Message, "Dzień dobry")

	steps := []string{
		"Zawiadomienie o wypadku",
		"Nie, zgłaszam swój wypadek",
		"jan",
		"kowalski",
		"90010112345",
		"pomiń",
		"1234567890",
		"2025-12-06",
		"14:30",
		"Warsztat przy ul. Długiej 5 w Krakowie",
		"Tak, podczas pracy",
		"Naprawiałem maszynę pakującą przy linii produkcyjnej",
		"Tak, było to nagłe",
		"Wszedłem na drabinę",
		"Drabina się zachwiała",
		"Spadłem na posadzkę",
		"Upadek z wysokości",
		"Szczebel drabiny był pęknięty, a posadzka była mokra po myciu",
		"Złamanie",
		"Ręka prawa",
		"Silny ból, ręka spuchła i nie mogłem nią ruszać",
	}
	for _, msg := range steps {
		_, err := e.Send(ctx, msg)
		require.NoError(t, err, "input %q", msg)
	}

	turn, err := e.Send(ctx, "Tak, byłem w szpitalu")
	require.NoError(t, err)
	assert.True(t, turn.Terminal)
	assert.True(t, turn.OfferDocument)
	assert.Equal(t, 21, e.State())

	rec := e.Record()
	assert.Equal(t, report.TypeAccident, rec.ReportType)
	assert.Equal(t, "Jan", rec.InjuredName)
	assert.Equal(t, "Kowalski", rec.InjuredSurname)
	assert.Equal(t, "90010112345", rec.InjuredPesel)
	assert.Equal(t, "1234567890", rec.NIP)
	assert.Equal(t, "2025-12-06", rec.AccidentDate)
	assert.Equal(t, "14:30", rec.AccidentTime)
	assert.Equal(t, report.AnswerYes, rec.WasWorkRelated)
	assert.Equal(t, report.AnswerYes, rec.WasSudden)
	assert.Len(t, rec.AccidentSequence, 3)
	assert.Equal(t, "Upadek z wysokości", rec.ExternalCause)
	assert.Equal(t, report.AnswerYes, rec.MedicalAttention)
	assert.Equal(t, "Do uzupełnienia", rec.HospitalName)

	// The closing recap mentions what was collected.
	turn, err = e.Send(ctx, "Koniec")
	require.NoError(t, err)
	assert.True(t, turn.Terminal)
	assert.Contains(t, turn.Message, "Jan Kowalski")
	assert.Contains(t, turn.Message, "1234567890")
}
