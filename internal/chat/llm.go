package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/genai"

	"github.com/jkleczar/wypadek/internal/report"
)

const llmSystemPrompt = `Jesteś asystentem pomagającym przedsiębiorcy zgłosić wypadek przy pracy do ZUS.
Prowadź rozmowę po polsku, zadawaj jedno pytanie na raz i zbieraj dane do zgłoszenia.

Odpowiadaj WYŁĄCZNIE poprawnym JSON-em o kształcie:
{"message": "...", "suggestions": ["..."], "extractedData": {...}, "shouldGenerateDocument": false}

W extractedData używaj wyłącznie tych kluczy:
reportType (accident|explanation|both), isProxy, proxyName, injuredName, injuredSurname,
injuredPesel, injuredEmail, nip, accidentDate (RRRR-MM-DD), accidentTime (HH:MM),
accidentLocation, wasWorkRelated (tak|nie), activityBeforeAccident, wasSudden (tak|nie),
accidentSequence ([{"step":1,"description":"..."}]), externalCause, causeDetails,
injuryType, injuryLocation, injuryDescription, medicalAttention (tak|nie), hospitalName.

Ustaw shouldGenerateDocument na true dopiero, gdy zebrano komplet danych.
Nigdy nie umieszczaj danych osobowych w suggestions.`

// Stubbed in tests that exercise date backfill.
var timeNow = time.Now

// llmReply is the JSON contract the model is asked to keep.
type llmReply struct {
	Message                string         `json:"message"`
	Suggestions            []string       `json:"suggestions"`
	ExtractedData          report.Partial `json:"extractedData"`
	ShouldGenerateDocument bool           `json:"shouldGenerateDocument"`
}

// Generator is the slice of the Gemini client the backend needs.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// LLMBackend relays the conversation to a Gemini model instead of the
// deterministic script. Extracted fields flow through the same merge
// path as scripted ones, with the same format gates on backfill.
type LLMBackend struct {
	gen     Generator
	model   string
	history []*genai.Content
}

// NewLLM dials the Gemini API. The model name comes from configuration.
func NewLLM(ctx context.Context, apiKey, model string) (*LLMBackend, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &LLMBackend{gen: client.Models, model: model}, nil
}

// NewLLMWithGenerator wires an explicit generator, used by tests.
func NewLLMWithGenerator(gen Generator, model string) *LLMBackend {
	return &LLMBackend{gen: gen, model: model}
}

func (b *LLMBackend) Greet(_ *report.Record) Turn {
	return Turn{
		Message: "Dzień dobry! 👋 Pomogę Ci zgłosić wypadek przy pracy. Jaki dokument chcesz przygotować?",
		Suggestions: []string{
			"Zawiadomienie o wypadku",
			"Wyjaśnienia poszkodowanego",
			"Oba dokumenty",
		},
	}
}

// Respond sends the user message with the conversation so far. On
// transport failure the history is left untouched so the same message
// can be retried.
func (b *LLMBackend) Respond(ctx context.Context, state int, input string, rec *report.Record) (Turn, error) {
	recJSON, err := json.Marshal(rec)
	if err != nil {
		return Turn{}, fmt.Errorf("marshal record: %w", err)
	}
	system := llmSystemPrompt + "\n\nDotychczas zebrane dane:\n" + string(recJSON)

	contents := make([]*genai.Content, 0, len(b.history)+1)
	contents = append(contents, b.history...)
	userContent := genai.NewContentFromText(input, genai.RoleUser)
	contents = append(contents, userContent)

	resp, err := b.gen.GenerateContent(ctx, b.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	})
	if err != nil {
		return Turn{}, fmt.Errorf("generate content: %w", err)
	}
	raw := resp.Text()
	if raw == "" {
		return Turn{}, fmt.Errorf("model returned empty reply")
	}

	reply := parseReply(raw)
	backfill(&reply, input)

	b.history = append(b.history, userContent, genai.NewContentFromText(reply.Message, genai.RoleModel))

	return Turn{
		Message:       reply.Message,
		Suggestions:   reply.Suggestions,
		Extracted:     reply.ExtractedData,
		NextState:     state,
		Terminal:      reply.ShouldGenerateDocument,
		OfferDocument: reply.ShouldGenerateDocument,
	}, nil
}

// parseReply tolerates prose around the JSON object and degrades to a
// message-only reply when no object can be recovered.
func parseReply(raw string) llmReply {
	var reply llmReply
	if err := json.Unmarshal([]byte(raw), &reply); err == nil && reply.Message != "" {
		return reply
	}
	if start, end := strings.Index(raw, "{"), strings.LastIndex(raw, "}"); start >= 0 && end > start {
		if err := json.Unmarshal([]byte(raw[start:end+1]), &reply); err == nil && reply.Message != "" {
			return reply
		}
	}
	log.Debug().Msg("model reply is not the expected JSON, passing text through")
	return llmReply{Message: raw}
}

// backfill re-applies the format-gated extractors to the raw user
// message when the model's reply asked for a field but the structured
// extraction missed it.
func backfill(reply *llmReply, input string) {
	lowerMsg := strings.ToLower(reply.Message)
	ensure := func(key, value string) {
		if value == "" {
			return
		}
		if reply.ExtractedData == nil {
			reply.ExtractedData = report.Partial{}
		}
		if _, ok := reply.ExtractedData[key]; !ok {
			reply.ExtractedData[key] = value
		}
	}
	if strings.Contains(lowerMsg, "pesel") {
		ensure("injuredPesel", ExtractPESEL(input))
	}
	if strings.Contains(lowerMsg, "nip") {
		ensure("nip", ExtractNIP(input))
	}
	if strings.Contains(lowerMsg, "dat") {
		ensure("accidentDate", ExtractDate(input, timeNow()))
	}
	if strings.Contains(lowerMsg, "godzin") {
		ensure("accidentTime", ExtractTime(input))
	}
	if strings.Contains(lowerMsg, "email") || strings.Contains(lowerMsg, "e-mail") {
		ensure("injuredEmail", ExtractEmail(input))
	}
}
