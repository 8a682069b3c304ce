package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"badajozrespira/src/infra/gemini"
	"badajozrespira/src/services/blocks"
)

const (
	MsgUnavailable = "El asistente no está disponible actualmente."
	MsgError       = "Lo siento, hubo un error al conectar con el asistente."
	MsgEmpty       = "No pude procesar tu consulta."

	summaryFallbackLength = 100
)

// Generator é implementado por *gemini.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error)
}

type Recorder interface {
	AssistantCall(kind string, outcome string)
}

type noopRecorder struct{}

func (noopRecorder) AssistantCall(string, string) {}

// Assistant responde dúvidas dos cidadãos e resume propostas. Nunca
// devolve erro: sem chave ou com falha do provedor, devolve textos fixos.
type Assistant struct {
	logger    *slog.Logger
	generator Generator
	recorder  Recorder
}

// NewAssistant aceita generator nil, que equivale a API_KEY vazia.
func NewAssistant(logger *slog.Logger, generator Generator, recorder Recorder) *Assistant {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &Assistant{logger: logger, generator: generator, recorder: recorder}
}

func (a *Assistant) Configured() bool {
	return a.generator != nil
}

func (a *Assistant) Ask(ctx context.Context, question string) string {
	if a.generator == nil {
		a.recorder.AssistantCall("ask", "unconfigured")
		return MsgUnavailable
	}

	prompt := fmt.Sprintf("Eres un asistente experto en salud urbana del proyecto \"Badajoz Respira\". "+
		"Responde a esta duda de un ciudadano de forma amable y técnica:\n\n%s", question)

	text, err := a.generator.Generate(ctx, prompt, gemini.GenerateOptions{MaxOutputTokens: 300})
	if err != nil {
		a.logger.Error("Gemini assistant error", "error", err)
		a.recorder.AssistantCall("ask", "error")
		return MsgError
	}

	if strings.TrimSpace(text) == "" {
		a.recorder.AssistantCall("ask", "empty")
		return MsgEmpty
	}

	a.recorder.AssistantCall("ask", "ok")
	return text
}

// SummarizeProposal resume a proposta em uma frase. Sem gerador devolve os
// primeiros 100 caracteres da descrição seguidos de "...".
func (a *Assistant) SummarizeProposal(ctx context.Context, title string, description string) string {
	if a.generator == nil {
		a.recorder.AssistantCall("summary", "unconfigured")
		return blocks.Truncate(description, summaryFallbackLength, "") + "..."
	}

	prompt := fmt.Sprintf("Resume de forma muy breve (una frase) esta propuesta ciudadana para Badajoz Respira:\n\n"+
		"Título: %s\nDescripción: %s", title, description)

	temperature := float32(0.7)
	text, err := a.generator.Generate(ctx, prompt, gemini.GenerateOptions{
		MaxOutputTokens: 100,
		Temperature:     &temperature,
	})
	if err != nil {
		a.logger.Error("Gemini summarizing error", "error", err)
		a.recorder.AssistantCall("summary", "error")
		return blocks.Truncate(description, summaryFallbackLength, "")
	}

	if strings.TrimSpace(text) == "" {
		a.recorder.AssistantCall("summary", "empty")
		return blocks.Truncate(description, summaryFallbackLength, "")
	}

	a.recorder.AssistantCall("summary", "ok")
	return strings.TrimSpace(text)
}
