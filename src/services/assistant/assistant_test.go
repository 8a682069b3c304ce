package assistant_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"badajozrespira/src/infra/gemini"
	"badajozrespira/src/services/assistant"
)

type fakeGenerator struct {
	text    string
	err     error
	prompts []string
	opts    []gemini.GenerateOptions
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, opts gemini.GenerateOptions) (string, error) {
	g.prompts = append(g.prompts, prompt)
	g.opts = append(g.opts, opts)
	return g.text, g.err
}

var _ = Describe("Assistant", func() {
	var (
		logger *slog.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	Context("when no API key is configured", func() {
		It("answers with the unavailable message", func() {
			a := assistant.NewAssistant(logger, nil, nil)

			Expect(a.Configured()).To(BeFalse())
			Expect(a.Ask(ctx, "¿Hay parques cerca?")).To(Equal(assistant.MsgUnavailable))
		})

		It("summarizes with the first 100 characters of the description", func() {
			a := assistant.NewAssistant(logger, nil, nil)
			description := strings.Repeat("a", 150)

			Expect(a.SummarizeProposal(ctx, "t", description)).To(Equal(strings.Repeat("a", 100) + "..."))
		})
	})

	Context("when the generator answers", func() {
		It("includes the question in the prompt and limits the output", func() {
			gen := &fakeGenerator{text: "Respire hondo."}
			a := assistant.NewAssistant(logger, gen, nil)

			Expect(a.Ask(ctx, "¿Es bueno correr al amanecer?")).To(Equal("Respire hondo."))
			Expect(gen.prompts[0]).To(ContainSubstring("¿Es bueno correr al amanecer?"))
			Expect(gen.prompts[0]).To(ContainSubstring("Badajoz Respira"))
			Expect(gen.opts[0].MaxOutputTokens).To(BeEquivalentTo(300))
		})

		It("summarizes with temperature 0.7 and 100 tokens", func() {
			gen := &fakeGenerator{text: " Un carril bici junto al río. "}
			a := assistant.NewAssistant(logger, gen, nil)

			summary := a.SummarizeProposal(ctx, "Carril bici", "Conectar el puente con el parque")

			Expect(summary).To(Equal("Un carril bici junto al río."))
			Expect(gen.opts[0].MaxOutputTokens).To(BeEquivalentTo(100))
			Expect(*gen.opts[0].Temperature).To(BeNumerically("~", 0.7, 0.001))
			Expect(gen.prompts[0]).To(ContainSubstring("Título: Carril bici"))
		})
	})

	Context("when the generator fails", func() {
		It("returns the connection error message", func() {
			a := assistant.NewAssistant(logger, &fakeGenerator{err: errors.New("quota")}, nil)

			Expect(a.Ask(ctx, "hola")).To(Equal(assistant.MsgError))
		})

		It("falls back to the truncated description without ellipsis", func() {
			a := assistant.NewAssistant(logger, &fakeGenerator{err: errors.New("quota")}, nil)
			description := strings.Repeat("b", 120)

			Expect(a.SummarizeProposal(ctx, "t", description)).To(Equal(strings.Repeat("b", 100)))
		})
	})

	Context("when the generator returns no text", func() {
		It("answers that the question could not be processed", func() {
			a := assistant.NewAssistant(logger, &fakeGenerator{text: ""}, nil)

			Expect(a.Ask(ctx, "hola")).To(Equal(assistant.MsgEmpty))
		})
	})
})
