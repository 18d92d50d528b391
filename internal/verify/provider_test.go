package verify

import (
	"context"

	"github.com/factcheckit/factcheckit/internal/llm"
)

// stubProvider returns a canned reply or error for every completion.
type stubProvider struct {
	reply string
	err   error

	// lastPrompt records the most recent prompt for assertions.
	lastPrompt string
}

func (p *stubProvider) Complete(_ context.Context, prompt string, _ llm.CompletionOptions) (string, error) {
	p.lastPrompt = prompt
	return p.reply, p.err
}

func (p *stubProvider) CompleteWithSystem(_ context.Context, _, user string, _ llm.CompletionOptions) (string, error) {
	p.lastPrompt = user
	return p.reply, p.err
}

func (p *stubProvider) Name() string {
	return "stub"
}
