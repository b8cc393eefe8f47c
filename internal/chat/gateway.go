package chat

import (
	"context"
	"fmt"
	"time"

	"dispute-assistant/internal/llm"
	"dispute-assistant/internal/session"
)

// SystemDirective is the assistant's standing instruction. It is injected
// into every model call and never persisted with the transcript.
const SystemDirective = "You are an AI assistant that helps users describe and track bank and credit card transaction disputes. " +
	"Ask clear follow-up questions when needed, help the user organize the important facts (merchant, date, amount, what went wrong), " +
	"and draft concise, polite dispute explanations. " +
	"Keep answers practical, user-friendly, and avoid giving legal or financial advice. " +
	"When appropriate, summarize the dispute details you have so far in 3-5 bullet points."

// Gateway adapts a session transcript to the backend client. It returns an
// explicit error on backend failure or timeout; deciding how a failed call
// degrades is the turn pipeline's branch, not this layer's.
type Gateway struct {
	client    llm.Client
	directive string
	timeout   time.Duration
}

func NewGateway(client llm.Client, directive string, timeout time.Duration) *Gateway {
	if directive == "" {
		directive = SystemDirective
	}
	return &Gateway{client: client, directive: directive, timeout: timeout}
}

// GenerateReply calls the backend with the directive plus the full
// transcript and returns the normalized reply text.
func (g *Gateway) GenerateReply(ctx context.Context, state *session.State) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := g.client.Generate(ctx, state.ModelTranscript(g.directive))
	if err != nil {
		return "", fmt.Errorf("backend unavailable: %w", err)
	}
	return resp.Content, nil
}

// FallbackReply is the diagnostic assistant message used when the backend
// could not be reached. It echoes the user's input so the conversational
// contract holds even in degraded environments, and it is persisted like
// any other assistant reply.
func FallbackReply(userMessage string) string {
	return "The AI backend is unavailable in this environment, so no model reply could be generated. " +
		"Check the provider configuration or try again later.\n\n" +
		"Echoing your last message so you can still test the flow:\n" +
		userMessage
}
