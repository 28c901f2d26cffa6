// Package agent asks a Gemini model to comment on gold trading results.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/etnz/auragold"
	"google.golang.org/genai"
)

const instruction = `
You are a careful assistant reviewing a personal gold trading ledger.
You receive the trading statistics as markdown tables. Amounts are already
computed, never recompute them and never invent figures that are not in the tables.

Write a short review (at most three paragraphs) covering:
  - whether the trades are profitable overall, and how much the handling fees weigh
  - the gap between the actual profit and the projected profit at the desired prices
  - one practical observation about the trading pattern (win rate, volume, margin)

Do not give investment advice. Answer in markdown.
`

// Summarizer is a chat with a model dedicated to reviewing trade statistics.
type Summarizer struct {
	ModelName string
	Config    *genai.GenerateContentConfig
	chat      *genai.Chat
}

// NewSummarizer returns a Summarizer using the given model.
func NewSummarizer(model string) *Summarizer {
	return &Summarizer{
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: instruction}}},
		},
	}
}

// Start creates the chat session.
func (s *Summarizer) Start(ctx context.Context, client *genai.Client) error {
	chat, err := client.Chats.Create(ctx, s.ModelName, s.Config, nil)
	if err != nil {
		return fmt.Errorf("could not create chat with model %q: %w", s.ModelName, err)
	}
	s.chat = chat
	return nil
}

// Summarize asks the model to review the statistics in markdown form.
// Follow-up calls on the same Summarizer keep the chat history.
func (s *Summarizer) Summarize(ctx context.Context, stats string, lang auragold.Lang) (string, error) {
	if s.chat == nil {
		return "", fmt.Errorf("summarizer is not started")
	}
	resp, err := s.chat.Send(ctx, &genai.Part{Text: Prompt(stats, lang)})
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from model %s", s.ModelName)
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return b.String(), nil
}

// Prompt builds the user message for the statistics.
func Prompt(stats string, lang auragold.Lang) string {
	language := "English"
	if lang == auragold.LangZh {
		language = "Simplified Chinese"
	}
	return fmt.Sprintf("Review these gold trading statistics. Answer in %s.\n\n%s", language, stats)
}
