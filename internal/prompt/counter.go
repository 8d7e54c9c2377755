package prompt

import (
	"unicode/utf8"

	"github.com/anthropics/anthropic-sdk-go"
)

// TokenCounter estimates input-token cost for a message.
type TokenCounter interface {
	CountMessage(m anthropic.MessageParam) int
}

// HeuristicCounter is a deterministic estimator for logs and telemetry. It
// never gates a request.
// Rules:
//   - text blocks: ceil(runes / runesPerToken) plus blockOverhead
//   - any other block: blockOverhead only
type HeuristicCounter struct{}

// Changing these requires updating the guard test.
const (
	runesPerToken = 4
	blockOverhead = 4
)

func (HeuristicCounter) CountMessage(m anthropic.MessageParam) int {
	total := 0
	for _, blk := range m.Content {
		total += countBlock(blk)
	}
	return total
}

func countBlock(blk anthropic.ContentBlockParamUnion) int {
	if tb := blk.OfText; tb != nil {
		r := utf8.RuneCountInString(tb.Text)
		return (r+runesPerToken-1)/runesPerToken + blockOverhead
	}
	return blockOverhead
}

// EstimateTokens applies the HeuristicCounter rules to a single text block.
func EstimateTokens(s string) int {
	return HeuristicCounter{}.CountMessage(Message(s))
}
