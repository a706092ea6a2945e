package generator

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/edubrinca/pkg/core"
)

// RemoteCall is one structured generation request.
type RemoteCall struct {
	Kind   core.Kind
	Prompt string
	// Grounding asks the backend to consult web search and report its sources.
	Grounding bool
}

// RemoteResult is the raw structured answer of the backend.
type RemoteResult struct {
	// Text is the JSON document produced under the kind's response schema.
	Text    string
	Sources []core.Source
}

// Remote is a hosted text-generation backend.
type Remote interface {
	// Ready returns nil when the backend is configured and usable.
	Ready(ctx context.Context) error
	Generate(ctx context.Context, call RemoteCall) (RemoteResult, error)
}

// planPayload is the lesson plan shape the backend must return.
type planPayload struct {
	Objective       string               `json:"objective"`
	Materials       []string             `json:"materials"`
	Steps           []core.Step          `json:"steps"`
	Differentiation core.Differentiation `json:"differentiation"`
}

// activityPayload is the activity sheet shape the backend must return.
type activityPayload struct {
	Questions []struct {
		Instruction string `json:"instruction"`
		Content     string `json:"content"`
		Answer      string `json:"answer"`
	} `json:"questions"`
}

func decodePayload(text string, v any) error {
	if text == "" {
		return fmt.Errorf("empty response")
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("malformed response: %w", err)
	}
	return nil
}
