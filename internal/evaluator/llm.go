package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/prescreen/internal/llm"
)

const evaluateSystemPrompt = `You are a strict but fair technical interviewer scoring a candidate's answer.
Compare the candidate's answer against the reference answer. Judge technical
accuracy, not writing style. Partial credit is expected for answers that are
on the right track but incomplete.`

const evaluateUserTemplate = `Question: %s
Correct Answer: %s
User Answer: %s

Evaluate the user's answer and provide:
1. A score between 0 and 1 based on accuracy
2. Detailed, constructive feedback explaining what was correct and what could be improved
3. A relevant follow-up question if the answer shows partial understanding (score between 0.3 and 0.7)`

// evaluationSchema is the structured output contract for answer evaluation.
var evaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Scored evaluation of a candidate's interview answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     1,
				"description": "Accuracy score between 0 and 1",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Detailed constructive feedback",
			},
			"follow_up": map[string]any{
				"type":        []any{"string", "null"},
				"description": "Follow-up question for partially correct answers, null otherwise",
			},
		},
		"required":             []any{"score", "feedback"},
		"additionalProperties": false,
	},
}

// evaluationWire is the JSON shape the model returns.
type evaluationWire struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
	FollowUp *string `json:"follow_up"`
}

// LLM is an Evaluator backed by an llm.Provider.
type LLM struct {
	provider  llm.Provider
	maxTokens int
}

// NewLLM creates an evaluator over the given provider.
func NewLLM(provider llm.Provider) *LLM {
	return &LLM{
		provider:  provider,
		maxTokens: 1024,
	}
}

// Evaluate scores an answer via the LLM. A response that fails schema
// validation or does not parse yields the neutral result rather than an
// error; provider transport failures are returned to the caller.
func (e *LLM) Evaluate(ctx context.Context, questionText, answerText, correctAnswer string) (*Result, error) {
	ctx = llm.WithPurpose(ctx, "evaluate-answer")

	req := llm.Request{
		System: evaluateSystemPrompt,
		Messages: []llm.Message{
			{
				Role:    llm.RoleUser,
				Content: fmt.Sprintf(evaluateUserTemplate, questionText, correctAnswer, answerText),
			},
		},
		Schema:    evaluationSchema,
		MaxTokens: e.maxTokens,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return Neutral(), nil
		}
		return nil, err
	}

	var wire evaluationWire
	if err := json.Unmarshal(resp.Content, &wire); err != nil {
		return Neutral(), nil
	}

	result := &Result{
		Score:    clampScore(wire.Score),
		Feedback: wire.Feedback,
	}
	if wire.FollowUp != nil {
		result.FollowUp = *wire.FollowUp
	}
	return result, nil
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}
