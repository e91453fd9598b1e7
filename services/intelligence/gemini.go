package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"advisordesk/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const intentPrompt = `You classify one caller utterance for an advisor
appointment assistant. Reply with exactly one word out of:
book, reschedule, cancel, prepare, check_availability.
Utterance: %q`

type GeminiClient struct {
	model *genai.GenerativeModel
}

func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiClient{model: model}, nil
}

// ClassifyIntent asks the model for one of the five labels. Anything else
// is an error; the caller degrades to unknown.
func (g *GeminiClient) ClassifyIntent(ctx context.Context, utterance string) (models.IntentLabel, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(intentPrompt, utterance)))
	if err != nil {
		return models.IntentUnknown, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return models.IntentUnknown, errors.New("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	label, ok := ParseLabel(sb.String())
	if !ok {
		return models.IntentUnknown, fmt.Errorf("gemini returned unrecognized label %q", sb.String())
	}
	return label, nil
}
