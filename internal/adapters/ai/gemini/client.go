// Package gemini implements the ai capability interfaces on the Google
// GenAI API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/okian/compass/internal/adapters/ai"
)

const defaultModel = "gemini-2.5-flash"

// predictPrompt instructs the model to answer in a fixed machine-readable
// shape so Predict can parse it without a schema round trip.
const predictPrompt = "You are a career classifier. Given this skill list, answer with exactly " +
	"one line of the form `role|confidence` where role is a single career role " +
	"name and confidence is a number between 0 and 1. Skills: %s"

// Client implements ai.Advisor and ai.Predictor against Gemini.
type Client struct {
	client    *genai.Client
	modelName string
}

// NewClient creates a Gemini-backed client. The API key is required;
// callers without one should keep the capability nil and surface
// ai.ErrUnavailable instead.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	return &Client{client: client, modelName: model}, nil
}

// Ask sends message to the model and returns the concatenated textual
// reply.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	return c.generate(ctx, message)
}

// Predict asks the model for a single role label plus confidence.
func (c *Client) Predict(ctx context.Context, skills []string) (ai.Prediction, error) {
	if len(skills) == 0 {
		return ai.Prediction{}, errors.New("at least one skill is required")
	}

	reply, err := c.generate(ctx, fmt.Sprintf(predictPrompt, strings.Join(skills, ", ")))
	if err != nil {
		return ai.Prediction{}, err
	}
	return parsePrediction(reply)
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if c == nil || c.client == nil {
		return "", ai.ErrUnavailable
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.modelName, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", ai.ErrEmptyReply
	}
	return output, nil
}

// parsePrediction parses the `role|confidence` contract, tolerating
// surrounding backticks and extra lines.
func parsePrediction(reply string) (ai.Prediction, error) {
	line := strings.TrimSpace(strings.SplitN(reply, "\n", 2)[0])
	line = strings.Trim(line, "`")

	label, conf, ok := strings.Cut(line, "|")
	if !ok {
		return ai.Prediction{}, fmt.Errorf("unparseable prediction %q", reply)
	}
	confidence, err := strconv.ParseFloat(strings.TrimSpace(conf), 64)
	if err != nil || confidence < 0 || confidence > 1 {
		return ai.Prediction{}, fmt.Errorf("bad confidence in prediction %q", reply)
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return ai.Prediction{}, fmt.Errorf("empty label in prediction %q", reply)
	}
	return ai.Prediction{Label: label, Confidence: confidence}, nil
}
