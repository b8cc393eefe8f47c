package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const workersAIBaseURL = "https://api.cloudflare.com/client/v4"

// WorkersAIClient calls Cloudflare Workers AI over its REST API.
// The result field of the response envelope is loosely shaped depending on
// the model: plain text, or an object carrying the text under one of a few
// recognized keys. normalizeResult folds every shape into a single text
// value instead of rejecting unknown ones.
type WorkersAIClient struct {
	accountID  string
	apiToken   string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewWorkersAI(accountID, apiToken, model string) *WorkersAIClient {
	if model == "" {
		model = DefaultModel
	}
	return &WorkersAIClient{
		accountID:  accountID,
		apiToken:   apiToken,
		model:      model,
		baseURL:    workersAIBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

type workersAIEnvelope struct {
	Result  json.RawMessage `json:"result"`
	Success bool            `json:"success"`
	Errors  []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (c *WorkersAIClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	payload := struct {
		Messages []Message `json:"messages"`
	}{Messages: messages}
	body, err := json.Marshal(payload)
	if err != nil {
		return Response{}, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, url.PathEscape(c.accountID), url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("workers ai request failed: %w", err)
	}
	defer func(b io.ReadCloser) {
		_ = b.Close()
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("workers ai returned status %d", resp.StatusCode)
	}

	var env workersAIEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Response{}, fmt.Errorf("decode envelope: %w", err)
	}
	if !env.Success {
		if len(env.Errors) > 0 {
			return Response{}, fmt.Errorf("workers ai error %d: %s", env.Errors[0].Code, env.Errors[0].Message)
		}
		return Response{}, fmt.Errorf("workers ai reported failure without detail")
	}

	return Response{Content: normalizeResult(env.Result), Model: c.model}, nil
}

// normalizeResult folds the recognized result shapes into text: a JSON
// string is taken as-is, an object yields its "response" or "output_text"
// field, and anything unrecognized is serialized back as raw JSON so a
// surprising model never turns into a hard failure.
func normalizeResult(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var obj struct {
		Response   string `json:"response"`
		OutputText string `json:"output_text"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		if obj.Response != "" {
			return obj.Response
		}
		if obj.OutputText != "" {
			return obj.OutputText
		}
	}
	return string(raw)
}
