package agent

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/wippyai/cairo-io/errors"
)

type preprocessResponse struct {
	Args string `json:"args"`
}

type postprocessRequest struct {
	Result    string `json:"result"`
	RequestID string `json:"request_id"`
}

// postJSON sends body to url and returns the response body. Non-2xx
// responses are errors.
func postJSON(ctx context.Context, client *http.Client, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Hook(url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Hook(url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Hook(url, err)
	}
	Logger().Debug("hook response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Hook(url, fmt.Errorf("unexpected status %s", resp.Status))
	}
	return data, nil
}

// preprocess forwards the raw JSON arguments and returns the JSON text the
// hook wants encoded instead.
func preprocess(ctx context.Context, client *http.Client, url string, args string) (string, error) {
	if !json.Valid([]byte(args)) {
		return "", errors.InvalidInput(errors.PhaseRuntime, "preprocess requires JSON arguments")
	}
	data, err := postJSON(ctx, client, url, []byte(args))
	if err != nil {
		return "", err
	}
	var resp preprocessResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", errors.Hook(url, fmt.Errorf("decode response: %w", err))
	}
	return resp.Args, nil
}

// postprocess sends the decoded result and returns the hook's response as compact JSON text.
func postprocess(ctx context.Context, client *http.Client, url, result, requestID string) (string, error) {
	body, err := json.Marshal(postprocessRequest{Result: result, RequestID: requestID})
	if err != nil {
		return "", errors.Hook(url, err)
	}
	data, err := postJSON(ctx, client, url, body)
	if err != nil {
		return "", err
	}
	var out bytes.Buffer
	if err := json.Compact(&out, data); err != nil {
		return "", errors.Hook(url, fmt.Errorf("decode response: %w", err))
	}
	return out.String(), nil
}
