package judge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
)

// DefaultHFModel is used when no model override is configured.
const DefaultHFModel = "google/vit-base-patch16-224"

const defaultHFBaseURL = "https://api-inference.huggingface.co"

// HuggingFace analyzes sketches through the hosted inference API for
// image-classification models.
type HuggingFace struct {
	Token   string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewHuggingFace builds a backend for the given token. An empty model
// selects DefaultHFModel.
func NewHuggingFace(token, model string) *HuggingFace {
	if model == "" {
		model = DefaultHFModel
	}
	return &HuggingFace{Token: token, Model: model, BaseURL: defaultHFBaseURL}
}

func (h *HuggingFace) Name() string { return "huggingface" }

type hfPrediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Analyze posts the PNG bytes and reports the best-scoring class. A 503
// from the service means the model is still loading and maps to
// ErrModelWarmingUp.
func (h *HuggingFace) Analyze(ctx context.Context, png []byte) (Verdict, error) {
	url := h.BaseURL + "/models/" + h.Model
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(png))
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Authorization", "Bearer "+h.Token)
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := httpClient(h.Client).Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("hugging face request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verdict{}, fmt.Errorf("hugging face response: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return Verdict{}, ErrModelWarmingUp
	}
	if resp.StatusCode/100 != 2 {
		return Verdict{}, fmt.Errorf("hugging face: %s: %s", resp.Status, snippet(body))
	}

	var preds []hfPrediction
	if err := json.Unmarshal(body, &preds); err != nil {
		return Verdict{}, fmt.Errorf("hugging face response: %w", err)
	}
	if len(preds) == 0 {
		return Verdict{}, fmt.Errorf("hugging face: empty prediction list")
	}
	best := preds[0]
	for _, p := range preds[1:] {
		if p.Score > best.Score {
			best = p
		}
	}
	return Verdict{
		Label:         best.Label,
		Confidence:    math.Round(best.Score*1000) / 10,
		HasConfidence: true,
	}, nil
}
