package judge

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
)

// DefaultGeminiModel is used when no model override is configured.
const DefaultGeminiModel = "gemini-1.5-flash"

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// geminiPrompt asks for a machine-readable reply; the parser still copes
// with prose around (or instead of) the JSON object.
const geminiPrompt = "You are a drawing judge. Look at the sketch and provide: " +
	"1) a short label for what it depicts, " +
	"2) a confidence 0-100, " +
	"3) a one-sentence critique or suggestion. " +
	"Respond in JSON with keys: label, confidence, critique."

var jsonObjectRE = regexp.MustCompile(`\{[\s\S]*\}`)

// Gemini analyzes sketches through the generative-language REST endpoint.
type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// NewGemini builds a backend for the given key. An empty model selects
// DefaultGeminiModel.
func NewGemini(key, model string) *Gemini {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{APIKey: key, Model: model, BaseURL: defaultGeminiBaseURL}
}

func (g *Gemini) Name() string { return "gemini" }

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MIMEType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Analyze sends the sketch with the judging prompt and parses the model's
// reply. A reply that is not valid JSON degrades to the raw text rather
// than failing.
func (g *Gemini) Analyze(ctx context.Context, png []byte) (Verdict, error) {
	reqBody := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{
		{Text: geminiPrompt},
		{InlineData: &geminiInlineData{
			MIMEType: "image/png",
			Data:     base64.StdEncoding.EncodeToString(png),
		}},
	}}}}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Verdict{}, fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", g.BaseURL, g.Model, g.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Verdict{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient(g.Client).Do(req)
	if err != nil {
		return Verdict{}, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Verdict{}, fmt.Errorf("gemini response: %w", err)
	}
	if resp.StatusCode/100 != 2 {
		return Verdict{}, fmt.Errorf("gemini: %s: %s", resp.Status, snippet(body))
	}

	var parsed geminiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Verdict{}, fmt.Errorf("gemini response: %w", err)
	}
	content := geminiText(parsed)
	if content == "" {
		return Verdict{Raw: "No response"}, nil
	}
	return parseGeminiVerdict(content), nil
}

func geminiText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}

// parseGeminiVerdict tries the reply as a JSON object, then the first
// brace-delimited block inside it, then gives up and keeps the text.
func parseGeminiVerdict(content string) Verdict {
	if v, ok := verdictFromJSON(content); ok {
		return v
	}
	if block := jsonObjectRE.FindString(content); block != "" {
		if v, ok := verdictFromJSON(block); ok {
			return v
		}
	}
	return Verdict{Raw: content}
}

func verdictFromJSON(s string) (Verdict, bool) {
	var obj struct {
		Label      string `json:"label"`
		Confidence any    `json:"confidence"`
		Critique   string `json:"critique"`
	}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return Verdict{}, false
	}
	v := Verdict{Label: obj.Label, Critique: obj.Critique}
	if v.Label == "" {
		v.Label = "Unknown"
	}
	if conf, ok := asConfidence(obj.Confidence); ok {
		v.Confidence = conf
		v.HasConfidence = true
	}
	return v, true
}

func asConfidence(v any) (float64, bool) {
	switch c := v.(type) {
	case float64:
		return c, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(c), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
