package judge

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

// geminiServer serves a canned candidate text and records what the client
// sent.
func geminiServer(t *testing.T, text string) (*Gemini, *geminiRequest) {
	t.Helper()
	var got geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1beta/models/gemini-1.5-flash:generateContent" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "sekrit" {
			t.Errorf("key = %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":` + strconv.Quote(text) + `}]}}]}`))
	}))
	t.Cleanup(srv.Close)
	g := NewGemini("sekrit", "")
	g.BaseURL = srv.URL
	g.Client = srv.Client()
	return g, &got
}

func TestGeminiDirectJSONReply(t *testing.T) {
	g, got := geminiServer(t, `{"label":"boat","confidence":72,"critique":"add a sail"}`)
	png := []byte("not-a-real-png")
	v, err := g.Analyze(context.Background(), png)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Label != "boat" || !v.HasConfidence || v.Confidence != 72 || v.Critique != "add a sail" {
		t.Fatalf("verdict = %+v", v)
	}
	if v.Raw != "" {
		t.Fatalf("parsed verdict kept raw text %q", v.Raw)
	}

	parts := got.Contents[0].Parts
	if parts[0].Text != geminiPrompt {
		t.Fatalf("prompt = %q", parts[0].Text)
	}
	if parts[1].InlineData.MIMEType != "image/png" {
		t.Fatalf("mime = %q", parts[1].InlineData.MIMEType)
	}
	if parts[1].InlineData.Data != base64.StdEncoding.EncodeToString(png) {
		t.Fatalf("inline data does not round-trip the png bytes")
	}
}

func TestGeminiExtractsJSONFromProse(t *testing.T) {
	g, _ := geminiServer(t, "Sure, here is my judgement:\n```json\n{\"label\":\"house\",\"confidence\":80,\"critique\":\"nice roofline\"}\n```\nHope that helps!")
	v, err := g.Analyze(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Label != "house" || v.Confidence != 80 || v.Critique != "nice roofline" {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestGeminiKeepsUnparseableReply(t *testing.T) {
	g, _ := geminiServer(t, "It looks like a duck to me.")
	v, err := g.Analyze(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Label != "" || v.Raw != "It looks like a duck to me." {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestGeminiStringConfidenceAndMissingLabel(t *testing.T) {
	g, _ := geminiServer(t, `{"confidence":"88.5","critique":"bold lines"}`)
	v, err := g.Analyze(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Label != "Unknown" {
		t.Fatalf("label = %q, want Unknown", v.Label)
	}
	if !v.HasConfidence || v.Confidence != 88.5 {
		t.Fatalf("confidence = %+v", v)
	}
}

func TestGeminiNoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()
	g := NewGemini("k", "")
	g.BaseURL = srv.URL
	g.Client = srv.Client()
	v, err := g.Analyze(context.Background(), []byte("png"))
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if v.Raw != "No response" {
		t.Fatalf("verdict = %+v, want No response", v)
	}
}

func TestGeminiHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()
	g := NewGemini("bad", "")
	g.BaseURL = srv.URL
	g.Client = srv.Client()
	_, err := g.Analyze(context.Background(), []byte("png"))
	if err == nil {
		t.Fatal("Analyze succeeded on a 400")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Fatalf("error %q does not mention the status", err)
	}
}

func TestParseGeminiVerdictPrefersWholeObject(t *testing.T) {
	v := parseGeminiVerdict(`{"label":"sun","confidence":99,"critique":""}`)
	if v.Label != "sun" || v.Confidence != 99 {
		t.Fatalf("verdict = %+v", v)
	}
}
