package judge

import (
	"errors"
	"testing"
)

func TestPickPrefersGemini(t *testing.T) {
	j, err := Pick(Credentials{GeminiKey: "g", HFToken: "h"})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if _, ok := j.(*Gemini); !ok {
		t.Fatalf("Pick with both credentials = %T, want *Gemini", j)
	}
}

func TestPickFallsBackToHuggingFace(t *testing.T) {
	j, err := Pick(Credentials{HFToken: "h"})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	hf, ok := j.(*HuggingFace)
	if !ok {
		t.Fatalf("Pick with HF token = %T, want *HuggingFace", j)
	}
	if hf.Model != DefaultHFModel {
		t.Fatalf("model = %q, want default %q", hf.Model, DefaultHFModel)
	}
}

func TestPickUnconfigured(t *testing.T) {
	if _, err := Pick(Credentials{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("Pick with no credentials = %v, want ErrNotConfigured", err)
	}
}

func TestPickHonorsModelOverrides(t *testing.T) {
	j, err := Pick(Credentials{GeminiKey: "g", GeminiModel: "gemini-2.0-pro"})
	if err != nil {
		t.Fatalf("Pick: %v", err)
	}
	if g := j.(*Gemini); g.Model != "gemini-2.0-pro" {
		t.Fatalf("model = %q, want override", g.Model)
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gk")
	t.Setenv("GEMINI_MODEL", "gm")
	t.Setenv("HF_API_TOKEN", "ht")
	t.Setenv("HF_MODEL", "hm")
	got := CredentialsFromEnv()
	want := Credentials{GeminiKey: "gk", GeminiModel: "gm", HFToken: "ht", HFModel: "hm"}
	if got != want {
		t.Fatalf("CredentialsFromEnv = %+v, want %+v", got, want)
	}
}

func TestVerdictMessage(t *testing.T) {
	v := Verdict{Label: "house", Confidence: 80, HasConfidence: true, Critique: "nice roofline"}
	want := "Label: house\nConfidence: 80\n\nnice roofline"
	if got := v.Message(); got != want {
		t.Fatalf("Message = %q, want %q", got, want)
	}
}

func TestVerdictMessageUnknownConfidence(t *testing.T) {
	v := Verdict{Label: "cat"}
	if got := v.Message(); got != "Label: cat\nConfidence: ?" {
		t.Fatalf("Message = %q", got)
	}
}

func TestVerdictMessageRawPassthrough(t *testing.T) {
	v := Verdict{Raw: "I cannot tell what this is."}
	if got := v.Message(); got != "I cannot tell what this is." {
		t.Fatalf("Message = %q", got)
	}
}
