// Package judge sends a rasterized sketch to an image-analysis service and
// normalizes the reply into a label, an optional confidence and a critique.
// Two backends are interchangeable behind the Judge interface; which one
// runs is a pure function of the configured credentials.
package judge

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"
)

// RequestTimeout bounds one backend call end to end. There is no way to
// cancel a call from the UI; it runs to completion or to this deadline.
const RequestTimeout = 60 * time.Second

// ErrNotConfigured is returned when neither backend has a credential. No
// network call is attempted in that case.
var ErrNotConfigured = errors.New("no analysis backend configured: set GEMINI_API_KEY (Gemini) or HF_API_TOKEN (Hugging Face)")

// ErrModelWarmingUp distinguishes the classification service's cold-start
// reply from real failures so the UI can suggest retrying.
var ErrModelWarmingUp = errors.New("the model is still loading, try again in a few seconds")

// Verdict is the normalized analysis result. When structured parsing
// failed, Raw carries the backend's text verbatim and the other fields are
// empty; confidence is only meaningful when HasConfidence is set.
type Verdict struct {
	Label         string
	Confidence    float64
	HasConfidence bool
	Critique      string
	Raw           string
}

// Message renders the verdict the way the result dialog shows it.
func (v Verdict) Message() string {
	if v.Label == "" {
		return v.Raw
	}
	conf := "?"
	if v.HasConfidence {
		conf = strconv.FormatFloat(v.Confidence, 'f', -1, 64)
	}
	msg := "Label: " + v.Label + "\nConfidence: " + conf
	if v.Critique != "" {
		msg += "\n\n" + v.Critique
	}
	return msg
}

// Judge is one analysis backend.
type Judge interface {
	// Name identifies the backend in logs and outcome reports.
	Name() string
	// Analyze submits a PNG encoding of the sketch and returns the
	// normalized verdict.
	Analyze(ctx context.Context, png []byte) (Verdict, error)
}

// Credentials carries the environment-provided backend settings.
type Credentials struct {
	GeminiKey   string
	GeminiModel string
	HFToken     string
	HFModel     string
}

// CredentialsFromEnv reads the backend credentials and optional model
// overrides from the process environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
		HFToken:     os.Getenv("HF_API_TOKEN"),
		HFModel:     os.Getenv("HF_MODEL"),
	}
}

// Pick selects the backend for the given credentials: Gemini when its key
// is present (it wins when both are configured), otherwise Hugging Face,
// otherwise ErrNotConfigured.
func Pick(creds Credentials) (Judge, error) {
	if creds.GeminiKey != "" {
		return NewGemini(creds.GeminiKey, creds.GeminiModel), nil
	}
	if creds.HFToken != "" {
		return NewHuggingFace(creds.HFToken, creds.HFModel), nil
	}
	return nil, ErrNotConfigured
}

func httpClient(c *http.Client) *http.Client {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: RequestTimeout}
}
