package gemini

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	cloudPlatformScope = "https://www.googleapis.com/auth/cloud-platform"
	defaultLocation    = "us-central1"
)

// State is the lifecycle of the credential-bound client.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// client issues generateContent calls in one of two modes: API key against
// the Generative Language API, or service account against Vertex AI.
type client struct {
	http     *http.Client
	apiKey   string
	endpoint func(model string) string
	mode     string
}

func (c *client) generateURL(model string) string {
	return c.endpoint(model) + ":generateContent"
}

type initError struct {
	reason string
}

func (e *initError) Error() string { return e.reason }

func newClient(opts Options, credential string) (*client, error) {
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return nil, &initError{reason: "no Gemini API key or service account configured"}
	}

	if data, ok := serviceAccountJSON(credential); ok {
		return newVertexClient(opts, data)
	}
	if strings.HasPrefix(credential, "{") {
		return nil, &initError{reason: "credential looks like JSON but is not a Google service account key; provide a Gemini API key or a service account JSON file"}
	}

	base := strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if base == "" {
		base = defaultURL
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, &initError{reason: fmt.Sprintf("invalid Gemini endpoint %q: %v", base, err)}
	}
	return &client{
		http:   opts.HTTPClient,
		apiKey: credential,
		mode:   "api_key",
		endpoint: func(model string) string {
			return base + "/" + url.PathEscape(model)
		},
	}, nil
}

func newVertexClient(opts Options, data []byte) (*client, error) {
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)
	creds, err := google.CredentialsFromJSON(ctx, data, cloudPlatformScope)
	if err != nil {
		return nil, &initError{reason: fmt.Sprintf("load service account credentials: %v", err)}
	}

	projectID := strings.TrimSpace(opts.ProjectID)
	if projectID == "" {
		projectID = creds.ProjectID
	}
	if projectID == "" {
		return nil, &initError{reason: "service account has no project_id; set providers.gemini.project_id"}
	}
	location := strings.TrimSpace(opts.Location)
	if location == "" {
		location = defaultLocation
	}

	base := strings.TrimRight(strings.TrimSpace(opts.VertexURL), "/")
	if base == "" {
		base = fmt.Sprintf("https://%s-aiplatform.googleapis.com/v1", location)
	}
	prefix := fmt.Sprintf("%s/projects/%s/locations/%s/publishers/google/models/", base, projectID, location)

	httpClient := oauth2.NewClient(ctx, creds.TokenSource)
	httpClient.Timeout = opts.HTTPClient.Timeout

	return &client{
		http: httpClient,
		mode: "vertex",
		endpoint: func(model string) string {
			return prefix + url.PathEscape(model)
		},
	}, nil
}

// serviceAccountJSON recognises a service account key given inline or
// base64 encoded.
func serviceAccountJSON(credential string) ([]byte, bool) {
	candidates := [][]byte{[]byte(credential)}
	if decoded, err := base64.StdEncoding.DecodeString(credential); err == nil {
		candidates = append(candidates, decoded)
	}
	for _, data := range candidates {
		if !json.Valid(data) {
			continue
		}
		var probe struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(data, &probe); err == nil && probe.Type == "service_account" {
			return data, true
		}
	}
	return nil, false
}
