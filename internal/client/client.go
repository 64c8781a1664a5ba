// Package client talks to the listing API on behalf of the wizard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"myground/internal/models"
	"myground/internal/validation"
)

// ErrNotFound is returned when the API answers 404
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer other than 404
type APIError struct {
	StatusCode int
	Message    string
	Fields     []validation.FieldError
}

func (e *APIError) Error() string {
	return fmt.Sprintf("listing API error: %d - %s", e.StatusCode, e.Message)
}

// Validation returns the field errors reported by the server, if any
func (e *APIError) Validation() *validation.Errors {
	if len(e.Fields) == 0 {
		return nil
	}
	return &validation.Errors{Fields: e.Fields}
}

type envelope struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   string                  `json:"error"`
	Message string                  `json:"message"`
	Errors  []validation.FieldError `json:"errors"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func New(baseURL, token string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
	}
}

// WithHTTPClient replaces the underlying HTTP client
func (c *Client) WithHTTPClient(httpClient *http.Client) *Client {
	c.httpClient = httpClient
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 300 {
			return &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		}
		return fmt.Errorf("failed to decode response: %w", err)
	}

	if resp.StatusCode >= 300 || !env.Success {
		message := env.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message, Fields: env.Errors}
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s data: %w", method, path, err)
	}
	return nil
}

// GetDraft loads a draft
func (c *Client) GetDraft(ctx context.Context, id uuid.UUID) (*models.Draft, error) {
	var draft models.Draft
	if err := c.do(ctx, http.MethodGet, "/api/drafts/"+id.String(), nil, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// CreateDraft stores a new draft
func (c *Client) CreateDraft(ctx context.Context, req models.SaveDraftRequest) (*models.Draft, error) {
	var draft models.Draft
	if err := c.do(ctx, http.MethodPost, "/api/drafts", req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// UpdateDraft overwrites a draft
func (c *Client) UpdateDraft(ctx context.Context, id uuid.UUID, req models.SaveDraftRequest) (*models.Draft, error) {
	var draft models.Draft
	if err := c.do(ctx, http.MethodPut, "/api/drafts/"+id.String(), req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// DeleteDraft discards a draft
func (c *Client) DeleteDraft(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/drafts/"+id.String(), nil, nil)
}

// CreateProperty creates a property from a completed form
func (c *Client) CreateProperty(ctx context.Context, form models.PropertyForm) (*models.Property, error) {
	var property models.Property
	if err := c.do(ctx, http.MethodPost, "/api/properties", form, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// UpdateProperty replaces the form of a property
func (c *Client) UpdateProperty(ctx context.Context, id uuid.UUID, form models.PropertyForm) (*models.Property, error) {
	var property models.Property
	if err := c.do(ctx, http.MethodPut, "/api/properties/"+id.String(), form, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// SubmitProperty publishes a property and removes the originating draft
func (c *Client) SubmitProperty(ctx context.Context, id uuid.UUID, draftID *uuid.UUID) (*models.Property, error) {
	var property models.Property
	req := models.SubmitPropertyRequest{DraftID: draftID}
	if err := c.do(ctx, http.MethodPost, "/api/properties/"+id.String()+"/submit", req, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

// GetFilterOptions fetches the grouped filter taxonomy
func (c *Client) GetFilterOptions(ctx context.Context) (*models.GroupedFilterOptions, error) {
	var grouped models.GroupedFilterOptions
	if err := c.do(ctx, http.MethodGet, "/api/filters/options", nil, &grouped); err != nil {
		return nil, err
	}
	return &grouped, nil
}

// GetPreferences fetches the caller's preferences
func (c *Client) GetPreferences(ctx context.Context) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := c.do(ctx, http.MethodGet, "/api/preferences", nil, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// UpdatePreferences patches the caller's preferences
func (c *Client) UpdatePreferences(ctx context.Context, req models.UpdatePreferenceRequest) (*models.UserPreference, error) {
	var pref models.UserPreference
	if err := c.do(ctx, http.MethodPut, "/api/preferences", req, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}
