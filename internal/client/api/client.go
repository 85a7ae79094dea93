// Package api implements the HTTP client for the Distory story API.
//
// Responses use a JSON envelope with a boolean error flag and a message
// on failure. Authenticated calls carry a bearer token; calls that
// require a token fail fast with common.ErrNoToken before touching the
// network.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/distory/internal/client/models"
	"github.com/dmitrijs2005/distory/internal/common"
)

// Client describes the remote story API operations used by services and
// the worker. Implementations must honor context cancellation.
type Client interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) error
	GetStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error)
	GetStory(ctx context.Context, token, id string) (*models.Story, error)
	AddStory(ctx context.Context, token string, story *models.PendingStory) error
	Subscribe(ctx context.Context, token string, sub *PushSubscription) error
	Unsubscribe(ctx context.Context, token, endpoint string) error
}

// LoginResult is the payload of a successful login.
type LoginResult struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token"`
}

// PushSubscription mirrors the subscription object sent to the
// notifications endpoint.
type PushSubscription struct {
	Endpoint string `json:"endpoint"`
	Keys     struct {
		P256dh string `json:"p256dh"`
		Auth   string `json:"auth"`
	} `json:"keys"`
}

// envelope is the common wrapper on every API response.
type envelope struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

// HTTPClient is the production Client over net/http.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient builds a client for the given API base URL, e.g.
// "https://story-api.dicoding.dev/v1".
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}

	var out struct {
		envelope
		LoginResult LoginResult `json:"loginResult"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", "application/json", bytes.NewReader(body), &out); err != nil {
		return nil, err
	}
	return &out.LoginResult, nil
}

func (c *HTTPClient) Register(ctx context.Context, name, email, password string) error {
	body, err := json.Marshal(map[string]string{"name": name, "email": email, "password": password})
	if err != nil {
		return err
	}

	var out envelope
	return c.do(ctx, http.MethodPost, "/register", "", "application/json", bytes.NewReader(body), &out)
}

func (c *HTTPClient) GetStories(ctx context.Context, token string, page, size int, withLocation bool) ([]models.Story, error) {
	if token == "" {
		return nil, common.ErrNoToken
	}

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	location := 0
	if withLocation {
		location = 1
	}
	q.Set("location", strconv.Itoa(location))

	var out struct {
		envelope
		ListStory []models.Story `json:"listStory"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories?"+q.Encode(), token, "", nil, &out); err != nil {
		return nil, err
	}
	return out.ListStory, nil
}

func (c *HTTPClient) GetStory(ctx context.Context, token, id string) (*models.Story, error) {
	if token == "" {
		return nil, common.ErrNoToken
	}

	var out struct {
		envelope
		Story models.Story `json:"story"`
	}
	if err := c.do(ctx, http.MethodGet, "/stories/"+id, token, "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Story, nil
}

// AddStory submits a pending story as multipart form data: description,
// photo, optional lat/lon.
func (c *HTTPClient) AddStory(ctx context.Context, token string, story *models.PendingStory) error {
	if token == "" {
		return common.ErrNoToken
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", story.Description); err != nil {
		return err
	}
	if story.Lat != nil {
		if err := w.WriteField("lat", strconv.FormatFloat(*story.Lat, 'f', -1, 64)); err != nil {
			return err
		}
	}
	if story.Lon != nil {
		if err := w.WriteField("lon", strconv.FormatFloat(*story.Lon, 'f', -1, 64)); err != nil {
			return err
		}
	}

	part, err := w.CreateFormFile("photo", "photo.jpg")
	if err != nil {
		return err
	}
	if _, err := part.Write(story.Photo); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	var out envelope
	return c.do(ctx, http.MethodPost, "/stories", token, w.FormDataContentType(), &buf, &out)
}

func (c *HTTPClient) Subscribe(ctx context.Context, token string, sub *PushSubscription) error {
	if token == "" {
		return common.ErrNoToken
	}

	body, err := json.Marshal(sub)
	if err != nil {
		return err
	}

	var out envelope
	return c.do(ctx, http.MethodPost, "/notifications/subscribe", token, "application/json", bytes.NewReader(body), &out)
}

func (c *HTTPClient) Unsubscribe(ctx context.Context, token, endpoint string) error {
	if token == "" {
		return common.ErrNoToken
	}

	body, err := json.Marshal(map[string]string{"endpoint": endpoint})
	if err != nil {
		return err
	}

	var out envelope
	return c.do(ctx, http.MethodDelete, "/notifications/subscribe", token, "application/json", bytes.NewReader(body), &out)
}

// do performs a request against path, decodes the JSON envelope into out
// and maps transport and API failures onto package errors.
func (c *HTTPClient) do(ctx context.Context, method, path, token, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	// The envelope error flag trumps the HTTP status.
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Error {
		return fmt.Errorf("api error: %s", env.Message)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("api error: status %d", resp.StatusCode)
	}
	return nil
}
