// Package remote mirrors the highscore table to a JSON file in a GitHub
// repository and merges it with the local copy. Every operation is best
// effort: callers fall back to local data on any error.
package remote

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/vovakirdan/vibe-snake/internal/highscore"
)

// ErrNoToken is returned when no API token is configured.
var ErrNoToken = errors.New("remote: no GitHub token configured")

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 1 << 20

// StatusError reports a non-2xx answer from the API.
type StatusError struct {
	Op         string // "fetch" or "put"
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s failed: %s", e.Op, e.Status)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Config locates the highscore file.
type Config struct {
	APIBase       string // e.g. https://api.github.com
	Owner         string
	Repo          string
	Path          string // path of the JSON file inside the repository
	Branch        string // empty means the default branch
	Token         string
	CommitMessage string
}

// Client talks to the GitHub contents API.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a client. A nil httpClient gets a 10 second timeout.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.github.com"
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = "Update highscores from Vibe Snake game"
	}
	return &Client{cfg: cfg, http: httpClient}
}

// HasToken reports whether a token is configured.
func (c *Client) HasToken() bool {
	return c.cfg.Token != ""
}

func (c *Client) contentsURL() string {
	u := fmt.Sprintf("%s/repos/%s/%s/contents/%s",
		strings.TrimRight(c.cfg.APIBase, "/"),
		url.PathEscape(c.cfg.Owner),
		url.PathEscape(c.cfg.Repo),
		strings.TrimLeft(c.cfg.Path, "/"),
	)
	if c.cfg.Branch != "" {
		u += "?ref=" + url.QueryEscape(c.cfg.Branch)
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.contentsURL(), body)
	if err != nil {
		return nil, fmt.Errorf("remote: cannot build request: %w", err)
	}
	req.Header.Set("Authorization", "token "+c.cfg.Token)
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Fetch returns the remote table and its revision token (the blob sha)
// needed for a later Put.
func (c *Client) Fetch(ctx context.Context) (highscore.Table, string, error) {
	if !c.HasToken() {
		return nil, "", ErrNoToken
	}

	req, err := c.newRequest(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("remote: fetch request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &StatusError{Op: "fetch", StatusCode: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, "", fmt.Errorf("remote: cannot read response: %w", err)
	}
	return decodeContents(body)
}

// decodeContents extracts the base64 file content and sha from a contents
// API response.
func decodeContents(body []byte) (highscore.Table, string, error) {
	if !gjson.ValidBytes(body) {
		return nil, "", errors.New("remote: response is not JSON")
	}
	content := gjson.GetBytes(body, "content")
	if !content.Exists() {
		return nil, "", errors.New("remote: response has no content field")
	}
	sha := gjson.GetBytes(body, "sha").String()

	raw, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(content.String()), ""))
	if err != nil {
		return nil, "", fmt.Errorf("remote: cannot decode content: %w", err)
	}

	var t highscore.Table
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, "", fmt.Errorf("remote: cannot parse highscores: %w", err)
	}
	if t == nil {
		t = highscore.Table{}
	}
	return t, sha, nil
}

// Put replaces the remote file with t. revision must be the sha from the
// preceding Fetch; an empty revision creates the file.
func (c *Client) Put(ctx context.Context, t highscore.Table, revision string) error {
	if !c.HasToken() {
		return ErrNoToken
	}
	if t == nil {
		t = highscore.Table{}
	}

	payload, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return fmt.Errorf("remote: cannot encode highscores: %w", err)
	}

	body, err := c.putBody(base64.StdEncoding.EncodeToString(payload), revision)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPut, bytes.NewReader(body))
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("remote: put request failed: %w", err)
	}
	defer resp.Body.Close()
	//nolint:errcheck // Drain so the connection can be reused
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseSize))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "put", StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}

func (c *Client) putBody(content, revision string) ([]byte, error) {
	body := []byte(`{}`)
	var err error
	set := func(path, value string) {
		if err == nil {
			body, err = sjson.SetBytes(body, path, value)
		}
	}

	set("message", c.cfg.CommitMessage)
	set("content", content)
	if revision != "" {
		set("sha", revision)
	}
	if c.cfg.Branch != "" {
		set("branch", c.cfg.Branch)
	}
	if err != nil {
		return nil, fmt.Errorf("remote: cannot build request body: %w", err)
	}
	return body, nil
}
