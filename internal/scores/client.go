package scores

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	Path        = "/highscores"
	MsgpackType = "application/msgpack"
	JSONType    = "application/json"
)

// Client talks to the score server
type Client struct {
	baseURL string
	http    *http.Client
	signer  *Signer
}

// NewClient creates a client for the server at baseURL. signer may be nil.
func NewClient(baseURL string, signer *Signer) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 5 * time.Second},
		signer:  signer,
	}
}

// Top fetches the current high-score list
func (c *Client) Top(ctx context.Context) ([]Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+Path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", JSONType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get high scores: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get high scores: unexpected status %s", resp.Status)
	}
	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode high scores: %w", err)
	}
	return records, nil
}

// Submit posts a finished session's record and returns what the server stored
func (c *Client) Submit(ctx context.Context, r Record) (Record, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return Record{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+Path, bytes.NewReader(body))
	if err != nil {
		return Record{}, err
	}
	req.Header.Set("Content-Type", JSONType)
	if c.signer.Enabled() {
		token, err := c.signer.Sign(r)
		if err != nil {
			return Record{}, fmt.Errorf("sign submission: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Record{}, fmt.Errorf("post high score: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Record{}, fmt.Errorf("post high score: %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	var stored Record
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return Record{}, fmt.Errorf("decode stored score: %w", err)
	}
	return stored, nil
}
