package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"nexus-dashboard/internal/domain"
)

type pushRequest struct {
	Key  string          `json:"key"`
	Data json.RawMessage `json:"data"`
}

type httpRemote struct {
	url    string
	client *http.Client
}

// NewHTTP talks to a single data endpoint: GET returns the snapshot, POST {key, data} stores one
// partition.
func NewHTTP(url string, timeout time.Duration) Remote {
	return &httpRemote{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

func (r *httpRemote) Name() string { return "http" }

func (r *httpRemote) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	var snap domain.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return &snap, nil
}

func (r *httpRemote) Push(ctx context.Context, key string, data []byte) error {
	body, err := json.Marshal(pushRequest{Key: key, Data: data})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}
	return nil
}
