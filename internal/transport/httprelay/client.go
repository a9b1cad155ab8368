package httprelay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"nulltrace/internal/domain"
)

// Handler is what a participant supplies to receive payloads drained from
// its poll queue.
type Handler func(payload []byte)

// PollInterval is how often a Client asks the relay for queued payloads.
const PollInterval = 200 * time.Millisecond

// Client implements domain.Transport by talking to the HTTP relay server
// in cmd/relay, and separately polls that relay for inbound payloads on
// a background goroutine.
type Client struct {
	base string
	room domain.Room
	self domain.CID
	http *http.Client

	handler Handler
	stop    chan struct{}
}

var _ domain.Transport = (*Client)(nil)

// New builds a Client against base (e.g. "http://localhost:8080") and
// starts its background poll loop, delivering drained payloads to handler.
// Callers must call Close to stop the loop.
func New(base string, room domain.Room, self domain.CID, handler Handler) *Client {
	c := &Client{
		base:    base,
		room:    room,
		self:    self,
		http:    http.DefaultClient,
		handler: handler,
		stop:    make(chan struct{}),
	}
	go c.pollLoop()
	return c
}

// Close stops the background poll loop.
func (c *Client) Close() { close(c.stop) }

// SendTo implements domain.Transport.
func (c *Client) SendTo(ctx context.Context, peer domain.CID, payload []byte) error {
	path := fmt.Sprintf("/rooms/%s/send/%s/%s", url.PathEscape(string(c.room)), url.PathEscape(string(c.self)), url.PathEscape(string(peer)))
	return c.post(ctx, path, payload)
}

// SendToAll implements domain.Transport.
func (c *Client) SendToAll(ctx context.Context, self domain.CID, payload []byte) error {
	path := fmt.Sprintf("/rooms/%s/broadcast/%s", url.PathEscape(string(c.room)), url.PathEscape(string(self)))
	return c.post(ctx, path, payload)
}

func (c *Client) pollLoop() {
	t := time.NewTicker(PollInterval)
	defer t.Stop()
	for {
		select {
		case <-c.stop:
			return
		case <-t.C:
			payloads, err := c.poll(context.Background())
			if err != nil {
				continue
			}
			for _, p := range payloads {
				c.handler(p)
			}
		}
	}
}

func (c *Client) poll(ctx context.Context) ([][]byte, error) {
	path := fmt.Sprintf("/rooms/%s/poll/%s", url.PathEscape(string(c.room)), url.PathEscape(string(c.self)))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("httprelay get %s: %s", path, resp.Status)
	}
	var out [][]byte
	return out, json.NewDecoder(resp.Body).Decode(&out)
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("httprelay post %s: %s", path, resp.Status)
	}
	return nil
}
