package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"

	"SchemePortalAPI/internal/services"
	"SchemePortalAPI/internal/session"
)

// apiClient talks to the portal API over HTTP. The notification stream is
// the server's SSE endpoint; each "data:" line carries one
// services.NotificationEvent.
type apiClient struct {
	base string
	http *http.Client

	mu      sync.Mutex
	onEvent func(services.NotificationEvent)
}

func newAPIClient(base string) *apiClient {
	return &apiClient{base: strings.TrimRight(base, "/"), http: &http.Client{}}
}

func interruptContext() context.Context {
	ctx, _ := signal.NotifyContext(context.Background(), os.Interrupt)
	return ctx
}

func (c *apiClient) postJSON(ctx context.Context, path, token string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", path, apiErr.Error)
		}
		return fmt.Errorf("%s: %s", path, resp.Status)
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *apiClient) login(ctx context.Context, email, password, role string) error {
	body := map[string]string{"email": email, "password": password, "role": role}
	return c.postJSON(ctx, "/portal/auth/login", "", body, nil)
}

func (c *apiClient) verifyLogin(ctx context.Context, email, otp string) (*session.Identity, error) {
	body := map[string]string{"email": email, "otp": otp}
	var out struct {
		Token string `json:"token"`
		User  struct {
			UserID int64  `json:"userid"`
			Name   string `json:"name"`
			Email  string `json:"email"`
			Role   string `json:"user_type"`
		} `json:"user"`
	}
	if err := c.postJSON(ctx, "/portal/auth/verify-login", "", body, &out); err != nil {
		return nil, err
	}
	return &session.Identity{
		UserID: out.User.UserID,
		Name:   out.User.Name,
		Email:  out.User.Email,
		Role:   out.User.Role,
		Token:  out.Token,
	}, nil
}

// openFeed satisfies session.FeedOpener: seed the unread counter from the
// server, then follow the SSE stream until the feed is stopped.
func (c *apiClient) openFeed(ctx context.Context, id *session.Identity) (session.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/portal/notifications/unread-count", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+id.Token)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	var count struct {
		Unread int `json:"unread"`
	}
	err = json.NewDecoder(resp.Body).Decode(&count)
	resp.Body.Close()
	if err != nil {
		return nil, err
	}

	streamCtx, cancel := context.WithCancel(ctx)
	req, err = http.NewRequestWithContext(streamCtx, http.MethodGet, c.base+"/portal/notifications/stream", nil)
	if err != nil {
		cancel()
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+id.Token)
	stream, err := c.http.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	if stream.StatusCode != http.StatusOK {
		stream.Body.Close()
		cancel()
		return nil, fmt.Errorf("stream: %s", stream.Status)
	}

	f := &sseFeed{unread: count.Unread, cancel: cancel, done: make(chan struct{})}
	go f.follow(stream.Body, c)
	return f, nil
}

// watch prints incoming events until the context is cancelled.
func (c *apiClient) watch(ctx context.Context, mgr *session.Manager) {
	c.mu.Lock()
	c.onEvent = func(ev services.NotificationEvent) {
		fmt.Printf("[%s] %s: %s (%d unread)\n", ev.Type, ev.Row.Title, ev.Row.Message, mgr.Unread())
	}
	c.mu.Unlock()
	<-ctx.Done()
}

func (c *apiClient) emit(ev services.NotificationEvent) {
	c.mu.Lock()
	fn := c.onEvent
	c.mu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// sseFeed tracks the unread counter against the live stream. Same counter
// rules as the server-side feed: an unread insert increments, an
// unread-to-read update decrements.
type sseFeed struct {
	mu     sync.Mutex
	unread int
	cancel context.CancelFunc
	done   chan struct{}
}

func (f *sseFeed) Unread() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

func (f *sseFeed) Stop() {
	f.cancel()
	<-f.done
}

func (f *sseFeed) follow(body io.ReadCloser, c *apiClient) {
	defer close(f.done)
	defer body.Close()

	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev services.NotificationEvent
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev); err != nil {
			continue
		}
		f.apply(ev)
		c.emit(ev)
	}
}

func (f *sseFeed) apply(ev services.NotificationEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch ev.Type {
	case services.EventInsert:
		if !ev.Row.IsRead {
			f.unread++
		}
	case services.EventUpdate:
		if !ev.WasRead && ev.Row.IsRead && f.unread > 0 {
			f.unread--
		}
	}
}
