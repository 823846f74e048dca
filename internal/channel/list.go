package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"slices"
	"strings"
	"time"

	"exercise-tracker/internal/model"
)

// ListMode selects which read-state partition the list shows.
type ListMode string

const (
	ModeUnread ListMode = "unread"
	ModeRead   ListMode = "read"
)

const DefaultPageLimit = 20

// List is the paginated client-side view of the stored notifications.
// It is owned by a single caller; methods are not safe for concurrent
// use. The unread badge count lives on Channel, deliberately with no
// synchronous link to this list: optimistic removals here are
// reconciled by the next authoritative count push.
type List struct {
	baseURL   string
	sessionID string
	client    *http.Client
	limit     int

	mode    ListMode
	items   []model.Notification
	offset  int
	hasMore bool
}

func NewList(baseURL, sessionID string) *List {
	return &List{
		baseURL:   strings.TrimRight(baseURL, "/"),
		sessionID: sessionID,
		client:    &http.Client{Timeout: 10 * time.Second},
		limit:     DefaultPageLimit,
		mode:      ModeUnread,
		hasMore:   true,
	}
}

func (l *List) endpoint() string {
	if l.mode == ModeRead {
		return l.baseURL + "/api/notifications/read"
	}
	return l.baseURL + "/api/notifications"
}

// Refresh discards the current page and fetches from offset zero.
func (l *List) Refresh(ctx context.Context) error {
	l.items = nil
	l.offset = 0
	l.hasMore = true
	return l.fetch(ctx)
}

// LoadMore appends the next page. No-op once the server has run dry.
func (l *List) LoadMore(ctx context.Context) error {
	if !l.hasMore {
		return nil
	}
	return l.fetch(ctx)
}

func (l *List) fetch(ctx context.Context) error {
	target := fmt.Sprintf("%s?limit=%d&offset=%d", l.endpoint(), l.limit, l.offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Session-ID", l.sessionID)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch notifications: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch notifications: status %d", resp.StatusCode)
	}

	var page []model.Notification
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		// A malformed body degrades to an empty page; the list stays
		// usable instead of surfacing an error dialog.
		log.Printf("decode notifications page: %v", err)
		l.hasMore = false
		return nil
	}

	l.items = append(l.items, page...)
	l.offset += len(page)
	// A full page suggests more exist. An exact-multiple final page is
	// indistinguishable from "more available"; the follow-up fetch just
	// comes back empty.
	l.hasMore = len(page) == l.limit
	return nil
}

// SwitchMode flips between the unread and read partitions. The
// in-memory page is discarded and pagination restarts at offset zero
// before refetching. Switching to the current mode is a no-op.
func (l *List) SwitchMode(ctx context.Context, mode ListMode) error {
	if mode == l.mode {
		return nil
	}
	l.mode = mode
	return l.Refresh(ctx)
}

// MarkRead marks one notification read on the server and removes it
// from the in-memory page immediately. The unread count is not touched:
// the next notification_count push reconciles the badge, accepting a
// brief visible divergence.
func (l *List) MarkRead(ctx context.Context, id int) error {
	if err := l.post(ctx, "/api/notifications/mark-read", map[string]int{"notification_id": id}, nil); err != nil {
		return err
	}
	l.items = slices.DeleteFunc(l.items, func(n model.Notification) bool { return n.ID == id })
	return nil
}

// ClearAll marks every unread notification read and empties the page.
// Pagination stays disabled until the next Refresh. Returns how many
// notifications the server cleared.
func (l *List) ClearAll(ctx context.Context) (int, error) {
	var result struct {
		Cleared int `json:"cleared"`
	}
	if err := l.post(ctx, "/api/notifications/clear", nil, &result); err != nil {
		return 0, err
	}
	l.items = nil
	l.offset = 0
	l.hasMore = false
	return result.Cleared, nil
}

func (l *List) post(ctx context.Context, path string, body any, out any) error {
	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.baseURL+path, &payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", l.sessionID)

	resp, err := l.client.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("post %s: status %d", path, resp.StatusCode)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (l *List) Items() []model.Notification { return l.items }
func (l *List) Mode() ListMode              { return l.mode }
func (l *List) HasMore() bool               { return l.hasMore }
func (l *List) Offset() int                 { return l.offset }
