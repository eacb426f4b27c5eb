// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncctl

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/gamevote/client"
	"github.com/danielhkuo/gamevote/models"
)

var (
	ErrNotLoaded    = errors.New("entry list is not loaded")
	ErrUnknownEntry = errors.New("entry is not in the list")
	ErrVoteInFlight = errors.New("vote control is not idle")
	ErrSuperseded   = errors.New("fetch superseded by a newer one")
	ErrClosed       = errors.New("controller closed")
)

// Fallback messages when the server gave none
const (
	defaultLoadError = "Failed to load games"
	defaultVoteError = "Vote failed"
	noDescription    = "No description available"
	noReleaseDate    = "Release date unavailable"
)

// API is the server surface the controller needs. *client.Client satisfies it.
type API interface {
	ListEntries(ctx context.Context) ([]models.Entry, error)
	Vote(ctx context.Context, id int64) (models.VoteResponse, error)
}

// Phase is the top-level UI state
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseError
	PhaseLoaded
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

// State is a copy of the controller's state. Message is set in PhaseError,
// Entries in PhaseLoaded.
type State struct {
	Phase   Phase
	Message string
	Entries []models.Entry
}

// Timer is the handle returned by Options.AfterFunc
type Timer interface {
	Stop() bool
}

type Options struct {
	// RefreshDelay is the wait between a successful vote and the re-fetch
	RefreshDelay time.Duration
	// ReenableDelay is when a control still busy is forced back to idle
	ReenableDelay time.Duration
	// NotifyTTL is how long notifications stay visible
	NotifyTTL time.Duration
	// AfterFunc schedules f after d. Defaults to time.AfterFunc.
	AfterFunc func(d time.Duration, f func()) Timer
}

func DefaultOptions() Options {
	return Options{
		RefreshDelay:  1500 * time.Millisecond,
		ReenableDelay: 2 * time.Second,
		NotifyTTL:     3 * time.Second,
		AfterFunc: func(d time.Duration, f func()) Timer {
			return time.AfterFunc(d, f)
		},
	}
}

// Controller owns the client-side game list and drives the
// fetch → render → vote → re-fetch loop. All state changes happen under mu.
// Network calls run outside the lock, so votes on different entries overlap.
type Controller struct {
	api  API
	view View
	opts Options

	mu       sync.Mutex
	baseCtx  context.Context
	phase    Phase
	message  string
	entries  []models.Entry
	controls map[int64]ControlState
	detail   *Detail
	closed   bool

	// fetchGen increases with every fetch; only the newest may apply its result
	fetchGen    uint64
	cancelFetch context.CancelFunc
	// renderGen increases with every Render; controls from older renders are gone
	renderGen uint64

	timers       map[Timer]struct{}
	refreshTimer Timer
}

func New(api API, view View, opts Options) *Controller {
	defaults := DefaultOptions()
	if opts.RefreshDelay <= 0 {
		opts.RefreshDelay = defaults.RefreshDelay
	}
	if opts.ReenableDelay <= 0 {
		opts.ReenableDelay = defaults.ReenableDelay
	}
	if opts.NotifyTTL <= 0 {
		opts.NotifyTTL = defaults.NotifyTTL
	}
	if opts.AfterFunc == nil {
		opts.AfterFunc = defaults.AfterFunc
	}

	return &Controller{
		api:      api,
		view:     view,
		opts:     opts,
		baseCtx:  context.Background(),
		phase:    PhaseLoading,
		controls: make(map[int64]ControlState),
		timers:   make(map[Timer]struct{}),
	}
}

// Compile-time check that the HTTP client fits
var _ API = (*client.Client)(nil)

// Start performs the initial fetch. ctx also bounds the fetches triggered
// later by votes.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	c.baseCtx = ctx
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Retry re-fetches the list after an error, or on demand
func (c *Controller) Retry(ctx context.Context) error {
	return c.Refresh(ctx)
}

// Refresh moves to Loading and fetches the list. A newer Refresh cancels
// this one; the superseded call returns ErrSuperseded and changes nothing.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}

	if c.cancelFetch != nil {
		c.cancelFetch()
	}
	fetchCtx, cancel := context.WithCancel(ctx)
	c.cancelFetch = cancel
	c.fetchGen++
	gen := c.fetchGen

	c.phase = PhaseLoading
	c.message = ""
	c.view.ShowLoading()
	c.mu.Unlock()

	entries, err := c.api.ListEntries(fetchCtx)

	c.mu.Lock()
	defer c.mu.Unlock()
	cancel()

	if c.closed {
		return ErrClosed
	}
	if gen != c.fetchGen {
		return ErrSuperseded
	}
	c.cancelFetch = nil

	if err != nil {
		slog.Warn("failed to load entries", "error", err)
		c.phase = PhaseError
		c.message = userMessage(err, defaultLoadError)
		c.view.ShowError(c.message)
		return err
	}

	c.phase = PhaseLoaded
	c.entries = append([]models.Entry(nil), entries...)
	c.render()
	return nil
}

// render shows the snapshot and resets every control. Caller holds mu.
func (c *Controller) render() {
	c.renderGen++
	c.controls = make(map[int64]ControlState, len(c.entries))
	for _, e := range c.entries {
		c.controls[e.ID] = ControlIdle
	}
	c.view.Render(append([]models.Entry(nil), c.entries...))
}

// Vote submits one vote for the entry. Only valid while Loaded and while
// the entry's control is idle.
func (c *Controller) Vote(ctx context.Context, id int64) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.phase != PhaseLoaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if c.indexOf(id) < 0 {
		c.mu.Unlock()
		return ErrUnknownEntry
	}
	if c.controls[id] != ControlIdle {
		c.mu.Unlock()
		return ErrVoteInFlight
	}

	renderGen := c.renderGen
	c.setControl(id, ControlBusy)
	c.schedule(c.opts.ReenableDelay, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.renderGen == renderGen && c.controls[id] == ControlBusy {
			c.setControl(id, ControlIdle)
		}
	})
	c.mu.Unlock()

	resp, err := c.api.Vote(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	// A re-render since the click replaced the control; leave the new one alone
	sameControl := c.renderGen == renderGen

	if err != nil {
		slog.Warn("failed to vote", "error", err, "entry_id", id)
		c.view.Notify(Notification{
			Kind:    NotifyError,
			Message: defaultVoteError + ": " + userMessage(err, transportMessage(err)),
			TTL:     c.opts.NotifyTTL,
		})
		if sameControl && c.controls[id] == ControlBusy {
			c.setControl(id, ControlIdle)
		}
		return err
	}

	// Counts only grow, so a lower value is older than what we already show
	if i := c.indexOf(id); i >= 0 && resp.Votes > c.entries[i].VoteCount {
		c.entries[i].VoteCount = resp.Votes
		if c.phase == PhaseLoaded {
			c.view.SetVoteCount(id, resp.Votes)
		}
	}
	if sameControl {
		c.setControl(id, ControlVoted)
	}

	c.scheduleRefresh()
	return nil
}

// scheduleRefresh arms the post-vote re-fetch. Votes landing close together
// share one re-fetch. Caller holds mu.
func (c *Controller) scheduleRefresh() {
	if c.refreshTimer != nil {
		c.refreshTimer.Stop()
		delete(c.timers, c.refreshTimer)
	}
	ctx := c.baseCtx
	c.refreshTimer = c.schedule(c.opts.RefreshDelay, func() {
		if err := c.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
			slog.Debug("post-vote refresh failed", "error", err)
		}
	})
}

// schedule runs f after d unless the controller is closed first. Caller
// holds mu, which also keeps f from running before t is recorded.
func (c *Controller) schedule(d time.Duration, f func()) Timer {
	var t Timer
	t = c.opts.AfterFunc(d, func() {
		c.mu.Lock()
		_, live := c.timers[t]
		delete(c.timers, t)
		// Cleared in the same critical section as the live check, and only
		// when t is still the armed re-fetch, so a newer one stays stoppable
		if c.refreshTimer == t {
			c.refreshTimer = nil
		}
		closed := c.closed
		c.mu.Unlock()

		if live && !closed {
			f()
		}
	})
	c.timers[t] = struct{}{}
	return t
}

// OpenDetail shows the overlay for an entry in the current list
func (c *Controller) OpenDetail(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return ErrUnknownEntry
	}

	d := detailFor(c.entries[i])
	c.detail = &d
	c.view.ShowDetail(d)
	return nil
}

// CloseDetail hides the overlay if it is open
func (c *Controller) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detail == nil {
		return
	}
	c.detail = nil
	c.view.HideDetail()
}

// State returns a copy of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := State{Phase: c.phase, Message: c.message}
	if c.phase == PhaseLoaded {
		s.Entries = append([]models.Entry(nil), c.entries...)
	}
	return s
}

// Control returns the state of an entry's vote control
func (c *Controller) Control(id int64) ControlState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controls[id]
}

// Detail returns the open overlay, if any
func (c *Controller) Detail() (Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detail == nil {
		return Detail{}, false
	}
	return *c.detail, true
}

// Close stops pending timers and cancels an in-flight fetch
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for t := range c.timers {
		t.Stop()
	}
	c.timers = nil
	c.refreshTimer = nil
	if c.cancelFetch != nil {
		c.cancelFetch()
		c.cancelFetch = nil
	}
}

func (c *Controller) setControl(id int64, state ControlState) {
	c.controls[id] = state
	c.view.SetControl(id, state)
}

func (c *Controller) indexOf(id int64) int {
	for i, e := range c.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

func detailFor(e models.Entry) Detail {
	d := Detail{
		EntryID:     e.ID,
		Name:        e.Name,
		Description: e.Description,
		Developer:   e.Developer,
		Genre:       e.Genre,
		ReleaseDate: noReleaseDate,
		Image:       e.CoverOrPlaceholder(),
	}
	if d.Description == "" {
		d.Description = noDescription
	}
	if e.ReleaseDate != nil {
		d.ReleaseDate = e.ReleaseDate.Format("January 2, 2006")
	}
	return d
}

// userMessage returns the server's envelope message for err, or fallback
func userMessage(err error, fallback string) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

func transportMessage(err error) string {
	switch {
	case errors.Is(err, client.ErrNetworkFailure):
		return "Network error"
	case errors.Is(err, client.ErrUnexpectedStatus):
		return "Unexpected server response"
	default:
		return "Unknown error"
	}
}
