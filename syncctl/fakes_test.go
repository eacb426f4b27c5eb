// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncctl

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/danielhkuo/gamevote/client"
	"github.com/danielhkuo/gamevote/models"
)

// fakeClock fires timers only when advanced
type fakeClock struct {
	mu      sync.Mutex
	now     time.Duration
	pending []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.fired || t.stopped {
		return false
	}
	t.stopped = true
	return true
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{clock: c, at: c.now + d, f: f}
	c.pending = append(c.pending, t)
	return t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now += d
	var due, rest []*fakeTimer
	for _, t := range c.pending {
		switch {
		case t.stopped:
		case t.at <= c.now:
			t.fired = true
			due = append(due, t)
		default:
			rest = append(rest, t)
		}
	}
	c.pending = rest
	c.mu.Unlock()

	sort.SliceStable(due, func(i, j int) bool { return due[i].at < due[j].at })
	for _, t := range due {
		t.f()
	}
}

func testOptions(clock *fakeClock) Options {
	opts := DefaultOptions()
	opts.AfterFunc = clock.AfterFunc
	return opts
}

// fakeView records what the controller asked it to show
type fakeView struct {
	mu       sync.Mutex
	events   []string
	rendered []models.Entry
	renders  int
	counts   map[int64]int64
	controls map[int64]ControlState
	notes    []Notification
	errMsg   string
	detail   *Detail
	hides    int
}

func newFakeView() *fakeView {
	return &fakeView{
		counts:   make(map[int64]int64),
		controls: make(map[int64]ControlState),
	}
}

func (v *fakeView) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "loading")
}

func (v *fakeView) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "error")
	v.errMsg = message
}

func (v *fakeView) Render(entries []models.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "render")
	v.renders++
	v.rendered = entries
	v.counts = make(map[int64]int64)
	v.controls = make(map[int64]ControlState)
	for _, e := range entries {
		v.counts[e.ID] = e.VoteCount
		v.controls[e.ID] = ControlIdle
	}
}

func (v *fakeView) SetVoteCount(id int64, votes int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "count")
	v.counts[id] = votes
}

func (v *fakeView) SetControl(id int64, state ControlState) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "control:"+state.String())
	v.controls[id] = state
}

func (v *fakeView) Notify(n Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "notify")
	v.notes = append(v.notes, n)
}

func (v *fakeView) ShowDetail(d Detail) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "detail")
	v.detail = &d
}

func (v *fakeView) HideDetail() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.events = append(v.events, "hide")
	v.detail = nil
	v.hides++
}

func (v *fakeView) control(id int64) ControlState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.controls[id]
}

func (v *fakeView) count(id int64) int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.counts[id]
}

func (v *fakeView) renderedIDs() []int64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	ids := make([]int64, len(v.rendered))
	for i, e := range v.rendered {
		ids[i] = e.ID
	}
	return ids
}

// fakeAPI behaves like the server: votes increment, lists come back sorted
type fakeAPI struct {
	mu        sync.Mutex
	entries   []models.Entry
	listErr   error
	voteErr   error
	listCalls int
	voteCalls int

	// listHook and voteHook run before the call is answered; a non-nil
	// return is used as the call's error
	listHook func(ctx context.Context, call int) error
	voteHook func(ctx context.Context, id int64) error
}

func newFakeAPI(entries ...models.Entry) *fakeAPI {
	return &fakeAPI{entries: entries}
}

func (a *fakeAPI) ListEntries(ctx context.Context) ([]models.Entry, error) {
	a.mu.Lock()
	a.listCalls++
	call := a.listCalls
	hook := a.listHook
	a.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, call); err != nil {
			return nil, err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.listErr != nil {
		return nil, a.listErr
	}
	out := append([]models.Entry(nil), a.entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].VoteCount != out[j].VoteCount {
			return out[i].VoteCount > out[j].VoteCount
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (a *fakeAPI) Vote(ctx context.Context, id int64) (models.VoteResponse, error) {
	a.mu.Lock()
	a.voteCalls++
	hook := a.voteHook
	a.mu.Unlock()

	if hook != nil {
		if err := hook(ctx, id); err != nil {
			return models.VoteResponse{}, err
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.voteErr != nil {
		return models.VoteResponse{}, a.voteErr
	}
	for i := range a.entries {
		if a.entries[i].ID == id {
			a.entries[i].VoteCount++
			return models.VoteResponse{
				Success: true,
				Message: "Vote recorded",
				Votes:   a.entries[i].VoteCount,
				EntryID: id,
			}, nil
		}
	}
	return models.VoteResponse{}, &client.APIError{StatusCode: 404, Message: "Entry not found"}
}

func (a *fakeAPI) calls() (list, vote int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.listCalls, a.voteCalls
}

func entry(id int64, name string, votes int64) models.Entry {
	return models.Entry{ID: id, Name: name, Developer: "Studio", Genre: "RPG", VoteCount: votes}
}
