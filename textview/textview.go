// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package textview

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/gamevote/models"
	"github.com/danielhkuo/gamevote/syncctl"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiBold  = "\x1b[1m"
)

// View writes the voting widget as plain text lines
type View struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
	now   func() time.Time
	names map[int64]string
	err   error
}

type Option func(*View)

// WithColor turns on ANSI colors, for terminals
func WithColor(on bool) Option {
	return func(v *View) {
		v.color = on
	}
}

// WithClock replaces time.Now for relative release dates
func WithClock(now func() time.Time) Option {
	return func(v *View) {
		v.now = now
	}
}

func New(w io.Writer, opts ...Option) *View {
	v := &View{
		w:     w,
		now:   time.Now,
		names: make(map[int64]string),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

var _ syncctl.View = (*View)(nil)

// Err returns the first write error, if any
func (v *View) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

func (v *View) ShowLoading() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("Loading games...\n")
}

func (v *View) ShowError(message string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("%s\n", v.paint(ansiRed, "Error: "+message))
	v.printf("Type 'retry' to try again.\n")
}

func (v *View) Render(entries []models.Entry) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.names = make(map[int64]string, len(entries))
	if len(entries) == 0 {
		v.printf("No games yet.\n")
		return
	}

	v.printf("%s\n", v.paint(ansiBold, fmt.Sprintf("Games (%d)", len(entries))))
	for i, e := range entries {
		v.names[e.ID] = e.Name
		v.printf("%3d. %-32s %10s votes  [%s]  id=%d\n",
			i+1, e.Name, humanize.Comma(e.VoteCount), syncctl.ControlIdle.Label(), e.ID)
		if meta := v.meta(e); meta != "" {
			v.printf("     %s\n", meta)
		}
	}
}

func (v *View) SetVoteCount(id int64, votes int64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("%s now has %s votes\n", v.name(id), humanize.Comma(votes))
}

func (v *View) SetControl(id int64, state syncctl.ControlState) {
	v.mu.Lock()
	defer v.mu.Unlock()

	label := "[" + state.Label() + "]"
	if state == syncctl.ControlVoted {
		label = v.paint(ansiGreen, label)
	}
	v.printf("%s %s\n", v.name(id), label)
}

// Notify prints the message once. Terminal output is not retracted, so the
// lifetime is not used.
func (v *View) Notify(n syncctl.Notification) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n.Kind == syncctl.NotifyError {
		v.printf("%s\n", v.paint(ansiRed, "! "+n.Message))
		return
	}
	v.printf("* %s\n", n.Message)
}

func (v *View) ShowDetail(d syncctl.Detail) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.printf("%s\n", v.paint(ansiBold, d.Name))
	v.printf("  Developer:    %s\n", orDash(d.Developer))
	v.printf("  Genre:        %s\n", orDash(d.Genre))
	v.printf("  Release date: %s\n", d.ReleaseDate)
	v.printf("  Cover:        %s\n", d.Image)
	v.printf("  %s\n", d.Description)
	v.printf("Type 'close' to return to the list.\n")
}

func (v *View) HideDetail() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.printf("(detail closed)\n")
}

// meta is the secondary line under an entry. Caller holds mu.
func (v *View) meta(e models.Entry) string {
	var parts []string
	if e.Developer != "" {
		parts = append(parts, e.Developer)
	}
	if e.Genre != "" {
		parts = append(parts, e.Genre)
	}
	if e.ReleaseDate != nil {
		parts = append(parts, "released "+humanize.RelTime(e.ReleaseDate.Time, v.now(), "ago", "from now"))
	}
	return strings.Join(parts, " · ")
}

func (v *View) name(id int64) string {
	if name, ok := v.names[id]; ok {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func (v *View) paint(code, s string) string {
	if !v.color {
		return s
	}
	return code + s + ansiReset
}

// printf writes to the output, keeping the first error. Caller holds mu.
func (v *View) printf(format string, args ...any) {
	if v.err != nil {
		return
	}
	if _, err := fmt.Fprintf(v.w, format, args...); err != nil {
		v.err = err
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
