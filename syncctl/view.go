// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package syncctl

import (
	"time"

	"github.com/danielhkuo/gamevote/models"
)

// ControlState is the state of an entry's vote control
type ControlState int

const (
	ControlIdle ControlState = iota
	ControlBusy
	ControlVoted
)

func (s ControlState) String() string {
	switch s {
	case ControlIdle:
		return "idle"
	case ControlBusy:
		return "busy"
	case ControlVoted:
		return "voted"
	default:
		return "unknown"
	}
}

// Label is the text shown on the control
func (s ControlState) Label() string {
	switch s {
	case ControlBusy:
		return "Voting..."
	case ControlVoted:
		return "✓ Voted"
	default:
		return "Vote"
	}
}

// Enabled reports whether the control accepts clicks
func (s ControlState) Enabled() bool {
	return s == ControlIdle
}

type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifyError
)

// Notification is a transient message. The view removes it after TTL.
type Notification struct {
	Kind    NotificationKind
	Message string
	TTL     time.Duration
}

// Detail holds the descriptive fields copied into the detail overlay
type Detail struct {
	EntryID     int64
	Name        string
	Description string
	Developer   string
	Genre       string
	ReleaseDate string
	Image       string
}

// View is the UI driven by the Controller. The controller calls it while
// holding its lock, so calls arrive one at a time; implementations must not
// call back into the controller from inside these methods.
type View interface {
	ShowLoading()
	ShowError(message string)
	// Render replaces the whole visible list. Every control starts idle.
	Render(entries []models.Entry)
	SetVoteCount(id int64, votes int64)
	SetControl(id int64, state ControlState)
	Notify(n Notification)
	ShowDetail(d Detail)
	HideDetail()
}
