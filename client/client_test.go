// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/gamevote/router"
	"github.com/danielhkuo/gamevote/testutil"
)

// newTestServer serves the real router over a fresh test database
func newTestServer(t *testing.T) (*httptest.Server, func(name string, votes int64) int64) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(router.NewRouter(db, testutil.GetTestConfig()))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	create := func(name string, votes int64) int64 {
		return testutil.CreateTestEntry(t, db, name, votes)
	}
	return srv, create
}

func TestListAndVote(t *testing.T) {
	srv, create := newTestServer(t)
	one := create("Entry One", 5)
	two := create("Entry Two", 9)

	c := New(srv.URL + "/")
	ctx := context.Background()

	entries, err := c.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if len(entries) != 2 || entries[0].ID != two || entries[1].ID != one {
		t.Fatalf("Unexpected list: %+v", entries)
	}

	resp, err := c.Vote(ctx, one)
	if err != nil {
		t.Fatalf("Vote() error = %v", err)
	}
	if resp.Votes != 6 || resp.EntryID != one {
		t.Errorf("Unexpected vote response: %+v", resp)
	}

	entries, err = c.ListEntries(ctx)
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if entries[1].VoteCount != resp.Votes {
		t.Errorf("List shows %d votes, vote response said %d", entries[1].VoteCount, resp.Votes)
	}
}

func TestVoteErrors(t *testing.T) {
	srv, _ := newTestServer(t)
	c := New(srv.URL)

	tests := []struct {
		name       string
		id         int64
		wantStatus int
		wantMsg    string
	}{
		{"not found", 9999, http.StatusNotFound, "Entry not found"},
		{"invalid id", 0, http.StatusBadRequest, "Invalid entry id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Vote(context.Background(), tt.id)

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Expected *APIError, got %v", err)
			}
			if apiErr.StatusCode != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, apiErr.StatusCode)
			}
			if apiErr.Message != tt.wantMsg {
				t.Errorf("Expected message '%s', got '%s'", tt.wantMsg, apiErr.Message)
			}
		})
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url).ListEntries(context.Background())
	if !errors.Is(err, ErrNetworkFailure) {
		t.Errorf("Expected ErrNetworkFailure, got %v", err)
	}
}

func TestUnexpectedStatusWithoutEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "<html>bad gateway</html>", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListEntries(context.Background())
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestNonSuccessStatusIgnoresSuccessEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"success":true,"data":[],"total":0}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListEntries(context.Background())
	if err == nil {
		t.Fatal("Expected error for non-2xx status")
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestFailureEnvelopeWithOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"Maintenance"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).ListEntries(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Message != "Maintenance" {
		t.Errorf("Expected message 'Maintenance', got '%s'", apiErr.Message)
	}
}

func TestInvalidBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Vote(context.Background(), 1)
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Errorf("Expected ErrUnexpectedStatus, got %v", err)
	}
}

func TestWithTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(srv.URL, WithTimeout(50*time.Millisecond)).ListEntries(context.Background())
	if !errors.Is(err, ErrNetworkFailure) {
		t.Errorf("Expected ErrNetworkFailure on timeout, got %v", err)
	}
}

func TestContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(srv.URL).ListEntries(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled in chain, got %v", err)
	}
}

func TestEmptyDataIsNonNil(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"data":null,"total":0}`))
	}))
	defer srv.Close()

	entries, err := New(srv.URL).ListEntries(context.Background())
	if err != nil {
		t.Fatalf("ListEntries() error = %v", err)
	}
	if entries == nil {
		t.Error("Expected non-nil empty slice")
	}
}
