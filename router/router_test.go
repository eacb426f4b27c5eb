// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"

	"github.com/danielhkuo/gamevote/models"
	"github.com/danielhkuo/gamevote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "gamevote API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestUnknownPath(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/php/get_juegos.php", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown path, got %d", w.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	mux := NewRouter(db, cfg)

	testCases := []struct {
		method string
		path   string
		allow  string
	}{
		{"POST", "/health", "GET, HEAD"},
		{"GET", "/api/vote", "POST"},
		{"PUT", "/api/vote", "POST"},
		{"DELETE", "/api/entries", "GET, HEAD"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
			if got := w.Header().Get("Allow"); got != tc.allow {
				t.Errorf("Expected Allow '%s', got '%s'", tc.allow, got)
			}
		})
	}
}

// TestListVoteListRoundTrip drives both routes through the mux: the count
// reported by a vote is the one the next list call shows
func TestListVoteListRoundTrip(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	mux := NewRouter(db, testutil.GetTestConfig())
	id := testutil.CreateTestEntry(t, db, "Returnal", 41)

	req := testutil.MakeFormRequest("POST", "/api/vote", url.Values{"id": {strconv.FormatInt(id, 10)}})
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voteResp models.VoteResponse
	testutil.AssertJSON(t, w, &voteResp)
	if voteResp.EntryID != id || voteResp.Votes != 42 {
		t.Fatalf("Unexpected vote response: %+v", voteResp)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("Expected X-Request-ID on logged routes")
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest("GET", "/api/entries", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var listResp models.ListEntriesResponse
	testutil.AssertJSON(t, w, &listResp)
	if listResp.Total != 1 || len(listResp.Data) != 1 {
		t.Fatalf("Expected one entry, got %+v", listResp)
	}
	if listResp.Data[0].VoteCount != voteResp.Votes {
		t.Errorf("List shows %d votes, vote response said %d", listResp.Data[0].VoteCount, voteResp.Votes)
	}
}
