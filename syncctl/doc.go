// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package syncctl keeps a client's view of the game list in step with the server.

A Controller moves between three phases: loading, error and loaded. Start
fetches the list; a failed fetch shows the server's message and waits for
Retry. Once loaded, Vote sends a single vote, patches the displayed count with
the server's value and schedules a full re-fetch so the ranking catches up.

Every state change happens under the controller's lock and is pushed to a
View. Network calls run without the lock, so votes for different entries can
be in flight together while the same entry cannot be voted twice at once.

Timers (re-fetch, control re-enable) belong to the controller and are stopped
by Close. Options.AfterFunc replaces time.AfterFunc in tests.
*/
package syncctl
