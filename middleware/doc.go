// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (status,
duration_ms). Each request gets an X-Request-ID, taken from the caller or
generated as a UUID, which is echoed in the response and attached to both
log lines.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows any origin for GET, POST and OPTIONS.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid entry id")

ErrorResponse writes the failure envelope {"success": false, "error": ...}.
Only fixed, user-safe messages go there.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. Used in request logs.
*/
package middleware
