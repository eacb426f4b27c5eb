// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package textview renders the voting widget to a terminal or any io.Writer.
// It implements syncctl.View.
package textview
