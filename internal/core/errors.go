// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package core

import "errors"

// Errors that the menu service surfaces to the HTTP boundary. Everything else
// (vendor fetch/parse failures, cache hiccups, store outages) is recoverable
// and converts into a stale or empty result instead.
var (
	// ErrUnknownHall means the hall_id is not in the registry (HTTP 404).
	ErrUnknownHall = errors.New("unknown hall")
	// ErrInvalidDate means the date string is not YYYY-MM-DD (HTTP 400).
	ErrInvalidDate = errors.New("invalid date format, use YYYY-MM-DD")
)
