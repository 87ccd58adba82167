// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package datamodel

import (
	"time"

	"github.com/fivecmenu/menud/internal/db"
)

// maxErrorMessageLen caps stored parser error messages; vendor HTML dumps
// inside error strings can get arbitrarily long.
const maxErrorMessageLen = 500

// RecordParserRun inserts a row into the parser_runs table for health
// monitoring.
func RecordParserRun(dbi db.Interface, hallID string, targetDate time.Time, startedAt time.Time, duration time.Duration, status, errorMessage string) error {
	durationMS := duration.Milliseconds()
	run := db.ParserRun{
		HallID:     hallID,
		StartedAt:  startedAt,
		DurationMS: &durationMS,
		Status:     status,
		MenuDate:   &targetDate,
	}
	if errorMessage != "" {
		if len(errorMessage) > maxErrorMessageLen {
			errorMessage = errorMessage[:maxErrorMessageLen]
		}
		run.ErrorMessage = &errorMessage
	}
	return dbi.Insert(&run)
}
