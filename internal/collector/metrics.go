// SPDX-FileCopyrightText: 2025 5C Menu contributors
// SPDX-License-Identifier: Apache-2.0

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
)

var parserRunsCounter = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "menud_parser_runs_total",
		Help: "Number of parser runs, by hall and outcome.",
	},
	[]string{"hall", "status"},
)

func init() {
	prometheus.MustRegister(parserRunsCounter)
}
