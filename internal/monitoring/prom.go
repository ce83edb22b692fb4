// Copyright 2025 l3montree UG (haftungsbeschraenkt).
// SPDX-License-Identifier: 	AGPL-3.0-or-later

package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RunsCreatedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "testboard_runs_created_amount",
	Help: "The total number of runs created",
})

var ResultsAcceptedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "testboard_results_accepted_amount",
	Help: "The total number of result submissions accepted",
})

var ResultsRejectedAmount = promauto.NewCounter(prometheus.CounterOpts{
	Name: "testboard_results_rejected_amount",
	Help: "The total number of result submissions rejected",
})
