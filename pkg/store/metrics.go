package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bansRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yoas_bans_recorded_total",
			Help: "Total number of banned users recorded",
		},
	)

	bansRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yoas_bans_removed_total",
			Help: "Total number of banned users removed",
		},
	)

	messageLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yoas_message_lookups_total",
			Help: "Total number of message lookups by result",
		},
		[]string{"result"},
	)
)
