package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DraftsSaved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "drafts_saved_total",
			Help: "Total number of draft saves",
		},
		[]string{"op"},
	)

	DraftsDiscarded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "drafts_discarded_total",
			Help: "Total number of drafts discarded by their owner",
		},
	)

	PropertySubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "property_submissions_total",
			Help: "Total number of property submit transitions",
		},
		[]string{"result"},
	)

	FilterOptionsFallback = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "filter_options_fallback_total",
			Help: "Times aggregated filter options were served from built-in defaults",
		},
	)

	DraftRetentionPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "draft_retention_purged_total",
			Help: "Drafts deleted by the retention sweep",
		},
	)
)

const (
	OpCreate = "create"
	OpUpdate = "update"

	ResultApproved      = "approved"
	ResultInvalidStatus = "invalid_status"
	ResultError         = "error"
)
