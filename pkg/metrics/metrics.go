package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bonsai_recommendations_total",
		Help: "Recommendation results by pesticide class and status.",
	}, []string{"class", "status"})

	MasterImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bonsai_master_import_rows_total",
		Help: "Master catalog rows imported, by table.",
	}, []string{"table"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bonsai_logins_total",
		Help: "Login attempts by outcome.",
	}, []string{"outcome"})
)
