package obs

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// ReportsTotal counts report generation outcomes.
	ReportsTotal *prometheus.CounterVec
	// ReportSellersRanked records the number of sellers ranked per report.
	ReportSellersRanked prometheus.Histogram
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		ReportsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reports_total",
			Help:      "Count of sales report generation outcomes.",
		}, []string{"result"})
		ReportSellersRanked = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_sellers_ranked",
			Help:      "Distribution of sellers ranked per generated report.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		})

		mustRegisterCollector(reg, ReportsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				ReportsTotal = v
			}
		})
		mustRegisterCollector(reg, ReportSellersRanked, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Histogram); ok {
				ReportSellersRanked = v
			}
		})
	})
}
