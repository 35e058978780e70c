// Package metrics records batch progress in Prometheus collectors. For
// short runs the counters only surface in logs-on-exit debugging; long
// batches can expose them over HTTP.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	instancesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewgen_instances_total",
		Help: "Instances processed, by outcome",
	}, []string{"outcome"})
	artifactsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "crewgen_artifacts_written_total",
		Help: "Artifacts written, by generator",
	}, []string{"generator"})
	achievedSlack = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "crewgen_achieved_slack_percent",
		Help: "Slack actually added by the last apportionment",
	}, []string{"generator"})
)

func init() {
	prometheus.MustRegister(instancesTotal, artifactsTotal, achievedSlack)
}

// RecordInstance counts one finished instance. Outcome is "ok", "skipped"
// or "aborted".
func RecordInstance(outcome string) {
	instancesTotal.WithLabelValues(outcome).Inc()
}

// RecordArtifact counts one written artifact for the named generator.
func RecordArtifact(generator string) {
	artifactsTotal.WithLabelValues(generator).Inc()
}

// RecordAchievedSlack publishes the achieved slack of the last table.
func RecordAchievedSlack(generator string, percent float64) {
	achievedSlack.WithLabelValues(generator).Set(percent)
}
