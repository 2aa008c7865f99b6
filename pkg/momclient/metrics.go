package momclient

import "github.com/prometheus/client_golang/prometheus"

var readyState = prometheus.NewGaugeVec(prometheus.GaugeOpts{
	Name: "mom_ready_state",
	Help: "Mom gate connection status",
}, []string{"gate"})

var messageCounters = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "mom_message_count",
	Help: "mom income message counters",
}, []string{"gate", "kind"})

var requestCounters = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "mom_request_count",
	Help: "mom send message counters",
}, []string{"gate", "kind"})

var disconnectCounters = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "mom_disconnect_count",
	Help: "mom disconnect counters by reason",
}, []string{"gate", "reason"})

func init() {
	prometheus.MustRegister(readyState, messageCounters, requestCounters, disconnectCounters)
}
