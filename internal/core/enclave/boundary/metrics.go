package boundary

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 边界调用指标
//
// 📋 **指标职责**：
// 观测只放在边界调用的收口处，协议语义不依赖任何指标。
// 恐慌路径同样计数（这正是最需要告警的信号），但不附加诊断信息。
var (
	ocallCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "enclave_host",
			Subsystem: "boundary",
			Name:      "ocalls_total",
			Help:      "Total number of boundary calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)

	ocallGas = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "enclave_host",
			Subsystem: "boundary",
			Name:      "ocall_gas_used",
			Help:      "Gas reported by successful boundary calls",
			Buckets:   prometheus.ExponentialBuckets(100, 4, 10),
		},
		[]string{"op"},
	)

	liveHandles = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "enclave_host",
			Subsystem: "boundary",
			Name:      "live_buffer_handles",
			Help:      "Buffer handles allocated but not yet reclaimed",
		},
		func() float64 { return float64(LiveBuffers()) },
	)

	liveErrorHandles = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "enclave_host",
			Subsystem: "boundary",
			Name:      "live_error_handles",
			Help:      "Boxed error handles not yet reclaimed",
		},
		func() float64 { return float64(LiveErrors()) },
	)

	liveCallContexts = promauto.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "enclave_host",
			Subsystem: "boundary",
			Name:      "live_call_contexts",
			Help:      "Call contexts constructed but not yet released",
		},
		func() float64 { return float64(LiveContexts()) },
	)
)

// observeOcall 记录一次边界调用的结果
// 燃气仅在成功时有权威性，所以只有成功调用进入燃气直方图
func observeOcall(op string, outcome Outcome, gasOut *uint64) {
	ocallCounter.WithLabelValues(op, outcome.String()).Inc()
	if outcome == OutcomeSuccess && gasOut != nil {
		ocallGas.WithLabelValues(op).Observe(float64(*gasOut))
	}
}
