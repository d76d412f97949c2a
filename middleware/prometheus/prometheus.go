package prometheus

import (
	"context"
	"time"

	"github.com/fyerfyer/fyer-resmodel/resource"
	"github.com/prometheus/client_golang/prometheus"
)

type MiddlewareBuilder struct {
	NameSpace string
	Name      string
	SubSystem string
	Help      string
	// Registerer 为空时使用 prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

// Build 按 statement、table、status 统计语句执行耗时（微秒）
func (m *MiddlewareBuilder) Build() resource.Middleware {
	vec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Name:      m.Name,
		Help:      m.Help,
		Namespace: m.NameSpace,
		Subsystem: m.SubSystem,
		Objectives: map[float64]float64{
			0.5:   0.05,
			0.9:   0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"statement", "table", "status"})

	reg := m.Registerer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(vec)

	return func(next resource.Handler) resource.Handler {
		return resource.HandlerFunc(func(ctx context.Context, qc *resource.QueryContext) (*resource.QueryResult, error) {
			startTime := time.Now()
			res, err := next.QueryHandler(ctx, qc)

			status := "ok"
			if err != nil {
				status = "error"
			}
			vec.WithLabelValues(qc.Statement, qc.Table, status).
				Observe(float64(time.Since(startTime).Microseconds()))
			return res, err
		})
	}
}
