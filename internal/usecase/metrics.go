package usecase

import "strings"

// Metrics receives one outcome per cart add and per checkout attempt.
type Metrics interface {
	CartItemAdded(outcome string)
	CheckoutFinished(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) CartItemAdded(string)    {}
func (noopMetrics) CheckoutFinished(string) {}

func metricsOrNoop(m Metrics) Metrics {
	if m == nil {
		return noopMetrics{}
	}
	return m
}

// outcomeOf renders err as a low-cardinality label: "ok", a domain code or a kind.
func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if code := CodeOf(err); code != "" {
		return strings.ToLower(string(code))
	}
	return strings.ToLower(string(KindOf(err)))
}
