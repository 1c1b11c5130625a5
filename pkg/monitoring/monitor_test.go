package monitoring

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestMetricNames(t *testing.T) {
	cases := map[string]prometheus.Collector{
		"http_requests_total":           RequestCounter,
		"http_request_duration_seconds": RequestDuration,
		"auth_failures_total":           AuthFailures,
		"tokens_issued_total":           TokensIssued,
	}
	for name, c := range cases {
		ch := make(chan *prometheus.Desc, 1)
		c.Describe(ch)
		desc := <-ch
		if !strings.Contains(desc.String(), `fqName: "`+name+`"`) {
			t.Errorf("期望指标名 %s，实际=%s", name, desc.String())
		}
	}
}
