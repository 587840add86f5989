// Package metrics keeps process-local counters and renders them in the
// Prometheus text exposition format.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/peterayad-eng/nexus-job-board-api/internal/common"
)

type Collector struct {
	requestsTotal   atomic.Int64
	requestsInFlight atomic.Int64

	mu             sync.Mutex
	requestsByCode map[int]int64
	errorsByCode   map[common.Code]int64
	latencySumMS   int64
	latencyCount   int64
}

func NewCollector() *Collector {
	return &Collector{
		requestsByCode: make(map[int]int64),
		errorsByCode:   make(map[common.Code]int64),
	}
}

func (c *Collector) IncRequest() {
	c.requestsTotal.Add(1)
	c.requestsInFlight.Add(1)
}

func (c *Collector) ObserveRequest(status int, durationMS int64) {
	c.requestsInFlight.Add(-1)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requestsByCode[status]++
	c.latencySumMS += durationMS
	c.latencyCount++
}

func (c *Collector) IncError(code common.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorsByCode[code]++
}

// Render produces the metrics snapshot as Prometheus text.
func (c *Collector) Render() string {
	var b strings.Builder
	b.WriteString("# TYPE http_requests_total counter\n")
	fmt.Fprintf(&b, "http_requests_total %d\n", c.requestsTotal.Load())
	b.WriteString("# TYPE http_requests_in_flight gauge\n")
	fmt.Fprintf(&b, "http_requests_in_flight %d\n", c.requestsInFlight.Load())

	c.mu.Lock()
	defer c.mu.Unlock()

	b.WriteString("# TYPE http_responses_total counter\n")
	statuses := make([]int, 0, len(c.requestsByCode))
	for status := range c.requestsByCode {
		statuses = append(statuses, status)
	}
	sort.Ints(statuses)
	for _, status := range statuses {
		fmt.Fprintf(&b, "http_responses_total{status=\"%d\"} %d\n", status, c.requestsByCode[status])
	}

	b.WriteString("# TYPE app_errors_total counter\n")
	codes := make([]string, 0, len(c.errorsByCode))
	for code := range c.errorsByCode {
		codes = append(codes, string(code))
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(&b, "app_errors_total{code=%q} %d\n", code, c.errorsByCode[common.Code(code)])
	}

	b.WriteString("# TYPE http_request_duration_ms_sum counter\n")
	fmt.Fprintf(&b, "http_request_duration_ms_sum %d\n", c.latencySumMS)
	b.WriteString("# TYPE http_request_duration_ms_count counter\n")
	fmt.Fprintf(&b, "http_request_duration_ms_count %d\n", c.latencyCount)
	return b.String()
}
