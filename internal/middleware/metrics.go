package middleware

import (
	"net/http"
	"time"

	"github.com/hitoshi/frozenbet/internal/metrics"
)

// NewMetricsMiddleware はレスポンスのステータスと処理時間をルートパターン単位で記録する。
// ルートに一致しなかったリクエストは"unmatched"として集計する。
func NewMetricsMiddleware(collector metrics.MetricsCollector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			collector.RecordHTTPRequest(r.Method, routePattern(r), rec.statusCode, time.Since(start))
		})
	}
}
