// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// 結果ラベルの値。
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailure = "failure"
)

// MetricsCollector はメトリクス収集のインターフェース。
// サービス層とHTTPミドルウェアから利用する。
type MetricsCollector interface {
	RecordGeneration(result string, duration time.Duration)
	RecordReload(result string)
	RecordDataset(version uint64, counts map[string]int)
	RecordHTTPRequest(method, route string, statusCode int, duration time.Duration)
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	generations        *prometheus.CounterVec
	generationDuration prometheus.Histogram
	reloads            *prometheus.CounterVec
	datasetVersion     prometheus.Gauge
	datasetEntities    *prometheus.GaugeVec
	httpStatus         *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frozenbet_generations_total",
			Help: "データセット生成の結果別の合計数",
		}, []string{"result"}),
		generationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "frozenbet_generation_duration_seconds",
			Help:    "データセット生成（永続化を含む）の所要時間（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		reloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frozenbet_reload_total",
			Help: "リロード要求の結果別の合計数",
		}, []string{"result"}),
		datasetVersion: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "frozenbet_dataset_version",
			Help: "現在公開中のデータセットのバージョン",
		}),
		datasetEntities: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "frozenbet_dataset_entities",
			Help: "現在公開中のデータセットのエンティティ種別ごとの件数",
		}, []string{"entity"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "frozenbet_http_status_total",
			Help: "HTTPステータスコード別のレスポンス数",
		}, []string{"status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "frozenbet_http_request_duration_seconds",
			Help:    "ルート別のHTTPリクエスト処理時間（秒）",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	reg.MustRegister(
		c.generations,
		c.generationDuration,
		c.reloads,
		c.datasetVersion,
		c.datasetEntities,
		c.httpStatus,
		c.httpDuration,
	)

	return c
}

// RecordGeneration は生成の結果と所要時間を記録する。
func (c *Collector) RecordGeneration(result string, duration time.Duration) {
	c.generations.WithLabelValues(result).Inc()
	c.generationDuration.Observe(duration.Seconds())
}

// RecordReload はリロード要求の結果を記録する。
func (c *Collector) RecordReload(result string) {
	c.reloads.WithLabelValues(result).Inc()
}

// RecordDataset は公開したデータセットのバージョンと件数を記録する。
func (c *Collector) RecordDataset(version uint64, counts map[string]int) {
	c.datasetVersion.Set(float64(version))
	for entity, n := range counts {
		c.datasetEntities.WithLabelValues(entity).Set(float64(n))
	}
}

// RecordHTTPRequest はHTTPレスポンスのステータスコードと処理時間を記録する。
// routeにはchiのルートパターンを渡し、IDごとにラベルが増えないようにする。
func (c *Collector) RecordHTTPRequest(method, route string, statusCode int, duration time.Duration) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
