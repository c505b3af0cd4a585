// Package metrics 提供 Prometheus helper，包含 HTTP/数据库通用指标与基金数据业务指标
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wyfcoding/fundbarometer/pkg/logger"
)

// Metrics 指标集合
type Metrics struct {
	// HTTP 请求计数
	HTTPRequestsTotal prometheus.Counter
	// HTTP 请求耗时
	HTTPRequestDuration prometheus.Histogram

	// 数据库查询计数
	DBQueriesTotal prometheus.Counter
	// 数据库查询耗时
	DBQueryDuration prometheus.Histogram

	// 业务指标
	IngestRunsTotal        prometheus.Counter
	IngestFailuresTotal    prometheus.Counter
	RecordsProcessedTotal  prometheus.Counter
	DuplicatesRemovedTotal prometheus.Counter
	RowsRejectedTotal      prometheus.Counter
	IndexRebuildsTotal     prometheus.Counter
	IndexRecords           prometheus.Gauge
	SearchesTotal          prometheus.Counter
}

// New 创建指标实例
func New(serviceName string) *Metrics {
	return &Metrics{
		HTTPRequestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests",
		}),
		HTTPRequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		DBQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "db_queries_total",
			Help:      "Total database queries",
		}),
		DBQueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}),

		IngestRunsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "ingest_runs_total",
			Help:      "Total workbook ingestion runs",
		}),
		IngestFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "ingest_failures_total",
			Help:      "Total ingestion runs that failed outright",
		}),
		RecordsProcessedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "records_processed_total",
			Help:      "Total fund records reconciled into the store",
		}),
		DuplicatesRemovedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "duplicates_removed_total",
			Help:      "Total records dropped by deduplication",
		}),
		RowsRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "rows_rejected_total",
			Help:      "Total sheet rows rejected by the row validity filter",
		}),
		IndexRebuildsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "index_rebuilds_total",
			Help:      "Total virtual index rebuilds",
		}),
		IndexRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "index_records",
			Help:      "Number of records in the current virtual index",
		}),
		SearchesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fund",
			Subsystem: serviceName,
			Name:      "searches_total",
			Help:      "Total search queries served",
		}),
	}
}

// Register 注册所有指标
func (m *Metrics) Register() error {
	metrics := []prometheus.Collector{
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.IngestRunsTotal,
		m.IngestFailuresTotal,
		m.RecordsProcessedTotal,
		m.DuplicatesRemovedTotal,
		m.RowsRejectedTotal,
		m.IndexRebuildsTotal,
		m.IndexRecords,
		m.SearchesTotal,
	}

	for _, metric := range metrics {
		if err := prometheus.DefaultRegisterer.Register(metric); err != nil {
			logger.Error(context.Background(), "Failed to register metric", "error", err)
			return err
		}
	}

	logger.Info(context.Background(), "Metrics registered successfully")
	return nil
}

// StartHTTPServer 启动 Prometheus HTTP 服务器
func StartHTTPServer(port int, path string) error {
	if path == "" {
		path = "/metrics"
	}

	http.Handle(path, promhttp.Handler())

	addr := fmt.Sprintf(":%d", port)
	logger.Info(context.Background(), "Starting Prometheus HTTP server", "addr", addr, "path", path)

	go func() {
		if err := http.ListenAndServe(addr, nil); err != nil {
			logger.Error(context.Background(), "Failed to start Prometheus HTTP server", "error", err)
		}
	}()

	return nil
}
