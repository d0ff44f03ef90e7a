package common

import (
	"log"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	LoadSeconds     *prometheus.HistogramVec
	RowsLoadedTotal *prometheus.CounterVec
	ReportSeconds   *prometheus.HistogramVec
	SessionsTotal   prometheus.Counter
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	metrics := &Metrics{
		LoadSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bikeshare_load_seconds",
				Help:    "Time to read a city's trip records and derive time columns",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"city"},
		),
		RowsLoadedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bikeshare_rows_loaded_total",
				Help: "Trip records loaded per city",
			},
			[]string{"city"},
		),
		ReportSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bikeshare_report_seconds",
				Help:    "Time spent computing a statistics report",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"reporter"},
		),
		SessionsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "bikeshare_sessions_total",
				Help: "Explore iterations started from the interactive shell",
			},
		),
	}

	registry.MustRegister(
		metrics.LoadSeconds,
		metrics.RowsLoadedTotal,
		metrics.ReportSeconds,
		metrics.SessionsTotal,
	)

	return metrics
}

type TelemetryServer struct {
	addr     string
	mux      *http.ServeMux
	registry *prometheus.Registry

	server   *http.Server
	listener net.Listener
}

func NewTelemetryServer(addr string) *TelemetryServer {
	telemetry := &TelemetryServer{
		addr:     addr,
		registry: prometheus.NewRegistry(),
		mux:      http.NewServeMux(),
	}

	telemetry.mux.Handle(
		"/metrics",
		promhttp.HandlerFor(telemetry.registry, promhttp.HandlerOpts{}),
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "bikeshare_build_info",
			Help: "Build metadata",
		},
		[]string{"version", "git_commit"},
	)

	telemetry.registry.MustRegister(
		collectors.NewGoCollector(), // Go runtime metrics
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		buildInfo,
	)

	buildInfo.WithLabelValues(Version, GitCommit).Set(1)

	telemetry.mux.HandleFunc("/debug/pprof/", pprof.Index)
	telemetry.mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	telemetry.mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	telemetry.mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	telemetry.mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	return telemetry
}

func (telemetry *TelemetryServer) GetRegistry() *prometheus.Registry {
	return telemetry.registry
}

func (telemetry *TelemetryServer) Addr() string {
	if telemetry.listener != nil {
		return telemetry.listener.Addr().String()
	}
	return telemetry.addr
}

func (telemetry *TelemetryServer) Start() error {
	telemetry.server = &http.Server{
		Addr:              telemetry.addr,
		Handler:           telemetry.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	listener, err := net.Listen("tcp", telemetry.addr)
	if err != nil {
		return err
	}

	telemetry.listener = listener

	go telemetry.server.Serve(telemetry.listener)

	log.Printf("Telemetry server started: %s", telemetry.Addr())
	return nil
}

func (telemetry *TelemetryServer) Stop() error {
	if telemetry.server == nil {
		return nil
	}

	return telemetry.server.Close()
}
