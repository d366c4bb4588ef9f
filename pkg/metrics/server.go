package metrics

import (
	"context"
	"flag"
	"net/http"

	"github.com/golang/glog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	fx "github.com/robotalks/trident/pkg/framework"
)

var listenAddr string

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&listenAddr, "metrics-addr", listenAddr, "Address to serve /metrics, empty to disable.")
}

// ListenAddr gets the configured listen address.
func ListenAddr() string {
	return listenAddr
}

// Server serves metrics over HTTP.
type Server struct {
	Addr     string
	Gatherer prometheus.Gatherer
}

// Name implements framework.Named.
func (s *Server) Name() string {
	return "metrics"
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	return mux
}

// Run implements Runnable.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler()}
	glog.Infof("serving metrics on %s", s.Addr)
	return fx.RunWithContextCancel(ctx, func() { srv.Close() }, srv.ListenAndServe)
}
