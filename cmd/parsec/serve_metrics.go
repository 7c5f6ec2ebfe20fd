package main

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/consensys/go-parsec/pkg/parsec"
	"github.com/consensys/go-parsec/pkg/parsec/metrics"
	"github.com/consensys/go-parsec/pkg/sexp"
)

var serveMetricsCmd = &cobra.Command{
	Use:   "serve-metrics",
	Short: "Run an HTTP server exposing /parse and Prometheus /metrics.",
	Long:  "Starts a small HTTP server: POST a document to /parse to have it parsed and get back the result, and scrape /metrics for run counts and latency histograms. Requests are rate limited to protect the process from an unbounded client.",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		rps, _ := cmd.Flags().GetFloat64("rate")

		registry := prometheus.NewRegistry()
		recorder := metrics.NewRecorder(registry, "parsec_sexp")
		limiter := rate.NewLimiter(rate.Limit(rps), int(rps)+1)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		mux.HandleFunc("/parse", rateLimited(limiter, parseHandler(recorder)))

		log.WithField("addr", addr).Info("serving metrics and /parse")

		return http.ListenAndServe(addr, mux)
	},
}

func rateLimited(limiter *rate.Limiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}

		next(w, r)
	}
}

func parseHandler(recorder *metrics.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "expected POST", http.StatusMethodNotAllowed)
			return
		}

		defer func() { _ = r.Body.Close() }()

		buf := make([]byte, r.ContentLength)
		if _, err := r.Body.Read(buf); err != nil && r.ContentLength > 0 {
			http.Error(w, fmt.Sprintf("reading body: %v", err), http.StatusBadRequest)
			return
		}

		body := string(buf)

		terms, err := metrics.RunObserved(recorder, sexp.Grammar, parsec.FromString(body))
		if err != nil {
			http.Error(w, sexp.Diagnose(body, err).Error(), http.StatusBadRequest)
			return
		}

		fmt.Fprintf(w, "%d expressions parsed\n", len(terms))
	}
}

func init() {
	serveMetricsCmd.Flags().String("addr", ":8080", "address to listen on")
	serveMetricsCmd.Flags().Float64("rate", 50, "maximum requests per second")
}
