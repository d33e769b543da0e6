// Command ripple serves the ripple HTTP/1.1 endpoints.
//
// Usage:
//
//	ripple [--addr 127.0.0.1:4221] [--directory /tmp/files] [--metrics-addr :9090]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/ripple/pkg/ripple/server"
)

type options struct {
	addr        string
	directory   string
	metricsAddr string
	logFormat   string
	logLevel    string
	maxRequest  int
	readTimeout time.Duration
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "ripple: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseFlags(args)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts.logFormat, opts.logLevel)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	cfg := server.DefaultConfig()
	cfg.Addr = opts.addr
	cfg.Directory = opts.directory
	cfg.MaxRequestSize = opts.maxRequest
	cfg.ReadTimeout = opts.readTimeout
	cfg.Logger = logger
	cfg.Registerer = reg

	srv, err := server.New(cfg)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.Serve(gctx, ln)
		if errors.Is(err, server.ErrServerClosed) {
			return nil
		}
		return err
	})

	if opts.metricsAddr != "" {
		ms := &http.Server{
			Addr:              opts.metricsAddr,
			Handler:           promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("metrics listening", "addr", opts.metricsAddr)
			if err := ms.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			sctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return ms.Shutdown(sctx)
		})
	}

	err = g.Wait()
	logger.Info("stopped", "error", err)
	return err
}

func parseFlags(args []string) (options, error) {
	var opts options

	fs := flag.NewFlagSet("ripple", flag.ContinueOnError)
	fs.StringVar(&opts.addr, "addr", server.DefaultConfig().Addr, "TCP address to listen on")
	fs.StringVar(&opts.directory, "directory", "", "directory served under /files/ (empty disables it)")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "address for the prometheus /metrics endpoint (empty disables it)")
	fs.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	fs.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	fs.IntVar(&opts.maxRequest, "max-request-size", server.DefaultConfig().MaxRequestSize, "largest accepted request in bytes")
	fs.DurationVar(&opts.readTimeout, "read-timeout", server.DefaultConfig().ReadTimeout, "time allowed to read a request")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

func newLogger(format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", level)
	}

	hopts := &slog.HandlerOptions{Level: lvl}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(os.Stderr, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(os.Stderr, hopts)), nil
	default:
		return nil, fmt.Errorf("invalid --log-format %q", format)
	}
}
