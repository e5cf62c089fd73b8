// Command cidfetch fetches content-addressed payloads through an HTTP
// gateway and reports per-CID results.
//
// Usage:
//
//	cidfetch -gateway https://ipfs.io [flags] CID...
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/meigma/cidfetch"
	"github.com/meigma/cidfetch/cache"
	"github.com/meigma/cidfetch/gateway"
)

type config struct {
	gatewayURL string
	pathPrefix string
	maxEntries int
	ttl        time.Duration
	retries    int
	retryDelay time.Duration
	timeout    time.Duration
	zstd       bool
	coalesce   bool
	verbose    bool
}

func main() {
	cfg, cids := parseFlags()

	gwOpts := []gateway.Option{}
	if cfg.pathPrefix != "" {
		gwOpts = append(gwOpts, gateway.WithPathPrefix(cfg.pathPrefix))
	}
	if cfg.zstd {
		gwOpts = append(gwOpts, gateway.WithZstd())
	}
	gw, err := gateway.NewClient(cfg.gatewayURL, gwOpts...)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	fetcherOpts := []cidfetch.Option{
		cidfetch.WithCache(cache.NewMemory(
			cache.WithMaxEntries(cfg.maxEntries),
			cache.WithTTL(cfg.ttl),
		)),
		cidfetch.WithRetryPolicy(cidfetch.RetryPolicy{
			MaxRetries: cfg.retries,
			BaseDelay:  cfg.retryDelay,
		}),
	}
	if cfg.coalesce {
		fetcherOpts = append(fetcherOpts, cidfetch.WithCoalescing())
	}
	if cfg.verbose {
		fetcherOpts = append(fetcherOpts, cidfetch.WithLogger(slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)))
	}
	f := cidfetch.New(gw, fetcherOpts...)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.timeout)
	defer cancel()

	start := time.Now()
	results := f.FetchAll(ctx, cids)
	elapsed := time.Since(start)

	failed := 0
	for i, cid := range cids {
		if results[i] == nil {
			failed++
			fmt.Printf("%s\tFAILED\t%s\n", cid, f.FetchError(cid))
			continue
		}
		fmt.Printf("%s\t%d bytes\n", cid, len(results[i]))
	}
	log.Printf("fetched %d/%d CIDs in %s", len(cids)-failed, len(cids), elapsed)

	if failed > 0 {
		os.Exit(1)
	}
}

func parseFlags() (config, []string) {
	cfg := config{}
	flag.StringVar(&cfg.gatewayURL, "gateway", "", "gateway base URL (required)")
	flag.StringVar(&cfg.pathPrefix, "path-prefix", "", "gateway path prefix (default /ipfs/)")
	flag.IntVar(&cfg.maxEntries, "max-entries", 1000, "cache capacity in entries")
	flag.DurationVar(&cfg.ttl, "ttl", 30*time.Minute, "cache entry time-to-live")
	flag.IntVar(&cfg.retries, "retries", 2, "retry attempts after the first failure")
	flag.DurationVar(&cfg.retryDelay, "retry-delay", time.Second, "base delay between retries")
	flag.DurationVar(&cfg.timeout, "timeout", 5*time.Minute, "overall deadline for the run")
	flag.BoolVar(&cfg.zstd, "zstd", false, "request zstd-compressed payloads")
	flag.BoolVar(&cfg.coalesce, "coalesce", false, "de-duplicate concurrent fetches per CID")
	flag.BoolVar(&cfg.verbose, "v", false, "log fetch diagnostics to stderr")
	flag.Parse()

	if cfg.gatewayURL == "" || flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: %s -gateway URL [flags] CID...\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	return cfg, flag.Args()
}
