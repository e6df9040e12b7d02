package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type Config struct {
	BaseURL     string
	Total       int
	Rate        int
	Concurrency int
	Endpoints   []string
}

func parseFlags() *Config {
	c := &Config{}
	var endpoints string
	flag.StringVar(&c.BaseURL, "base-url", "", "Service base URL, e.g. http://localhost:8080 (required)")
	flag.IntVar(&c.Total, "total", 2000, "Total requests")
	flag.IntVar(&c.Rate, "rate", 100, "Requests per second")
	flag.IntVar(&c.Concurrency, "concurrency", 0, "Worker count (0=auto)")
	flag.StringVar(&endpoints, "endpoints", "dashboard,orders,customers,products,export", "Comma-separated report endpoints")
	flag.Parse()

	if c.BaseURL == "" {
		fmt.Fprintln(os.Stderr, "Error: -base-url is required")
		flag.Usage()
		os.Exit(1)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")

	for _, e := range strings.Split(endpoints, ",") {
		if e = strings.TrimSpace(e); e != "" {
			c.Endpoints = append(c.Endpoints, e)
		}
	}
	if len(c.Endpoints) == 0 {
		fmt.Fprintln(os.Stderr, "Error: -endpoints is empty")
		os.Exit(1)
	}

	// Reports are heavier than ingestion, so fewer workers per request/s.
	if c.Concurrency == 0 {
		c.Concurrency = c.Rate / 10
		if c.Concurrency < 10 {
			c.Concurrency = 10
		}
	}
	return c
}

// Stats tracks outcomes per endpoint.
type Stats struct {
	ok      uint64
	errors  uint64
	latency int64 // microseconds

	mu        sync.Mutex
	perTarget map[string][]time.Duration
}

func NewStats() *Stats {
	return &Stats{perTarget: make(map[string][]time.Duration)}
}

func (s *Stats) AddOK(endpoint string, duration time.Duration) {
	atomic.AddUint64(&s.ok, 1)
	atomic.AddInt64(&s.latency, duration.Microseconds())
	s.mu.Lock()
	s.perTarget[endpoint] = append(s.perTarget[endpoint], duration)
	s.mu.Unlock()
}

func (s *Stats) AddError() {
	atomic.AddUint64(&s.errors, 1)
}

func (s *Stats) StartLogger(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastOK, lastErr uint64

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ok := atomic.LoadUint64(&s.ok)
			errs := atomic.LoadUint64(&s.errors)
			latTotal := atomic.LoadInt64(&s.latency)

			curOK := ok - lastOK
			curErr := errs - lastErr
			lastOK, lastErr = ok, errs

			avgLat := 0.0
			if ok > 0 {
				avgLat = float64(latTotal) / float64(ok) / 1000.0
			}

			log.Printf("[STATS] 1s -> OK: %d | ERR: %d | AvgLat: %.2fms | Total OK: %d", curOK, curErr, avgLat, ok)
		}
	}
}

// Summary prints p50/p95/p99 latency per endpoint.
func (s *Stats) Summary() {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.perTarget))
	for name := range s.perTarget {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := s.perTarget[name]
		sort.Slice(d, func(i, j int) bool { return d[i] < d[j] })
		log.Printf("[LATENCY] %-10s n=%d p50=%s p95=%s p99=%s", name, len(d), percentile(d, 50), percentile(d, 95), percentile(d, 99))
	}
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (len(sorted)*p+99)/100 - 1
	if idx < 0 {
		idx = 0
	}
	return sorted[idx]
}

func main() {
	cfg := parseFlags()
	stats := NewStats()

	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        cfg.Concurrency,
			MaxIdleConnsPerHost: cfg.Concurrency,
			IdleConnTimeout:     90 * time.Second,
			DialContext: (&net.Dialer{
				Timeout:   5 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}

	log.Printf("Starting Load Test: Target=%s Rate=%d/s Total=%d Workers=%d Endpoints=%v",
		cfg.BaseURL, cfg.Rate, cfg.Total, cfg.Concurrency, cfg.Endpoints)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go stats.StartLogger(ctx)

	jobs := make(chan struct{}, cfg.Rate*2)
	var wg sync.WaitGroup
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		go startWorker(client, cfg, jobs, stats, rand.New(rand.NewSource(rng.Int63())), &wg)
	}

	remaining := cfg.Total
	for remaining > 0 {
		start := time.Now()
		batch := cfg.Rate
		if remaining < batch {
			batch = remaining
		}

		for i := 0; i < batch; i++ {
			jobs <- struct{}{}
		}
		remaining -= batch

		elapsed := time.Since(start)
		if elapsed < time.Second {
			time.Sleep(time.Second - elapsed)
		}
	}

	close(jobs)
	wg.Wait()

	log.Printf("DONE. Total OK: %d | Total Errors: %d", atomic.LoadUint64(&stats.ok), atomic.LoadUint64(&stats.errors))
	stats.Summary()
}

func startWorker(client *http.Client, cfg *Config, jobs <-chan struct{}, stats *Stats, rng *rand.Rand, wg *sync.WaitGroup) {
	defer wg.Done()

	for range jobs {
		endpoint := cfg.Endpoints[rng.Intn(len(cfg.Endpoints))]
		target := buildURL(cfg.BaseURL, endpoint, rng)
		start := time.Now()

		if err := fetch(client, target); err != nil {
			stats.AddError()
			continue
		}
		stats.AddOK(endpoint, time.Since(start))
	}
}

var (
	periods  = []string{"today", "week", "month", "quarter", "year"}
	groupBys = []string{"hour", "day", "week", "month"}
	types    = []string{"dashboard", "products", "orders", "customers"}
	formats  = []string{"json", "csv"}
)

func buildURL(base, endpoint string, rng *rand.Rand) string {
	q := url.Values{}
	switch endpoint {
	case "dashboard":
		q.Set("period", periods[rng.Intn(len(periods))])
	case "orders":
		q.Set("period", periods[rng.Intn(len(periods))])
		q.Set("groupBy", groupBys[rng.Intn(len(groupBys))])
	case "export":
		q.Set("type", types[rng.Intn(len(types))])
		q.Set("format", formats[rng.Intn(len(formats))])
	}
	target := base + "/api/admin/analytics/" + endpoint
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	return target
}

func fetch(client *http.Client, target string) error {
	resp, err := client.Get(target)
	if err != nil {
		return err
	}

	// Drain so the connection can be reused.
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("http status: %d", resp.StatusCode)
	}
	return nil
}
