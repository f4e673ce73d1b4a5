// Command recoptbench runs each of the four optimization configurations
// (NO_OPT, v1, v2, external) against a set of recorded pictures and writes
// per-record logs, placeholder renders, and a serialized benchmark
// summary.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"

	"github.com/recopt/recopt/bridge"
	"github.com/recopt/recopt/canvas"
	recopt "github.com/recopt/recopt"
	"github.com/recopt/recopt/meter"
	"github.com/recopt/recopt/optimize"
	"github.com/recopt/recopt/record"
)

type skpFlag []string

func (s *skpFlag) String() string     { return strings.Join(*s, ",") }
func (s *skpFlag) Set(v string) error { *s = append(*s, v); return nil }

var (
	filesProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "recoptbench_files_processed_total",
		Help: "Number of input pictures processed.",
	})
	mallocBytesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recoptbench_malloc_bytes_total",
		Help: "Bytes attributed to record replay, by mode.",
	}, []string{"mode"})
)

func init() {
	prometheus.MustRegister(filesProcessed, mallocBytesTotal)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "recoptbench:", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("recoptbench", flag.ContinueOnError)
	var skps skpFlag
	fs.Var(&skps, "skps", "input picture file (repeatable)")
	outDir := fs.String("out_dir", "", "output directory")
	configPath := fs.String("config", "", "path to a TOML configuration file")
	metricsAddr := fs.String("metrics-addr", "", "address to serve Prometheus metrics on (empty disables)")
	logLevel := fs.String("log-level", "info", "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := configureLogging(*logLevel); err != nil {
		return err
	}
	if len(skps) == 0 {
		return errors.New("at least one --skps is required")
	}
	if *outDir == "" {
		return errors.New("--out_dir is required")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create out_dir: %w", err)
	}

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if !cfg.MallocLoggingEnabled {
		return errors.New("malloc logging not enabled in configuration; aborting")
	}

	rw, err := bridge.NewRewriter(cfg.RewriterName)
	if err != nil {
		return err
	}

	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr)
	}

	runID := uuid.New().String()
	summary := Summary{RunID: runID, Results: make(map[string][]FileResult)}

	var src canvas.FilePictureSource
	for _, path := range skps {
		results, err := processFile(src, rw, path, *outDir)
		if err != nil {
			recopt.Logger().Warn("skipping malformed picture", "path", path, "error", err)
			continue
		}
		summary.Results[path] = results
		filesProcessed.Inc()
	}

	return writeSummary(*outDir, summary)
}

func configureLogging(level string) error {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return fmt.Errorf("unknown --log-level %q", level)
	}
	recopt.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	if err := http.ListenAndServe(addr, mux); err != nil {
		recopt.Logger().Error("metrics server stopped", "error", err)
	}
}

func processFile(src canvas.FilePictureSource, rw bridge.Rewriter, path, outDir string) ([]FileResult, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s, err := src.Load(path)
	if err != nil {
		return nil, err
	}

	var results []FileResult

	noOpt, visits := visitWithMeter(s, ModeNoOpt)
	results = append(results, FileResult{Mode: ModeNoOpt, NonNoopCount: noOpt.NonNoopCount(), Visits: visits})
	if err := renderPlaceholder(filepath.Join(outDir, base+".no_opt.png"), noOpt); err != nil {
		return nil, err
	}

	v1Out, v1Visits := visitWithMeter(optimize.V1(s.Clone()), ModeV1)
	results = append(results, FileResult{Mode: ModeV1, NonNoopCount: v1Out.NonNoopCount(), Visits: v1Visits})

	v2Out, v2Visits := visitWithMeter(optimize.V2(s.Clone()), ModeV2)
	results = append(results, FileResult{Mode: ModeV2, NonNoopCount: v2Out.NonNoopCount(), Visits: v2Visits})

	extResult := runExternal(rw, s.Clone(), outDir, base)
	results = append(results, extResult)

	if err := writeVisitLog(outDir, base, results); err != nil {
		return nil, err
	}
	return results, nil
}

func visitWithMeter(s *record.Stream, mode Mode) (*record.Stream, []RecordVisit) {
	m := meter.New()
	visits := make([]RecordVisit, 0, s.Count())
	for i := 0; i < s.Count(); i++ {
		start := time.Now()
		m.Reset()
		m.Add(estimateAllocation(s.At(i)))
		visits = append(visits, RecordVisit{
			Index:       i,
			Kind:        s.At(i).Kind().String(),
			MallocBytes: m.Read(),
			ElapsedNs:   time.Since(start).Nanoseconds(),
		})
		mallocBytesTotal.WithLabelValues(string(mode)).Add(float64(m.Read()))
	}
	return s, visits
}

// estimateAllocation stands in for the real per-draw allocation counter
// that instruments a real canvas backend; since rasterization is out of
// scope here, the meter is exercised with a deterministic, command-shaped
// estimate instead of a live allocator hook.
func estimateAllocation(c record.Command) int64 {
	switch c.Kind() {
	case record.KindDraw, record.KindDrawPicture:
		return 64
	case record.KindSaveLayer:
		return 128
	default:
		return 0
	}
}

func runExternal(rw bridge.Rewriter, s *record.Stream, outDir, base string) FileResult {
	tr := canvas.NewTrace()
	err := bridge.Optimize(context.Background(), rw, s, tr)
	if err != nil {
		var uce *bridge.UnsupportedCommandsError
		if errors.As(err, &uce) {
			recopt.Logger().Warn("external rewrite reported unsupported commands", "names", uce.Names)
			return FileResult{Mode: ModeExternal, Failed: true, UnsupportedNames: uce.Names}
		}
		recopt.Logger().Warn("external rewrite failed", "error", err)
		return FileResult{Mode: ModeExternal, Failed: true}
	}
	_, visits := visitWithMeter(s, ModeExternal)
	if err := renderPlaceholder(filepath.Join(outDir, base+".external.png"), s); err != nil {
		recopt.Logger().Warn("render placeholder failed", "error", err)
	}
	return FileResult{Mode: ModeExternal, NonNoopCount: s.NonNoopCount(), Visits: visits}
}

func writeVisitLog(outDir, base string, results []FileResult) error {
	path := filepath.Join(outDir, base+".log")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create visit log: %w", err)
	}
	defer f.Close()
	for _, r := range results {
		fmt.Fprintf(f, "mode=%s nonNoopCount=%d failed=%t\n", r.Mode, r.NonNoopCount, r.Failed)
		for _, v := range r.Visits {
			fmt.Fprintf(f, "  [%d] kind=%s mallocBytes=%d elapsedNs=%d\n", v.Index, v.Kind, v.MallocBytes, v.ElapsedNs)
		}
	}
	return nil
}

func writeSummary(outDir string, summary Summary) error {
	data, err := cbor.Marshal(summary)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	path := filepath.Join(outDir, "summary.cbor")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
