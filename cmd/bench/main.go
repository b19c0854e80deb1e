package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tuannm99/novabuf/internal"
	"github.com/tuannm99/novabuf/internal/bufferpool"
	"github.com/tuannm99/novabuf/internal/storage"
	"github.com/tuannm99/novabuf/pkg/logger"
)

func main() {
	cfgPath := flag.String("config", "novabuf.yaml", "Path to the YAML config file")
	pages := flag.Int("pages", 512, "Pages to allocate in the bench file")
	ops := flag.Int("ops", 100000, "Random fetch/unpin operations to run")
	writeRatio := flag.Float64("write-ratio", 0.2, "Fraction of operations that dirty the page")
	seed := flag.Uint64("seed", 1, "Workload seed")
	flag.Parse()

	cfg, err := internal.LoadConfig(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()
	zap.ReplaceGlobals(lg)

	reg := prometheus.NewRegistry()
	bm := bufferpool.New(cfg.BufferPool.Frames,
		bufferpool.WithLogger(lg),
		bufferpool.WithMetrics(bufferpool.NewMetrics(reg)),
	)

	f, err := storage.OpenSegmentFile(storage.LocalFileSet{Dir: cfg.Storage.Workdir, Base: cfg.AppName + "_bench"})
	if err != nil {
		lg.Fatal("open bench file", zap.Error(err))
	}

	if err := run(bm.View(f), int(f.NumPages()), *pages, *ops, *writeRatio, *seed); err != nil {
		lg.Error("workload failed", zap.Error(err))
	}
	st := bm.Stats()
	lg.Info("workload done",
		zap.Int("frames", st.Frames),
		zap.Int("valid", st.Valid),
		zap.Int("pinned", st.Pinned),
		zap.Int("dirty", st.Dirty),
	)
	if cfg.Log.Level == "debug" {
		bm.Dump(os.Stderr)
	}

	if cfg.Metrics.Enabled {
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{})}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				lg.Error("metrics server", zap.Error(err))
			}
		}()
		lg.Info("serving metrics", zap.String("addr", cfg.Metrics.Addr))

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		_ = srv.Close()
	}

	_ = bm.Close()
	fmt.Println("Shutting down...")
}

// run grows the file from have to pages pages and then fetches random pages, dirtying
// a share of them.
func run(v *bufferpool.FileView, have, pages, ops int, writeRatio float64, seed uint64) error {
	if pages <= 0 {
		return fmt.Errorf("pages must be positive, got %d", pages)
	}
	for ; have < pages; have++ {
		pageNo, page, err := v.AllocPage()
		if err != nil {
			return fmt.Errorf("alloc page: %w", err)
		}
		copy(page[:], fmt.Sprintf("bench page %d", pageNo))
		if err := v.UnpinPage(pageNo, true); err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewPCG(seed, seed))
	for range ops {
		pageNo := uint32(rng.IntN(pages))
		page, err := v.FetchPage(pageNo)
		if err != nil {
			return fmt.Errorf("fetch page %d: %w", pageNo, err)
		}
		dirty := rng.Float64() < writeRatio
		if dirty {
			page[storage.PageSize-1]++
		}
		if err := v.UnpinPage(pageNo, dirty); err != nil {
			return err
		}
	}
	return v.Flush()
}
