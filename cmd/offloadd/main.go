package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"offloadd/internal/config"
	"offloadd/internal/device"
	"offloadd/internal/httpapi"
	"offloadd/internal/offload"
	"offloadd/internal/registry"
	"offloadd/internal/resource"
	"offloadd/pkg/types"
)

func main() {
	// Flags with environment variable defaults
	defaultAddr := ":8080"
	if v := os.Getenv("OFFLOADD_ADDR"); v != "" {
		defaultAddr = v
	}
	addr := flag.String("addr", defaultAddr, "HTTP listen address, e.g. :8080")
	configPath := flag.String("config", "", "Optional config file (.json/.yaml/.toml)")
	modelsDir := flag.String("models-dir", "", "Directory to scan for weight files (*.gguf, *.safetensors)")
	devFlag := flag.String("device", "", "Execution device to enable auto offload against, e.g. cuda:0")
	margin := flag.Float64("margin", offload.DefaultMargin, "Fractional safety margin added to footprints")
	probeURL := flag.String("probe-url", "", "nvidia-docker-plugin base URL (empty = static probe)")
	freeMB := flag.Int("free-mb", 0, "Static probe free memory in MB (used when no probe URL)")
	runner := flag.String("runner", "none", "Resource runner: none|llama")
	logLevel := flag.String("log-level", "info", "Log level: debug|info|warn|error")
	flag.Parse()

	// A device given on the command line enables auto-offload directly; one
	// from the config file only does so when auto_enable is set.
	enableAtStart := *devFlag != ""

	cfg := config.Config{}
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			bootLog := zerolog.New(os.Stderr)
			bootLog.Fatal().Err(err).Msg("load config")
		}
	}
	if cfg.Addr != "" {
		*addr = cfg.Addr
	}
	if cfg.ModelsDir != "" {
		*modelsDir = cfg.ModelsDir
	}
	if cfg.Device != "" {
		*devFlag = cfg.Device
		if cfg.AutoEnable {
			enableAtStart = true
		}
	}
	if cfg.Margin != 0 {
		*margin = cfg.Margin
	}
	if cfg.ProbeURL != "" {
		*probeURL = cfg.ProbeURL
	}
	if cfg.FreeMB != 0 {
		*freeMB = cfg.FreeMB
	}
	if cfg.LogLevel != "" {
		*logLevel = cfg.LogLevel
	}

	lvl, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl).With().Timestamp().Logger()

	var probe device.MemoryProbe
	if *probeURL != "" {
		probe = device.NewNvidiaProbe(*probeURL)
	} else {
		sp := device.NewStaticProbe()
		if *devFlag != "" && *freeMB > 0 {
			if d, err := device.Parse(*devFlag); err == nil {
				sp.SetFree(d.Normalized(), uint64(*freeMB)<<20)
			}
		}
		probe = sp
	}

	reg := offload.NewWithConfig(offload.RegistryConfig{
		Estimator: resource.FileEstimator{},
		Probe:     probe,
		Logger:    &log,
	})

	svc := &offloadService{reg: reg, runner: *runner, llamaCtx: 2048, llamaThreads: 4}

	if *modelsDir != "" {
		found, err := registry.LoadDir(*modelsDir)
		if err != nil {
			log.Fatal().Err(err).Str("dir", *modelsDir).Msg("scan models dir")
		}
		for _, req := range found {
			if _, err := svc.AddResource(types.AddResourceRequest{ID: req.ID, Path: req.Path}); err != nil {
				log.Fatal().Err(err).Str("resource", req.ID).Msg("register resource")
			}
		}
		log.Info().Int("resources", len(found)).Str("dir", *modelsDir).Msg("registered discovered resources")
	}

	if enableAtStart && *devFlag != "" {
		d, err := device.Parse(*devFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("parse device")
		}
		if err := reg.EnableAutoOffload(d, *margin); err != nil {
			log.Fatal().Err(err).Msg("enable auto offload")
		}
	}

	baseCtx, cancelBase := context.WithCancel(context.Background())
	defer cancelBase()
	httpapi.SetBaseContext(baseCtx)
	httpapi.SetLogger(log)

	mux := httpapi.NewMux(svc)
	srv := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		log.Info().Str("addr", *addr).Msg("offloadd listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown (Ctrl+C / SIGTERM)
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	cancelBase()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
}
