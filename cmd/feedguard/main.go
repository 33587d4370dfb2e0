package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedguard/pkg/config"
	"github.com/umputun/feedguard/pkg/content"
	"github.com/umputun/feedguard/pkg/feed"
	"github.com/umputun/feedguard/pkg/filter"
	"github.com/umputun/feedguard/pkg/llm"
	"github.com/umputun/feedguard/server"
)

// Opts with all CLI options, non-empty values override the config file
type Opts struct {
	Config    string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults only if not set"`
	Listen    string `short:"l" long:"listen" env:"LISTEN" description:"listen address"`
	APIKey    string `long:"api-key" env:"OPENROUTER_API_KEY" description:"LLM API key"`
	Model     string `long:"model" env:"MODEL_NAME" description:"LLM model name"`
	CacheSize int    `long:"cache-size" env:"CACHE_SIZE" description:"maximum number of cached verdicts"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, opts.APIKey)
	lgr.Printf("[INFO] starting feedguard version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	lgr.Print("[INFO] shutdown complete")
}

// run loads configuration, wires all components and runs the server until ctx is canceled
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	// key may come from the config file as well
	setupLog(opts.Debug, cfg.LLM.APIKey)
	if cfg.LLM.APIKey == "" {
		lgr.Printf("[WARN] llm api key is not set, model requests will fail")
	}

	previewer := content.NewPreviewer(cfg.Preview.UserAgent)
	agent, err := llm.NewAgent(llm.AgentParams{
		Config:       cfg.LLM,
		CacheSize:    cfg.Cache.Size,
		SingleFlight: cfg.Cache.SingleFlight,
		Previewer:    previewer,
		HTTPClient:   func() *http.Client { return content.NewHTTPClient(cfg.Preview.Timeout) },
	})
	if err != nil {
		return fmt.Errorf("failed to make classification agent: %w", err)
	}

	loader := feed.NewLoader(cfg.Feed.Timeout, cfg.Feed.UserAgent)
	filterSvc := filter.NewService(agent, cfg.Filter.MaxConcurrent, cfg.Filter.OnError)

	lgr.Printf("[INFO] model %s at %s, cache size %d, on error %s",
		cfg.LLM.Model, cfg.LLM.Endpoint, cfg.Cache.Size, cfg.Filter.OnError)

	srv := server.New(cfg, loader, filterSvc, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file and applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.APIKey != "" {
		cfg.LLM.APIKey = opts.APIKey
	}
	if opts.Model != "" {
		cfg.LLM.Model = opts.Model
	}
	if opts.CacheSize != 0 {
		cfg.Cache.Size = opts.CacheSize
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Out(os.Stdout), lgr.Err(os.Stderr)}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	var secrets []string
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
