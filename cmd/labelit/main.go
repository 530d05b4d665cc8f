// @title         labelit API
// @version       0.1.0
// @description   Manual labeling session over a remote text corpus

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"labelit/internal/platform/config"
	"labelit/internal/platform/logger"
	phttp "labelit/internal/platform/net/http"
	"labelit/internal/platform/store"

	"labelit/internal/services/api"
)

// setEnvIf lets a non empty flag value override the env config
func setEnvIf(key, val string) error {
	if val == "" {
		return nil
	}
	return os.Setenv(key, val)
}

func main() {
	var (
		fAddr   = flag.String("addr", "", "listen address, overrides LABELIT_API_PORT")
		fSample = flag.String("sample", "", "sample file name, overrides LABELIT_CORPUS_SAMPLE_FILE")
		fLabels = flag.String("labels", "", "label file name, overrides LABELIT_CORPUS_LABEL_FILE")
		fDB     = flag.String("db", "", "sqlite file, overrides LABELIT_DB_PATH")
	)
	flag.Parse()

	// bring up logging early
	l := logger.Get()

	for _, kv := range [][2]string{
		{"LABELIT_API_PORT", *fAddr},
		{"LABELIT_CORPUS_SAMPLE_FILE", *fSample},
		{"LABELIT_CORPUS_LABEL_FILE", *fLabels},
		{"LABELIT_DB_PATH", *fDB},
	} {
		if err := setEnvIf(kv[0], kv[1]); err != nil {
			l.Fatal().Err(err).Str("key", kv[0]).Msg("flag override failed")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, config.New().Prefix("LABELIT_"))
	stop()
	if err != nil {
		l.Fatal().Err(err).Msg("labelit stopped")
	}
	l.Info().Msg("shut down")
}

// run opens the store, starts the session and serves until ctx is cancelled
// startup failures are returned after the store is closed
func run(ctx context.Context, root config.Conf) error {
	l := logger.Get()
	apiCfg := root.Prefix("API_")
	dbCfg := root.Prefix("DB_")

	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "labelit",
			SQLite: store.SQLiteConfig{
				Enabled:     true,
				Path:        dbCfg.MayString("PATH", "/tmp/labelit.db"),
				LogSQL:      dbCfg.MayBool("LOG_SQL", false),
				SlowQueryMs: dbCfg.MayInt("SLOW_MS", 200),
				BusyTimeout: dbCfg.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			},
		},
		store.WithLogger(*l),
	)
	if err != nil {
		return fmt.Errorf("store.Open: %w", err)
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	if err := st.Guard(ctx); err != nil {
		return fmt.Errorf("store not reachable: %w", err)
	}

	// http server (reads LABELIT_API_PORT)
	srv := phttp.NewServer(root)

	// load the corpus, open the session and mount pages plus API
	if err := api.Mount(ctx, srv.Router(), api.Options{
		Config:         root,
		Store:          st,
		Logger:         l,
		EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
		EnableProfiler: apiCfg.MayBool("PROFILER", false),
	}); err != nil {
		return fmt.Errorf("labeling session could not start: %w", err)
	}

	// Run drains in flight requests once ctx is cancelled
	return srv.Run(ctx)
}
