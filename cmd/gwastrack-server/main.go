package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/gwastrack"
	"github.com/carbocation/gwastrack/compileinfo"
	"github.com/carbocation/gwastrack/figure"
)

const shutdownGrace = 10 * time.Second

var global *Global

func main() {
	configPath := flag.String("config", "", "JSON figure configuration with a region, an optional width and backend, and a list of tracks.")
	port := flag.Int("port", 9019, "Port for HTTP server")
	version := flag.Bool("version", false, "Print build information and exit.")
	flag.Parse()

	if *version {
		compileinfo.Fprint(os.Stdout, "gwastrack-server")
		return
	}

	if *configPath == "" {
		flag.PrintDefaults()
		return
	}

	cfg, err := figure.ParseJSONConfigFromPath(*configPath)
	if err != nil {
		log.Fatalln(err)
	}

	global = &Global{
		Site:       "gwastrack",
		ConfigPath: *configPath,
		log:        log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
	}

	sclient, err := storageClientFor(cfg)
	if err != nil {
		log.Fatalln(err)
	}
	if sclient != nil {
		defer sclient.Close()
	}

	global.figure, err = figure.New(cfg, figure.WithLogger(global.log), figure.WithStorageClient(sclient))
	if err != nil {
		log.Fatalln(err)
	}

	if err := serve(global, *port); err != nil {
		global.log.Println("Exiting due to error", err)
		os.Exit(1)
	}
}

// serve runs the HTTP server until it fails or the process is asked to stop.
// SIGUSR1 prints a status line and keeps serving.
func serve(g *Global, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(`:%d`, port),
		Handler:           router(g),
		ReadHeaderTimeout: 10 * time.Second,
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGUSR1)
	defer signal.Stop(sig)

	failed := make(chan error, 1)
	go func() {
		g.log.Println("Serving", g.ConfigPath, "on port", port)
		failed <- srv.ListenAndServe()
	}()

	for {
		select {
		case s := <-sig:
			if s == syscall.SIGUSR1 {
				g.log.Println("There are", runtime.NumGoroutine(), "goroutines running")
				continue
			}

			g.log.Printf("Exit: %s\n", s)
			ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			return srv.Shutdown(ctx)

		case err := <-failed:
			return err
		}
	}
}

// storageClientFor opens a Google Storage client only when some track lives
// in a bucket.
func storageClientFor(cfg figure.JSONConfig) (*storage.Client, error) {
	for _, track := range cfg.Tracks {
		if gwastrack.IsGoogleStoragePath(track.File) {
			return storage.NewClient(context.Background())
		}
	}

	return nil, nil
}
