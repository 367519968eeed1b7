// Command worldgen builds a world from a seed and serves it over HTTP,
// grounded on the orchestration shape of the teacher's
// cmd/worldsim/main.go: slog setup, open-or-create persistence, a
// load-or-generate branch, and a signal-driven run loop. The teacher's
// free-running tick engine and LLM/narration wiring have no place here
// — a world is built once, not simulated tick by tick — so Build
// replaces engine.NewEngine/eng.Run. Saving (with -save) happens once,
// right after the world is built or loaded; the signal handler only
// ends the serve loop.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/c1921/worldforge/internal/api"
	"github.com/c1921/worldforge/internal/config"
	"github.com/c1921/worldforge/internal/persistence"
	"github.com/c1921/worldforge/internal/world"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	var (
		seed    = flag.Int64("seed", 42, "world generation seed")
		width   = flag.Int("width", 512, "heightmap width in cells")
		height  = flag.Int("height", 512, "heightmap height in cells")
		erosion = flag.Bool("erosion", false, "enable hydraulic erosion")
		save    = flag.String("save", "", "save the world to this sqlite path (combine with -no-serve to exit afterwards)")
		load    = flag.String("load", "", "load a save record (sqlite path) instead of generating")
		loadID  = flag.String("load-id", "", "save id to load (required with -load)")
		apiPort = flag.Int("port", 8080, "HTTP API port")
		noServe = flag.Bool("no-serve", false, "build/save/load and exit without starting the API")
	)
	flag.Parse()

	var w *world.World

	switch {
	case *load != "":
		if *loadID == "" {
			slog.Error("-load-id is required with -load")
			os.Exit(1)
		}
		db, err := persistence.Open(*load)
		if err != nil {
			slog.Error("failed to open save database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		rec, err := db.Load(*loadID)
		if err != nil {
			slog.Error("failed to load save", "error", err)
			os.Exit(1)
		}

		cfg := config.Default(rec.Seed, rec.Width, rec.Height)
		w, err = world.LoadFromRecord(rec, cfg)
		if err != nil {
			slog.Error("failed to rebuild world from save", "error", err)
			os.Exit(1)
		}
		slog.Info("world loaded", "id", *loadID, "seed", w.Config.Seed)

	default:
		cfg := config.Default(*seed, *width, *height)
		cfg.EnableErosion = *erosion

		slog.Info("generating world", "seed", cfg.Seed, "width", cfg.Width, "height", cfg.Height, "erosion", cfg.EnableErosion)
		built, err := world.Build(cfg)
		if err != nil {
			slog.Error("world build failed", "error", err)
			os.Exit(1)
		}
		w = built
	}

	if *save != "" {
		db, err := persistence.Open(*save)
		if err != nil {
			slog.Error("failed to open save database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		id, err := db.Save(w.SaveRecord(time.Now().Unix()))
		if err != nil {
			slog.Error("failed to save world", "error", err)
			os.Exit(1)
		}
		slog.Info("world saved", "id", id, "path", *save)
	}

	if *noServe {
		return
	}

	apiServer := &api.Server{World: w, Port: *apiPort}
	apiServer.Start()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	fmt.Printf("worldgen: %d settlements (%d cities), %d roads on a %dx%d map\n",
		len(w.Settlements), len(w.Cities), len(w.Roads), w.Config.Width, w.Config.Height)
	fmt.Printf("API: http://localhost:%d/api/v1/status\n", *apiPort)
	fmt.Println("Serving... (Ctrl+C to stop)")

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case sig := <-sigCh:
			slog.Info("received signal, shutting down", "signal", sig)
			return
		case t := <-ticker.C:
			w.Tick(t.UnixMilli())
		}
	}
}
