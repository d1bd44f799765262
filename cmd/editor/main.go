package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilesmith/assets"
	"github.com/milk9111/tilesmith/config"
	"github.com/milk9111/tilesmith/editor"
	"github.com/milk9111/tilesmith/levels"
	"github.com/milk9111/tilesmith/logging"
	"github.com/milk9111/tilesmith/script"
	"github.com/milk9111/tilesmith/tilemap"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "Path to editor.yaml (falls back to $"+config.EnvPath+")")
	levelPath := flag.String("level", "", "Level file to open; created on first save if missing")
	dumpName := flag.String("dump-script", "", "Print a built-in script (e.g. border) and exit")
	flag.Parse()

	if *dumpName != "" {
		if err := dumpScript(os.Stdout, *dumpName); err != nil {
			logrus.WithError(err).Fatal("editor: dump script")
		}
		return
	}

	cfgPath := config.ResolvePath(*configPath)
	cfg, err := config.Load(cfgPath)
	if err != nil {
		logrus.WithError(err).Fatal("editor: load config")
	}

	closer, err := logging.Setup(logging.Options{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		logrus.WithError(err).Fatal("editor: set up logging")
	}
	defer closer.Close()

	m := tilemap.New(cfg.Map.Width, cfg.Map.Height, cfg.Map.TileWidth, cfg.Map.TileHeight)
	if *levelPath != "" {
		if _, statErr := os.Stat(*levelPath); statErr == nil {
			loaded, err := levels.Load(*levelPath)
			if err != nil {
				logrus.WithError(err).WithField("path", *levelPath).Fatal("editor: load level")
			}
			m = loaded
		}
	}

	session := editor.NewSession(m, editor.WithLimits(cfg.HistoryLimits()))
	log := logrus.WithField("session", session.ID.String())
	log.WithFields(logrus.Fields{
		"width":  m.Width,
		"height": m.Height,
		"layers": m.LayerCount(),
	}).Info("editor: session started")

	g := newGame(session, *levelPath, log)
	g.scripts = loadScripts(cfg.ScriptsDir, log)

	if cfgPath != "" {
		w, err := config.NewWatcher(cfgPath)
		if err != nil {
			log.WithError(err).Warn("editor: config hot reload disabled")
		} else {
			defer w.Close()
			g.watcher = w
			g.configPath = cfgPath
		}
	}

	ebiten.SetWindowTitle("tilesmith")
	ebiten.SetWindowSize(1280, 800)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("editor: run")
	}
}

// dumpScript writes the source of a built-in script to w, as a starting
// point for a custom one in scripts_dir.
func dumpScript(w io.Writer, name string) error {
	src, err := assets.LoadScript(name)
	if err != nil {
		return fmt.Errorf("built-in script %q: %w", name, err)
	}
	_, err = w.Write(src)
	return err
}

// loadScripts compiles the built-in scripts followed by those in dir.
// Broken scripts are logged and skipped.
func loadScripts(dir string, log *logrus.Entry) []*script.Script {
	out, err := script.LoadFS(assets.Scripts())
	if err != nil {
		log.WithError(err).Warn("editor: built-in scripts")
	}
	if dir != "" {
		if _, statErr := os.Stat(dir); statErr == nil {
			user, err := script.LoadFS(os.DirFS(dir))
			if err != nil {
				log.WithError(err).WithField("dir", dir).Warn("editor: skipping scripts")
			}
			out = append(out, user...)
		}
	}
	log.WithField("count", len(out)).Info("editor: scripts loaded")
	return out
}
