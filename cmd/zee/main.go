// Command zee is a modal-free, Emacs-keyed terminal text editor.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/zee-editor/zee/internal/app"
	"github.com/zee-editor/zee/internal/config"
)

// Exit codes: 0 normal, 1 unrecoverable init error, 2 configuration
// parse error.
const (
	exitOK          = 0
	exitInitError   = 1
	exitConfigError = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	var initConfig bool
	var buildGrammars bool

	flag.BoolVar(&initConfig, "init", false, "Write the default configuration file and exit")
	flag.BoolVar(&buildGrammars, "build", false, "Resolve configured grammars and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "zee - a modern editor for the terminal\n\n")
		fmt.Fprintf(os.Stderr, "Usage: zee [--init] [--build] [FILES...]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	configDir, err := config.Dir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot resolve config directory: %v\n", err)
		return exitInitError
	}
	configPath := filepath.Join(configDir, config.FileName)

	if initConfig {
		if err := config.WriteDefault(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitInitError
		}
		// The file we just wrote must parse; refuse to leave a broken
		// config behind.
		if _, err := config.Load(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return exitConfigError
		}
		fmt.Printf("Wrote %s\n", configPath)
		return exitOK
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitConfigError
	}

	if buildGrammars {
		modes := cfg.SyntaxModes()
		errs := config.BuildGrammars(modes)
		for _, err := range errs {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
		fmt.Printf("Resolved grammars for %d modes\n", len(modes))
		return exitOK
	}

	logger, err := app.NewLogger(configDir, app.LogLevelInfo)
	if err != nil {
		logger = app.NopLogger()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot open terminal: %v\n", err)
		return exitInitError
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot initialize terminal: %v\n", err)
		return exitInitError
	}
	defer screen.Fini()

	application, err := app.New(app.Options{
		Files:     flag.Args(),
		ConfigDir: configDir,
		Config:    cfg,
		Logger:    logger,
	}, screen)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitInitError
	}
	defer application.Shutdown()

	if err := application.Run(); err != nil && !errors.Is(err, app.ErrQuit) {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitInitError
	}
	return exitOK
}
