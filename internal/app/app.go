package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"sync"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pelletier/go-toml/v2"

	"dropsel/internal/config"
	"dropsel/internal/domain"
	"dropsel/internal/eventbus"
	"dropsel/internal/ui"
)

// E2EEnv makes the form print a ready marker for the e2e driver
const E2EEnv = "DROPSEL_E2E_TEST"

// Flags are the parsed command line options
type Flags struct {
	ConfigPath string
	Init       bool
	Print      bool
	LogFile    string
}

// ParseFlags parses args (without the program name)
func ParseFlags(args []string, stderr io.Writer) (Flags, error) {
	var f Flags
	fs := flag.NewFlagSet("dropsel", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.ConfigPath, "config", "", "Path to the config file")
	fs.StringVar(&f.ConfigPath, "c", "", "Path to the config file (shorthand)")
	fs.BoolVar(&f.Init, "init", false, "Write the default config file and exit")
	fs.BoolVar(&f.Print, "print", false, "Print selections as TOML on exit")
	fs.StringVar(&f.LogFile, "log", "", "Log file (overrides ui.log_file)")

	if err := fs.Parse(args); err != nil {
		return Flags{}, err
	}
	if fs.NArg() > 0 {
		return Flags{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return f, nil
}

// configPath is the file --init writes: the given path or the default one
func (f Flags) configPath() string {
	if f.ConfigPath == "" {
		return config.DefaultPath()
	}
	return f.ConfigPath
}

// Run is the whole program. It returns the process exit code.
func Run(args []string, stdout, stderr io.Writer) int {
	flags, err := ParseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if flags.Init {
		path := flags.configPath()
		if err := InitConfig(path); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stdout, "Wrote %s\n", path)
		return 0
	}

	bus := eventbus.New()
	configSvc, cfg, closeLog, err := OpenConfig(flags, bus)
	if err != nil {
		bus.Close()
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	defer closeLog()

	activity := newActivityLog()
	unsubscribe := eventbus.SubscribeAll(bus, activity.record)

	// Create context for graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	model := ui.NewModel(cfg, configSvc, bus, ui.Options{ShowReady: os.Getenv(E2EEnv) == "1"})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	log.Printf("Starting UI...")
	_, runErr := p.Run()

	unsubscribe()
	bus.Close()
	activity.flush()

	if runErr != nil {
		if errors.Is(runErr, tea.ErrProgramKilled) {
			log.Printf("UI terminated by signal")
			return 1
		}
		log.Printf("Error running program: %v", runErr)
		fmt.Fprintf(stderr, "Error running program: %v\n", runErr)
		return 1
	}
	log.Printf("UI exited normally")

	if flags.Print {
		if err := PrintResults(stdout, model.Results()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
	}
	return 0
}

// OpenConfig loads the config named by flags and then sends the standard
// logger to the configured log file. Until the file is open, log output is
// discarded so nothing is written over the terminal.
func OpenConfig(flags Flags, bus eventbus.EventBus) (config.ConfigService, *config.Config, func(), error) {
	log.SetOutput(io.Discard)

	configSvc := config.NewConfigServiceWithBus(flags.ConfigPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return nil, nil, nil, err
	}

	logPath := cfg.UISettings.LogFile
	if flags.LogFile != "" {
		logPath = flags.LogFile
	}
	closeLog := SetupLogging(logPath)

	log.Printf("Loaded config from %s (%d dropdowns)", configSvc.Path(), len(cfg.Dropdowns))
	return configSvc, cfg, closeLog, nil
}

// InitConfig writes the default config to path. An existing file is left alone.
func InitConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	return config.NewConfigService(path).Save(config.DefaultConfig())
}

// SetupLogging sends the standard logger to path. The TUI owns the terminal,
// so with no path logs are discarded. The returned func closes the file.
func SetupLogging(path string) func() {
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}
	}
	logFile, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.SetOutput(io.Discard)
		return func() {}
	}
	log.SetOutput(logFile)
	return func() {
		log.SetOutput(io.Discard)
		_ = logFile.Close()
	}
}

type printedResults struct {
	Dropdown []domain.Result `toml:"dropdown"`
}

// PrintResults writes results as TOML, one [[dropdown]] table each
func PrintResults(w io.Writer, results []domain.Result) error {
	data, err := toml.Marshal(printedResults{Dropdown: results})
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// activityLog counts bus events over a session
type activityLog struct {
	mu     sync.Mutex
	counts map[domain.EventType]int
}

func newActivityLog() *activityLog {
	return &activityLog{counts: make(map[domain.EventType]int)}
}

func (a *activityLog) record(e eventbus.DomainEvent) {
	a.mu.Lock()
	a.counts[e.Type()]++
	a.mu.Unlock()

	switch ev := e.(type) {
	case eventbus.FileChosenEvent:
		log.Printf("Upload for %s: %s", ev.DropdownID, ev.Name)
	case eventbus.OptionsReplacedEvent:
		if len(ev.Pruned) > 0 {
			log.Printf("Pruned stale selections from %s: %v", ev.DropdownID, ev.Pruned)
		}
	}
}

func (a *activityLog) snapshot() map[domain.EventType]int {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[domain.EventType]int, len(a.counts))
	for k, v := range a.counts {
		out[k] = v
	}
	return out
}

func (a *activityLog) flush() {
	counts := a.snapshot()
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	for _, t := range types {
		log.Printf("Session: %d %s", counts[domain.EventType(t)], t)
	}
}
