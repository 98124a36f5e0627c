package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/profile"
	log "github.com/sirupsen/logrus"

	"github.com/ironsheep/piccy/internal/config"
	"github.com/ironsheep/piccy/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const envProfile = "PICCY_PROFILE"

func usage() {
	fmt.Println("piccy-mcp - MCP server for image transforms")
	fmt.Println()
	fmt.Println("Usage: piccy-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <path>  YAML configuration file (default ./piccy.yaml)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  PICCY_CONFIG=<path>            Configuration file")
	fmt.Println("  PICCY_LOG_LEVEL=debug          Log level (trace..panic)")
	fmt.Println("  PICCY_LOG_FORMAT=json          Log format: text or json")
	fmt.Println("  PICCY_WORKERS=4                Parallel workers per call (0 = all CPUs)")
	fmt.Println("  PICCY_OUTPUT_DIR=<dir>         Directory for image_save without a path")
	fmt.Println("  PICCY_OUTPUT_FORMAT=png        Default output format")
	fmt.Println("  PICCY_FRAME_DELAY_MS=20        Default image_merge_gif frame delay")
	fmt.Println("  PICCY_PROFILE=cpu|mem          Write a pprof profile to the working directory")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}

func main() {
	var configPath string

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; {
		case arg == "--version" || arg == "-v" || arg == "version":
			fmt.Printf("piccy-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case arg == "--help" || arg == "-h" || arg == "help":
			usage()
			return
		case arg == "--config":
			if i+1 >= len(args) {
				fmt.Fprintln(os.Stderr, "--config needs a path")
				os.Exit(2)
			}
			i++
			configPath = args[i]
		case strings.HasPrefix(arg, "--config="):
			configPath = strings.TrimPrefix(arg, "--config=")
		default:
			fmt.Fprintf(os.Stderr, "unknown option: %s\n\n", arg)
			usage()
			os.Exit(2)
		}
	}

	if err := run(configPath); err != nil {
		log.WithError(err).Error("piccy-mcp exiting")
		os.Exit(1)
	}
}

// run holds everything that owns deferred cleanup, so main only exits once
// the profile has been flushed.
func run(configPath string) error {
	// Logging goes to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.ConfigureLogging()

	if stop := startProfile(os.Getenv(envProfile)); stop != nil {
		defer stop()
	}

	log.WithFields(log.Fields{
		"version": Version,
		"built":   BuildTime,
		"commit":  GitCommit,
		"workers": cfg.Workers,
	}).Debug("piccy-mcp starting")

	server.Version = Version
	if err := server.New(cfg).Run(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// startProfile starts the profiler named by mode ("cpu" or "mem") and returns
// its stop function, or nil when profiling is off.
func startProfile(mode string) func() {
	var kind func(*profile.Profile)
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "":
		return nil
	case "cpu":
		kind = profile.CPUProfile
	case "mem":
		kind = profile.MemProfile
	default:
		log.Warnf("%s: unknown profile %q, ignoring", envProfile, mode)
		return nil
	}
	return profile.Start(kind, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet).Stop
}
