package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/roomscan/floorplan-mcp/internal/config"
	"github.com/roomscan/floorplan-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "print version information")
	configPath := flag.String("config", "", "path to a YAML config file (default floorplan.yaml if present)")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("floorplan-mcp %s\n", Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	if os.Getenv("FLOORPLAN_MCP_LOG_LEVEL") == "debug" {
		log.Printf("Floorplan MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Scale %v, OCR language %s, batch limit %d", cfg.Scale, cfg.OCR.Language, cfg.BatchLimit)
	}

	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func usage() {
	fmt.Println("floorplan-mcp - MCP server for floor-plan analysis")
	fmt.Println()
	fmt.Println("Usage: floorplan-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version        Print version information")
	fmt.Println("  --config PATH    Load configuration from PATH")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  FLOORPLAN_CONFIG=path            Config file location")
	fmt.Println("  FLOORPLAN_MCP_LOG_LEVEL=debug    Enable debug logging")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
}
