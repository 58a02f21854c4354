package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "hash-password":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: reportengine hash-password <password>")
			os.Exit(1)
		}
		if err := runHashPassword(os.Stdout, os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("reportengine %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`reportengine - an admin-only backend for food blog reports

Usage:
  reportengine <command> [arguments]

Commands:
  serve                     Run the HTTP server (configured from the environment)
  hash-password <password>  Print a bcrypt hash for ADMIN_PASSWORD_HASH
  version                   Print the reportengine version
  help                      Show this help message

Environment:
  ADDR / PORT          Listen address (default :8000)
  SECRET_KEY           Token signing secret
  ACCESS_TOKEN_TTL     Lifetime recorded in tokens (default 12h)
  ADMIN_USERNAME       Admin username (default admin)
  ADMIN_PASSWORD       Admin password, hashed at startup
  ADMIN_PASSWORD_HASH  Pre-computed bcrypt hash, wins over ADMIN_PASSWORD
  DATABASE_URL         mongodb://... or sqlite://<path> (default sqlite://data/reports.db)
  DATABASE_NAME        Database name (default reports)
  UPLOAD_DIR           Image upload directory (default /tmp/uploads)
  LOG_LEVEL            debug, info, warn, error or off`)
}
