package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/huffctl/internal/config"
	"github.com/danmuck/huffctl/internal/logging"
	"github.com/danmuck/huffctl/internal/observability"
	"github.com/danmuck/huffctl/internal/server"
)

func main() {
	configPath := flag.String("config", "", "server TOML config (defaults apply when empty)")
	flag.Parse()

	logging.ConfigureRuntime()
	observability.InitLogger("huffd")

	cfg := config.DefaultServerConfig()
	if *configPath != "" {
		loaded, err := config.LoadServerConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "huffd: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	srv := server.Appear(cfg)
	if err := srv.Serve(); err != nil {
		fmt.Fprintf(os.Stderr, "huffd: %v\n", err)
		os.Exit(1)
	}
}
