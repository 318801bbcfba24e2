package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ampnet/tokenizer-middleware/pkg/app"
	"github.com/ampnet/tokenizer-middleware/pkg/app/api"
	"github.com/ampnet/tokenizer-middleware/pkg/config"
)

var (
	configPath = flag.String("config", "config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = api.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
		os.Exit(1)
	}
}
