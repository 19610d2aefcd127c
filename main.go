package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/juanpineyrob/dscommerce/cmd"
	"github.com/juanpineyrob/dscommerce/config"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cmd.NewApp(cfg).Run()
}
