package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"stubnest/config"
	"stubnest/openapi"
	"stubnest/server"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFile, "path to the route catalogue (YAML or JSON)")
	port := flag.Int("port", 3000, "port to listen on")
	openapiPath := flag.String("openapi", "", "optional OpenAPI 3 document to import routes from")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *openapiPath != "" {
		imported, err := openapi.ImportRoutes(*openapiPath)
		if err != nil {
			log.Fatalf("Failed to import OpenAPI document: %v", err)
		}
		// Imported routes go after the configured ones so declaration
		// order still favours the config file.
		cfg.Routes = append(cfg.Routes, imported...)
		log.Printf("Imported %d routes from %s", len(imported), *openapiPath)
	}

	srv := server.NewHTTPServer(cfg)
	if err := srv.Start(*port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if err := srv.Stop(); err != nil {
		os.Exit(1)
	}
}
