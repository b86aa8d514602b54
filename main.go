package main

import (
	"log"

	"vitalmonitor/auth"
	"vitalmonitor/confs"
	"vitalmonitor/db"
	"vitalmonitor/logging"
	"vitalmonitor/server"
)

func main() {
	// load config
	cfg, err := confs.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer logger.Sync()

	// Missing or invalid key material is fatal; per-request signing
	// cannot fail once this succeeds.
	issuer, err := auth.NewIssuerFromFiles(cfg.JWTPrivateKeyPath, cfg.JWTPublicKeyPath, cfg.JWTExpireTime)
	if err != nil {
		log.Fatalf("Error loading token keys: %v", err)
	}

	// connect to database Postgres
	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	// run server
	srv := server.NewServer(cfg, database, issuer, logger)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
