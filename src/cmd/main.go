package main

import (
	"log"

	cfg "woodland/src/configuration"
	server "woodland/src/server"
)

func main() {
	config := cfg.ReadProperties()
	if err := server.RunServer(config); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
