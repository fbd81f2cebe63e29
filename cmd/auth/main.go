package main

import (
	"log"

	"github.com/loftwire/depot/internal/auth/app"
)

func main() {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		log.Fatalf("depot-auth: startup failed: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("depot-auth: %v", err)
	}
}
