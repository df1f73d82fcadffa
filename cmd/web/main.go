package main

import (
	"log"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
