// Command api runs the jobtrack HTTP server.
package main

import (
	"log"
	"net/http"

	"jobtrack-backend/internal/server"
)

func main() {
	srv := server.NewServer()

	log.Printf("Listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
