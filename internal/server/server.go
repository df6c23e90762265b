package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	// Load env file into environments.
	_ "github.com/joho/godotenv/autoload"

	"jobtrack-backend/internal/auth"
	"jobtrack-backend/internal/database"
)

// MyServer holds the port, database instance, and token blacklist shared by
// every route.
type MyServer struct {
	port int

	DB        *database.DBinstanceStruct
	Blacklist auth.JwtBlacklistStore
}

// NewServer construct new Server instance
func NewServer() *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	db, err := database.GetMainDB()
	if err != nil {
		log.Fatalf("Database failed to initialized: %s", err)
	}

	s := &MyServer{
		port:      port,
		DB:        db,
		Blacklist: auth.NewInMemoryBlacklistStore(),
	}

	// Declare Server config
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
