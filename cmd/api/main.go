package main

import (
	"log"
	"net/http"
	"os"

	"github.com/learnsmart-app/learnsmart-api/internal/container"
	"github.com/learnsmart-app/learnsmart-api/internal/router"
)

func main() {
	c := container.New()

	r := router.New(router.RouterConfig{
		UserHandler:     c.UserContainer.Handler,
		DocumentHandler: c.DocumentContainer.Handler,
		QuizHandler:     c.QuizContainer.Handler,
		SessionHandler:  c.SessionContainer.Handler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
