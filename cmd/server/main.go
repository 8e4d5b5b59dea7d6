// Package main Knowledge Search API Server
//
//	@title			Knowledge Search API
//	@version		1.0
//	@description	A conversational research assistant over an uploaded document knowledge base
//	@termsOfService	http://swagger.io/terms/
//
//	@contact.name	API Support
//	@contact.url	http://www.swagger.io/support
//	@contact.email	support@swagger.io
//
//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/
package main

import (
	"log"

	_ "knowledge-search/docs" // This imports the docs package to initialize swagger
	"knowledge-search/internal/server"
)

func main() {
	log.Println("Starting Knowledge Search server...")
	srv := server.NewServer()
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
