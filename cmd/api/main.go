package main

import (
	"log"
	"net/http"

	"github.com/minhquangvu/store-backoffice/internal/infrastructure/config"
	"github.com/minhquangvu/store-backoffice/internal/infrastructure/database/inmemory"
	httpHandler "github.com/minhquangvu/store-backoffice/internal/interface/http/handler"
	"github.com/minhquangvu/store-backoffice/internal/interface/http/router"
	"github.com/minhquangvu/store-backoffice/internal/interface/presenter"
	"github.com/minhquangvu/store-backoffice/internal/usecase"
)

// main wires dependencies (dependency injection) and starts the HTTP server.
func main() {
	cfg := config.Load()

	customerRepo := inmemory.NewCustomerRepository()
	customerPresenter := presenter.NewCustomerPresenter()
	customerUsecase := usecase.NewCustomerService(customerRepo)
	customerHandler := httpHandler.NewCustomerHandler(customerUsecase, customerPresenter)

	r := router.New(customerHandler)

	log.Printf("starting server on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
