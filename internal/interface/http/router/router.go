package router

import (
	"net/http"
	"strings"

	"github.com/minhquangvu/store-backoffice/internal/interface/http/handler"
)

// New builds an HTTP router without framework lock-in.
func New(customerHandler *handler.CustomerHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	mux.HandleFunc("/api/v1/customers", customerHandler.ListOrCreate)
	mux.HandleFunc("/api/v1/customers/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/v1/customers/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		customerHandler.GetUpdateDelete(w, r)
	})

	return mux
}
