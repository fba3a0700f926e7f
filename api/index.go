package handler

import (
	"net/http"
	"sync"

	"roomslot/config"
	"roomslot/di"
	"roomslot/shared/logger"
)

var (
	once    sync.Once
	service http.Handler
)

// Handler is the serverless entry point. The service graph is built on the first call
// and reused by warm invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		service = di.InitializeService().Handler()
	})

	service.ServeHTTP(w, r)
}
