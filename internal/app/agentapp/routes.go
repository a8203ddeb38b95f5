package agentapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/GovThePPL/candid-sub000/internal/config"
	auditsvc "github.com/GovThePPL/candid-sub000/internal/services/audit"
	dispatchsvc "github.com/GovThePPL/candid-sub000/internal/services/dispatch"
	queuesvc "github.com/GovThePPL/candid-sub000/internal/services/queue"
	"github.com/GovThePPL/candid-sub000/internal/transport/http/handlers"
)

type Dependencies struct {
	Queue        *queuesvc.Controller
	Dispatcher   *dispatchsvc.Dispatcher
	AuditService *auditsvc.Service
	Logger       *zap.Logger
	Config       config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	queueHandler := handlers.NewQueueHandler(deps.Queue, deps.Dispatcher, deps.Logger)
	auditHandler := handlers.NewAuditHandler(deps.AuditService, deps.Config.Queue.AuditRecentSize, deps.Logger)

	r.Get("/healthz", handlers.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/queue", queueHandler.Snapshot)
		r.Post("/queue/refresh", queueHandler.Refresh)
		r.Post("/queue/actions", queueHandler.Act)
		r.Get("/audit/recent", auditHandler.Recent)
	})
}
