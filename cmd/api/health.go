package main

import (
	"net/http"
	"time"
)

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// healthStatus folds the dependency probes into one report. Any degraded
// service marks the whole response unhealthy.
func healthStatus(dbErr error, brokerClosed bool) HealthResponse {
	services := map[string]string{
		"database": "ok",
		"queue":    "ok",
	}
	if dbErr != nil {
		services["database"] = "error"
	}
	if brokerClosed {
		services["queue"] = "error"
	}

	status := "healthy"
	for _, state := range services {
		if state != "ok" {
			status = "unhealthy"
			break
		}
	}

	return HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Services:  services,
	}
}

// healthCheckHandler godoc
//
//	@Summary		Healthcheck
//	@Description	Reports MongoDB and RabbitMQ health
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		503	{object}	HealthResponse
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	response := healthStatus(app.storage.Ping(r.Context()), app.broker.IsClosed())

	status := http.StatusOK
	if response.Status != "healthy" {
		status = http.StatusServiceUnavailable
	}

	if err := writeJson(w, status, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
