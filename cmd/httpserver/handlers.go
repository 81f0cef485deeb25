package main

import (
	"encoding/json"
	"fmt"

	"github.com/Brownie44l1/hanode/internal/logger"
	"github.com/Brownie44l1/hanode/internal/request"
	"github.com/Brownie44l1/hanode/internal/response"
	"github.com/Brownie44l1/hanode/internal/router"
)

func handleHello(req *request.Request) response.Response {
	return response.OK("Hello!")
}

// alertPayload is the part of an Alertmanager webhook we look at
type alertPayload struct {
	Status string  `json:"status"`
	Alerts []alert `json:"alerts"`
}

type alert struct {
	Status      string            `json:"status"`
	Labels      map[string]string `json:"labels"`
	Annotations map[string]string `json:"annotations"`
	StartsAt    string            `json:"startsAt"`
}

// newHookHandler logs each alert of a Prometheus webhook call.
// Bodies that are not Alertmanager JSON are logged raw and still acknowledged.
func newHookHandler(log logger.Logger) router.Handler {
	return func(req *request.Request) response.Response {
		log.Info("hook called", logger.Field{Key: "bytes", Value: len(req.Body)})

		var payload alertPayload
		if err := json.Unmarshal([]byte(req.Body), &payload); err != nil {
			log.Warn("hook body is not an alert payload",
				logger.Field{Key: "body", Value: req.Body},
				logger.Field{Key: "error", Value: err},
			)
			return response.OK("Hello!")
		}

		for _, a := range payload.Alerts {
			log.Info("alert",
				logger.Field{Key: "status", Value: a.Status},
				logger.Field{Key: "alertname", Value: a.Labels["alertname"]},
				logger.Field{Key: "summary", Value: a.Annotations["summary"]},
				logger.Field{Key: "starts_at", Value: a.StartsAt},
			)
		}
		return response.OK(fmt.Sprintf("received %d alerts", len(payload.Alerts)))
	}
}
