// Custstats - Customer Statistics Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/custstats

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/custstats/internal/middleware"
)

// Router binds a Handler to chi routes.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

func NewRouter(handler *Handler, chiMiddleware *ChiMiddleware) *Router {
	if chiMiddleware == nil {
		chiMiddleware = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: chiMiddleware}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())

	r.Get("/", router.handler.Root)
	r.Get("/health", router.handler.HealthLive)
	r.Get("/health/ready", router.handler.HealthReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/customers", func(r chi.Router) {
		router.mountCustomers(r, modeLegacy)
	})
	r.Route("/api/v1/customers", func(r chi.Router) {
		router.mountCustomers(r, modeEnvelope)
	})

	return r
}

func (router *Router) mountCustomers(r chi.Router, mode responseMode) {
	h := router.handler

	r.Use(router.chiMiddleware.RateLimit())
	r.Use(middleware.PrometheusMetrics)
	r.Use(chimiddleware.Compress(5, "application/json"))

	r.Get("/", h.ListCustomers(mode))
	r.Route("/statistics", func(r chi.Router) {
		for _, spec := range h.reports {
			r.Get("/"+spec.name, h.Report(mode, spec))
		}
	})
}
