// Package infra holds the adapters around the solver core: the zerolog
// logger, Prometheus and InfluxDB sinks, the Sentry monitor, the MQTT solve
// responder and requester, and problem file loading. Adapters implement or
// consume interfaces from core and are wired together in app.
package infra
