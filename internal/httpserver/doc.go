// Package httpserver runs the estimator's HTTP listener with bounded
// timeouts and graceful shutdown.
package httpserver
