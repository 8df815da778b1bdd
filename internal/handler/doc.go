// Package handler implements the estimator's HTTP surface: the liveness
// message on GET /, premium prediction on POST /predict, and the request
// logging and metrics middleware wrapped around them.
package handler
