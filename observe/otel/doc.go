// Package otel reserves the observer surface for tracing backends.
package otel
