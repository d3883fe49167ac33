// Package logger configures the global zerolog logger of the composer service.
//
// Output can go to the console (JSON or human readable), to rolling files split
// by level (lumberjack) and to Datadog. Every statement is counted in the
// log_statements_total Prometheus counter.
package logger
