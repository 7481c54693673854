// Package metrics exposes sweep activity to Prometheus and samples process
// and system resource usage for the verbose summary and the dashboard.
package metrics
