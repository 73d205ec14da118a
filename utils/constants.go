package utils

import "time"

const (
	// ShutdownTimeout bounds graceful HTTP shutdown.
	ShutdownTimeout = 5 * time.Second
	// HealthCheckInterval is how often dependencies are pinged.
	HealthCheckInterval = 60 * time.Second
	// MaxPhotoSize caps profile photo uploads.
	MaxPhotoSize = 5 << 20
	// MetricsNamespace prefixes every Prometheus series.
	MetricsNamespace = "studybuddy"
)
