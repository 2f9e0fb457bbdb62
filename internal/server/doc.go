// Package server hosts the HTTP entry points.
//
// New assembles a chi router with request ids, access logging and panic
// recovery, and mounts /health/live, /health/ready and, when configured,
// /metrics. Run serves until the context is cancelled or a termination
// signal arrives, then drains connections and runs shutdown hooks.
package server
