package main

import (
	"net/http"
	_ "net/http/pprof"
	"runtime"
	"sync"
	"time"

	"github.com/Ko-stant/robot-path-service/internal/config"
)

// StartProfiling starts the pprof listener when enabled
func StartProfiling(cfg config.ProfilingConfig, logger Logger) {
	if !cfg.Enabled || cfg.Port == "" {
		return
	}

	runtime.SetBlockProfileRate(1)
	runtime.SetMutexProfileFraction(1)

	go func() {
		logger.Info("starting pprof server", "addr", ":"+cfg.Port,
			"cpu", "http://localhost:"+cfg.Port+"/debug/pprof/profile",
			"heap", "http://localhost:"+cfg.Port+"/debug/pprof/heap")

		// DefaultServeMux carries the pprof handlers; the API uses its own mux.
		if err := http.ListenAndServe(":"+cfg.Port, http.DefaultServeMux); err != nil {
			logger.Error("pprof server failed", "err", err)
		}
	}()
}

// PerformanceMetrics tracks evaluation timings across requests
type PerformanceMetrics struct {
	mu                sync.Mutex
	ExecutionsRun     int64
	CommandsProcessed int64
	AvgExecutionTime  time.Duration
	MaxExecutionTime  time.Duration
	PeakGoroutines    int
	PeakMemoryUsage   uint64
	StartTime         time.Time
}

// MetricsSnapshot is a copy of the metrics safe to serialize
type MetricsSnapshot struct {
	Uptime            string `json:"uptime"`
	ExecutionsRun     int64  `json:"executionsRun"`
	CommandsProcessed int64  `json:"commandsProcessed"`
	AvgExecutionTime  string `json:"avgExecutionTime"`
	MaxExecutionTime  string `json:"maxExecutionTime"`
	PeakGoroutines    int    `json:"peakGoroutines"`
	PeakMemoryUsage   uint64 `json:"peakMemoryUsage"`
}

func NewPerformanceMetrics() *PerformanceMetrics {
	return &PerformanceMetrics{
		StartTime: time.Now(),
	}
}

// TrackExecution records one evaluation of commands taking duration
func (pm *PerformanceMetrics) TrackExecution(commands int, duration time.Duration) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.ExecutionsRun++
	pm.CommandsProcessed += int64(commands)
	pm.AvgExecutionTime = (pm.AvgExecutionTime*time.Duration(pm.ExecutionsRun-1) + duration) / time.Duration(pm.ExecutionsRun)
	if duration > pm.MaxExecutionTime {
		pm.MaxExecutionTime = duration
	}
}

// UpdateSystemMetrics updates system-level metrics
func (pm *PerformanceMetrics) UpdateSystemMetrics() {
	goroutines := runtime.NumGoroutine()
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	pm.mu.Lock()
	defer pm.mu.Unlock()
	if goroutines > pm.PeakGoroutines {
		pm.PeakGoroutines = goroutines
	}
	if m.Alloc > pm.PeakMemoryUsage {
		pm.PeakMemoryUsage = m.Alloc
	}
}

func (pm *PerformanceMetrics) Snapshot() MetricsSnapshot {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	return MetricsSnapshot{
		Uptime:            time.Since(pm.StartTime).Round(time.Second).String(),
		ExecutionsRun:     pm.ExecutionsRun,
		CommandsProcessed: pm.CommandsProcessed,
		AvgExecutionTime:  pm.AvgExecutionTime.String(),
		MaxExecutionTime:  pm.MaxExecutionTime.String(),
		PeakGoroutines:    pm.PeakGoroutines,
		PeakMemoryUsage:   pm.PeakMemoryUsage,
	}
}

// LogMetrics logs current performance metrics
func (pm *PerformanceMetrics) LogMetrics(logger Logger) {
	pm.UpdateSystemMetrics()
	s := pm.Snapshot()
	logger.Info("performance metrics",
		"uptime", s.Uptime,
		"executions", s.ExecutionsRun,
		"commands", s.CommandsProcessed,
		"avgExecutionTime", s.AvgExecutionTime,
		"maxExecutionTime", s.MaxExecutionTime,
		"peakGoroutines", s.PeakGoroutines,
		"peakMemoryBytes", s.PeakMemoryUsage,
	)
}
