package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"raycaster/internal/logger"

	"github.com/sirupsen/logrus"
)

// smoothing factor for the running averages
const avgWeight = 0.1

// PerformanceMonitor tracks renderer performance. Counters are atomics so a
// presenter goroutine can read them while the frame loop writes.
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// Render pass metrics
	raycastTime      atomic.Uint64
	spriteRenderTime atomic.Uint64

	// Per-frame counters from the last frame
	columnsCast    atomic.Int32
	noHitColumns   atomic.Int32
	spritesDrawn   atomic.Int32
	spritesVisible atomic.Int32

	// Statistics
	mutex           sync.RWMutex
	avgFrameTime    float64
	avgRaycastTime  float64
	avgSpriteTime   float64
	peakMemoryUsage uint64
	startTime       time.Time

	// Configuration
	minFPS float64
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime: time.Now(),
		minFPS:    30,
	}
}

// SetMinFPS changes the frame rate below which a low_fps alert fires
func (pm *PerformanceMonitor) SetMinFPS(fps float64) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.minFPS = fps
}

func smooth(avg, sample float64) float64 {
	if avg == 0 {
		return sample
	}
	return avg + (sample-avg)*avgWeight
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	frameTime := time.Since(ft.startTime)
	ft.monitor.frameTime.Store(uint64(frameTime.Nanoseconds()))
	ft.monitor.frameCount.Add(1)

	ft.monitor.mutex.Lock()
	ft.monitor.avgFrameTime = smooth(ft.monitor.avgFrameTime, float64(frameTime.Nanoseconds()))
	ft.monitor.mutex.Unlock()
}

// RecordRaycast stores the duration of the wall, floor and ceiling pass
func (pm *PerformanceMonitor) RecordRaycast(d time.Duration) {
	pm.raycastTime.Store(uint64(d.Nanoseconds()))
	pm.mutex.Lock()
	pm.avgRaycastTime = smooth(pm.avgRaycastTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// RecordSpritePass stores the duration of the sprite pass
func (pm *PerformanceMonitor) RecordSpritePass(d time.Duration) {
	pm.spriteRenderTime.Store(uint64(d.Nanoseconds()))
	pm.mutex.Lock()
	pm.avgSpriteTime = smooth(pm.avgSpriteTime, float64(d.Nanoseconds()))
	pm.mutex.Unlock()
}

// UpdateRenderMetrics stores the per-frame counters of the last frame
func (pm *PerformanceMonitor) UpdateRenderMetrics(columns, noHit, visible, drawn int) {
	pm.columnsCast.Store(int32(columns))
	pm.noHitColumns.Store(int32(noHit))
	pm.spritesVisible.Store(int32(visible))
	pm.spritesDrawn.Store(int32(drawn))
}

// RenderMetrics is a snapshot for overlays and status lines
type RenderMetrics struct {
	FramesPerSecond float64
	FrameTime       time.Duration
	RaycastTime     time.Duration
	SpriteTime      time.Duration
	Columns         int
	NoHitColumns    int
	SpritesVisible  int
	SpritesDrawn    int
	MemoryUsageMB   uint64
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() RenderMetrics {
	pm.mutex.RLock()
	avgFrame := pm.avgFrameTime
	pm.mutex.RUnlock()

	// FPS from the smoothed frame time so the readout does not flicker
	fps := 0.0
	if avgFrame > 0 {
		fps = float64(time.Second) / avgFrame
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return RenderMetrics{
		FramesPerSecond: fps,
		FrameTime:       time.Duration(pm.frameTime.Load()),
		RaycastTime:     time.Duration(pm.raycastTime.Load()),
		SpriteTime:      time.Duration(pm.spriteRenderTime.Load()),
		Columns:         int(pm.columnsCast.Load()),
		NoHitColumns:    int(pm.noHitColumns.Load()),
		SpritesVisible:  int(pm.spritesVisible.Load()),
		SpritesDrawn:    int(pm.spritesDrawn.Load()),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.mutex.Lock()
	if memStats.Alloc > pm.peakMemoryUsage {
		pm.peakMemoryUsage = memStats.Alloc
	}
	avgFrame, avgRaycast, avgSprite := pm.avgFrameTime, pm.avgRaycastTime, pm.avgSpriteTime
	peak := pm.peakMemoryUsage
	uptime := time.Since(pm.startTime)
	pm.mutex.Unlock()

	currentFPS := 0.0
	if ft := pm.frameTime.Load(); ft > 0 {
		currentFPS = float64(time.Second) / float64(ft)
	}

	return map[string]interface{}{
		"uptime_seconds":      uptime.Seconds(),
		"frame_count":         pm.frameCount.Load(),
		"avg_frame_time_ms":   avgFrame / 1e6,
		"avg_raycast_time_ms": avgRaycast / 1e6,
		"avg_sprite_time_ms":  avgSprite / 1e6,
		"current_fps":         currentFPS,
		"columns":             pm.columnsCast.Load(),
		"no_hit_columns":      pm.noHitColumns.Load(),
		"sprites_visible":     pm.spritesVisible.Load(),
		"sprites_drawn":       pm.spritesDrawn.Load(),
		"memory_alloc_mb":     memStats.Alloc / 1024 / 1024,
		"memory_peak_mb":      peak / 1024 / 1024,
		"gc_cycles":           memStats.NumGC,
		"goroutines":          runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	currentTime := time.Now()

	pm.mutex.RLock()
	minFPS := pm.minFPS
	pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	if frameTime > 0 {
		fps := float64(time.Second) / float64(frameTime)
		if fps < minFPS {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below target",
				Value:     fps,
				Threshold: minFPS,
				Timestamp: currentTime,
			})
		}
	}

	// rays only escape through gaps in the map border
	if noHit := pm.noHitColumns.Load(); noHit > 0 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "open_border",
			Message:   "Columns without a wall hit, map border has a gap",
			Value:     float64(noHit),
			Threshold: 0,
			Timestamp: currentTime,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	memoryMB := float64(memStats.Alloc) / 1024 / 1024
	if memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: currentTime,
		})
	}

	return alerts
}

// LogAlerts writes every current alert to the logger at warn level and
// returns how many there were.
func (pm *PerformanceMonitor) LogAlerts() int {
	alerts := pm.CheckPerformanceAlerts()
	for _, a := range alerts {
		logger.Log.WithFields(logrus.Fields{
			"alert":     a.Type,
			"value":     a.Value,
			"threshold": a.Threshold,
		}).Warn("[Perf] " + a.Message)
	}
	return len(alerts)
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.raycastTime.Store(0)
	pm.spriteRenderTime.Store(0)
	pm.columnsCast.Store(0)
	pm.noHitColumns.Store(0)
	pm.spritesVisible.Store(0)
	pm.spritesDrawn.Store(0)

	pm.mutex.Lock()
	pm.avgFrameTime = 0
	pm.avgRaycastTime = 0
	pm.avgSpriteTime = 0
	pm.peakMemoryUsage = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}
