package sysbench

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics 基准测试工具自身的使用统计
// 与单次运行的 Statistics 无关，只记录本进程内工具被使用的情况
type Metrics struct {
	mu          sync.RWMutex
	StartTime   time.Time `json:"start_time"`
	RunCount    int64     `json:"run_count"`
	SampleCount int64     `json:"sample_count"`
	ErrorCount  int64     `json:"error_count"`
	LastRunTime time.Time `json:"last_run_time"`

	// 累积的测量段耗时（纳秒），不含预热
	totalMeasured int64
}

// NewMetrics 创建新的使用统计实例
func NewMetrics() *Metrics {
	return &Metrics{StartTime: time.Now()}
}

// RecordRun 记录一次完整的基准测试运行
func (m *Metrics) RecordRun(measured time.Duration, samples int) {
	atomic.AddInt64(&m.RunCount, 1)
	atomic.AddInt64(&m.SampleCount, int64(samples))
	atomic.AddInt64(&m.totalMeasured, int64(measured))

	m.mu.Lock()
	m.LastRunTime = time.Now()
	m.mu.Unlock()
}

// RecordError 记录一次失败的运行
func (m *Metrics) RecordError() {
	atomic.AddInt64(&m.ErrorCount, 1)
}

// GetStats 获取统计信息快照
func (m *Metrics) GetStats() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runCount := atomic.LoadInt64(&m.RunCount)
	totalMeasured := atomic.LoadInt64(&m.totalMeasured)

	stats := MetricsSnapshot{
		StartTime:     m.StartTime,
		Uptime:        time.Since(m.StartTime),
		RunCount:      runCount,
		SampleCount:   atomic.LoadInt64(&m.SampleCount),
		ErrorCount:    atomic.LoadInt64(&m.ErrorCount),
		LastRunTime:   m.LastRunTime,
		TotalMeasured: time.Duration(totalMeasured),
	}

	if runCount > 0 {
		stats.AvgRunTime = time.Duration(totalMeasured / runCount)
	}
	return stats
}

// Reset 重置统计信息
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	atomic.StoreInt64(&m.RunCount, 0)
	atomic.StoreInt64(&m.SampleCount, 0)
	atomic.StoreInt64(&m.ErrorCount, 0)
	atomic.StoreInt64(&m.totalMeasured, 0)

	m.StartTime = time.Now()
	m.LastRunTime = time.Time{}
}

// MetricsSnapshot 使用统计快照
type MetricsSnapshot struct {
	StartTime     time.Time     `json:"start_time"`
	Uptime        time.Duration `json:"uptime"`
	RunCount      int64         `json:"run_count"`
	SampleCount   int64         `json:"sample_count"`
	ErrorCount    int64         `json:"error_count"`
	TotalMeasured time.Duration `json:"total_measured"`
	AvgRunTime    time.Duration `json:"avg_run_time"`
	LastRunTime   time.Time     `json:"last_run_time"`
}

// GetSummary 获取使用情况摘要字符串
func (s MetricsSnapshot) GetSummary() string {
	return fmt.Sprintf(
		"Benchmark Harness Summary:\n"+
			"  Uptime: %v\n"+
			"  Runs: %d (%d samples)\n"+
			"  Measured Time: %v (avg %v per run)\n"+
			"  Errors: %d\n",
		s.Uptime,
		s.RunCount, s.SampleCount,
		s.TotalMeasured, s.AvgRunTime,
		s.ErrorCount,
	)
}

var (
	globalMetrics     *Metrics
	globalMetricsOnce sync.Once
)

func getGlobalMetrics() *Metrics {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewMetrics()
	})
	return globalMetrics
}

// GetGlobalMetrics 获取全局使用统计
func GetGlobalMetrics() MetricsSnapshot {
	return getGlobalMetrics().GetStats()
}

// ResetGlobalMetrics 重置全局使用统计
func ResetGlobalMetrics() {
	getGlobalMetrics().Reset()
}

// recordRun 记录运行（内部使用）
func recordRun(measured time.Duration, samples int) {
	getGlobalMetrics().RecordRun(measured, samples)
}

// recordError 记录错误（内部使用）
func recordError() {
	getGlobalMetrics().RecordError()
}
