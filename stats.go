package sysbench

import (
	"math"
	"sort"
	"time"
)

// Statistics 单次基准测试的统计结果
// 由 CollectStatistics 一次性构造并填充全部字段，此后视为只读
type Statistics struct {
	// RunTimes 按执行顺序保存的每次调用耗时，未排序
	RunTimes []time.Duration `json:"run_times"`
	// Max 最大耗时
	Max time.Duration `json:"max"`
	// Min 最小耗时
	Min time.Duration `json:"min"`
	// Mean 平均耗时，纳秒整数求和后截断除法
	Mean time.Duration `json:"mean"`
	// Median 中位数，基于样本副本排序计算，偶数个样本取中间两值的截断平均
	Median time.Duration `json:"median"`
	// StdDev 样本总体标准差（除以 N 而非 N-1），单位纳秒
	StdDev float64 `json:"std_dev"`
}

// CollectStatistics 将原始耗时序列归约为统计结果
// samples 不能为空；Runner 保证至少一次测量迭代，空输入属于调用方缺陷
//
// 标准差采用单趟 Σx/Σx² 累加：sqrt(Σx²/n − (Σx/n)²)
// 该形式在数值上弱于两趟算法，当 Σx²/n 与均值平方接近时可能发生
// 灾难性消除，负方差会被截断为 0；基准测试量级下可以接受
func CollectStatistics(samples []time.Duration) (*Statistics, error) {
	if len(samples) == 0 {
		return nil, NewBenchError(ErrTypeEmptySamples,
			"cannot collect statistics from an empty sample sequence")
	}

	n := int64(len(samples))

	var (
		sum   int64
		sumSq float64
		min   = samples[0]
		max   = samples[0]
	)
	for _, d := range samples {
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
		ns := int64(d)
		sum += ns
		sumSq += float64(ns) * float64(ns)
	}

	fmean := float64(sum) / float64(n)
	variance := sumSq/float64(n) - fmean*fmean
	if variance < 0 {
		variance = 0
	}

	// RunTimes 保留执行顺序，副本与调用方切片解耦
	runTimes := make([]time.Duration, len(samples))
	copy(runTimes, samples)

	return &Statistics{
		RunTimes: runTimes,
		Max:      max,
		Min:      min,
		Mean:     time.Duration(sum / n),
		Median:   medianOf(samples),
		StdDev:   math.Sqrt(variance),
	}, nil
}

// medianOf 计算耗时序列的中位数，排序在样本副本上进行
func medianOf(samples []time.Duration) time.Duration {
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	// 偶数个样本：中间两值求和后截断除法，与 Mean 的取整策略一致
	return time.Duration((int64(sorted[mid-1]) + int64(sorted[mid])) / 2)
}
