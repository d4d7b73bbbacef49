package sysbench

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/darkit/sysbench/internal/timescale"
)

// Scale 报告的展示时间单位
type Scale = timescale.Scale

// 可选的展示单位
const (
	ScaleSeconds      = timescale.Seconds
	ScaleMilliseconds = timescale.Milliseconds
	ScaleMicroseconds = timescale.Microseconds
	ScaleTicks        = timescale.Ticks
)

// Report 统计结果的序列化形式
// 所有整数字段均为所选单位下的精确整数换算（截断除法），
// 当样本恰为所选单位的整数倍时，按单位因子回乘可无损还原原始值；
// StdDev 按同一因子换算，保留浮点
type Report struct {
	// Scale 展示单位：seconds / milliseconds / microseconds / ticks
	Scale Scale `json:"scale"`
	// Runs 按执行顺序的每次耗时，所选单位下的整数
	Runs []int64 `json:"runs"`
	// Max 最大耗时
	Max int64 `json:"max"`
	// Min 最小耗时
	Min int64 `json:"min"`
	// Mean 平均耗时
	Mean int64 `json:"mean"`
	// Median 中位数
	Median int64 `json:"median"`
	// StdDev 标准差，所选单位下的浮点数
	StdDev float64 `json:"std_dev"`
}

// NewReport 从统计结果构造报告
// 单位选择策略：取使最小样本换算后仍 >= 1 的最粗单位，
// 避免小值被截断为零，同时保持大值可读
//
// stats 必须由 CollectStatistics 产出（RunTimes 非空），
// 序列化空记录属于调用方缺陷
func NewReport(stats *Statistics) (*Report, error) {
	if stats == nil || len(stats.RunTimes) == 0 {
		return nil, NewBenchError(ErrTypeEmptyStatistics,
			"cannot build a report from empty statistics")
	}

	scale := timescale.Pick(stats.Min)

	runs := make([]int64, len(stats.RunTimes))
	for i, d := range stats.RunTimes {
		runs[i] = scale.Convert(d)
	}

	return &Report{
		Scale:  scale,
		Runs:   runs,
		Max:    scale.Convert(stats.Max),
		Min:    scale.Convert(stats.Min),
		Mean:   scale.Convert(stats.Mean),
		Median: scale.Convert(stats.Median),
		StdDev: stats.StdDev / float64(scale.Factor()),
	}, nil
}

// Encode 将报告编码为紧凑的JSON文本
// 库本身不负责写出：落盘、上报或打印均由调用方完成
func (r *Report) Encode() (string, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return "", NewBenchErrorWithCause(ErrTypeSerialization,
			"encode report", err)
	}
	return string(data), nil
}

// DecodeReport 从JSON文本解析报告
func DecodeReport(text string) (*Report, error) {
	var r Report
	dec := json.NewDecoder(strings.NewReader(text))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		return nil, NewBenchErrorWithCause(ErrTypeSerialization,
			"decode report", err)
	}
	if !r.Scale.Valid() {
		return nil, NewBenchError(ErrTypeSerialization,
			"report carries an unknown time scale: "+r.Scale.String())
	}
	return &r, nil
}

// RunTimes 将 Runs 按报告单位还原为耗时序列
func (r *Report) RunTimes() []time.Duration {
	out := make([]time.Duration, len(r.Runs))
	for i, c := range r.Runs {
		out[i] = r.Scale.Restore(c)
	}
	return out
}

// MaxDuration 按报告单位还原最大耗时
func (r *Report) MaxDuration() time.Duration { return r.Scale.Restore(r.Max) }

// MinDuration 按报告单位还原最小耗时
func (r *Report) MinDuration() time.Duration { return r.Scale.Restore(r.Min) }

// MeanDuration 按报告单位还原平均耗时
func (r *Report) MeanDuration() time.Duration { return r.Scale.Restore(r.Mean) }

// MedianDuration 按报告单位还原中位数
func (r *Report) MedianDuration() time.Duration { return r.Scale.Restore(r.Median) }

// StdDevNanos 按报告单位还原标准差，单位纳秒
func (r *Report) StdDevNanos() float64 { return r.StdDev * float64(r.Scale.Factor()) }
