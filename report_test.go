package sysbench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStats(t *testing.T, samples []time.Duration) *Statistics {
	t.Helper()
	stats, err := CollectStatistics(samples)
	require.NoError(t, err)
	return stats
}

func TestNewReportScaleSelection(t *testing.T) {
	cases := []struct {
		name string
		min  time.Duration
		want Scale
	}{
		{"恰好一秒选秒", time.Second, ScaleSeconds},
		{"超过一秒选秒", 2500 * time.Millisecond, ScaleSeconds},
		{"一秒以下选毫秒", time.Second - time.Nanosecond, ScaleMilliseconds},
		{"恰好一毫秒选毫秒", time.Millisecond, ScaleMilliseconds},
		{"一毫秒以下选微秒", time.Millisecond - time.Nanosecond, ScaleMicroseconds},
		{"恰好一微秒选微秒", time.Microsecond, ScaleMicroseconds},
		{"一微秒以下选原生刻度", time.Microsecond - time.Nanosecond, ScaleTicks},
		{"单纳秒选原生刻度", time.Nanosecond, ScaleTicks},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// 最小样本决定单位，搭配一个更大的样本
			stats := mustStats(t, []time.Duration{tc.min * 3, tc.min})
			report, err := NewReport(stats)
			require.NoError(t, err)
			assert.Equal(t, tc.want, report.Scale)
		})
	}
}

func TestNewReportValues(t *testing.T) {
	t.Run("毫秒单位下的整数换算", func(t *testing.T) {
		stats := mustStats(t, []time.Duration{
			5 * time.Millisecond,
			2 * time.Millisecond,
			11 * time.Millisecond,
		})
		report, err := NewReport(stats)
		require.NoError(t, err)

		assert.Equal(t, ScaleMilliseconds, report.Scale)
		assert.Equal(t, []int64{5, 2, 11}, report.Runs)
		assert.Equal(t, int64(11), report.Max)
		assert.Equal(t, int64(2), report.Min)
		assert.Equal(t, int64(6), report.Mean)
		assert.Equal(t, int64(5), report.Median)
	})

	t.Run("空统计被拒绝", func(t *testing.T) {
		report, err := NewReport(&Statistics{})
		assert.Nil(t, report)
		require.Error(t, err)
		assert.Equal(t, ErrTypeEmptyStatistics, GetBenchErrorType(err))
	})

	t.Run("nil统计被拒绝", func(t *testing.T) {
		_, err := NewReport(nil)
		require.Error(t, err)
		assert.Equal(t, ErrTypeEmptyStatistics, GetBenchErrorType(err))
	})
}

func TestReportRoundTrip(t *testing.T) {
	t.Run("单位整数倍样本无损还原", func(t *testing.T) {
		samples := []time.Duration{
			8 * time.Microsecond,
			3 * time.Microsecond,
			971 * time.Microsecond,
			40 * time.Microsecond,
		}
		stats := mustStats(t, samples)
		report, err := NewReport(stats)
		require.NoError(t, err)
		assert.Equal(t, ScaleMicroseconds, report.Scale)

		text, err := report.Encode()
		require.NoError(t, err)

		decoded, err := DecodeReport(text)
		require.NoError(t, err)

		assert.Equal(t, stats.RunTimes, decoded.RunTimes())
		assert.Equal(t, stats.Max, decoded.MaxDuration())
		assert.Equal(t, stats.Min, decoded.MinDuration())
		assert.Equal(t, stats.Median, decoded.MedianDuration())
		assert.InDelta(t, stats.StdDev, decoded.StdDevNanos(), 1e-6)
		// 均值 255.5µs 截断为 255µs 后还原
		assert.Equal(t, ScaleMicroseconds.Restore(ScaleMicroseconds.Convert(stats.Mean)),
			decoded.MeanDuration())
	})

	t.Run("原生刻度始终无损", func(t *testing.T) {
		stats := mustStats(t, durations(531, 17, 999, 640, 88))
		report, err := NewReport(stats)
		require.NoError(t, err)
		assert.Equal(t, ScaleTicks, report.Scale)

		text, err := report.Encode()
		require.NoError(t, err)

		decoded, err := DecodeReport(text)
		require.NoError(t, err)

		assert.Equal(t, stats.RunTimes, decoded.RunTimes())
		assert.Equal(t, stats.Max, decoded.MaxDuration())
		assert.Equal(t, stats.Min, decoded.MinDuration())
		assert.Equal(t, stats.Mean, decoded.MeanDuration())
		assert.Equal(t, stats.Median, decoded.MedianDuration())
		assert.InDelta(t, stats.StdDev, decoded.StdDevNanos(), 1e-9)
	})

	t.Run("编码为单个JSON对象", func(t *testing.T) {
		stats := mustStats(t, durations(100, 200))
		report, err := NewReport(stats)
		require.NoError(t, err)

		text, err := report.Encode()
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"scale":"ticks","runs":[100,200],"max":200,"min":100,"mean":150,"median":150,"std_dev":50}`,
			text)
	})
}

func TestDecodeReportErrors(t *testing.T) {
	t.Run("非法JSON", func(t *testing.T) {
		_, err := DecodeReport("{not json")
		require.Error(t, err)
		assert.Equal(t, ErrTypeSerialization, GetBenchErrorType(err))
	})

	t.Run("未知单位", func(t *testing.T) {
		_, err := DecodeReport(`{"scale":"fortnights","runs":[1],"max":1,"min":1,"mean":1,"median":1,"std_dev":0}`)
		require.Error(t, err)
		assert.Equal(t, ErrTypeSerialization, GetBenchErrorType(err))
	})

	t.Run("未知字段被拒绝", func(t *testing.T) {
		_, err := DecodeReport(`{"scale":"ticks","runs":[1],"max":1,"min":1,"mean":1,"median":1,"std_dev":0,"extra":true}`)
		require.Error(t, err)
	})
}
