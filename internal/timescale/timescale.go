// Package timescale 提供基准测试报告的时间单位选择与整数换算
//
// 所有换算均为精确的整数乘除，刻度因子固定为纳秒的十进制倍数，
// 不经过浮点重建，以保证整数字段可以无损还原
package timescale

import (
	"fmt"
	"time"
)

// Scale 报告展示用的时间单位
type Scale string

const (
	// Seconds 秒
	Seconds Scale = "seconds"
	// Milliseconds 毫秒
	Milliseconds Scale = "milliseconds"
	// Microseconds 微秒
	Microseconds Scale = "microseconds"
	// Ticks 时钟原生最细粒度，对应纳秒
	Ticks Scale = "ticks"
)

// factors 各单位对应的纳秒因子
var factors = map[Scale]int64{
	Seconds:      int64(time.Second),
	Milliseconds: int64(time.Millisecond),
	Microseconds: int64(time.Microsecond),
	Ticks:        1,
}

// Pick 根据最小样本选择展示单位
// 取使最小样本换算后仍 >= 1 的最粗单位，阈值落在粗单位一侧：
// 恰好 1ms 的最小样本选择毫秒而非微秒
func Pick(min time.Duration) Scale {
	switch {
	case min >= time.Second:
		return Seconds
	case min >= time.Millisecond:
		return Milliseconds
	case min >= time.Microsecond:
		return Microseconds
	default:
		return Ticks
	}
}

// Factor 返回单位对应的纳秒因子
func (s Scale) Factor() int64 {
	if f, ok := factors[s]; ok {
		return f
	}
	return 1
}

// Valid 判断是否为已知单位
func (s Scale) Valid() bool {
	_, ok := factors[s]
	return ok
}

func (s Scale) String() string {
	return string(s)
}

// Convert 将耗时换算为该单位下的整数计数，整数截断除法
func (s Scale) Convert(d time.Duration) int64 {
	return int64(d) / s.Factor()
}

// Restore 将该单位下的整数计数还原为耗时
func (s Scale) Restore(count int64) time.Duration {
	return time.Duration(count * s.Factor())
}

// Parse 解析单位名称
func Parse(name string) (Scale, error) {
	s := Scale(name)
	if !s.Valid() {
		return "", fmt.Errorf("unknown time scale: %q", name)
	}
	return s, nil
}
