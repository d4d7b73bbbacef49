package sysbench

import (
	"fmt"
	"time"
)

// Runner 基准测试运行器
// 单线程同步执行：Run 会阻塞调用方直到预热与测量全部完成，
// 运行期间没有取消机制，被测函数失败时整次运行作废
//
// 运行器自身不跨运行持有状态，可对同一实例多次调用 Run，
// 每次运行各自分配样本序列与统计结果
type Runner struct {
	opts   Options
	label  string
	logger Logger
}

// New 创建基准测试运行器
// 参数非法（测量次数 <= 0 或预热次数 < 0）时立即返回 *BenchError，
// 此时被测函数尚未被调用过
func New(opts ...Option) (*Runner, error) {
	r := &Runner{
		opts:   DefaultOptions(),
		logger: &NopLogger{},
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := r.opts.Validate(); err != nil {
		return nil, fmt.Errorf("initialize runner: %w", err)
	}

	return r, nil
}

// Options 返回运行器的参数副本
func (r *Runner) Options() Options {
	return r.opts
}

// Run 执行基准测试
// 先运行 WarmupIterations 次预热（不计时），再运行 BenchIterations 次测量，
// 每次测量在调用前后读取单调时钟，耗时按调用顺序记录
//
// 时钟读取本身的开销会计入每个样本，这是微基准测试的固有误差，
// 库不做算法层面的补偿
//
// 被测函数内发生的 panic 不会被捕获，直接传播给调用方
func (r *Runner) Run(fn func()) (*Statistics, error) {
	return r.run(func() error {
		fn()
		return nil
	})
}

// RunE 执行基准测试，被测函数可返回错误
// 预热或测量期间返回非 nil 错误会立即终止本次运行，不产生部分结果
func (r *Runner) RunE(fn func() error) (*Statistics, error) {
	return r.run(fn)
}

func (r *Runner) run(fn func() error) (*Statistics, error) {
	r.logger.Debugf("benchmark %q: %d warmup + %d measured iterations",
		r.label, r.opts.WarmupIterations, r.opts.BenchIterations)

	for i := 0; i < r.opts.WarmupIterations; i++ {
		if err := fn(); err != nil {
			return nil, r.callableError("warmup", i, err)
		}
	}

	samples := make([]time.Duration, 0, r.opts.BenchIterations)
	started := time.Now()
	for i := 0; i < r.opts.BenchIterations; i++ {
		start := time.Now()
		err := fn()
		elapsed := time.Since(start)
		if err != nil {
			return nil, r.callableError("measurement", i, err)
		}
		samples = append(samples, elapsed)
	}
	recordRun(time.Since(started), len(samples))

	stats, err := CollectStatistics(samples)
	if err != nil {
		return nil, err
	}

	r.logger.Infof("benchmark %q: min=%v max=%v mean=%v median=%v",
		r.label, stats.Min, stats.Max, stats.Mean, stats.Median)
	return stats, nil
}

func (r *Runner) callableError(phase string, iteration int, err error) error {
	recordError()
	r.logger.Errorf("benchmark %q aborted during %s iteration %d: %v",
		r.label, phase, iteration, err)
	return &BenchError{
		Type:      ErrTypeCallable,
		Message:   fmt.Sprintf("callable failed during %s iteration %d", phase, iteration),
		Benchmark: r.label,
		Cause:     err,
	}
}

// Run 一次性执行基准测试的便捷入口
func Run(fn func(), opts ...Option) (*Statistics, error) {
	r, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return r.Run(fn)
}

// keepAliveSink 防止被测代码被编译器判定为无副作用而整体消除
var keepAliveSink any

// KeepAlive 将被测函数的结果写入包级变量，使编译器无法证明
// 计算结果未被使用。对正常执行没有可观察的影响
//
//	sysbench.Run(func() {
//		sysbench.KeepAlive(expensiveComputation(input))
//	})
func KeepAlive(v any) {
	keepAliveSink = v
}
