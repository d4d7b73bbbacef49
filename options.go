package sysbench

const (
	// DefaultWarmupIterations 默认预热次数
	DefaultWarmupIterations = 10
	// DefaultBenchIterations 默认测量次数
	DefaultBenchIterations = 100
)

// Options 基准测试运行参数
// 一旦传入 Runner 即不可变，单次运行期间不会被修改
type Options struct {
	// WarmupIterations 预热迭代次数，不计时、不记录，必须 >= 0
	WarmupIterations int `json:"warmup_iterations" mapstructure:"warmup_iterations"`
	// BenchIterations 测量迭代次数，必须 > 0
	BenchIterations int `json:"bench_iterations" mapstructure:"bench_iterations"`
}

// DefaultOptions 返回默认运行参数
func DefaultOptions() Options {
	return Options{
		WarmupIterations: DefaultWarmupIterations,
		BenchIterations:  DefaultBenchIterations,
	}
}

// Validate 校验运行参数
// 参数非法属于调用方缺陷，立即返回错误，绝不静默修正
func (o Options) Validate() error {
	if o.BenchIterations <= 0 {
		return NewBenchError(ErrTypeInvalidOptions,
			"bench iterations must be positive")
	}
	if o.WarmupIterations < 0 {
		return NewBenchError(ErrTypeInvalidOptions,
			"warmup iterations must not be negative")
	}
	return nil
}

// Option 运行器选项
type Option func(*Runner)

// WithWarmup 设置预热迭代次数
func WithWarmup(n int) Option {
	return func(r *Runner) {
		r.opts.WarmupIterations = n
	}
}

// WithIterations 设置测量迭代次数
func WithIterations(n int) Option {
	return func(r *Runner) {
		r.opts.BenchIterations = n
	}
}

// WithOptions 整体替换运行参数
func WithOptions(opts Options) Option {
	return func(r *Runner) {
		r.opts = opts
	}
}

// WithLabel 设置基准测试名称，用于日志与错误信息
func WithLabel(label string) Option {
	return func(r *Runner) {
		r.label = label
	}
}

// WithLogger 设置运行器的日志记录器
func WithLogger(logger Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}
