package sysbench

import (
	"fmt"
	"sort"
	"sync"
)

// Suite 基准测试套件
// 在 Runner 之外组织多个命名的基准测试：每个基准测试使用独立的
// Runner 按注册顺序依次执行，运行参数从参数档案中按名称解析。
// 套件只做编排，不向核心引入任何跨运行的共享状态
type Suite struct {
	mu     sync.Mutex
	cfg    *Config
	logger Logger
	names  []string
	benchs map[string]func() error
}

// SuiteOption 套件选项
type SuiteOption func(*Suite)

// WithSuiteLogger 设置套件的日志记录器
func WithSuiteLogger(logger Logger) SuiteOption {
	return func(s *Suite) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSuite 创建基准测试套件
// cfg 可以为 nil，此时所有基准测试使用库内置默认参数
func NewSuite(cfg *Config, opts ...SuiteOption) *Suite {
	s := &Suite{
		cfg:    cfg,
		logger: &NopLogger{},
		benchs: make(map[string]func() error),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 注册基准测试
// 同名注册会覆盖之前的函数，但保留首次注册的执行顺位
func (s *Suite) Register(name string, fn func()) {
	s.RegisterE(name, func() error {
		fn()
		return nil
	})
}

// RegisterE 注册可返回错误的基准测试
func (s *Suite) RegisterE(name string, fn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.benchs[name]; !exists {
		s.names = append(s.names, name)
	}
	s.benchs[name] = fn
}

// Names 返回已注册的基准测试名称，按注册顺序
func (s *Suite) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

// Run 按注册顺序执行全部基准测试
// 任何一个基准测试失败都会终止套件并返回错误，已完成的结果不保留
func (s *Suite) Run() (map[string]*Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make(map[string]*Statistics, len(s.names))
	for _, name := range s.names {
		stats, err := s.runOne(name, s.benchs[name])
		if err != nil {
			return nil, err
		}
		results[name] = stats
	}
	return results, nil
}

// RunOne 执行单个已注册的基准测试
func (s *Suite) RunOne(name string) (*Statistics, error) {
	s.mu.Lock()
	fn, exists := s.benchs[name]
	s.mu.Unlock()

	if !exists {
		return nil, &BenchError{
			Type:      ErrTypeUnknownBench,
			Message:   "benchmark is not registered",
			Benchmark: name,
		}
	}
	return s.runOne(name, fn)
}

func (s *Suite) runOne(name string, fn func() error) (*Statistics, error) {
	opts, err := s.resolveOptions(name)
	if err != nil {
		return nil, err
	}

	runner, err := New(WithOptions(opts), WithLabel(name), WithLogger(s.logger))
	if err != nil {
		return nil, fmt.Errorf("benchmark %q: %w", name, err)
	}

	s.logger.Infof("running benchmark %q (%d+%d iterations)",
		name, opts.WarmupIterations, opts.BenchIterations)
	return runner.RunE(fn)
}

// resolveOptions 解析基准测试的运行参数
func (s *Suite) resolveOptions(name string) (Options, error) {
	if s.cfg == nil {
		return DefaultOptions(), nil
	}
	return s.cfg.Options(name)
}

// EncodeResults 将一组结果编码为基准名到JSON报告的映射
// 按名称排序处理，多个结果出错时报错内容确定
func EncodeResults(results map[string]*Statistics) (map[string]string, error) {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	encoded := make(map[string]string, len(results))
	for _, name := range names {
		report, err := NewReport(results[name])
		if err != nil {
			return nil, fmt.Errorf("benchmark %q: %w", name, err)
		}
		text, err := report.Encode()
		if err != nil {
			return nil, fmt.Errorf("benchmark %q: %w", name, err)
		}
		encoded[name] = text
	}
	return encoded, nil
}
