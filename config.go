package sysbench

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// defaultsKey 套件级默认参数所在的配置段
	defaultsKey = "defaults"
	// benchmarksKey 各基准测试专属参数所在的配置段
	benchmarksKey = "benchmarks"
)

// EnvOptions 环境变量配置选项
type EnvOptions struct {
	Prefix  string // 环境变量前缀
	Enabled bool   // 是否启用环境变量
}

// Config 基准测试参数档案
// 从配置文件读取套件默认参数与各基准测试的专属参数，
// 支持环境变量覆盖、命令行标志绑定与文件变更监听
//
// 文件结构示例（yaml）：
//
//	defaults:
//	  warmup_iterations: 10
//	  bench_iterations: 100
//	benchmarks:
//	  parse:
//	    bench_iterations: 1000
type Config struct {
	viper         *viper.Viper
	path          string          // 配置文件路径
	mode          string          // 配置文件类型
	name          string          // 配置文件名称
	content       string          // 默认配置文件内容
	envOptions    EnvOptions      // 环境变量配置选项
	excludedFlags map[string]bool // 不参与绑定的命令行标志
	logger        Logger
	lastUpdate    time.Time // 配置最后更新时间
	mu            sync.RWMutex
}

// ConfigOption 配置选项
type ConfigOption func(*Config)

// WithPath 设置配置文件路径
// 传入带扩展名的文件路径时，目录、文件名与格式一并解析；
// 传入目录时仅设置查找路径
func WithPath(path string) ConfigOption {
	return func(c *Config) {
		ext := filepath.Ext(path)
		if ext != "" {
			c.mode = strings.TrimPrefix(ext, ".")
			c.path = filepath.Dir(path)
			c.name = strings.TrimSuffix(filepath.Base(path), ext)
			return
		}
		c.path = path
	}
}

// WithMode 设置配置文件格式
func WithMode(mode string) ConfigOption {
	return func(c *Config) {
		c.mode = mode
	}
}

// WithName 设置配置文件名称
func WithName(name string) ConfigOption {
	return func(c *Config) {
		c.name = name
	}
}

// WithEnvOptions 设置环境变量选项
func WithEnvOptions(opts EnvOptions) ConfigOption {
	return func(c *Config) {
		c.envOptions = opts
	}
}

// WithContent 设置默认配置文件内容
// 配置文件不存在时按此内容创建
func WithContent(content string) ConfigOption {
	return func(c *Config) {
		c.content = content
	}
}

// WithConfigLogger 设置配置的日志记录器
func WithConfigLogger(logger Logger) ConfigOption {
	return func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithExcludedFlags 设置不参与绑定的命令行标志
func WithExcludedFlags(flags []string) ConfigOption {
	return func(c *Config) {
		if c.excludedFlags == nil {
			c.excludedFlags = make(map[string]bool)
		}
		for _, flag := range flags {
			c.excludedFlags[flag] = true
		}
	}
}

// LoadConfig 加载基准测试参数档案
func LoadConfig(opts ...ConfigOption) (*Config, error) {
	c := &Config{
		path:   ".",
		mode:   "yaml",
		name:   "sysbench",
		logger: &NopLogger{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.initialize(); err != nil {
		return nil, fmt.Errorf("initialize profile: %w", err)
	}

	return c, nil
}

func (c *Config) initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.viper = viper.New()

	if err := c.initializeEnv(); err != nil {
		return fmt.Errorf("initialize env: %w", err)
	}

	if err := c.validatePath(); err != nil {
		return fmt.Errorf("validate path: %w", err)
	}
	c.viper.AddConfigPath(c.path)

	if err := c.validateMode(); err != nil {
		return fmt.Errorf("validate mode: %w", err)
	}
	c.viper.SetConfigType(c.mode)
	c.viper.SetConfigName(c.name)

	return c.loadOrCreateConfig()
}

func (c *Config) initializeEnv() error {
	if !c.envOptions.Enabled {
		return nil
	}

	if c.envOptions.Prefix != "" {
		c.viper.SetEnvPrefix(strings.ToUpper(c.envOptions.Prefix))
	}

	c.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	c.viper.AutomaticEnv()
	return nil
}

func (c *Config) loadOrCreateConfig() error {
	if err := c.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return NewBenchErrorWithCause(ErrTypeProfile, "read profile", err)
		}

		if c.content != "" {
			if err := c.createDefaultConfig(); err != nil {
				return NewBenchErrorWithCause(ErrTypeProfile, "create default profile", err)
			}
			return nil
		}
		// 没有配置文件也没有默认内容时，全部使用库内置默认参数
		c.logger.Debugf("profile %s not found, using built-in defaults", c.name)
	}
	return nil
}

func (c *Config) createDefaultConfig() error {
	configFile := filepath.Join(c.path, c.name+"."+c.mode)

	if err := os.WriteFile(configFile, []byte(c.content), 0o644); err != nil {
		return fmt.Errorf("write default profile: %w", err)
	}

	c.logger.Infof("created default profile: %s", configFile)
	return c.viper.ReadInConfig()
}

func (c *Config) validateMode() error {
	if c.mode == "" {
		c.mode = "yaml"
		return nil
	}
	for _, ext := range viper.SupportedExts {
		if c.mode == ext {
			return nil
		}
	}
	return fmt.Errorf("unsupported profile mode: %s (supported: %s)",
		c.mode, strings.Join(viper.SupportedExts, ", "))
}

// validatePath 验证并规范化配置文件路径
func (c *Config) validatePath() error {
	if c.path == "" {
		c.path = "."
		return nil
	}

	absPath, err := filepath.Abs(filepath.Clean(c.path))
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}
	c.path = absPath

	info, err := os.Stat(c.path)
	switch {
	case err == nil:
		if !info.IsDir() {
			return fmt.Errorf("path is not a directory: %s", c.path)
		}
	case os.IsNotExist(err):
		if err := os.MkdirAll(c.path, 0o755); err != nil {
			return fmt.Errorf("create directory failed: %w", err)
		}
	default:
		return fmt.Errorf("check path failed: %w", err)
	}
	return nil
}

// Watch 监听参数档案变化
// 长时间调参会话中修改文件后，注册的回调会被触发；
// 一秒内的连续写入会被合并
func (c *Config) Watch(callbacks ...func()) {
	c.viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&fsnotify.Write == 0 {
			return
		}

		c.mu.Lock()
		now := time.Now()
		if now.Sub(c.lastUpdate) < time.Second {
			c.mu.Unlock()
			return
		}
		c.lastUpdate = now
		c.mu.Unlock()

		c.logger.Debugf("profile changed: %s", e.Name)
		for _, cb := range callbacks {
			cb()
		}
	})

	c.viper.WatchConfig()
}

// BindPFlags 绑定命令行标志
// 标志名中的连字符映射为配置键中的下划线，值写入 defaults 配置段，
// 例如 --bench-iterations 覆盖 defaults.bench_iterations
func (c *Config) BindPFlags(flagSets ...*pflag.FlagSet) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var bindErr error
	for _, fs := range flagSets {
		if fs == nil {
			continue
		}
		fs.VisitAll(func(f *pflag.Flag) {
			if bindErr != nil || c.excludedFlags[f.Name] {
				return
			}
			key := defaultsKey + "." + strings.ReplaceAll(f.Name, "-", "_")
			if err := c.viper.BindPFlag(key, f); err != nil {
				bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
			}
		})
	}
	return bindErr
}

// Options 解析指定基准测试的运行参数
// 解析顺序：库内置默认值 <- defaults 配置段 <- benchmarks.<name> 配置段，
// name 为空时只应用 defaults。解析结果经 Validate 校验后返回
func (c *Config) Options(name string) (Options, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	opts := DefaultOptions()

	if err := c.decodeSection(defaultsKey, &opts); err != nil {
		return Options{}, err
	}
	if name != "" {
		if err := c.decodeSection(benchmarksKey+"."+name, &opts); err != nil {
			return Options{}, err
		}
	}

	if err := opts.Validate(); err != nil {
		return Options{}, fmt.Errorf("profile %q: %w", name, err)
	}
	return opts, nil
}

// optionKeys Options 在配置段中的字段键名
var optionKeys = []string{"warmup_iterations", "bench_iterations"}

// decodeSection 将一个配置段解码到 opts 上，缺失的键保持原值
// 逐键读取而非整段读取，使环境变量与命令行标志的覆盖生效
func (c *Config) decodeSection(key string, opts *Options) error {
	data := make(map[string]any, len(optionKeys))
	for _, field := range optionKeys {
		if val := c.viper.Get(key + "." + field); val != nil {
			data[field] = val
		}
	}
	if len(data) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		),
		Result:           opts,
		ZeroFields:       false,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return NewBenchErrorWithCause(ErrTypeProfile, "create decoder", err)
	}

	if err := decoder.Decode(data); err != nil {
		return NewBenchErrorWithCause(ErrTypeProfile,
			"decode profile section "+key, err)
	}
	return nil
}

// Benchmarks 返回档案中声明了专属参数的基准测试名称
func (c *Config) Benchmarks() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	section := c.viper.GetStringMap(benchmarksKey)
	names := make([]string, 0, len(section))
	for name := range section {
		names = append(names, name)
	}
	return names
}

// Get 获取任意配置值，支持默认值
func (c *Config) Get(key string, defaultValue ...any) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	val := c.viper.Get(key)
	if val == nil && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return val
}

// GetInt 获取整数配置值
func (c *Config) GetInt(key string, defaultValue ...int) int {
	val := c.Get(key)
	if val == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	result, err := cast.ToIntE(val)
	if err != nil {
		c.logger.Warnf("cannot convert %q to int, using default", key)
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	return result
}

// GetString 获取字符串配置值
func (c *Config) GetString(key string, defaultValue ...string) string {
	val := c.Get(key)
	if val == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return ""
	}
	return cast.ToString(val)
}

// GetDuration 获取时长配置值
func (c *Config) GetDuration(key string, defaultValue ...time.Duration) time.Duration {
	val := c.Get(key)
	if val == nil {
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	result, err := cast.ToDurationE(val)
	if err != nil {
		c.logger.Warnf("cannot convert %q to duration, using default", key)
		if len(defaultValue) > 0 {
			return defaultValue[0]
		}
		return 0
	}
	return result
}

// FilePath 返回当前生效的配置文件路径
func (c *Config) FilePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if used := c.viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(c.path, c.name+"."+c.mode)
}
