package sysbench

import (
	"errors"
	"fmt"
)

// BenchError 基准测试错误类型
type BenchError struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Benchmark string `json:"benchmark,omitempty"`
	Cause     error  `json:"-"`
}

func (e *BenchError) Error() string {
	if e.Benchmark != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %s [benchmark: %s] (caused by: %v)", e.Type, e.Message, e.Benchmark, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	if e.Benchmark != "" {
		return fmt.Sprintf("%s: %s [benchmark: %s]", e.Type, e.Message, e.Benchmark)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *BenchError) Unwrap() error {
	return e.Cause
}

// 错误类型常量
const (
	ErrTypeInvalidOptions  = "InvalidOptions"
	ErrTypeCallable        = "Callable"
	ErrTypeEmptySamples    = "EmptySamples"
	ErrTypeEmptyStatistics = "EmptyStatistics"
	ErrTypeSerialization   = "Serialization"
	ErrTypeProfile         = "Profile"
	ErrTypeUnknownBench    = "UnknownBenchmark"
)

// NewBenchError 创建新的基准测试错误
func NewBenchError(errorType, message string) *BenchError {
	return &BenchError{
		Type:    errorType,
		Message: message,
	}
}

// NewBenchErrorWithCause 创建带原因的基准测试错误
func NewBenchErrorWithCause(errorType, message string, cause error) *BenchError {
	return &BenchError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// IsBenchError 检查是否为基准测试错误
func IsBenchError(err error) bool {
	var benchErr *BenchError
	return errors.As(err, &benchErr)
}

// GetBenchErrorType 获取基准测试错误类型
func GetBenchErrorType(err error) string {
	var benchErr *BenchError
	if errors.As(err, &benchErr) {
		return benchErr.Type
	}
	return ""
}
