package testutil

import "testing"

// Cleanup 在 t.Cleanup 中执行 fn，返回错误时使测试失败
func Cleanup(t *testing.T, fn func() error) {
	t.Helper()
	t.Cleanup(func() {
		if err := fn(); err != nil {
			t.Fatalf("cleanup failed: %v", err)
		}
	})
}
