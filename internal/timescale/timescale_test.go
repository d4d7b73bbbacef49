package timescale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPick(t *testing.T) {
	cases := []struct {
		name string
		min  time.Duration
		want Scale
	}{
		{"一小时", time.Hour, Seconds},
		{"恰好一秒", time.Second, Seconds},
		{"一秒减一纳秒", time.Second - time.Nanosecond, Milliseconds},
		{"恰好一毫秒", time.Millisecond, Milliseconds},
		{"一毫秒减一纳秒", time.Millisecond - time.Nanosecond, Microseconds},
		{"恰好一微秒", time.Microsecond, Microseconds},
		{"一微秒减一纳秒", time.Microsecond - time.Nanosecond, Ticks},
		{"零", 0, Ticks},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Pick(tc.min))
		})
	}
}

func TestFactor(t *testing.T) {
	assert.Equal(t, int64(1_000_000_000), Seconds.Factor())
	assert.Equal(t, int64(1_000_000), Milliseconds.Factor())
	assert.Equal(t, int64(1_000), Microseconds.Factor())
	assert.Equal(t, int64(1), Ticks.Factor())

	// 未知单位退化为原生刻度因子
	assert.Equal(t, int64(1), Scale("bogus").Factor())
}

func TestConvertRestore(t *testing.T) {
	t.Run("整数倍换算无损", func(t *testing.T) {
		d := 250 * time.Millisecond
		count := Milliseconds.Convert(d)
		assert.Equal(t, int64(250), count)
		assert.Equal(t, d, Milliseconds.Restore(count))
	})

	t.Run("非整数倍截断", func(t *testing.T) {
		d := 250*time.Millisecond + 999*time.Microsecond
		assert.Equal(t, int64(250), Milliseconds.Convert(d))
	})

	t.Run("原生刻度恒等", func(t *testing.T) {
		d := time.Duration(123456789)
		assert.Equal(t, int64(123456789), Ticks.Convert(d))
		assert.Equal(t, d, Ticks.Restore(123456789))
	})
}

func TestParse(t *testing.T) {
	for _, name := range []string{"seconds", "milliseconds", "microseconds", "ticks"} {
		s, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
		assert.True(t, s.Valid())
	}

	_, err := Parse("minutes")
	assert.Error(t, err)
	assert.False(t, Scale("minutes").Valid())
}
