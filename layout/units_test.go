package layout

import (
	"math"
	"testing"
)

// TestPxPtMmRoundTrip 验证 px↔pt、px↔mm 换算的往返精度（允许极小的浮点误差）。
func TestPxPtMmRoundTrip(t *testing.T) {
	samples := []float64{0, 0.001, 1, 12, 14.4, 72, 96, 144, 1000}
	for _, px := range samples {
		if back := px * PxToPt * PtToPx; math.Abs(back-px) > 1e-9 {
			t.Fatalf("px→pt→px 往返误差过大: in=%gpx back=%g", px, back)
		}
		if back := px * PxToMm * MmToPx; math.Abs(back-px) > 1e-9 {
			t.Fatalf("px→mm→px 往返误差过大: in=%gpx back=%g", px, back)
		}
	}
}

// TestLengthPx 覆盖 Length 在常见单位上到 px 的转换。
func TestLengthPx(t *testing.T) {
	cases := []struct {
		in   Length
		want float64
	}{
		{Length{Value: 1, Unit: UnitIN}, 96},
		{Length{Value: 2.54, Unit: UnitCM}, 96},
		{Length{Value: 25.4, Unit: UnitMM}, 96},
		{Length{Value: 12, Unit: UnitPT}, 16},
		{Length{Value: 14}, 14},
	}
	for _, tc := range cases {
		if got := tc.in.Px(); math.Abs(got-tc.want) > 1e-9 {
			t.Fatalf("%g%s 转 px 期望 %g，实际 %g", tc.in.Value, tc.in.Unit, tc.want, got)
		}
	}
}

func TestParseLength(t *testing.T) {
	cases := map[string]float64{
		"24":     24,
		"24px":   24,
		" 9pt ":  12,
		"1in":    96,
		"-.5px":  -0.5,
		"2.54CM": 96,
	}
	for in, want := range cases {
		got, err := ParseLength(in)
		if err != nil {
			t.Fatalf("解析 %q 失败: %v", in, err)
		}
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("解析 %q 期望 %g，实际 %g", in, want, got)
		}
	}

	l, err := ParseRawLength("10mm")
	if err != nil || l.Unit != UnitMM || l.Value != 10 {
		t.Fatalf("ParseRawLength(10mm) = %+v, %v", l, err)
	}
	for _, bad := range []string{"", "px", "abc", "12em"} {
		if _, err := ParseLength(bad); err == nil {
			t.Fatalf("期望 %q 解析失败", bad)
		}
	}
}
