package decimate

import (
	"testing"

	"github.com/quirky-blu/heatmap/internal/model"
)

func seq(n int) []model.Feature {
	out := make([]model.Feature, n)
	for i := range out {
		out[i] = model.Feature{Properties: map[string]model.Value{"i": model.NumberValue(float64(i))}}
	}
	return out
}

func indexOf(f model.Feature) int {
	return int(f.Properties["i"].Num)
}

func TestStride(t *testing.T) {
	tests := []struct {
		name string
		n    int
		zoom int
		want int
	}{
		{"low-zoom-small-input", 150, 5, 1},
		{"low-zoom-exact", 200, 5, 2},
		{"low-zoom-large", 1000, 9, 10},
		{"mid-zoom-small", 499, 10, 1},
		{"mid-zoom-large", 2500, 12, 5},
		{"high-zoom", 100000, 13, 1},
		{"higher-zoom", 100000, 18, 1},
		{"empty", 0, 5, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Stride(tc.n, tc.zoom); got != tc.want {
				t.Fatalf("Stride(%d,%d)=%d want %d", tc.n, tc.zoom, got, tc.want)
			}
		})
	}
}

func TestApplyTakesEveryKth(t *testing.T) {
	in := seq(1000)
	out := Apply(in, 5) // k = 10
	if len(out) != 100 {
		t.Fatalf("len=%d want 100", len(out))
	}
	for i, f := range out {
		if got := indexOf(f); got != i*10 {
			t.Fatalf("out[%d] original index=%d want %d", i, got, i*10)
		}
	}
}

func TestApplyRemainderRoundsUp(t *testing.T) {
	// 1005 at k=10 keeps positions 0,10,...,1000 -> 101 features
	out := Apply(seq(1005), 5)
	if len(out) != 101 {
		t.Fatalf("len=%d want 101", len(out))
	}
	if got := indexOf(out[len(out)-1]); got != 1000 {
		t.Fatalf("last original index=%d want 1000", got)
	}
}

func TestApplyHighZoomUnchanged(t *testing.T) {
	in := seq(5000)
	out := Apply(in, 13)
	if len(out) != len(in) {
		t.Fatalf("len=%d want %d", len(out), len(in))
	}
}

func TestApplyDeterministic(t *testing.T) {
	in := seq(1234)
	a := Apply(in, 11)
	b := Apply(in, 11)
	if len(a) != len(b) {
		t.Fatalf("run lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if indexOf(a[i]) != indexOf(b[i]) {
			t.Fatalf("position %d differs: %d vs %d", i, indexOf(a[i]), indexOf(b[i]))
		}
	}
}

func TestApplyVolumeBounds(t *testing.T) {
	for _, n := range []int{0, 1, 99, 100, 199, 200, 1000, 12345} {
		out := Apply(seq(n), 5)
		k := Stride(n, 5)
		want := n
		if k > 1 {
			want = (n + k - 1) / k
		}
		if len(out) != want {
			t.Fatalf("n=%d: len=%d want %d", n, len(out), want)
		}
		if k > 1 && len(out) > lowTarget+1 {
			t.Fatalf("n=%d: output %d exceeds target bound", n, len(out))
		}
	}
}
