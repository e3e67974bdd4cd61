package space

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/henderiw/rangespace/pkg/interval"
	"github.com/henderiw/rangespace/pkg/metric"
	"github.com/tj/assert"
)

func u32r(from, to uint32) interval.Range[metric.Uint32] {
	return interval.New(metric.Uint32(from), metric.Uint32(to))
}

// addBlender sums the color into the payload; a zero result is transparent.
func addBlender(p *uint8, color uint8) bool {
	*p += color
	return *p != 0
}

func TestBlendSum(t *testing.T) {
	s := New[metric.Uint32, uint8]()
	s.Mark(u32r(10, 20), 3)
	checkSpace(t, s)
	s.Blend(u32r(15, 25), 5, addBlender)
	checkSpace(t, s)
	if diff := cmp.Diff([]string{"10-14:3", "15-20:8", "21-25:5"}, collect(s)); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}

	s.Blend(u32r(12, 22), 1, addBlender)
	checkSpace(t, s)
	if diff := cmp.Diff([]string{"10-11:3", "12-14:4", "15-20:9", "21-22:6", "23-25:5"}, collect(s)); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

func TestBlend(t *testing.T) {
	transparent := func(p *uint8, color uint8) bool { return false }

	cases := map[string]struct {
		setup func(s *Space[metric.Uint32, uint8])
		blend func(s *Space[metric.Uint32, uint8])
		want  []string
	}{
		"TransparentErases": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 30), 7)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(15, 20), 0, transparent)
			},
			want: []string{"10-14:7", "21-30:7"},
		},
		"TransparentOnEmpty": {
			setup: func(s *Space[metric.Uint32, uint8]) {},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(10, 20), 3, transparent)
			},
			want: []string{},
		},
		"UnmappedGetsPlainColor": {
			setup: func(s *Space[metric.Uint32, uint8]) {},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(10, 20), 7, addBlender)
			},
			want: []string{"10-20:7"},
		},
		"GapsBlendOnce": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 12), 1)
				s.Mark(u32r(18, 20), 1)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(10, 20), 1, addBlender)
			},
			want: []string{"10-12:2", "13-17:1", "18-20:2"},
		},
		"RightExtensionSplit": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 30), 5)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(12, 20), 1, addBlender)
			},
			want: []string{"10-11:5", "12-20:6", "21-30:5"},
		},
		"BlendToZeroErases": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 20), 5)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(10, 20), 251, addBlender)
			},
			// 5+251 wraps to zero, which is transparent; the plain color 251
			// never applies because the range was fully mapped
			want: []string{},
		},
		"BlendToZeroMiddle": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 30), 5)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(15, 20), 251, addBlender)
			},
			// the mapped subrange blends to zero and is erased
			want: []string{"10-14:5", "21-30:5"},
		},
		"CoalesceWithPredecessorAfterBlend": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 20), 2)
				s.Mark(u32r(21, 30), 5)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(21, 30), 253, addBlender) // 5+253 wraps to 2
			},
			want: []string{"10-30:2"},
		},
		"TailExtendsSamePlainColor": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(10, 20), 2)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(21, 30), 2, addBlender)
			},
			want: []string{"10-30:2"},
		},
		"MaxBoundary": {
			setup: func(s *Space[metric.Uint32, uint8]) {
				s.Mark(u32r(u32Max-10, u32Max), 1)
			},
			blend: func(s *Space[metric.Uint32, uint8]) {
				s.Blend(u32r(u32Max-5, u32Max), 1, addBlender)
			},
			want: []string{
				fmtRange(u32Max-10, u32Max-6, "1"),
				fmtRange(u32Max-5, u32Max, "2"),
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := New[metric.Uint32, uint8]()
			tc.setup(s)
			checkSpace(t, s)
			tc.blend(s)
			checkSpace(t, s)
			if diff := cmp.Diff(tc.want, collect(s)); diff != "" {
				t.Errorf("%s: -want, +got:\n%s", name, diff)
			}
		})
	}
}

// TestBlendFreeColorType exercises the package level Blend, whose color type
// is independent of the payload type.
func TestBlendFreeColorType(t *testing.T) {
	s := New[metric.Uint32, uint8]()
	s.Mark(u32r(10, 12), 3)

	bump := func(p *uint8, on bool) bool {
		if on {
			*p++
		}
		return *p != 0
	}
	Blend(s, u32r(11, 13), true, bump)
	checkSpace(t, s)
	if diff := cmp.Diff([]string{"10-10:3", "11-12:4", "13-13:1"}, collect(s)); diff != "" {
		t.Errorf("-want, +got:\n%s", diff)
	}
}

// TestBlendStress drives mark, blend and erase with a deterministic pseudo
// random sequence and compares every lookup against a brute force model.
func TestBlendStress(t *testing.T) {
	s := New[metric.Uint32, uint8]()
	model := map[uint32]uint8{}

	seed := uint64(7)
	next := func(n uint64) uint64 {
		seed = seed*6364136223846793005 + 1442695040888963407
		return (seed >> 33) % n
	}

	for i := 0; i < 300; i++ {
		lo := uint32(next(100))
		hi := lo + uint32(next(25))
		color := uint8(next(5))
		r := u32r(lo, hi)

		switch next(3) {
		case 0:
			p := uint8(next(7) + 1)
			s.Mark(r, p)
			for m := lo; m <= hi; m++ {
				model[m] = p
			}
		case 1:
			s.Blend(r, color, addBlender)
			for m := lo; m <= hi; m++ {
				v := model[m] + color
				if v != 0 {
					model[m] = v
				} else {
					delete(model, m)
				}
			}
		default:
			s.Erase(r)
			for m := lo; m <= hi; m++ {
				delete(model, m)
			}
		}
		checkSpace(t, s)

		for m := uint32(0); m < 130; m++ {
			_, got, ok := s.Find(metric.Uint32(m))
			want, wok := model[m]
			if ok != wok || (ok && got != want) {
				t.Fatalf("step %d: find(%d) = %d,%v, want %d,%v", i, m, got, ok, want, wok)
			}
		}
	}
}

func TestBlendEraseEquivalence(t *testing.T) {
	transparent := func(p *uint8, color uint8) bool { return false }

	a := New[metric.Uint32, uint8]()
	b := New[metric.Uint32, uint8]()
	for _, s := range []*Space[metric.Uint32, uint8]{a, b} {
		s.Mark(u32r(10, 20), 3)
		s.Mark(u32r(25, 40), 5)
		s.Mark(u32r(50, 60), 3)
	}

	a.Erase(u32r(15, 55))
	b.Blend(u32r(15, 55), 0, transparent)
	checkSpace(t, a)
	checkSpace(t, b)
	assert.Equal(t, collect(a), collect(b))
}
