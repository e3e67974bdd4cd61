// Package metric provides concrete discrete metrics for use with
// interval.Range and space.Space: the fixed width unsigned integers and
// single family IP addresses.
package metric

import "math"

type Uint8 uint8

func (m Uint8) Compare(o Uint8) int { return compare(m, o) }
func (m Uint8) Next() Uint8         { return m + 1 }
func (m Uint8) Prev() Uint8         { return m - 1 }
func (Uint8) Min() Uint8            { return 0 }
func (Uint8) Max() Uint8            { return math.MaxUint8 }

type Uint16 uint16

func (m Uint16) Compare(o Uint16) int { return compare(m, o) }
func (m Uint16) Next() Uint16         { return m + 1 }
func (m Uint16) Prev() Uint16         { return m - 1 }
func (Uint16) Min() Uint16            { return 0 }
func (Uint16) Max() Uint16            { return math.MaxUint16 }

type Uint32 uint32

func (m Uint32) Compare(o Uint32) int { return compare(m, o) }
func (m Uint32) Next() Uint32         { return m + 1 }
func (m Uint32) Prev() Uint32         { return m - 1 }
func (Uint32) Min() Uint32            { return 0 }
func (Uint32) Max() Uint32            { return math.MaxUint32 }

type Uint64 uint64

func (m Uint64) Compare(o Uint64) int { return compare(m, o) }
func (m Uint64) Next() Uint64         { return m + 1 }
func (m Uint64) Prev() Uint64         { return m - 1 }
func (Uint64) Min() Uint64            { return 0 }
func (Uint64) Max() Uint64            { return math.MaxUint64 }

func compare[T ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
