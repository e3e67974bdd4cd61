package metric

import (
	"bytes"
	"fmt"
	"net/netip"
)

// Addr4 is an IPv4 address metric. The zero value is 0.0.0.0, which is also
// the metric minimum.
type Addr4 [4]byte

func Addr4From(a netip.Addr) (Addr4, error) {
	if !a.Is4() {
		return Addr4{}, fmt.Errorf("address %s is not an IPv4 address", a)
	}
	return Addr4(a.As4()), nil
}

func (m Addr4) Compare(o Addr4) int { return bytes.Compare(m[:], o[:]) }

func (m Addr4) Next() Addr4 {
	for i := len(m) - 1; i >= 0; i-- {
		m[i]++
		if m[i] != 0 {
			break
		}
	}
	return m
}

func (m Addr4) Prev() Addr4 {
	for i := len(m) - 1; i >= 0; i-- {
		m[i]--
		if m[i] != 0xff {
			break
		}
	}
	return m
}

func (Addr4) Min() Addr4 { return Addr4{} }
func (Addr4) Max() Addr4 { return Addr4{0xff, 0xff, 0xff, 0xff} }

func (m Addr4) Addr() netip.Addr { return netip.AddrFrom4(m) }
func (m Addr4) String() string   { return m.Addr().String() }

// Addr6 is an IPv6 address metric. The zero value is ::, which is also the
// metric minimum.
type Addr6 [16]byte

func Addr6From(a netip.Addr) (Addr6, error) {
	if !a.Is6() || a.Is4In6() {
		return Addr6{}, fmt.Errorf("address %s is not an IPv6 address", a)
	}
	return Addr6(a.As16()), nil
}

func (m Addr6) Compare(o Addr6) int { return bytes.Compare(m[:], o[:]) }

func (m Addr6) Next() Addr6 {
	for i := len(m) - 1; i >= 0; i-- {
		m[i]++
		if m[i] != 0 {
			break
		}
	}
	return m
}

func (m Addr6) Prev() Addr6 {
	for i := len(m) - 1; i >= 0; i-- {
		m[i]--
		if m[i] != 0xff {
			break
		}
	}
	return m
}

func (Addr6) Min() Addr6 { return Addr6{} }

func (Addr6) Max() Addr6 {
	var m Addr6
	for i := range m {
		m[i] = 0xff
	}
	return m
}

func (m Addr6) Addr() netip.Addr { return netip.AddrFrom16(m) }
func (m Addr6) String() string   { return m.Addr().String() }
