package metric

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/henderiw/rangespace/pkg/interval"
)

// ParseUint16Range parses a range in "from-to" notation, e.g. "100-200".
func ParseUint16Range(s string) (interval.Range[Uint16], error) {
	from, to, err := parseBounds(s, 16)
	if err != nil {
		return interval.Empty[Uint16](), err
	}
	return interval.New(Uint16(from), Uint16(to)), nil
}

// ParseUint32Range parses a range in "from-to" notation, e.g. "4096-8191".
func ParseUint32Range(s string) (interval.Range[Uint32], error) {
	from, to, err := parseBounds(s, 32)
	if err != nil {
		return interval.Empty[Uint32](), err
	}
	return interval.New(Uint32(from), Uint32(to)), nil
}

func parseBounds(s string, bits int) (uint64, uint64, error) {
	h := strings.IndexByte(s, '-')
	if h == -1 {
		return 0, 0, fmt.Errorf("no hyphen in range %q", s)
	}
	from, to := s[:h], s[h+1:]
	fromUint, err := strconv.ParseUint(from, 10, bits)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid from id %q in range %q", from, s)
	}
	toUint, err := strconv.ParseUint(to, 10, bits)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid to id %q in range %q", to, s)
	}
	return fromUint, toUint, nil
}
