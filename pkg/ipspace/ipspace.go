package ipspace

import (
	"fmt"
	"net/netip"
	"sync"

	"github.com/hansthienpondt/nipam/pkg/table"
	"github.com/henderiw/rangespace/pkg/interval"
	"github.com/henderiw/rangespace/pkg/metric"
	"github.com/henderiw/rangespace/pkg/space"
	"go4.org/netipx"
	"k8s.io/apimachinery/pkg/labels"
)

// IPSpace maps IP address ranges to label sets. IPv4 and IPv6 ranges live in
// separate spaces; a range never mixes families. Ranges are accepted in
// "from-to" notation, e.g. "10.0.0.10-10.0.0.20".
type IPSpace interface {
	Mark(ipRange string, d labels.Set) error
	Fill(ipRange string, d labels.Set) error
	Erase(ipRange string) error

	MarkRange(ipRange netipx.IPRange, d labels.Set) error
	FillRange(ipRange netipx.IPRange, d labels.Set) error
	EraseRange(ipRange netipx.IPRange) error

	Find(addr string) (labels.Set, error)
	Count() int

	GetAll() []Entry
	GetByLabel(selector labels.Selector) []Entry

	// Routes renders the marked ranges as CIDR routes carrying the range
	// labels, for consumption by prefix based routing tables.
	Routes() (table.Routes, error)
}

// Entry is a marked range and its labels.
type Entry struct {
	Range  netipx.IPRange
	Labels labels.Set
}

func (r Entry) String() string {
	return fmt.Sprintf("range: %s, labels: %s", r.Range.String(), r.Labels.String())
}

func New() IPSpace {
	return &ipSpace{
		m:  new(sync.RWMutex),
		v4: space.New[metric.Addr4, string](),
		v6: space.New[metric.Addr6, string](),
	}
}

// Labels are stored in the spaces in their canonical string form so that
// payload equality, and with it coalescence of touching ranges, follows label
// equality.
type ipSpace struct {
	m  *sync.RWMutex
	v4 *space.Space[metric.Addr4, string]
	v6 *space.Space[metric.Addr6, string]
}

func (r *ipSpace) Mark(ipRange string, d labels.Set) error {
	rng, err := netipx.ParseIPRange(ipRange)
	if err != nil {
		return fmt.Errorf("ip range %q is invalid: %v", ipRange, err)
	}
	return r.MarkRange(rng, d)
}

func (r *ipSpace) Fill(ipRange string, d labels.Set) error {
	rng, err := netipx.ParseIPRange(ipRange)
	if err != nil {
		return fmt.Errorf("ip range %q is invalid: %v", ipRange, err)
	}
	return r.FillRange(rng, d)
}

func (r *ipSpace) Erase(ipRange string) error {
	rng, err := netipx.ParseIPRange(ipRange)
	if err != nil {
		return fmt.Errorf("ip range %q is invalid: %v", ipRange, err)
	}
	return r.EraseRange(rng)
}

func (r *ipSpace) MarkRange(ipRange netipx.IPRange, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()
	return r.apply(ipRange, func(r4 interval.Range[metric.Addr4]) {
		r.v4.Mark(r4, d.String())
	}, func(r6 interval.Range[metric.Addr6]) {
		r.v6.Mark(r6, d.String())
	})
}

func (r *ipSpace) FillRange(ipRange netipx.IPRange, d labels.Set) error {
	r.m.Lock()
	defer r.m.Unlock()
	return r.apply(ipRange, func(r4 interval.Range[metric.Addr4]) {
		r.v4.Fill(r4, d.String())
	}, func(r6 interval.Range[metric.Addr6]) {
		r.v6.Fill(r6, d.String())
	})
}

func (r *ipSpace) EraseRange(ipRange netipx.IPRange) error {
	r.m.Lock()
	defer r.m.Unlock()
	return r.apply(ipRange, func(r4 interval.Range[metric.Addr4]) {
		r.v4.Erase(r4)
	}, func(r6 interval.Range[metric.Addr6]) {
		r.v6.Erase(r6)
	})
}

// apply dispatches the range to the family specific space.
func (r *ipSpace) apply(rng netipx.IPRange, f4 func(interval.Range[metric.Addr4]), f6 func(interval.Range[metric.Addr6])) error {
	if !rng.IsValid() {
		return fmt.Errorf("ip range %s is invalid", rng)
	}
	if rng.From().Is4() {
		from, err := metric.Addr4From(rng.From())
		if err != nil {
			return err
		}
		to, err := metric.Addr4From(rng.To())
		if err != nil {
			return err
		}
		f4(interval.New(from, to))
		return nil
	}
	from, err := metric.Addr6From(rng.From())
	if err != nil {
		return err
	}
	to, err := metric.Addr6From(rng.To())
	if err != nil {
		return err
	}
	f6(interval.New(from, to))
	return nil
}

func (r *ipSpace) Find(addr string) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	a, err := netip.ParseAddr(addr)
	if err != nil {
		return nil, fmt.Errorf("ip address %s is invalid", addr)
	}
	var d string
	var ok bool
	if a.Is4() {
		m, err := metric.Addr4From(a)
		if err != nil {
			return nil, err
		}
		_, d, ok = r.v4.Find(m)
	} else {
		m, err := metric.Addr6From(a)
		if err != nil {
			return nil, err
		}
		_, d, ok = r.v6.Find(m)
	}
	if !ok {
		return nil, fmt.Errorf("no match found for: %s", addr)
	}
	return labels.ConvertSelectorToLabelsMap(d)
}

func (r *ipSpace) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.v4.Count() + r.v6.Count()
}

func (r *ipSpace) GetAll() []Entry {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.entries(labels.Everything())
}

func (r *ipSpace) GetByLabel(selector labels.Selector) []Entry {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.entries(selector)
}

func (r *ipSpace) entries(selector labels.Selector) []Entry {
	var entries []Entry

	it4 := r.v4.Iterate()
	for it4.Next() {
		d, err := labels.ConvertSelectorToLabelsMap(it4.Payload())
		if err != nil {
			continue
		}
		if !selector.Matches(d) {
			continue
		}
		rng := it4.Range()
		entries = append(entries, Entry{
			Range:  netipx.IPRangeFrom(rng.From().Addr(), rng.To().Addr()),
			Labels: d,
		})
	}
	it6 := r.v6.Iterate()
	for it6.Next() {
		d, err := labels.ConvertSelectorToLabelsMap(it6.Payload())
		if err != nil {
			continue
		}
		if !selector.Matches(d) {
			continue
		}
		rng := it6.Range()
		entries = append(entries, Entry{
			Range:  netipx.IPRangeFrom(rng.From().Addr(), rng.To().Addr()),
			Labels: d,
		})
	}
	return entries
}

func (r *ipSpace) Routes() (table.Routes, error) {
	var routes table.Routes
	for _, entry := range r.GetAll() {
		for _, pfx := range entry.Range.Prefixes() {
			routes = append(routes, table.NewRoute(pfx, entry.Labels, nil))
		}
	}
	return routes, nil
}
