package vlanspace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/henderiw/rangespace/pkg/interval"
	"github.com/henderiw/rangespace/pkg/metric"
	"github.com/henderiw/rangespace/pkg/space"
	"k8s.io/apimachinery/pkg/labels"
)

// VLANSpace maps VLAN ID ranges to label sets. Ranges are given in "from-to"
// notation, e.g. "100-200". VLANs 0, 1 and 4095 are reserved and cannot be
// marked, filled or erased.
type VLANSpace interface {
	MarkRange(vlanRange string, d labels.Set) error
	FillRange(vlanRange string, d labels.Set) error
	EraseRange(vlanRange string) error

	Find(id uint16) (labels.Set, error)
	Count() int

	GetAll() []Entry
	GetByLabel(selector labels.Selector) []Entry
}

// Entry is a marked VLAN range and its labels.
type Entry struct {
	Range  interval.Range[metric.Uint16]
	Labels labels.Set
}

func (r Entry) String() string {
	return fmt.Sprintf("range: %s, labels: %s", r.Range.String(), r.Labels.String())
}

const maxVLAN = 4095

var reservedEntries = map[uint16]labels.Set{
	0:       {"type": "untagged", "status": "reserved"},
	1:       {"type": "untagged", "status": "reserved"},
	maxVLAN: {"type": "untagged", "status": "reserved"},
}

func New() VLANSpace {
	r := &vlanSpace{
		m:     new(sync.RWMutex),
		space: space.New[metric.Uint16, string](),
	}
	for id, d := range reservedEntries {
		r.space.Mark(interval.Of(metric.Uint16(id)), d.String())
	}
	return r
}

// Labels are stored in canonical string form so that payload equality, and
// with it coalescence of touching ranges, follows label equality.
type vlanSpace struct {
	m     *sync.RWMutex
	space *space.Space[metric.Uint16, string]
}

func (r *vlanSpace) validate(rng interval.Range[metric.Uint16]) error {
	var errm error
	if rng.IsEmpty() {
		errm = errors.Join(errm, fmt.Errorf("range %s is empty", rng))
	}
	if uint16(rng.To()) > maxVLAN {
		errm = errors.Join(errm, fmt.Errorf("vlan %d is bigger then max allowed vlan: %d", uint16(rng.To()), maxVLAN))
	}
	for id := range reservedEntries {
		if rng.Contains(metric.Uint16(id)) {
			errm = errors.Join(errm, fmt.Errorf("vlan %d is reserved, cannot be changed", id))
		}
	}
	return errm
}

func (r *vlanSpace) MarkRange(vlanRange string, d labels.Set) error {
	rng, err := metric.ParseUint16Range(vlanRange)
	if err != nil {
		return err
	}
	if err := r.validate(rng); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()
	r.space.Mark(rng, d.String())
	return nil
}

func (r *vlanSpace) FillRange(vlanRange string, d labels.Set) error {
	rng, err := metric.ParseUint16Range(vlanRange)
	if err != nil {
		return err
	}
	if err := r.validate(rng); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()
	r.space.Fill(rng, d.String())
	return nil
}

func (r *vlanSpace) EraseRange(vlanRange string) error {
	rng, err := metric.ParseUint16Range(vlanRange)
	if err != nil {
		return err
	}
	if err := r.validate(rng); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()
	r.space.Erase(rng)
	return nil
}

func (r *vlanSpace) Find(id uint16) (labels.Set, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	_, d, ok := r.space.Find(metric.Uint16(id))
	if !ok {
		return nil, fmt.Errorf("no match found for: %d", id)
	}
	return labels.ConvertSelectorToLabelsMap(d)
}

func (r *vlanSpace) Count() int {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.space.Count()
}

func (r *vlanSpace) GetAll() []Entry {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.entries(labels.Everything())
}

func (r *vlanSpace) GetByLabel(selector labels.Selector) []Entry {
	r.m.RLock()
	defer r.m.RUnlock()
	return r.entries(selector)
}

func (r *vlanSpace) entries(selector labels.Selector) []Entry {
	var entries []Entry
	it := r.space.Iterate()
	for it.Next() {
		d, err := labels.ConvertSelectorToLabelsMap(it.Payload())
		if err != nil {
			continue
		}
		if !selector.Matches(d) {
			continue
		}
		entries = append(entries, Entry{Range: it.Range(), Labels: d})
	}
	return entries
}
