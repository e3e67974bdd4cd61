package vlanspace

import (
	"testing"

	"github.com/tj/assert"
	"k8s.io/apimachinery/pkg/labels"
)

func TestMark(t *testing.T) {
	cases := map[string]struct {
		newSuccessRanges map[string]labels.Set
		newFailedRanges  map[string]labels.Set
		foundIDs         []uint16
		notFoundIDs      []uint16
		expectedEntries  int
	}{
		"Normal": {
			newSuccessRanges: map[string]labels.Set{
				"100-200": {"purpose": "servers"},
			},
			newFailedRanges: map[string]labels.Set{
				"0-10":      {}, // vlan 0 is reserved
				"4090-4095": {}, // vlan 4095 is reserved
				"5000-5001": {}, // out of range
				"200-100":   {}, // empty
			},
			foundIDs:        []uint16{100, 150, 200},
			notFoundIDs:     []uint16{99, 201},
			// vlans 0 and 1 coalesce into one reserved range, plus the
			// reserved vlan 4095 and the marked range
			expectedEntries: 3,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := New()

			for vlanRange, d := range tc.newSuccessRanges {
				err := r.MarkRange(vlanRange, d)
				assert.NoError(t, err)
			}
			for vlanRange, d := range tc.newFailedRanges {
				err := r.MarkRange(vlanRange, d)
				assert.Error(t, err)
			}
			for _, id := range tc.foundIDs {
				if _, err := r.Find(id); err != nil {
					t.Errorf("%s expecting success find entry: %d\n", name, id)
				}
			}
			for _, id := range tc.notFoundIDs {
				if _, err := r.Find(id); err == nil {
					t.Errorf("%s not expecting find entry: %d\n", name, id)
				}
			}
			if r.Count() != tc.expectedEntries {
				t.Errorf("%s: -want %d, +got: %d\n", name, tc.expectedEntries, r.Count())
			}
		})
	}
}

func TestReserved(t *testing.T) {
	r := New()

	for _, id := range []uint16{0, 1, 4095} {
		d, err := r.Find(id)
		assert.NoError(t, err)
		assert.Equal(t, "reserved", d["status"])
	}

	// reserved vlans cannot be erased
	assert.Error(t, r.EraseRange("0-1"))
	assert.Error(t, r.EraseRange("4095-4095"))
}

func TestFillAndErase(t *testing.T) {
	r := New()
	assert.NoError(t, r.MarkRange("100-200", labels.Set{"purpose": "servers"}))
	assert.NoError(t, r.FillRange("50-250", labels.Set{"purpose": "spare"}))

	d, err := r.Find(150)
	assert.NoError(t, err)
	assert.Equal(t, "servers", d["purpose"])
	d, err = r.Find(50)
	assert.NoError(t, err)
	assert.Equal(t, "spare", d["purpose"])

	assert.NoError(t, r.EraseRange("50-250"))
	_, err = r.Find(150)
	assert.Error(t, err)
	// the reserved entries are untouched
	assert.Equal(t, 2, r.Count())
}

func TestCoalesce(t *testing.T) {
	r := New()
	assert.NoError(t, r.MarkRange("100-200", labels.Set{"purpose": "servers"}))
	assert.NoError(t, r.MarkRange("201-300", labels.Set{"purpose": "servers"}))

	entries := r.GetByLabel(labels.SelectorFromSet(labels.Set{"purpose": "servers"}))
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "100-300", entries[0].Range.String())
}

func TestGetByLabel(t *testing.T) {
	r := New()
	assert.NoError(t, r.MarkRange("100-200", labels.Set{"purpose": "servers"}))
	assert.NoError(t, r.MarkRange("300-400", labels.Set{"purpose": "storage"}))

	selector, err := labels.Parse("purpose=storage")
	assert.NoError(t, err)
	entries := r.GetByLabel(selector)
	assert.Equal(t, 1, len(entries))
	assert.Equal(t, "300-400", entries[0].Range.String())
}
