package bucket

import "github.com/hupe1980/srplsh/signature"

const initialSlots = 16

type slot struct {
	key      signature.Signature
	ids      []uint32
	occupied bool
}

// openAddressingIndex stores buckets inline in a power-of-two slot array.
// Probing is triangular (h, h+1, h+3, h+6, ...), which visits every slot of a
// power-of-two table, so an insert always finds a home.
type openAddressingIndex struct {
	slots []slot
	mask  uint64
	used  int
	ids   int
}

func newOpenAddressing() *openAddressingIndex {
	return &openAddressingIndex{
		slots: make([]slot, initialSlots),
		mask:  initialSlots - 1,
	}
}

// find returns the slot holding key or the empty slot where it belongs.
func (t *openAddressingIndex) find(key signature.Signature) int {
	pos := mix(uint64(key)) & t.mask
	for i := uint64(1); ; i++ {
		s := &t.slots[pos]
		if !s.occupied || s.key == key {
			return int(pos)
		}
		pos = (pos + i) & t.mask
	}
}

func (t *openAddressingIndex) Insert(sig signature.Signature, id uint32) {
	pos := t.find(sig)
	s := &t.slots[pos]
	if s.occupied {
		s.ids = append(s.ids, id)
		t.ids++
		return
	}

	// Keep load <= 50%; grow before claiming a new slot.
	if 2*(t.used+1) > len(t.slots) {
		t.grow()
		pos = t.find(sig)
		s = &t.slots[pos]
	}

	s.key = sig
	s.ids = []uint32{id}
	s.occupied = true
	t.used++
	t.ids++
}

func (t *openAddressingIndex) Lookup(sig signature.Signature) []uint32 {
	s := &t.slots[t.find(sig)]
	if !s.occupied {
		return nil
	}
	return s.ids
}

// grow doubles the slot array and re-homes every occupied slot.
func (t *openAddressingIndex) grow() {
	old := t.slots
	t.slots = make([]slot, 2*len(old))
	t.mask = uint64(len(t.slots) - 1)
	for i := range old {
		if !old[i].occupied {
			continue
		}
		t.slots[t.find(old[i].key)] = old[i]
	}
}

func (t *openAddressingIndex) Len() int { return t.used }

func (t *openAddressingIndex) Stats() Stats {
	st := Stats{Strategy: OpenAddressing, Buckets: t.used, IDs: t.ids, Capacity: len(t.slots)}
	for i := range t.slots {
		st.MaxBucket = max(st.MaxBucket, len(t.slots[i].ids))
	}
	return st
}
