// Package pagetable maps a page identity (file, page number) to the buffer
// frame that currently holds it.
package pagetable

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
)

var (
	ErrNotFound       = errors.New("pagetable: entry not found")
	ErrDuplicateEntry = errors.New("pagetable: duplicate entry")
	ErrOutOfMemory    = errors.New("pagetable: table is full")
)

// Key is the identity of one disk page.
type Key struct {
	File   string
	PageNo uint32
}

type entry struct {
	key   Key
	frame int
	next  *entry
}

// Table is a chained hash table from Key to frame number.
type Table struct {
	buckets []*entry
	count   int
	limit   int // 0 == unbounded
}

// New creates a table with the given number of buckets.
func New(buckets int) *Table {
	if buckets <= 0 {
		buckets = 1
	}
	return &Table{buckets: make([]*entry, buckets)}
}

// NewForFrames sizes the table for a pool of n frames: roughly 1.2 buckets
// per frame, odd-sized, and never more entries than frames.
func NewForFrames(n int) *Table {
	t := New(n*12/10*2/2 + 1)
	t.limit = n
	return t
}

func (t *Table) hash(k Key) int {
	var pn [4]byte
	binary.LittleEndian.PutUint32(pn[:], k.PageNo)

	d := xxhash.New()
	_, _ = d.WriteString(k.File)
	_, _ = d.Write(pn[:])
	return int(d.Sum64() % uint64(len(t.buckets)))
}

// Insert adds k -> frame. It fails if k is already present.
func (t *Table) Insert(k Key, frame int) error {
	b := t.hash(k)
	for e := t.buckets[b]; e != nil; e = e.next {
		if e.key == k {
			return ErrDuplicateEntry
		}
	}
	if t.limit > 0 && t.count >= t.limit {
		return ErrOutOfMemory
	}
	t.buckets[b] = &entry{key: k, frame: frame, next: t.buckets[b]}
	t.count++
	return nil
}

func (t *Table) Lookup(k Key) (int, error) {
	for e := t.buckets[t.hash(k)]; e != nil; e = e.next {
		if e.key == k {
			return e.frame, nil
		}
	}
	return -1, ErrNotFound
}

func (t *Table) Remove(k Key) error {
	b := t.hash(k)
	var prev *entry
	for e := t.buckets[b]; e != nil; prev, e = e, e.next {
		if e.key != k {
			continue
		}
		if prev == nil {
			t.buckets[b] = e.next
		} else {
			prev.next = e.next
		}
		t.count--
		return nil
	}
	return ErrNotFound
}

func (t *Table) Len() int { return t.count }

func (t *Table) Buckets() int { return len(t.buckets) }
