package storage

import (
	"bytes"

	"github.com/google/btree"
	"github.com/pingcap/errors"
)

// MemStorage holds the committed state in an in-memory btree, ordered by key. Data is not written
// to disk: it lives for the lifetime of the process only.
type MemStorage struct {
	data *btree.BTree
}

func NewMemStorage() *MemStorage {
	return &MemStorage{
		data: btree.New(32),
	}
}

func (s *MemStorage) Start() error {
	return nil
}

func (s *MemStorage) Stop() error {
	return nil
}

func (s *MemStorage) Reader() (StorageReader, error) {
	return &memReader{s}, nil
}

// Write applies batch in order. The batch is validated before anything is applied, so a bad
// modify cannot leave the committed state half-updated.
func (s *MemStorage) Write(batch []Modify) error {
	for _, m := range batch {
		switch m.Data.(type) {
		case Put, Delete:
		default:
			return errors.Errorf("unsupported modify type %d", m.Type)
		}
	}

	for _, m := range batch {
		switch data := m.Data.(type) {
		case Put:
			s.data.ReplaceOrInsert(memItem{data.Key, data.Value})
		case Delete:
			s.data.Delete(memItem{key: data.Key})
		}
	}

	return nil
}

// Get looks up key directly, bypassing the reader. Intended for tests.
func (s *MemStorage) Get(key []byte) []byte {
	result := s.data.Get(memItem{key: key})
	if result == nil {
		return nil
	}
	return result.(memItem).value
}

// Set stores key directly, bypassing the write batch. Intended for tests.
func (s *MemStorage) Set(key []byte, value []byte) {
	s.data.ReplaceOrInsert(memItem{key, value})
}

func (s *MemStorage) Len() int {
	return s.data.Len()
}

// memReader is a StorageReader which reads from a MemStorage.
type memReader struct {
	inner *MemStorage
}

func (mr *memReader) Get(key []byte) ([]byte, error) {
	result := mr.inner.data.Get(memItem{key: key})
	if result == nil {
		return nil, nil
	}
	return result.(memItem).value, nil
}

func (mr *memReader) Iter() Iterator {
	min := mr.inner.data.Min()
	if min == nil {
		return &memIter{mr.inner.data, memItem{}}
	}
	return &memIter{mr.inner.data, min.(memItem)}
}

func (mr *memReader) Close() {}

type memIter struct {
	data *btree.BTree
	item memItem
}

func (it *memIter) Item() Item {
	return it.item
}

func (it *memIter) Valid() bool {
	return it.item.key != nil
}

func (it *memIter) Next() {
	first := true
	oldItem := it.item
	it.item = memItem{}
	it.data.AscendGreaterOrEqual(oldItem, func(item btree.Item) bool {
		// Skip the first item, which will be it.item
		if first {
			first = false
			return true
		}

		it.item = item.(memItem)
		return false
	})
}

func (it *memIter) Seek(key []byte) {
	it.item = memItem{}
	it.data.AscendGreaterOrEqual(memItem{key: key}, func(item btree.Item) bool {
		it.item = item.(memItem)

		return false
	})
}

func (it *memIter) Close() {}

type memItem struct {
	key   []byte
	value []byte
}

func (it memItem) Key() []byte {
	return it.key
}

func (it memItem) Value() []byte {
	return it.value
}

func (it memItem) Less(than btree.Item) bool {
	other := than.(memItem)
	return bytes.Compare(it.key, other.key) < 0
}
