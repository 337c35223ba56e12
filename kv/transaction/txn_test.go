package transaction

import (
	"testing"

	"github.com/memkv-incubator/memkv/kv/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTxn(t *testing.T, committed map[string]string) *Txn {
	mem := storage.NewMemStorage()
	for k, v := range committed {
		mem.Set([]byte(k), []byte(v))
	}
	reader, err := mem.Reader()
	require.NoError(t, err)
	return NewTxn(reader)
}

func assertPutInTxn(t *testing.T, txn *Txn, key []byte, value []byte) {
	writes := txn.Writes()
	require.Equal(t, 1, len(writes))
	assert.Equal(t, storage.ModifyTypePut, writes[0].Type)
	expected := storage.Put{Key: key, Value: value}
	assert.Equal(t, expected, writes[0].Data.(storage.Put))
}

func assertDeleteInTxn(t *testing.T, txn *Txn, key []byte) {
	writes := txn.Writes()
	require.Equal(t, 1, len(writes))
	assert.Equal(t, storage.ModifyTypeDelete, writes[0].Type)
	expected := storage.Delete{Key: key}
	assert.Equal(t, expected, writes[0].Data.(storage.Delete))
}

func TestPutValue(t *testing.T) {
	txn := testTxn(t, nil)
	txn.PutValue([]byte("a"), []byte("1"))
	assertPutInTxn(t, txn, []byte("a"), []byte("1"))
}

func TestDeleteValue(t *testing.T) {
	txn := testTxn(t, nil)
	txn.DeleteValue([]byte("a"))
	assertDeleteInTxn(t, txn, []byte("a"))
}

func TestGetValueFallsThrough(t *testing.T) {
	txn := testTxn(t, map[string]string{"a": "1"})

	val, err := txn.GetValue([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), val)

	val, err = txn.GetValue([]byte("missing"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestGetValueSeesOwnWrite(t *testing.T) {
	txn := testTxn(t, map[string]string{"a": "1"})
	txn.PutValue([]byte("a"), []byte("2"))

	val, err := txn.GetValue([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestGetValueTombstoneHidesCommitted(t *testing.T) {
	txn := testTxn(t, map[string]string{"a": "1"})
	txn.DeleteValue([]byte("a"))

	val, err := txn.GetValue([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestWritesKeepOrder(t *testing.T) {
	txn := testTxn(t, nil)
	txn.PutValue([]byte("a"), []byte("1"))
	txn.PutValue([]byte("a"), []byte("2"))
	txn.DeleteValue([]byte("b"))

	writes := txn.Writes()
	require.Equal(t, 3, len(writes))
	assert.Equal(t, storage.Put{Key: []byte("a"), Value: []byte("1")}, writes[0].Data)
	assert.Equal(t, storage.Put{Key: []byte("a"), Value: []byte("2")}, writes[1].Data)
	assert.Equal(t, storage.Delete{Key: []byte("b")}, writes[2].Data)

	// The pending index keeps only the latest write per key.
	val, err := txn.GetValue([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), val)
}

func TestPending(t *testing.T) {
	txn := testTxn(t, map[string]string{"a": "1"})

	_, _, ok := txn.Pending([]byte("a"))
	assert.False(t, ok, "committed-only keys are not pending")

	txn.PutValue([]byte("b"), []byte("2"))
	val, deleted, ok := txn.Pending([]byte("b"))
	assert.True(t, ok)
	assert.False(t, deleted)
	assert.Equal(t, []byte("2"), val)

	txn.DeleteValue([]byte("a"))
	_, deleted, ok = txn.Pending([]byte("a"))
	assert.True(t, ok)
	assert.True(t, deleted)
}

func TestPendingKeysSorted(t *testing.T) {
	txn := testTxn(t, nil)
	txn.PutValue([]byte("c"), []byte("3"))
	txn.PutValue([]byte("a"), []byte("1"))
	txn.DeleteValue([]byte("b"))

	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, txn.PendingKeys())
}
