package db

import (
	"bytes"

	"github.com/memkv-incubator/memkv/kv/storage"
	"github.com/memkv-incubator/memkv/kv/transaction"
	"github.com/ngaut/log"
	"github.com/pingcap/errors"
)

// DB is the transactional store. It owns the committed state and at most one open transaction,
// and every operation routes through it. Reads inside a transaction see the transaction's own
// uncommitted writes; reads outside see only the committed state.
//
// DB is not safe for concurrent use. The store assumes a single logical caller.
type DB struct {
	storage storage.Storage
	txn     *transaction.Txn
}

// New creates a DB over the given committed-state storage.
func New(s storage.Storage) *DB {
	return &DB{storage: s}
}

// NewInMemory creates a DB backed by a fresh in-memory storage.
func NewInMemory() *DB {
	return New(storage.NewMemStorage())
}

// Pair is one key/value returned by Scan.
type Pair struct {
	Key   string
	Value string
}

// InTxn reports whether a transaction is open.
func (db *DB) InTxn() bool {
	return db.txn != nil
}

// Begin opens a transaction. Only a single transaction may exist at a time.
func (db *DB) Begin() error {
	if db.txn != nil {
		return errors.Trace(ErrTxnAlreadyActive)
	}
	reader, err := db.storage.Reader()
	if err != nil {
		return errors.Trace(err)
	}
	db.txn = transaction.NewTxn(reader)
	log.Debug("transaction started")
	return nil
}

// Put buffers a write of key to value in the open transaction. Writes outside a transaction are
// rejected and leave the committed state untouched.
func (db *DB) Put(key string, value string) error {
	if db.txn == nil {
		return errors.Trace(ErrNoActiveTxn)
	}
	db.txn.PutValue([]byte(key), []byte(value))
	log.Debugf("put %q (uncommitted)", key)
	return nil
}

// Delete buffers removal of key in the open transaction. Deleting an absent key is not an
// error; the tombstone simply has nothing to hide.
func (db *DB) Delete(key string) error {
	if db.txn == nil {
		return errors.Trace(ErrNoActiveTxn)
	}
	db.txn.DeleteValue([]byte(key))
	log.Debugf("delete %q (uncommitted)", key)
	return nil
}

// Get returns the value for key. Inside a transaction the transaction's own writes win over the
// committed state; outside, only the committed state is consulted.
func (db *DB) Get(key string) (string, error) {
	var (
		val []byte
		err error
	)
	if db.txn != nil {
		val, err = db.txn.GetValue([]byte(key))
	} else {
		var reader storage.StorageReader
		reader, err = db.storage.Reader()
		if err != nil {
			return "", errors.Trace(err)
		}
		defer reader.Close()
		val, err = reader.Get([]byte(key))
	}
	if err != nil {
		return "", errors.Trace(err)
	}
	if val == nil {
		return "", errors.Trace(&ErrKeyNotFound{Key: key})
	}
	return string(val), nil
}

// Commit applies the open transaction's writes to the committed state, in the order they were
// made, and closes the transaction. Buffered writes win over previously committed values for the
// same key. On failure the transaction stays open and the committed state is untouched.
func (db *DB) Commit() error {
	if db.txn == nil {
		return errors.Trace(ErrNoActiveTxn)
	}
	writes := db.txn.Writes()
	if err := db.storage.Write(writes); err != nil {
		return errors.Annotate(err, "commit")
	}
	db.txn.Reader.Close()
	db.txn = nil
	log.Debugf("transaction committed, %d writes", len(writes))
	return nil
}

// Rollback discards the open transaction. The committed state is untouched.
func (db *DB) Rollback() error {
	if db.txn == nil {
		return errors.Trace(ErrNoActiveTxn)
	}
	db.txn.Reader.Close()
	db.txn = nil
	log.Debug("transaction rolled back")
	return nil
}

// Scan returns up to limit pairs in ascending key order, starting at start. A negative limit
// means no bound. Inside a transaction the result reflects the transaction's pending puts and
// deletes; outside it is the committed state alone.
func (db *DB) Scan(start string, limit int) ([]Pair, error) {
	var (
		reader      storage.StorageReader
		pendingKeys [][]byte
	)
	if db.txn != nil {
		reader = db.txn.Reader
		pendingKeys = db.txn.PendingKeys()
	} else {
		r, err := db.storage.Reader()
		if err != nil {
			return nil, errors.Trace(err)
		}
		defer r.Close()
		reader = r
	}

	iter := reader.Iter()
	defer iter.Close()
	iter.Seek([]byte(start))

	pi := 0
	for pi < len(pendingKeys) && string(pendingKeys[pi]) < start {
		pi++
	}

	// Merge the two sorted streams; on a shared key the overlay wins and a tombstone hides the
	// committed entry.
	var pairs []Pair
	for limit != 0 {
		var key []byte
		switch {
		case iter.Valid() && pi < len(pendingKeys):
			if bytes.Compare(pendingKeys[pi], iter.Item().Key()) <= 0 {
				key = pendingKeys[pi]
			} else {
				key = iter.Item().Key()
			}
		case iter.Valid():
			key = iter.Item().Key()
		case pi < len(pendingKeys):
			key = pendingKeys[pi]
		default:
			return pairs, nil
		}

		if pi < len(pendingKeys) && bytes.Equal(pendingKeys[pi], key) {
			value, deleted, _ := db.txn.Pending(key)
			if !deleted {
				pairs = append(pairs, Pair{Key: string(key), Value: string(value)})
				limit--
			}
			pi++
			if iter.Valid() && bytes.Equal(iter.Item().Key(), key) {
				iter.Next()
			}
			continue
		}

		pairs = append(pairs, Pair{Key: string(key), Value: string(iter.Item().Value())})
		limit--
		iter.Next()
	}
	return pairs, nil
}

// Len returns the number of keys visible under the current read target: the merged view inside
// a transaction, the committed state outside.
func (db *DB) Len() (int, error) {
	pairs, err := db.Scan("", -1)
	if err != nil {
		return 0, errors.Trace(err)
	}
	return len(pairs), nil
}
