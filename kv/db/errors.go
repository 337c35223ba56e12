package db

import (
	"fmt"

	"github.com/pingcap/errors"
)

// TxnError is returned when an operation is invalid for the store's current transaction state,
// e.g. writing with no open transaction or opening a second one.
type TxnError string

func (e TxnError) Error() string {
	return fmt.Sprintf("txn: %s", string(e))
}

var (
	ErrTxnAlreadyActive = TxnError("another transaction is already in progress")
	ErrNoActiveTxn      = TxnError("a transaction is not currently in progress")
)

// ErrKeyNotFound is returned by reads of a key that is absent from the state the read was
// served from.
type ErrKeyNotFound struct {
	Key string
}

func (e *ErrKeyNotFound) Error() string {
	return fmt.Sprintf("key not found: %q", e.Key)
}

// IsTxnError reports whether err, or its cause, is a transaction state error.
func IsTxnError(err error) bool {
	_, ok := errors.Cause(err).(TxnError)
	return ok
}

// IsKeyNotFound reports whether err, or its cause, is a missing-key error.
func IsKeyNotFound(err error) bool {
	_, ok := errors.Cause(err).(*ErrKeyNotFound)
	return ok
}
