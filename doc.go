package memkv

/*
MemKV is an in-memory key/value store with single-level transactions, intended for teaching and
experimentation. It is not suitable for production use: data lives only for the lifetime of the
process, and the store assumes a single logical caller.

All writes go through a transaction. `begin` opens one, `put` and `delete` buffer changes in it,
and `commit` applies the buffered changes to the committed state atomically while `rollback`
discards them. Reads inside a transaction see the transaction's own uncommitted writes first and
fall through to the committed state.

Building MemKV produces one executable: memkv. It runs either a scripted walkthrough of the
transaction lifecycle (`memkv demo`) or an interactive shell over a fresh store (`memkv shell`).

The `memkv` module is organized into the following packages:

* `kv/db`: the transactional store itself - the state machine tying the committed state and the
  open transaction together.
* `kv/storage`: the committed state, an ordered in-memory map mutated only by applying batches
  of modifications.
* `kv/transaction`: the transaction overlay, a buffered write log over a committed-state reader.
* `kv/config`: runtime configuration for the driver.
* `kv`: the demonstration driver, a small CLI with the scripted walkthrough and the shell.
 */
