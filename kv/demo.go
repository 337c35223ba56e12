package main

import (
	"fmt"

	"github.com/memkv-incubator/memkv/kv/db"
	"github.com/ngaut/log"
	"github.com/spf13/cobra"
)

func newDemoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a scripted walkthrough of the transaction lifecycle",
		Run:   runDemoCommandFunc,
	}
}

// runDemoCommandFunc exercises every operation of the store in sequence, printing results and
// errors to stdout. Failures of steps that are supposed to fail are part of the script.
func runDemoCommandFunc(cmd *cobra.Command, args []string) {
	loadConfig()
	store := newStore()

	fmt.Println("1. Read before any write")
	demoGet(store, "a")

	fmt.Println("\n2. Write outside a transaction (rejected)")
	if err := store.Put("a", "1"); err != nil {
		fmt.Printf("Put a failed: %v\n", err)
	}

	fmt.Println("\n3. Begin, write, read back uncommitted")
	demoMust(store.Begin())
	demoMust(store.Put("a", "1"))
	demoGet(store, "a")
	demoMust(store.Put("a", "6"))
	demoGet(store, "a")

	fmt.Println("\n4. Commit and read the committed value")
	demoMust(store.Commit())
	demoGet(store, "a")

	fmt.Println("\n5. Commit and rollback while idle (rejected)")
	if err := store.Commit(); err != nil {
		fmt.Printf("Commit failed: %v\n", err)
	}
	if err := store.Rollback(); err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
	}

	fmt.Println("\n6. Rollback discards uncommitted writes")
	demoGet(store, "b")
	demoMust(store.Begin())
	demoMust(store.Put("b", "10"))
	demoGet(store, "b")
	demoMust(store.Rollback())
	demoGet(store, "b")
	demoGet(store, "a")
}

func demoGet(store *db.DB, key string) {
	val, err := store.Get(key)
	if err != nil {
		fmt.Printf("Get %s failed: %v\n", key, err)
		return
	}
	fmt.Printf("Get %s = %q\n", key, val)
}

// demoMust aborts the walkthrough on steps that are supposed to succeed.
func demoMust(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
