package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/memkv-incubator/memkv/kv/config"
	"github.com/memkv-incubator/memkv/kv/db"
	"github.com/ngaut/log"
	"github.com/spf13/cobra"
)

var (
	shellStore *db.DB
	shellConf  *config.Config
)

func newShellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive client for the transactional store",
		Run:   runShellCommandFunc,
	}
}

func runShellCommandFunc(cmd *cobra.Command, args []string) {
	shellConf = loadConfig()
	shellStore = newStore()

	shellLoop()
}

func runShellCommand(args []string) {
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "memkv shell",
	}

	cmd.SetArgs(args)
	cmd.ParseFlags(args)

	cmd.AddCommand(
		&cobra.Command{
			Use:                   "begin",
			Short:                 "Start a transaction",
			Args:                  cobra.NoArgs,
			Run:                   runShellBeginCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "put key value",
			Short:                 "Buffer a write in the open transaction",
			Args:                  cobra.ExactArgs(2),
			Run:                   runShellPutCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "get key",
			Short:                 "Read a key",
			Args:                  cobra.ExactArgs(1),
			Run:                   runShellGetCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "delete key",
			Short:                 "Buffer removal of a key in the open transaction",
			Args:                  cobra.ExactArgs(1),
			Run:                   runShellDeleteCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "scan [start] [limit]",
			Short:                 "List pairs in key order, starting at start",
			Args:                  cobra.MaximumNArgs(2),
			Run:                   runShellScanCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "commit",
			Short:                 "Apply the open transaction to the committed state",
			Args:                  cobra.NoArgs,
			Run:                   runShellCommitCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "rollback",
			Short:                 "Discard the open transaction",
			Args:                  cobra.NoArgs,
			Run:                   runShellRollbackCommand,
			DisableFlagsInUseLine: true,
		},
		&cobra.Command{
			Use:                   "len",
			Short:                 "Count the keys currently visible",
			Args:                  cobra.NoArgs,
			Run:                   runShellLenCommand,
			DisableFlagsInUseLine: true,
		},
	)

	if err := cmd.Execute(); err != nil {
		fmt.Println(cmd.UsageString())
	}
}

func runShellBeginCommand(cmd *cobra.Command, args []string) {
	if err := shellStore.Begin(); err != nil {
		fmt.Printf("Begin failed: %v\n", err)
		return
	}
	fmt.Println("Transaction started")
}

func runShellPutCommand(cmd *cobra.Command, args []string) {
	key, value := args[0], args[1]
	if err := shellStore.Put(key, value); err != nil {
		fmt.Printf("Put %s failed: %v\n", key, err)
		return
	}
	fmt.Printf("Put %s = %q (uncommitted)\n", key, value)
}

func runShellGetCommand(cmd *cobra.Command, args []string) {
	key := args[0]
	val, err := shellStore.Get(key)
	if err != nil {
		fmt.Printf("Get %s failed: %v\n", key, err)
		return
	}
	fmt.Printf("Get %s = %q\n", key, val)
}

func runShellDeleteCommand(cmd *cobra.Command, args []string) {
	key := args[0]
	if err := shellStore.Delete(key); err != nil {
		fmt.Printf("Delete %s failed: %v\n", key, err)
		return
	}
	fmt.Printf("Delete %s ok (uncommitted)\n", key)
}

func runShellScanCommand(cmd *cobra.Command, args []string) {
	start := ""
	if len(args) >= 1 {
		start = args[0]
	}
	limit := shellConf.ScanDefaultLimit
	if len(args) == 2 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Printf("invalid limit %s for scan\n", args[1])
			return
		}
		limit = n
	}

	pairs, err := shellStore.Scan(start, limit)
	if err != nil {
		fmt.Printf("Scan from %q failed: %v\n", start, err)
		return
	}
	if len(pairs) == 0 {
		fmt.Println("0 pairs")
		return
	}
	for _, p := range pairs {
		fmt.Printf("%s=%q\n", p.Key, p.Value)
	}
	fmt.Printf("%d pair(s)\n", len(pairs))
}

func runShellCommitCommand(cmd *cobra.Command, args []string) {
	if err := shellStore.Commit(); err != nil {
		fmt.Printf("Commit failed: %v\n", err)
		return
	}
	fmt.Println("Transaction committed")
}

func runShellRollbackCommand(cmd *cobra.Command, args []string) {
	if err := shellStore.Rollback(); err != nil {
		fmt.Printf("Rollback failed: %v\n", err)
		return
	}
	fmt.Println("Transaction rolled back")
}

func runShellLenCommand(cmd *cobra.Command, args []string) {
	n, err := shellStore.Len()
	if err != nil {
		fmt.Printf("Len failed: %v\n", err)
		return
	}
	fmt.Printf("%d key(s)\n", n)
}

func shellLoop() {
	l, err := readline.NewEx(&readline.Config{
		Prompt:            shellConf.ShellPrompt,
		HistoryFile:       shellConf.HistoryFile,
		InterruptPrompt:   "^C",
		EOFPrompt:         "^D",
		HistorySearchFold: true,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer l.Close()

	for {
		line, err := l.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				return
			} else if err == io.EOF {
				return
			}
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			return
		}
		runShellCommand(strings.Split(line, " "))
	}
}
