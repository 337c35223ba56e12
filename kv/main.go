package main

import (
	"fmt"
	"os"

	"github.com/memkv-incubator/memkv/kv/config"
	"github.com/memkv-incubator/memkv/kv/db"
	"github.com/memkv-incubator/memkv/kv/storage"
	"github.com/ngaut/log"
	"github.com/spf13/cobra"
)

var (
	cfgFile  string
	logLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "memkv",
		Short: "An in-memory key/value store with single-level transactions",
	}
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a TOML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.AddCommand(
		newDemoCommand(),
		newShellCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() *config.Config {
	conf := config.NewDefaultConfig()
	if cfgFile != "" {
		if err := conf.FromTOMLFile(cfgFile); err != nil {
			log.Fatalf("load config %s: %v", cfgFile, err)
		}
	}
	if logLevel != "" {
		conf.LogLevel = logLevel
	}
	if err := conf.Validate(); err != nil {
		log.Fatal(err)
	}
	log.SetLevelByString(conf.LogLevel)
	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
	return conf
}

func newStore() *db.DB {
	s := storage.NewMemStorage()
	if err := s.Start(); err != nil {
		log.Fatal(err)
	}
	return db.New(s)
}
