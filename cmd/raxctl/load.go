package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ivanmoore/raxgo"
)

var (
	loadFile    string
	loadReplay  string
	loadCacheSz int
)

func init() {
	loadCmd := &cobra.Command{
		Use:   "load",
		Short: "bulk-load newline-delimited key=value pairs and report tree stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(loadFile, loadReplay, loadCacheSz)
		},
	}
	loadCmd.Flags().StringVar(&loadFile, "file", "", "newline-delimited key=value file to load")
	loadCmd.Flags().StringVar(&loadReplay, "replay", "", "optional file of keys (one per line) to re-look-up through an LRU front-cache")
	loadCmd.Flags().IntVar(&loadCacheSz, "cache-size", 1024, "entries in the replay LRU front-cache")
	loadCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(file, replay string, cacheSize int) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("raxctl: opening %s: %w", file, err)
	}
	defer f.Close()

	tr := rax.New()
	scanner := bufio.NewScanner(f)
	var lines int
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			log.WithField("line", lines+1).Warn("skipping malformed line, expected key=value")
			continue
		}
		if _, _, err := tr.Insert([]byte(k), v); err != nil {
			return fmt.Errorf("raxctl: inserting %q: %w", k, err)
		}
		lines++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("raxctl: reading %s: %w", file, err)
	}

	log.WithFields(logrus.Fields{
		"lines": lines,
		"keys":  tr.Size(),
		"nodes": tr.NumNodes(),
	}).Info("load complete")

	if replay == "" {
		return nil
	}
	return runReplay(tr, replay, cacheSize)
}

// runReplay re-reads replay (one key per line) and looks each one up
// through an LRU front-cache keyed by the raw query bytes. The cache never
// touches tree internals: it stores whatever opaque value Find returned,
// which is exactly the caller-side use the opaque-value contract permits.
func runReplay(tr *rax.Tree, replay string, cacheSize int) error {
	f, err := os.Open(replay)
	if err != nil {
		return fmt.Errorf("raxctl: opening %s: %w", replay, err)
	}
	defer f.Close()

	cache, err := lru.New[string, any](cacheSize)
	if err != nil {
		return fmt.Errorf("raxctl: building replay cache: %w", err)
	}

	var hits, misses int
	start := time.Now()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		k := strings.TrimSpace(scanner.Text())
		if k == "" {
			continue
		}
		if v, ok := cache.Get(k); ok {
			hits++
			_ = v
			continue
		}
		misses++
		v := tr.Find([]byte(k))
		cache.Add(k, v)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("raxctl: reading %s: %w", replay, err)
	}

	log.WithFields(logrus.Fields{
		"elapsed": time.Since(start),
		"hits":    hits,
		"misses":  misses,
	}).Info("replay complete")
	return nil
}
