package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ivanmoore/raxgo"
)

var (
	benchKeys          int
	benchPrefixSharing float64
)

func init() {
	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "insert generated keys and report timing, node count, and key count",
		RunE: func(cmd *cobra.Command, args []string) error {
			runBench(benchKeys, benchPrefixSharing)
			return nil
		},
	}
	benchCmd.Flags().IntVar(&benchKeys, "keys", 100000, "number of keys to insert")
	benchCmd.Flags().Float64Var(&benchPrefixSharing, "prefix-sharing", 0.7, "fraction of each key's bytes drawn from a small shared-prefix pool (0=random, close to 1=heavy sharing)")
	rootCmd.AddCommand(benchCmd)
}

// genBenchKey builds one key of length 8..23: the first int(sharing*len)
// bytes come from a tiny fixed alphabet (forcing long shared prefixes
// across keys), the rest from the full byte range, so prefix-sharing tunes
// how much compression the tree's edge-merging can actually exploit.
func genBenchKey(r *rand.Rand, sharing float64) []byte {
	const sharedAlphabet = "abcdefgh"
	n := 8 + r.Intn(16)
	key := make([]byte, n)
	sharedLen := int(float64(n) * sharing)
	for i := 0; i < n; i++ {
		if i < sharedLen {
			key[i] = sharedAlphabet[r.Intn(len(sharedAlphabet))]
		} else {
			key[i] = byte(r.Intn(256))
		}
	}
	return key
}

func runBench(keys int, sharing float64) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	tr := rax.New()

	start := time.Now()
	for i := 0; i < keys; i++ {
		k := genBenchKey(r, sharing)
		if _, _, err := tr.Insert(k, i); err != nil {
			log.WithError(err).Fatal("insert failed")
		}
	}
	elapsed := time.Since(start)

	log.WithFields(logrus.Fields{
		"requested_keys": keys,
		"stored_keys":    tr.Size(),
		"nodes":          tr.NumNodes(),
		"elapsed":        elapsed,
		"inserts_per_sec":  fmt.Sprintf("%.0f", float64(keys)/elapsed.Seconds()),
		"nodes_per_key":    fmt.Sprintf("%.2f", float64(tr.NumNodes())/float64(max64(tr.Size(), 1))),
	}).Info("bench complete")
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
