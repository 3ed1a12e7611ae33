// check-rpcs probes every RPC URL of every built-in network in parallel
// and prints which ones answer.
//
// Run from the module root:
//
//	go run ./scripts/check-rpcs
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/hexlane/dappdesk/internal/network"
	"github.com/hexlane/dappdesk/internal/provider"
)

const probeTimeout = 10 * time.Second

type result struct {
	network string
	url     string
	latency time.Duration
	err     error
}

func main() {
	reg := network.NewRegistry()

	var (
		mu      sync.Mutex
		results []result
		wg      sync.WaitGroup
	)

	for _, desc := range reg.All() {
		for _, url := range desc.RPCURLs {
			wg.Add(1)
			go func(name, url string) {
				defer wg.Done()
				r := probe(name, url)
				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}(desc.Name, url)
		}
	}
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		if results[i].network != results[j].network {
			return results[i].network < results[j].network
		}
		return results[i].url < results[j].url
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NETWORK\tRPC\tLATENCY\tSTATUS")
	failures := 0
	for _, r := range results {
		status := "ok"
		latency := r.latency.Round(time.Millisecond).String()
		if r.err != nil {
			status = r.err.Error()
			latency = "-"
			failures++
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.network, r.url, latency, status)
	}
	w.Flush()

	if failures > 0 {
		os.Exit(1)
	}
}

func probe(name, url string) result {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	start := time.Now()
	_, err := provider.NewHTTPProvider(url).Request(ctx, "eth_blockNumber")
	return result{network: name, url: url, latency: time.Since(start), err: err}
}
