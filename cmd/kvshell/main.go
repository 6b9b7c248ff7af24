// Command kvshell is a line-oriented shell that translates textual
// commands into calls against the cache façade. It is external
// collaborator glue (spec.md §1/§6), not part of the core: the shell's
// job is to parse a line, call the façade, and print a result.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/Sohamiota/High-Performance-KV-Store/cache"
)

func main() {
	capacity := flag.Int("capacity", 1000, "cache capacity (entries)")
	snapshot := flag.String("snapshot", "kvstore.snap", "snapshot file path (empty disables persistence)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c, err := cache.New(cache.Config{Capacity: *capacity, SnapshotPath: *snapshot})
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	defer func() {
		if err := c.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "cache close:", err)
		}
	}()

	fmt.Println("KVStore shell - in-process LRU cache")
	fmt.Println("Type 'HELP' for available commands.")

	runREPL(ctx, c)
}

func runREPL(ctx context.Context, c *cache.Cache) {
	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("kvstore> ")
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			fmt.Println("\nreceived shutdown signal")
			return
		default:
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Print("kvstore> ")
			continue
		}
		if !dispatch(c, line) {
			return
		}
		fmt.Print("kvstore> ")
	}
}

// dispatch executes one command line and reports whether the shell
// should keep running.
func dispatch(c *cache.Cache, line string) bool {
	tokens := strings.Fields(line)
	command := strings.ToUpper(tokens[0])

	switch command {
	case "GET":
		if len(tokens) != 2 {
			fmt.Println("usage: GET <key>")
			return true
		}
		if v, ok := c.Get([]byte(tokens[1])); ok {
			fmt.Printf("%q\n", v)
		} else {
			fmt.Println("(nil)")
		}
	case "PUT":
		if len(tokens) < 3 {
			fmt.Println("usage: PUT <key> <value...>")
			return true
		}
		value := strings.Join(tokens[2:], " ")
		c.Put([]byte(tokens[1]), []byte(value))
		fmt.Println("OK")
	case "DEL":
		if len(tokens) != 2 {
			fmt.Println("usage: DEL <key>")
			return true
		}
		if c.Remove([]byte(tokens[1])) {
			fmt.Println("1")
		} else {
			fmt.Println("0")
		}
	case "CLEAR":
		c.Clear()
		fmt.Println("OK")
	case "SIZE":
		fmt.Println(c.Size())
	case "STATS":
		printStats(c)
	case "SAVE":
		if err := c.SaveSnapshot(); err != nil {
			fmt.Println("error:", err)
		} else {
			fmt.Println("Snapshot saved")
		}
	case "LOAD":
		if c.LoadSnapshot() {
			fmt.Println("Snapshot loaded")
		} else {
			fmt.Println("Failed to load snapshot")
		}
	case "HELP":
		printHelp()
	case "QUIT", "EXIT":
		fmt.Println("Goodbye!")
		return false
	default:
		fmt.Println("Unknown command. Type 'HELP' for available commands.")
	}
	return true
}

func printHelp() {
	fmt.Print("Available commands:\n" +
		"  GET <key>           - Get value for key\n" +
		"  PUT <key> <value>   - Set key to value\n" +
		"  DEL <key>           - Delete key\n" +
		"  CLEAR               - Clear all entries\n" +
		"  SIZE                - Show number of entries\n" +
		"  STATS               - Show performance statistics\n" +
		"  SAVE                - Save snapshot to disk\n" +
		"  LOAD                - Load snapshot from disk\n" +
		"  HELP                - Show this help\n" +
		"  QUIT                - Exit the program\n")
}

func printStats(c *cache.Cache) {
	m := c.GetMetrics()
	fmt.Println("Performance Statistics:")
	fmt.Println("  Total operations:", m.TotalOperations)
	fmt.Println("  Cache hits:", m.CacheHits)
	fmt.Println("  Cache misses:", m.CacheMisses)
	fmt.Println("  Hit rate:", strconv.FormatFloat(m.HitRate*100, 'f', 2, 64)+"%")
	fmt.Println("  Evictions:", m.Evictions)
	fmt.Println("  Operations/sec:", strconv.FormatFloat(m.OperationsPerSecond, 'f', 2, 64))
	fmt.Println("  Current size:", c.Size())
}
