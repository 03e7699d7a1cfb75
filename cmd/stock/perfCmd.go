package stock

import (
	"encoding/csv"
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/UCPHszf/bookstore-assignment2/cmd/util"
	"github.com/UCPHszf/bookstore-assignment2/lib/bookstore"
	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	perfTestCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Performance testing tool for bookstore servers",
		Long:    "",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfISBNBase   = 900_000_000
	perfNumThreads = 10
	perfBookSpread = 100
	perfSkip       = make([]string, 0)
)

func init() {
	// add flags
	key := "skip"
	StockCommands.PersistentFlags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. add,buy)"))
	key = "threads"
	StockCommands.PersistentFlags().Int(key, 10, util.WrapString("Number of threads to use for the benchmark"))
	key = "books"
	StockCommands.PersistentFlags().Int(key, 100, util.WrapString("How many different books to use for the tests"))
	key = "csv"
	perfTestCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	perfBookSpread = viper.GetInt("books")
	perfNumThreads = viper.GetInt("threads")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {

	fmt.Println("Performance testing tool for bookstore servers")

	// Print configuration
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Threads: %d\n", perfNumThreads)
	fmt.Println()

	fmt.Println("starting tests...")

	// Create results map
	results := make(map[string]testing.BenchmarkResult)
	timers := make(map[string]gometrics.Timer)

	addResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("add") {
			return
		}

		timer := gometrics.NewTimer()
		timers["add"] = timer

		// prepare isbns
		getISBN, iter := getISBNs(0)

		// cleanup
		b.Cleanup(func() {
			iter(func(isbn int) {
				err := rpcStockMgr.RemoveBooks([]int{isbn})
				if err != nil {
					log.Printf("(add) - error removing book: %v\n", err)
				}
			})
		})

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				book := testBook(getISBN(counter))
				timer.Time(func() {
					err := rpcStockMgr.AddBooks([]bookstore.StockBook{book})
					if err != nil && bookstore.CodeOf(err) != bookstore.RetCDuplicateISBN {
						log.Printf("(add) - error adding book: %v\n", err)
					}
				})
				counter++
			}
		})
	})

	results["add"] = addResult
	printResult("add", addResult, timers["add"])

	addCopiesResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("add-copies") {
			return
		}

		timer := gometrics.NewTimer()
		timers["add-copies"] = timer

		// prepare and seed isbns
		getISBN, iter := getISBNs(perfBookSpread)
		seedBooks(iter, "add-copies")

		// cleanup
		b.Cleanup(func() { cleanupBooks(iter, "add-copies") })

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				items := []bookstore.BookCopy{{ISBN: getISBN(counter), Copies: 1}}
				timer.Time(func() {
					err := rpcStockMgr.AddCopies(items)
					if err != nil {
						log.Printf("(add-copies) - error adding copies: %v\n", err)
					}
				})
				counter++
			}
		})
	})

	results["add-copies"] = addCopiesResult
	printResult("add-copies", addCopiesResult, timers["add-copies"])

	getResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("get") {
			return
		}

		timer := gometrics.NewTimer()
		timers["get"] = timer

		// prepare and seed isbns
		getISBN, iter := getISBNs(2 * perfBookSpread)
		seedBooks(iter, "get")

		// cleanup
		b.Cleanup(func() { cleanupBooks(iter, "get") })

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				isbns := []int{getISBN(counter)}
				timer.Time(func() {
					_, err := rpcStockMgr.GetBooksByISBN(isbns)
					if err != nil {
						log.Printf("(get) - error getting book: %v\n", err)
					}
				})
				counter++
			}
		})
	})

	results["get"] = getResult
	printResult("get", getResult, timers["get"])

	listResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("list") {
			return
		}

		timer := gometrics.NewTimer()
		timers["list"] = timer

		// prepare and seed isbns
		_, iter := getISBNs(3 * perfBookSpread)
		seedBooks(iter, "list")

		// cleanup
		b.Cleanup(func() { cleanupBooks(iter, "list") })

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			for pb.Next() {
				timer.Time(func() {
					_, err := rpcStockMgr.ListBooks()
					if err != nil {
						log.Printf("(list) - error listing books: %v\n", err)
					}
				})
			}
		})
	})

	results["list"] = listResult
	printResult("list", listResult, timers["list"])

	mixedUsageResult := testing.Benchmark(func(b *testing.B) {
		if shouldSkip("mixed") {
			return
		}

		timer := gometrics.NewTimer()
		timers["mixed"] = timer

		// prepare and seed isbns
		getISBN, iter := getISBNs(4 * perfBookSpread)
		seedBooks(iter, "mixed")

		// cleanup
		b.Cleanup(func() { cleanupBooks(iter, "mixed") })

		b.SetParallelism(perfNumThreads)

		b.ResetTimer()

		b.RunParallel(func(pb *testing.PB) {
			counter := 0
			for pb.Next() {
				isbn := getISBN(counter)
				timer.Time(func() {
					var err error
					switch counter % 4 {
					case 0: // restock
						err = rpcStockMgr.AddCopies([]bookstore.BookCopy{{ISBN: isbn, Copies: 1}})
					case 1: // read
						_, err = rpcStockMgr.GetBooksByISBN([]int{isbn})
					case 2: // flag
						err = rpcStockMgr.UpdateEditorPicks([]bookstore.EditorPick{{ISBN: isbn, Pick: counter%8 == 2}})
					case 3: // demand scan
						_, err = rpcStockMgr.GetBooksInDemand()
					}

					if err != nil {
						log.Printf("(mixed) - error performing operation (%d): %v\n", counter%4, err)
					}
				})
				counter++
			}
		})
	})

	results["mixed"] = mixedUsageResult
	printResult("mixed", mixedUsageResult, timers["mixed"])

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		fmt.Printf("\nExporting results to CSV: %s\n", csvPath)
		if err := writeResultsToCSV(csvPath, results, timers); err != nil {
			return fmt.Errorf("failed to export results to CSV: %v", err)
		}
		fmt.Println("Export complete")
	}

	return nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func shouldSkip(test string) bool {
	// Check if the test is in the skip list
	for _, skip := range perfSkip {
		if test == skip {
			return true
		}
	}
	return false
}

// testBook creates a stock entry for the given ISBN with plenty of copies
func testBook(isbn int) bookstore.StockBook {
	return bookstore.StockBook{
		Book: bookstore.Book{
			ISBN:   isbn,
			Title:  fmt.Sprintf("perf-book-%d", isbn),
			Author: "perf",
			Price:  9.99,
		},
		Copies: 1_000_000,
	}
}

// creates an array of test ISBNs and functions to work with them
func getISBNs(offset int) (func(int) int, func(func(int))) {
	isbns := make([]int, perfBookSpread)
	for i := 0; i < perfBookSpread; i++ {
		isbns[i] = perfISBNBase + offset + i
	}

	// Function to get an ISBN by index (with wraparound)
	getISBN := func(i int) int {
		return isbns[i%perfBookSpread]
	}

	// Function to iterate over all ISBNs and apply a function to each
	iterateISBNs := func(fn func(int)) {
		for _, isbn := range isbns {
			fn(isbn)
		}
	}

	return getISBN, iterateISBNs
}

// seedBooks adds a stock entry for every test ISBN
func seedBooks(iter func(func(int)), test string) {
	iter(func(isbn int) {
		err := rpcStockMgr.AddBooks([]bookstore.StockBook{testBook(isbn)})
		if err != nil && bookstore.CodeOf(err) != bookstore.RetCDuplicateISBN {
			log.Printf("(%s) - error seeding book: %v\n", test, err)
		}
	})
}

// cleanupBooks removes every test ISBN again
func cleanupBooks(iter func(func(int)), test string) {
	iter(func(isbn int) {
		err := rpcStockMgr.RemoveBooks([]int{isbn})
		if err != nil {
			log.Printf("(%s) - error removing book: %v\n", test, err)
		}
	})
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(test string, result testing.BenchmarkResult, timer gometrics.Timer) {
	if result.NsPerOp() == 0 {
		fmt.Printf("%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	// Print the formatted result
	fmt.Printf("%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)

	// Print latency percentiles
	if timer != nil && timer.Count() > 0 {
		ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
		fmt.Printf("%-20sp50=%s p95=%s p99=%s\n", "",
			time.Duration(ps[0]), time.Duration(ps[1]), time.Duration(ps[2]))
	}
}

// writeResultsToCSV writes benchmark results to a CSV file
func writeResultsToCSV(csvPath string, results map[string]testing.BenchmarkResult, timers map[string]gometrics.Timer) error {
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	config := util.GetClientConfig()

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "P50", "P95", "P99", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "ConnectionsPerEndpoint",
		"ServiceID", "Serializer", "Transport",
		"Threads", "Books Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %v", err)
	}

	// Write test results
	for test, result := range results {
		var nsPerOp float64
		var opsPerSec float64
		var skipped string
		ps := []float64{0, 0, 0}

		if result.NsPerOp() == 0 {
			skipped = "true"
			nsPerOp = 0
			opsPerSec = 0
		} else {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
			if timer := timers[test]; timer != nil && timer.Count() > 0 {
				ps = timer.Percentiles([]float64{0.5, 0.95, 0.99})
			}
		}

		row := []string{
			test,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			time.Duration(ps[0]).String(),
			time.Duration(ps[1]).String(),
			time.Duration(ps[2]).String(),
			skipped,
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			strconv.Itoa(config.ConnectionsPerEndpoint),
			strconv.FormatUint(util.GetServiceID(), 10),
			viper.GetString("serializer"),
			viper.GetString("transport"),
			strconv.Itoa(perfNumThreads),
			strconv.Itoa(perfBookSpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %v", test, err)
		}
	}

	return nil
}
