// Loadtest is a concurrent HTTP load generator for the premium estimator. It
// sends prediction requests to POST /predict and reports throughput, status
// distribution and latency percentiles.
//
// Usage:
//
//	go run loadtest.go -url http://localhost:5000/predict -concurrency 10 -requests 1000
//	go run loadtest.go -concurrency 50 -requests 5000 -mix -csv results.csv -out summary.json
//
// With -mix every request carries a different combination of age, bmi,
// smoker flag, region, children and gender; otherwise -body is sent as is.
package main

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

var (
	regions = []string{"northeast", "northwest", "southeast", "southwest"}
	genders = []string{"male", "female"}
)

type predictionRequest struct {
	Age      int     `json:"age"`
	BMI      float64 `json:"bmi"`
	IsSmoker bool    `json:"isSmoker"`
	Region   string  `json:"region"`
	Children int     `json:"children"`
	Gender   string  `json:"gender"`
}

// mixedBody derives a deterministic request from idx so runs are repeatable.
func mixedBody(idx int) []byte {
	req := predictionRequest{
		Age:      18 + idx%47,
		BMI:      18.5 + float64(idx%25),
		IsSmoker: idx%5 == 0,
		Region:   regions[idx%len(regions)],
		Children: idx % 6,
		Gender:   genders[(idx/len(regions))%len(genders)],
	}
	b, _ := json.Marshal(req)
	return b
}

type statusStats struct {
	Count     int32
	Latencies []time.Duration
}

func percentiles(sorted []time.Duration) (p50, p90, p95, p99 time.Duration) {
	if len(sorted) == 0 {
		return
	}
	pick := func(p float64) time.Duration {
		return sorted[int(float64(len(sorted)-1)*p)]
	}
	return pick(0.50), pick(0.90), pick(0.95), pick(0.99)
}

func main() {
	var (
		url         = flag.String("url", "http://localhost:5000/predict", "Target URL")
		concurrency = flag.Int("concurrency", 10, "Number of concurrent workers")
		requests    = flag.Int("requests", 100, "Total number of requests to send")
		body        = flag.String("body", `{"age":30,"bmi":25.5,"isSmoker":"true","region":"northeast","children":2,"gender":"female"}`, "Request body")
		mix         = flag.Bool("mix", false, "Vary the request body per request")
		timeoutSec  = flag.Int("timeout", 10, "Per-request timeout in seconds")
	)

	outJSON := flag.String("out", "", "Write JSON summary to this file (optional)")
	outCSV := flag.String("csv", "", "Write per-request CSV to this file (optional)")
	verbose := flag.Bool("v", false, "Verbose per-request logging to stdout")
	flag.Parse()

	client := &http.Client{Timeout: time.Duration(*timeoutSec) * time.Second}

	jobs := make(chan int)
	var wg sync.WaitGroup

	var total, success, failure int32

	byStatus := make(map[int]*statusStats)
	var statusMu sync.Mutex

	var allLatencies []time.Duration
	var latMu sync.Mutex

	var csvFile *os.File
	var csvWriter *csv.Writer
	var csvMu sync.Mutex
	if *outCSV != "" {
		f, err := os.Create(*outCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create csv file: %v\n", err)
			os.Exit(1)
		}
		csvFile = f
		csvWriter = csv.NewWriter(f)
		csvWriter.Write([]string{"idx", "timestamp", "status", "duration_ms", "response"})
	}

	testStart := time.Now()

	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for idx := range jobs {
				atomic.AddInt32(&total, 1)

				payload := []byte(*body)
				if *mix {
					payload = mixedBody(idx)
				}

				start := time.Now()
				resp, err := client.Post(*url, "application/json", bytes.NewReader(payload))
				dur := time.Since(start)

				latMu.Lock()
				allLatencies = append(allLatencies, dur)
				latMu.Unlock()

				if err != nil {
					atomic.AddInt32(&failure, 1)
					if *verbose {
						fmt.Printf("[%d] idx=%d error=%v\n", workerID, idx, err)
					}
					continue
				}

				respBody, _ := io.ReadAll(resp.Body)
				resp.Body.Close()

				if resp.StatusCode == http.StatusOK {
					atomic.AddInt32(&success, 1)
				} else {
					atomic.AddInt32(&failure, 1)
				}

				statusMu.Lock()
				st, ok := byStatus[resp.StatusCode]
				if !ok {
					st = &statusStats{}
					byStatus[resp.StatusCode] = st
				}
				st.Count++
				st.Latencies = append(st.Latencies, dur)
				statusMu.Unlock()

				if csvWriter != nil {
					csvMu.Lock()
					csvWriter.Write([]string{
						fmt.Sprintf("%d", idx),
						time.Now().Format(time.RFC3339Nano),
						fmt.Sprintf("%d", resp.StatusCode),
						fmt.Sprintf("%.3f", float64(dur.Microseconds())/1000.0),
						string(bytes.TrimSpace(respBody)),
					})
					csvMu.Unlock()
				}

				if *verbose {
					fmt.Printf("[%d] idx=%d status=%d dur=%v body=%s\n", workerID, idx, resp.StatusCode, dur, bytes.TrimSpace(respBody))
				}
			}
		}(i)
	}

	go func() {
		for i := 0; i < *requests; i++ {
			jobs <- i
		}
		close(jobs)
	}()

	wg.Wait()
	totalDuration := time.Since(testStart)

	if csvWriter != nil {
		csvWriter.Flush()
		csvFile.Close()
	}

	throughput := float64(total) / totalDuration.Seconds()

	fmt.Println("--- Load Test Summary ---")
	fmt.Printf("Target: %s\n", *url)
	fmt.Printf("Requests: %d  Concurrency: %d  Mixed bodies: %v\n", *requests, *concurrency, *mix)
	fmt.Printf("Total sent: %d  Success: %d  Failure: %d\n", total, success, failure)
	fmt.Printf("Duration: %v  Throughput: %.2f req/s\n", totalDuration, throughput)

	type statusSummary struct {
		Count int32   `json:"count"`
		P50   float64 `json:"p50_ms"`
		P90   float64 `json:"p90_ms"`
		P95   float64 `json:"p95_ms"`
		P99   float64 `json:"p99_ms"`
	}
	summaries := make(map[int]statusSummary)

	fmt.Println("\nStatus codes:")
	var codes []int
	for code := range byStatus {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		st := byStatus[code]
		sort.Slice(st.Latencies, func(i, j int) bool { return st.Latencies[i] < st.Latencies[j] })
		p50, p90, p95, p99 := percentiles(st.Latencies)

		fmt.Printf("  %d -> %d  p50=%v p90=%v p95=%v p99=%v\n", code, st.Count, p50, p90, p95, p99)
		summaries[code] = statusSummary{
			Count: st.Count,
			P50:   float64(p50.Microseconds()) / 1000.0,
			P90:   float64(p90.Microseconds()) / 1000.0,
			P95:   float64(p95.Microseconds()) / 1000.0,
			P99:   float64(p99.Microseconds()) / 1000.0,
		}
	}

	if len(allLatencies) > 0 {
		sort.Slice(allLatencies, func(i, j int) bool { return allLatencies[i] < allLatencies[j] })
		var sum time.Duration
		for _, d := range allLatencies {
			sum += d
		}
		p50, p90, p95, p99 := percentiles(allLatencies)
		fmt.Println("\nOverall latencies:")
		fmt.Printf("  samples=%d min=%v avg=%v max=%v p50=%v p90=%v p95=%v p99=%v\n",
			len(allLatencies), allLatencies[0], sum/time.Duration(len(allLatencies)), allLatencies[len(allLatencies)-1],
			p50, p90, p95, p99)
	}

	fmt.Printf("\nGOMAXPROCS=%d  NumGoroutine=%d\n", runtime.GOMAXPROCS(0), runtime.NumGoroutine())

	if *outJSON != "" {
		report := map[string]interface{}{
			"target":         *url,
			"requests":       *requests,
			"concurrency":    *concurrency,
			"mixed":          *mix,
			"total_sent":     total,
			"success":        success,
			"failure":        failure,
			"duration_ms":    totalDuration.Milliseconds(),
			"throughput_rps": throughput,
			"status_codes":   summaries,
		}

		f, err := os.Create(*outJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create json file: %v\n", err)
			os.Exit(1)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.Encode(report)
		f.Close()
		fmt.Printf("\nWrote JSON summary to %s\n", *outJSON)
	}

	if failure > 0 {
		os.Exit(2)
	}
}
