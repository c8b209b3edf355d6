package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// userPage mirrors the GET /user/:username response
type userPage struct {
	User struct {
		Username string        `json:"user_name"`
		Balance  json.Number   `json:"balance"`
		Items    []itemSummary `json:"items"`
	} `json:"user"`
	UsersItems []struct {
		Username string        `json:"user_name"`
		Items    []itemSummary `json:"items"`
	} `json:"usersItems"`
}

type itemSummary struct {
	ID int64 `json:"id"`
}

// errorBody mirrors the API error response
type errorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ledgerSnapshot is the part of the ledger the run checks before and after
type ledgerSnapshot struct {
	TotalCents int64
	Owners     map[int64][]string
	Usernames  []string
}

// TestResult contains metrics for a single request
type TestResult struct {
	Success      bool
	ResponseTime time.Duration
	StatusCode   int
	ErrorCode    int
	Error        error
}

// TestStats contains aggregated test statistics
type TestStats struct {
	TotalRequests      int
	SuccessfulRequests int
	RejectedRequests   int
	FailedRequests     int
	TotalTime          time.Duration
	ResponseTimes      []time.Duration
	ErrorCounts        map[string]int
	BuyerStats         map[string]int
	Lock               sync.Mutex
}

func main() {
	concurrency := flag.Int("c", 5, "Number of concurrent goroutines")
	totalRequests := flag.Int("n", 100, "Total number of purchase attempts")
	buyersFlag := flag.String("u", "", "Comma-separated buyers; the first one is used to read the storefront")
	allBuyers := flag.Bool("all", false, "Use every registered user as a buyer")
	baseURL := flag.String("url", "http://localhost:3000", "Base URL for the API")
	delayMs := flag.Int("delay", 0, "Delay between requests in milliseconds")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	buyers := splitNonEmpty(*buyersFlag)
	if len(buyers) == 0 {
		fmt.Println("Pass at least one known username with -u")
		os.Exit(2)
	}
	seedUser := buyers[0]

	before, err := snapshot(client, *baseURL, seedUser)
	if err != nil {
		fmt.Printf("Failed to read ledger before the run: %v\n", err)
		os.Exit(1)
	}

	if *allBuyers {
		buyers = before.Usernames
	}

	itemIDs := make([]int64, 0, len(before.Owners))
	for id := range before.Owners {
		itemIDs = append(itemIDs, id)
	}
	if len(itemIDs) == 0 {
		fmt.Println("Ledger has no items to buy")
		os.Exit(1)
	}

	fmt.Printf("Load testing purchases with %d buyers over %d items\n", len(buyers), len(itemIDs))
	fmt.Printf("Concurrency: %d goroutines, total requests: %d\n", *concurrency, *totalRequests)

	stats := &TestStats{
		TotalRequests: *totalRequests,
		ResponseTimes: make([]time.Duration, 0, *totalRequests),
		ErrorCounts:   make(map[string]int),
		BuyerStats:    make(map[string]int),
	}

	results := make(chan TestResult, *totalRequests)
	jobs := make(chan int, *totalRequests)

	startTime := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < *concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(client, *baseURL, *delayMs, buyers, itemIDs, jobs, results, stats)
		}()
	}

	for i := 0; i < *totalRequests; i++ {
		jobs <- i
	}
	close(jobs)

	collected := make(chan struct{})
	go func() {
		defer close(collected)
		for result := range results {
			stats.Lock.Lock()
			switch {
			case result.Success:
				stats.SuccessfulRequests++
			case result.StatusCode >= 400 && result.StatusCode < 500:
				stats.RejectedRequests++
				stats.ErrorCounts[fmt.Sprintf("%d (code %d)", result.StatusCode, result.ErrorCode)]++
			default:
				stats.FailedRequests++
				msg := "unknown"
				if result.Error != nil {
					msg = result.Error.Error()
				}
				stats.ErrorCounts[msg]++
			}
			stats.ResponseTimes = append(stats.ResponseTimes, result.ResponseTime)
			stats.Lock.Unlock()
		}
	}()

	wg.Wait()
	close(results)
	<-collected
	stats.TotalTime = time.Since(startTime)

	after, err := snapshot(client, *baseURL, seedUser)
	if err != nil {
		fmt.Printf("Failed to read ledger after the run: %v\n", err)
		os.Exit(1)
	}

	printResults(stats)
	if problems := compare(before, after); len(problems) > 0 {
		fmt.Println("\n❌ LEDGER CHECK FAILED")
		for _, p := range problems {
			fmt.Println("  -", p)
		}
		os.Exit(1)
	}
	fmt.Println("\n✅ Ledger check passed: money conserved and every item has one owner")
}

func worker(client *http.Client, baseURL string, delayMs int, buyers []string, itemIDs []int64,
	jobs <-chan int, results chan<- TestResult, stats *TestStats) {
	for range jobs {
		if delayMs > 0 {
			time.Sleep(time.Duration(delayMs) * time.Millisecond)
		}

		buyer := buyers[rand.Intn(len(buyers))]
		itemID := itemIDs[rand.Intn(len(itemIDs))]

		stats.Lock.Lock()
		stats.BuyerStats[buyer]++
		stats.Lock.Unlock()

		form := url.Values{
			"user_name": {buyer},
			"id":        {strconv.FormatInt(itemID, 10)},
		}

		start := time.Now()
		resp, err := client.PostForm(baseURL+"/buy", form)
		result := TestResult{ResponseTime: time.Since(start)}
		if err != nil {
			result.Error = err
			results <- result
			continue
		}

		result.StatusCode = resp.StatusCode
		result.Success = resp.StatusCode == http.StatusOK
		if !result.Success {
			var body errorBody
			if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr == nil {
				result.ErrorCode = body.Code
			}
			result.Error = fmt.Errorf("HTTP status code %d", resp.StatusCode)
		}
		_ = resp.Body.Close()

		results <- result
	}
}

// snapshot reads every user's balance and items through the storefront pages
func snapshot(client *http.Client, baseURL, seedUser string) (*ledgerSnapshot, error) {
	first, err := fetchPage(client, baseURL, seedUser)
	if err != nil {
		return nil, err
	}

	usernames := []string{first.User.Username}
	for _, other := range first.UsersItems {
		usernames = append(usernames, other.Username)
	}

	snap := &ledgerSnapshot{Owners: make(map[int64][]string), Usernames: usernames}
	for _, username := range usernames {
		page := first
		if username != seedUser {
			if page, err = fetchPage(client, baseURL, username); err != nil {
				return nil, err
			}
		}

		cents, err := toCents(page.User.Balance)
		if err != nil {
			return nil, fmt.Errorf("balance of %s: %w", username, err)
		}
		snap.TotalCents += cents
		for _, item := range page.User.Items {
			snap.Owners[item.ID] = append(snap.Owners[item.ID], username)
		}
	}
	return snap, nil
}

func fetchPage(client *http.Client, baseURL, username string) (*userPage, error) {
	resp, err := client.Get(baseURL + "/user/" + url.PathEscape(username))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET /user/%s: HTTP %d", username, resp.StatusCode)
	}

	var page userPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, err
	}
	return &page, nil
}

// toCents converts a two-decimal JSON number without going through float64
func toCents(n json.Number) (int64, error) {
	whole, frac, _ := strings.Cut(n.String(), ".")
	frac = (frac + "00")[:2]
	cents, err := strconv.ParseInt(whole+frac, 10, 64)
	if err != nil {
		return 0, errors.New("not a two-decimal amount: " + n.String())
	}
	return cents, nil
}

func compare(before, after *ledgerSnapshot) []string {
	var problems []string
	if before.TotalCents != after.TotalCents {
		problems = append(problems, fmt.Sprintf("total balance changed from %d to %d cents", before.TotalCents, after.TotalCents))
	}
	if len(before.Owners) != len(after.Owners) {
		problems = append(problems, fmt.Sprintf("item count changed from %d to %d", len(before.Owners), len(after.Owners)))
	}
	for id, owners := range after.Owners {
		if len(owners) != 1 {
			problems = append(problems, fmt.Sprintf("item %d owned by %v", id, owners))
		}
	}
	return problems
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func percentile(sorted []time.Duration, p int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	return sorted[len(sorted)*p/100]
}

func printResults(stats *TestStats) {
	tps := float64(stats.TotalRequests) / stats.TotalTime.Seconds()

	sorted := slices.Clone(stats.ResponseTimes)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	var avg time.Duration
	if len(sorted) > 0 {
		avg = total / time.Duration(len(sorted))
	}

	fmt.Println("\n================= TEST RESULTS =================")
	fmt.Printf("Total Requests:      %d\n", stats.TotalRequests)
	fmt.Printf("Purchases:           %d\n", stats.SuccessfulRequests)
	fmt.Printf("Rejected (4xx):      %d\n", stats.RejectedRequests)
	fmt.Printf("Failed:              %d\n", stats.FailedRequests)
	fmt.Printf("Total Test Time:     %.2f seconds\n", stats.TotalTime.Seconds())
	fmt.Printf("Throughput:          %.2f requests/s\n", tps)

	fmt.Println("\n----------------- RESPONSE TIMES -----------------")
	fmt.Printf("Average Response:    %v\n", avg)
	fmt.Printf("P50 Response:        %v\n", percentile(sorted, 50))
	fmt.Printf("P90 Response:        %v\n", percentile(sorted, 90))
	fmt.Printf("P99 Response:        %v\n", percentile(sorted, 99))

	fmt.Println("\n----------------- BUYER DISTRIBUTION -----------------")
	for buyer, count := range stats.BuyerStats {
		fmt.Printf("%-20s: %d requests\n", buyer, count)
	}

	if len(stats.ErrorCounts) > 0 {
		fmt.Println("\n----------------- OUTCOME DISTRIBUTION -----------------")
		for msg, count := range stats.ErrorCounts {
			fmt.Printf("%-40s: %d\n", msg, count)
		}
	}
}
