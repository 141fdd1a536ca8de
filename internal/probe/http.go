package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPClient wraps http.Client with timeout.
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body.
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// postJSON posts body and decodes the JSON response into out.
func (c *HTTPClient) postJSON(ctx context.Context, url string, body, out interface{}) (int, error) {
	resp, err := c.Post(ctx, url, body)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// getJSON issues a GET and decodes the JSON response into out.
func (c *HTTPClient) getJSON(ctx context.Context, url string, out interface{}) (int, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(data))
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// submitProfiles posts every profile to /match and /recommend with a
// worker pool and records per-call outcomes.
func submitProfiles(ctx context.Context, config *Config, profiles []Profile, stats *Stats) ([]RecommendResponse, error) {
	log.Printf("📤 Submitting %d profiles with %d workers...", len(profiles), config.Workers)

	client := newHTTPClient(config.Timeout)
	matchURL := config.BaseURL + "/match"
	recommendURL := config.BaseURL + "/recommend"

	var (
		submitted  int64
		successful int64
		failed     int64
	)

	results := make([]RecommendResponse, len(profiles))
	jobChan := make(chan int, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				select {
				case <-ctx.Done():
					return
				default:
				}

				profile := profiles[idx]
				atomic.AddInt64(&submitted, 1)

				var matchResp MatchResponse
				if _, err := client.postJSON(ctx, matchURL, MatchRequest{Skills: profile.Skills}, &matchResp); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("⚠️  match failed for %s: %v", profile.Name, err)
					}
					continue
				}

				var recResp RecommendResponse
				if _, err := client.postJSON(ctx, recommendURL, profile, &recResp); err != nil {
					atomic.AddInt64(&failed, 1)
					if config.Verbose {
						log.Printf("⚠️  recommend failed for %s: %v", profile.Name, err)
					}
					continue
				}

				results[idx] = recResp
				atomic.AddInt64(&successful, 1)
			}
		}()
	}

	go func() {
		defer close(jobChan)
		for i := range profiles {
			select {
			case <-ctx.Done():
				return
			case jobChan <- i:
			}
		}
	}()

	wg.Wait()

	stats.MatchesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.MatchesSuccessful = int(atomic.LoadInt64(&successful))
	stats.MatchesFailed = int(atomic.LoadInt64(&failed))
	stats.RecommendsReturned = int(atomic.LoadInt64(&successful))

	log.Printf(`✅ Profile submission completed:
   Successful: %d
   Failed: %d
`, stats.MatchesSuccessful, stats.MatchesFailed)

	return results, nil
}
