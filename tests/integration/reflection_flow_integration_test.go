//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("SIGHTSHARE_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:8080"
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestReflectionFlow(t *testing.T) {
	client := &http.Client{Timeout: 30 * time.Second}
	base := baseURL()

	// start from a clean slate
	if code := doJSON(t, client, http.MethodDelete, base+"/api/reflections", nil, nil); code != http.StatusOK {
		t.Fatalf("clear failed with %d", code)
	}

	submission := map[string]any{
		"rating":             5,
		"organization":       "Sightshare",
		"volunteer_date":     "2024-01-15",
		"student_type":       "college",
		"first_time":         "no",
		"duration":           "2-4",
		"communication_ease": "strongly-yes",
		"tasks":              []string{"companionship", "technology-support"},
		"experience":         "A rewarding afternoon, learned a lot.",
		"suggestions":        "More orientation material.",
	}
	var submitResp struct {
		Reflection struct {
			ID string `json:"id"`
		} `json:"reflection"`
		Suggestions []struct {
			Title string `json:"title"`
		} `json:"suggestions"`
	}
	if code := doJSON(t, client, http.MethodPost, base+"/api/reflections", submission, &submitResp); code != http.StatusOK {
		t.Fatalf("submit failed with %d", code)
	}
	if submitResp.Reflection.ID == "" {
		t.Fatalf("submission did not return an id")
	}
	if n := len(submitResp.Suggestions); n == 0 || submitResp.Suggestions[n-1].Title != "Best Practices for Future Volunteering" {
		t.Fatalf("unexpected suggestions: %+v", submitResp.Suggestions)
	}

	var listResp struct {
		Total int `json:"total"`
	}
	if code := doJSON(t, client, http.MethodGet, base+"/api/reflections", nil, &listResp); code != http.StatusOK {
		t.Fatalf("list failed with %d", code)
	}
	if listResp.Total != 1 {
		t.Fatalf("expected 1 reflection, got %d", listResp.Total)
	}

	var summaryResp struct {
		Stats struct {
			Total      int     `json:"total"`
			TotalHours float64 `json:"total_hours"`
		} `json:"stats"`
		Narrative string `json:"narrative"`
	}
	if code := doJSON(t, client, http.MethodGet, base+"/api/summary", nil, &summaryResp); code != http.StatusOK {
		t.Fatalf("summary failed with %d", code)
	}
	if summaryResp.Stats.Total != 1 || summaryResp.Stats.TotalHours != 3 {
		t.Fatalf("unexpected stats: %+v", summaryResp.Stats)
	}
	if strings.TrimSpace(summaryResp.Narrative) == "" {
		t.Fatalf("summary narrative must never be empty")
	}

	var chatResp struct {
		Reply string `json:"reply"`
	}
	if code := doJSON(t, client, http.MethodPost, base+"/api/chat", map[string]string{"message": "is the survey anonymous?"}, &chatResp); code != http.StatusOK {
		t.Fatalf("chat failed with %d", code)
	}
	if strings.TrimSpace(chatResp.Reply) == "" {
		t.Fatalf("chat reply must never be empty")
	}

	if code := doJSON(t, client, http.MethodDelete, base+"/api/reflections", nil, nil); code != http.StatusOK {
		t.Fatalf("final clear failed with %d", code)
	}
	if code := doJSON(t, client, http.MethodGet, base+"/api/summary", nil, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 summary after clear, got %d", code)
	}
}
