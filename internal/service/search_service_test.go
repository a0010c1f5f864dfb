package service

import (
	"strings"
	"testing"
)

const ddgResultsPage = `<html><body>
<div class="result web-result">
  <h2 class="result__title">
    <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fjobs%2F1&amp;rut=abc">Senior Go Engineer - Acme Corp</a>
  </h2>
  <a class="result__snippet" href="#">Build backend services in Go.</a>
</div>
<div class="result web-result">
  <h2 class="result__title">
    <a class="result__a" href="https://jobs.example.org/2">Backend Developer - Globex</a>
  </h2>
  <a class="result__snippet" href="#">Work on distributed systems.</a>
</div>
<div class="result web-result">
  <h2 class="result__title">
    <a class="result__a" href="/relative/no-scheme">Skipped Result</a>
  </h2>
</div>
</body></html>`

func TestParseSearchHTML(t *testing.T) {
	results, err := parseSearchHTML(strings.NewReader(ddgResultsPage), 10)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (relative link skipped)", len(results))
	}
	if results[0].Title != "Senior Go Engineer - Acme Corp" {
		t.Errorf("title = %q", results[0].Title)
	}
	if results[0].URL != "https://example.com/jobs/1" {
		t.Errorf("url = %q, redirect not unwrapped", results[0].URL)
	}
	if results[0].Snippet != "Build backend services in Go." {
		t.Errorf("snippet = %q", results[0].Snippet)
	}
	if results[1].URL != "https://jobs.example.org/2" {
		t.Errorf("url = %q", results[1].URL)
	}
}

func TestParseSearchHTMLLimit(t *testing.T) {
	results, err := parseSearchHTML(strings.NewReader(ddgResultsPage), 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("results = %d, want 1", len(results))
	}
}

func TestUnwrapRedirect(t *testing.T) {
	tests := []struct {
		href string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fjob&rut=xyz", "https://example.com/job"},
		{"https://example.com/direct", "https://example.com/direct"},
		{"/html/?q=next", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := unwrapRedirect(tt.href); got != tt.want {
			t.Errorf("unwrapRedirect(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
