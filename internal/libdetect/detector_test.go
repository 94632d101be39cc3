package libdetect

import (
	"strings"
	"testing"
)

func TestDetectBootstrap(t *testing.T) {
	markup := `<nav class="navbar navbar-expand-lg"><button class="btn btn-primary">Go</button></nav>`
	resources := New().Detect(markup)

	var urls []string
	for _, r := range resources {
		urls = append(urls, r.URL)
	}
	if len(urls) != 2 {
		t.Fatalf("got %d resources, want 2: %v", len(urls), urls)
	}
	if !strings.Contains(urls[0], "bootstrap") || !strings.Contains(urls[1], "bootstrap") {
		t.Errorf("urls = %v", urls)
	}
	if resources[0].Placement != PlacementHead {
		t.Errorf("css placement = %q, want head", resources[0].Placement)
	}
	if resources[1].Placement != PlacementBodyClose {
		t.Errorf("js placement = %q, want body-close", resources[1].Placement)
	}
}

func TestDetectDedup(t *testing.T) {
	// The trigger appears three times; each resource must be emitted
	// exactly once.
	markup := strings.Repeat(`<div class="container-fluid"></div>`, 3)
	resources := New().Detect(markup)

	seen := make(map[string]int)
	for _, r := range resources {
		seen[r.URL]++
	}
	for url, n := range seen {
		if n != 1 {
			t.Errorf("%s emitted %d times, want 1", url, n)
		}
	}
	if len(resources) != 2 {
		t.Errorf("got %d resources, want 2", len(resources))
	}
}

func TestDetectMultipleRules(t *testing.T) {
	markup := `<i class="fa-solid fa-star"></i><canvas id="c"></canvas><script>new Chart(ctx, {});</script>`
	resources := New().Detect(markup)

	wantSubstrings := []string{"font-awesome", "chart.js"}
	for _, want := range wantSubstrings {
		found := false
		for _, r := range resources {
			if strings.Contains(r.URL, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("no resource matching %q in %v", want, resources)
		}
	}
}

func TestDetectNothing(t *testing.T) {
	resources := New().Detect(`<html><body><p>plain page</p></body></html>`)
	if len(resources) != 0 {
		t.Errorf("got %d resources, want 0: %v", len(resources), resources)
	}
}

func TestDetectFirstRuleWinsOnCollision(t *testing.T) {
	rules := []Rule{
		{Name: "a", Signatures: []string{"trigger"}, Resources: []Resource{{URL: "https://example.com/lib.js", Tag: TagScript, Placement: PlacementHead}}},
		{Name: "b", Signatures: []string{"trigger"}, Resources: []Resource{{URL: "https://example.com/lib.js", Tag: TagScript, Placement: PlacementBodyClose}}},
	}
	resources := NewWithRules(rules).Detect("has trigger in it")
	if len(resources) != 1 {
		t.Fatalf("got %d resources, want 1", len(resources))
	}
	if resources[0].Placement != PlacementHead {
		t.Error("first registered rule should win")
	}
}

func TestResourceHTML(t *testing.T) {
	tests := []struct {
		res  Resource
		want string
	}{
		{
			Resource{URL: "https://x/y.css", Tag: TagLink},
			`<link rel="stylesheet" href="https://x/y.css">`,
		},
		{
			Resource{URL: "https://x/y.js", Tag: TagScript, Attrs: "defer"},
			`<script src="https://x/y.js" defer></script>`,
		},
		{
			Resource{URL: "https://fonts.gstatic.com", Tag: TagLink, Attrs: `rel="preconnect" crossorigin`},
			`<link href="https://fonts.gstatic.com" rel="preconnect" crossorigin>`,
		},
	}
	for _, tt := range tests {
		if got := tt.res.HTML(); got != tt.want {
			t.Errorf("HTML() = %q, want %q", got, tt.want)
		}
	}
}
