package types

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestExtractedPageJSONDate(t *testing.T) {
	page := NewExtractedPage("https://example.com/a")

	data, err := json.Marshal(page)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.Contains(string(data), `"date"`) {
		t.Errorf("Expected zero date to be omitted, got %s", data)
	}

	page.Date = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	data, err = json.Marshal(page)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"date":"2024-03-01T00:00:00Z"`) {
		t.Errorf("Expected date to be encoded, got %s", data)
	}
}
