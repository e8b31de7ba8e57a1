package mail

import (
	"strings"
	"testing"
)

func TestFlattenHTML_BlockElementsBecomeLines(t *testing.T) {
	src := `<html><body><div>Address: 42 Palm Ave</div><div>Price: $500,000</div><p>Beds: 3</p></body></html>`

	text, err := FlattenHTML(src)
	if err != nil {
		t.Fatalf("FlattenHTML failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 3 {
		t.Fatalf("Expected 3 lines, got %d: %q", len(lines), text)
	}
	if lines[0] != "Address: 42 Palm Ave" || lines[2] != "Beds: 3" {
		t.Errorf("Unexpected line content: %q", text)
	}
}

func TestFlattenHTML_BreaksBecomeLines(t *testing.T) {
	src := `<div>Address: 1 Main St<br>Price: 900000</div>`

	text, err := FlattenHTML(src)
	if err != nil {
		t.Fatalf("FlattenHTML failed: %v", err)
	}

	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d: %q", len(lines), text)
	}
	if lines[1] != "Price: 900000" {
		t.Errorf("Expected second line 'Price: 900000', got %q", lines[1])
	}
}

func TestFlattenHTML_NestedContainersNotDuplicated(t *testing.T) {
	src := `<div><div>Address: 1 Main St</div><div>City: Davie</div></div>`

	text, err := FlattenHTML(src)
	if err != nil {
		t.Fatalf("FlattenHTML failed: %v", err)
	}

	if strings.Count(text, "1 Main St") != 1 {
		t.Errorf("Container text duplicated: %q", text)
	}
}

func TestFlattenHTML_PlainTextFallback(t *testing.T) {
	text, err := FlattenHTML("just a line of text")
	if err != nil {
		t.Fatalf("FlattenHTML failed: %v", err)
	}
	if text != "just a line of text" {
		t.Errorf("Expected passthrough text, got %q", text)
	}
}
