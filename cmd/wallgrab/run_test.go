package main

import (
	"bytes"
	"strings"
	"testing"

	"wallgrab/pkg/models"
)

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, models.Stats{
		Total:      5,
		Downloaded: 2,
		Filtered:   2,
		Failed:     1,
		Categories: map[string]int{"space": 1, "nature": 1},
	}, "walls")

	divider := strings.Repeat("=", 50)
	want := "\n" + divider + "\n" +
		"Download Summary\n" +
		divider + "\n" +
		"Total images processed: 5\n" +
		"Successfully downloaded: 2\n" +
		"Filtered out: 2\n" +
		"Failed: 1\n" +
		"\nCategories:\n" +
		"  nature: 1\n" +
		"  space: 1\n" +
		"\nImages saved to: walls/\n"

	if buf.String() != want {
		t.Errorf("unexpected summary:\n%q\nwant:\n%q", buf.String(), want)
	}
}

func TestPrintSummary_NoCategories(t *testing.T) {
	var buf bytes.Buffer
	printSummary(&buf, models.Stats{Total: 1, Failed: 1}, "out")

	got := buf.String()
	if strings.Contains(got, "Categories:") {
		t.Errorf("expected no category section, got:\n%s", got)
	}
	if !strings.Contains(got, "Failed: 1\n") {
		t.Errorf("missing failed counter:\n%s", got)
	}
}
