package csvutil_test

import (
	"strings"
	"testing"

	"github.com/dalemusser/eduhub/internal/app/features/importer/csvutil"
)

func TestParseStudentsCSV_WithHeader(t *testing.T) {
	csv := "displayName,email,studentNumber,notes\n" +
		"Ada Lovelace,ada@example.com,S-1001,first cohort\n" +
		"Alan Turing,alan@example.com,S-1002,\n"

	items, err := csvutil.ParseStudentsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStudentsCSV failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0]["displayName"] != "Ada Lovelace" || items[0]["email"] != "ada@example.com" {
		t.Errorf("unexpected first item: %v", items[0])
	}
	if items[0]["studentNumber"] != "S-1001" || items[0]["notes"] != "first cohort" {
		t.Errorf("unexpected optional fields: %v", items[0])
	}
}

func TestParseStudentsCSV_NoHeaderWithBOM(t *testing.T) {
	csv := "\ufeffAda Lovelace,ada@example.com\n"

	items, err := csvutil.ParseStudentsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStudentsCSV failed: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0]["displayName"] != "Ada Lovelace" {
		t.Errorf("BOM not stripped: %v", items[0]["displayName"])
	}
	if items[0]["studentNumber"] != "" || items[0]["notes"] != "" {
		t.Errorf("short row should leave optional fields empty: %v", items[0])
	}
}

func TestParseStudentsCSV_SkipsEmptyRows(t *testing.T) {
	csv := "Ada,ada@example.com\n,,\n\nAlan,alan@example.com\n"

	items, err := csvutil.ParseStudentsCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseStudentsCSV failed: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
}

func TestParseStudentsCSV_EmptyFile(t *testing.T) {
	items, err := csvutil.ParseStudentsCSV(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseStudentsCSV failed: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %d", len(items))
	}
}

func TestParseStudentsCSV_SyntaxError(t *testing.T) {
	csv := "Ada,\"unterminated\n"

	_, err := csvutil.ParseStudentsCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for malformed CSV")
	}
}
