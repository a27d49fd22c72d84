package entities

import (
	"errors"
	"strings"
	"testing"
)

const validPayload = `{
	"client_name": "Jane Doe",
	"job_type": "Painting",
	"job_description": "Paint the living room",
	"items": [
		{"description": "  Paint  ", "quantity": 3, "unit_price": 19.99},
		{"description": "Labour", "quantity": "2", "unit_price": "45.50"}
	],
	"notes": "Pay by check",
	"extra": true
}`

func fieldSet(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Reason
	}
	return out
}

func TestParseEstimate_Valid(t *testing.T) {
	doc, err := ParseEstimate([]byte(validPayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.ClientName != "Jane Doe" || doc.JobType != "Painting" || doc.Notes != "Pay by check" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if len(doc.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(doc.Items))
	}
	if doc.Items[0].Description != "Paint" {
		t.Fatalf("expected trimmed description, got %q", doc.Items[0].Description)
	}
	if doc.Items[1].Quantity != 2 || doc.Items[1].UnitPrice.String() != "45.5" {
		t.Fatalf("unexpected second item: %+v", doc.Items[1])
	}
}

func TestParseEstimate_OptionalNotesAndEmptyItems(t *testing.T) {
	for _, payload := range []string{
		`{"client_name":"a","job_type":"b","job_description":"c","items":[]}`,
		`{"client_name":"a","job_type":"b","job_description":"c","items":[],"notes":null}`,
		`{"client_name":"a","job_type":"b","job_description":"c","items":[],"notes":""}`,
	} {
		doc, err := ParseEstimate([]byte(payload))
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", payload, err)
		}
		if doc.Notes != "" || len(doc.Items) != 0 {
			t.Fatalf("unexpected document: %+v", doc)
		}
	}
}

func TestParseEstimate_MissingRequiredFields(t *testing.T) {
	fields := fieldSet(t, func() error { _, err := ParseEstimate([]byte(`{"notes":"x"}`)); return err }())
	for _, key := range []string{"client_name", "job_type", "job_description", "items"} {
		if fields[key] != "is required" {
			t.Fatalf("expected %s to be reported as required, got %v", key, fields)
		}
	}
}

func TestParseEstimate_RejectsBadItemsWholesale(t *testing.T) {
	payload := `{
		"client_name": "a", "job_type": "b", "job_description": "c",
		"items": [
			{"description": "ok", "quantity": 1, "unit_price": 1},
			{"description": "   ", "quantity": 0, "unit_price": 0},
			{"description": "neg", "quantity": -2, "unit_price": -5.5},
			{"description": "frac", "quantity": 1.5, "unit_price": "abc"}
		]
	}`
	doc, err := ParseEstimate([]byte(payload))
	if doc.ClientName != "" || doc.Items != nil {
		t.Fatalf("expected zero document on failure, got %+v", doc)
	}
	fields := fieldSet(t, err)

	want := map[string]string{
		"items[1].description": "must not be empty",
		"items[1].quantity":    "must be greater than 0",
		"items[1].unit_price":  "must be greater than 0",
		"items[2].quantity":    "must be greater than 0",
		"items[2].unit_price":  "must be greater than 0",
		"items[3].quantity":    "must be an integer",
		"items[3].unit_price":  "must be a number",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Fatalf("field %s: expected %q, got %q (all: %v)", k, v, fields[k], fields)
		}
	}
	if len(fields) != len(want) {
		t.Fatalf("expected exactly %d errors, got %v", len(want), fields)
	}
}

func TestParseEstimate_WrongTypes(t *testing.T) {
	payload := `{"client_name": 1, "job_type": null, "job_description": "c", "items": {"a": 1}, "notes": 5}`
	_, err := ParseEstimate([]byte(payload))
	fields := fieldSet(t, err)
	want := map[string]string{
		"client_name": "must be a string",
		"job_type":    "must be a string",
		"items":       "must be an array",
		"notes":       "must be a string",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Fatalf("field %s: expected %q, got %q", k, v, fields[k])
		}
	}
}

func TestParseEstimate_NonObjectItemReportedOnce(t *testing.T) {
	payload := `{"client_name":"a","job_type":"b","job_description":"c","items":[42]}`
	_, err := ParseEstimate([]byte(payload))
	fields := fieldSet(t, err)
	if fields["items[0]"] != "must be an object" || len(fields) != 1 {
		t.Fatalf("unexpected errors: %v", fields)
	}
}

func TestParseEstimate_NotAnObject(t *testing.T) {
	for _, payload := range []string{"", "null", "[]", "not json", `"text"`} {
		_, err := ParseEstimate([]byte(payload))
		fields := fieldSet(t, err)
		if fields["body"] != "must be a JSON object" {
			t.Fatalf("payload %q: unexpected errors %v", payload, fields)
		}
	}
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{
		{Field: "client_name", Reason: "is required"},
		{Field: "items[0].quantity", Reason: "must be greater than 0"},
	}}
	msg := err.Error()
	if !strings.HasPrefix(msg, "invalid estimate: ") ||
		!strings.Contains(msg, "client_name is required") ||
		!strings.Contains(msg, "items[0].quantity must be greater than 0") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestParseEstimate_NumericRange(t *testing.T) {
	item := func(quantity, price string) []byte {
		return []byte(`{"client_name":"a","job_type":"b","job_description":"c",` +
			`"items":[{"description":"x","quantity":` + quantity + `,"unit_price":` + price + `}]}`)
	}

	t.Run("rejected", func(t *testing.T) {
		tests := []struct {
			name, quantity, price, field string
		}{
			{"huge price exponent", "1", `"1e50000000"`, "items[0].unit_price"},
			{"tiny price exponent", "1", `"1e-50000000"`, "items[0].unit_price"},
			{"price with 13 integer digits", "1", "1234567890123", "items[0].unit_price"},
			{"price with 11 decimals", "1", "1.00000000001", "items[0].unit_price"},
			{"huge quantity exponent", "1e50000000", "1", "items[0].quantity"},
			{"tiny quantity exponent", "1e-50000000", "1", "items[0].quantity"},
			{"quantity with 10 digits", "1234567890", "1", "items[0].quantity"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := ParseEstimate(item(tt.quantity, tt.price))
				fields := fieldSet(t, err)
				if fields[tt.field] != "is out of range" || len(fields) != 1 {
					t.Fatalf("unexpected errors %v", fields)
				}
			})
		}
	})

	t.Run("accepted at the limits", func(t *testing.T) {
		doc, err := ParseEstimate(item("999999999", `"999999999999.9999999999"`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Items[0].Quantity != 999999999 || doc.Items[0].UnitPrice.String() != "999999999999.9999999999" {
			t.Fatalf("unexpected item %+v", doc.Items[0])
		}
	})

	t.Run("scientific notation is fine in range", func(t *testing.T) {
		doc, err := ParseEstimate(item("3e0", "1.999e1"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if doc.Items[0].Quantity != 3 || doc.Items[0].UnitPrice.String() != "19.99" {
			t.Fatalf("unexpected item %+v", doc.Items[0])
		}
	})
}
