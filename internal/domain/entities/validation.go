package entities

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError describes one offending field of an estimate payload.
// Field uses the JSON path of the input, e.g. "items[2].quantity".
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError enumerates every problem found in an estimate payload.
// It is user-correctable: callers map it to a "bad input" response.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Reason)
	}
	return "invalid estimate: " + strings.Join(parts, "; ")
}

// Numeric inputs are bounded by digit count before any comparison, since
// decimal comparison rescales and "1e50000000" would expand to 50M digits.
const (
	maxQuantityDigits = 9
	maxPriceDigits    = 12
	maxPriceScale     = 10
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Compare decimals by sign so "gt=0" stays exact.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// ParseEstimate decodes and validates a raw JSON estimate.
//
// It either returns a complete EstimateDocument or a *ValidationError listing
// every offending field; a partially valid payload is rejected as a whole.
// Unknown keys are ignored.
func ParseEstimate(raw []byte) (EstimateDocument, error) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil || obj == nil {
		return EstimateDocument{}, &ValidationError{Fields: []FieldError{{Field: "body", Reason: "must be a JSON object"}}}
	}

	p := &payloadParser{reported: map[string]bool{}}
	doc := EstimateDocument{
		ClientName:     p.requiredString(obj, "client_name", "client_name"),
		JobType:        p.requiredString(obj, "job_type", "job_type"),
		JobDescription: p.requiredString(obj, "job_description", "job_description"),
		Items:          p.items(obj),
		Notes:          p.optionalString(obj, "notes", "notes"),
	}
	p.checkRules(doc)

	if len(p.errs) > 0 {
		return EstimateDocument{}, &ValidationError{Fields: p.errs}
	}
	return doc, nil
}

type payloadParser struct {
	errs     []FieldError
	reported map[string]bool
}

func (p *payloadParser) add(path, reason string) {
	p.errs = append(p.errs, FieldError{Field: path, Reason: reason})
	p.reported[path] = true
}

// seen reports whether path or one of its parents already has an error.
func (p *payloadParser) seen(path string) bool {
	for reported := range p.reported {
		if path == reported || strings.HasPrefix(path, reported+".") {
			return true
		}
	}
	return false
}

func (p *payloadParser) requiredString(obj map[string]json.RawMessage, key, path string) string {
	raw, ok := obj[key]
	if !ok {
		p.add(path, "is required")
		return ""
	}
	var s string
	if isNull(raw) || json.Unmarshal(raw, &s) != nil {
		p.add(path, "must be a string")
		return ""
	}
	return s
}

func (p *payloadParser) optionalString(obj map[string]json.RawMessage, key, path string) string {
	raw, ok := obj[key]
	if !ok || isNull(raw) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		p.add(path, "must be a string")
		return ""
	}
	return s
}

func (p *payloadParser) items(obj map[string]json.RawMessage) []LineItem {
	raw, ok := obj["items"]
	if !ok {
		p.add("items", "is required")
		return nil
	}
	var list []json.RawMessage
	if isNull(raw) || json.Unmarshal(raw, &list) != nil {
		p.add("items", "must be an array")
		return nil
	}

	items := make([]LineItem, 0, len(list))
	for i, rawItem := range list {
		path := fmt.Sprintf("items[%d]", i)
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(rawItem, &fields); err != nil || fields == nil {
			p.add(path, "must be an object")
			items = append(items, LineItem{})
			continue
		}
		items = append(items, LineItem{
			Description: strings.TrimSpace(p.requiredString(fields, "description", path+".description")),
			Quantity:    p.quantity(fields, path+".quantity"),
			UnitPrice:   p.unitPrice(fields, path+".unit_price"),
		})
	}
	return items
}

func (p *payloadParser) quantity(fields map[string]json.RawMessage, path string) int {
	raw, ok := fields["quantity"]
	if !ok {
		p.add(path, "is required")
		return 0
	}
	var n json.Number
	if isNull(raw) || json.Unmarshal(raw, &n) != nil {
		p.add(path, "must be an integer")
		return 0
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		p.add(path, "must be an integer")
		return 0
	}
	if !withinDigits(d, maxQuantityDigits, maxPriceScale) {
		p.add(path, "is out of range")
		return 0
	}
	if !d.IsInteger() {
		p.add(path, "must be an integer")
		return 0
	}
	return int(d.IntPart())
}

func (p *payloadParser) unitPrice(fields map[string]json.RawMessage, path string) decimal.Decimal {
	raw, ok := fields["unit_price"]
	if !ok {
		p.add(path, "is required")
		return decimal.Zero
	}
	var d decimal.Decimal
	if isNull(raw) || d.UnmarshalJSON(raw) != nil {
		p.add(path, "must be a number")
		return decimal.Zero
	}
	if !withinDigits(d, maxPriceDigits, maxPriceScale) {
		p.add(path, "is out of range")
		return decimal.Zero
	}
	return d
}

// withinDigits reports whether d has at most intDigits digits before the
// decimal point and at most scale digits after it. It only inspects the
// coefficient and exponent, so it is cheap for any input.
func withinDigits(d decimal.Decimal, intDigits, scale int) bool {
	exp := int(d.Exponent())
	if exp < -scale {
		return false
	}
	return d.NumDigits()+exp <= intDigits
}

// checkRules applies the struct-tag rules to fields that decoded cleanly.
func (p *payloadParser) checkRules(doc EstimateDocument) {
	err := validate.Struct(doc)
	if err == nil {
		return
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		p.add("body", err.Error())
		return
	}
	for _, fe := range verrs {
		path := fe.Namespace()
		if i := strings.Index(path, "."); i >= 0 {
			path = path[i+1:]
		}
		if p.seen(path) {
			continue
		}
		p.add(path, ruleReason(fe))
	}
}

func ruleReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "must not be empty"
	case "gt":
		return "must be greater than " + fe.Param()
	default:
		return "is invalid"
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
