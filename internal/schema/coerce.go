package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jenny-yujl/marketingTrain/internal/models"
)

// JSON kinds used in FieldError.Received / Expected.
const (
	kindUndefined = "undefined"
	kindNull      = "null"
	kindString    = "string"
	kindNumber    = "number"
	kindBoolean   = "boolean"
	kindArray     = "array"
	kindObject    = "object"
	kindDecimal   = "decimal"
	kindInteger   = "integer"
	kindDate      = "date"
)

// Timestamp layouts accepted for startTime/endTime, tried in order. Layouts
// without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func kindOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return kindUndefined
	}
	switch raw[0] {
	case '"':
		return kindString
	case '{':
		return kindObject
	case '[':
		return kindArray
	case 't', 'f':
		return kindBoolean
	case 'n':
		return kindNull
	default:
		return kindNumber
	}
}

// decoder reads fields out of one JSON object, coercing as it goes and
// collecting every problem instead of stopping at the first.
type decoder struct {
	obj     map[string]json.RawMessage
	partial bool
	errs    []FieldError
}

func newDecoder(body []byte, partial bool) (*decoder, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || !json.Valid(body) {
		return nil, ErrInvalidJSON
	}
	if k := kindOf(body); k != kindObject {
		return nil, &ValidationError{Errors: []FieldError{{
			Message:  fmt.Sprintf("Expected object, received %s", k),
			Received: k,
			Expected: kindObject,
		}}}
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return &decoder{obj: obj, partial: partial}, nil
}

func (d *decoder) err() error {
	if len(d.errs) == 0 {
		return nil
	}
	return &ValidationError{Errors: d.errs}
}

func (d *decoder) fail(path, msg, received, expected string) {
	d.errs = append(d.errs, FieldError{Path: path, Message: msg, Received: received, Expected: expected})
}

func (d *decoder) typeMismatch(path string, raw json.RawMessage, expected string) {
	got := kindOf(raw)
	d.fail(path, fmt.Sprintf("Expected %s, received %s", expected, got), got, expected)
}

// field returns the raw value and whether the key exists. Missing required
// fields are reported here unless the decoder is partial.
func (d *decoder) field(name string, required bool, expected string) (json.RawMessage, bool) {
	raw, ok := d.obj[name]
	if !ok {
		if required && !d.partial {
			d.fail(name, "Required", kindUndefined, expected)
		}
		return nil, false
	}
	return raw, true
}

func (d *decoder) str(name string, required bool) *string {
	raw, ok := d.field(name, required, kindString)
	if !ok {
		return nil
	}
	if kindOf(raw) == kindNull && !required {
		return nil
	}
	var s string
	if kindOf(raw) != kindString || json.Unmarshal(raw, &s) != nil {
		d.typeMismatch(name, raw, kindString)
		return nil
	}
	return &s
}

// unwrapEncoded turns a JSON string holding an encoded array back into the
// array itself. ok is false when raw is a string that does not decode.
func unwrapEncoded(raw json.RawMessage) (json.RawMessage, bool) {
	if kindOf(raw) != kindString {
		return raw, true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return raw, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return json.RawMessage("[]"), true
	}
	inner := json.RawMessage(s)
	if !json.Valid(inner) || kindOf(inner) != kindArray {
		return raw, false
	}
	return inner, true
}

func (d *decoder) elements(name string, raw json.RawMessage) ([]json.RawMessage, bool) {
	inner, ok := unwrapEncoded(raw)
	if !ok || kindOf(inner) != kindArray {
		d.typeMismatch(name, raw, kindArray)
		return nil, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(inner, &elems); err != nil {
		d.typeMismatch(name, raw, kindArray)
		return nil, false
	}
	return elems, true
}

// strList accepts ["a","b"], "[\"a\",\"b\"]" or "". null counts as absent.
func (d *decoder) strList(name string) *[]string {
	raw, ok := d.field(name, false, kindArray)
	if !ok || kindOf(raw) == kindNull {
		return nil
	}
	elems, ok := d.elements(name, raw)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(elems))
	valid := true
	for i, el := range elems {
		var s string
		if kindOf(el) != kindString || json.Unmarshal(el, &s) != nil {
			d.typeMismatch(fmt.Sprintf("%s.%d", name, i), el, kindString)
			valid = false
			continue
		}
		out = append(out, s)
	}
	if !valid {
		return nil
	}
	return &out
}

// boolList accepts booleans or 0/1 elements, natively or JSON-encoded.
func (d *decoder) boolList(name string) *[]bool {
	raw, ok := d.field(name, false, kindArray)
	if !ok || kindOf(raw) == kindNull {
		return nil
	}
	elems, ok := d.elements(name, raw)
	if !ok {
		return nil
	}
	out := make([]bool, 0, len(elems))
	valid := true
	for i, el := range elems {
		b, ok := coerceBool(el)
		if !ok {
			d.typeMismatch(fmt.Sprintf("%s.%d", name, i), el, kindBoolean)
			valid = false
			continue
		}
		out = append(out, b)
	}
	if !valid {
		return nil
	}
	return &out
}

func coerceBool(raw json.RawMessage) (bool, bool) {
	switch kindOf(raw) {
	case kindBoolean:
		var b bool
		err := json.Unmarshal(raw, &b)
		return b, err == nil
	case kindNumber:
		switch string(bytes.TrimSpace(raw)) {
		case "0":
			return false, true
		case "1":
			return true, true
		}
	case kindString:
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return false, false
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "0", "false":
			return false, true
		case "1", "true":
			return true, true
		}
	}
	return false, false
}

func (d *decoder) flag(name string) *bool {
	raw, ok := d.field(name, false, kindBoolean)
	if !ok || kindOf(raw) == kindNull {
		return nil
	}
	b, ok := coerceBool(raw)
	if !ok {
		d.typeMismatch(name, raw, kindBoolean)
		return nil
	}
	return &b
}

func parseInteger(raw json.RawMessage) (int64, bool) {
	var text string
	switch kindOf(raw) {
	case kindNumber:
		text = string(bytes.TrimSpace(raw))
	case kindString:
		if json.Unmarshal(raw, &text) != nil {
			return 0, false
		}
		text = strings.TrimSpace(text)
	default:
		return 0, false
	}
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, true
	}
	// 5.0 is still an integer.
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int64(f), true
}

func (d *decoder) integer(name string) *int {
	raw, ok := d.field(name, false, kindInteger)
	if !ok || kindOf(raw) == kindNull {
		return nil
	}
	n, ok := parseInteger(raw)
	if !ok || n > math.MaxInt32 || n < math.MinInt32 {
		d.typeMismatch(name, raw, kindInteger)
		return nil
	}
	v := int(n)
	return &v
}

// nullableID reads a nullable foreign key such as productId.
func (d *decoder) nullableID(name string) models.Nullable[int64] {
	raw, ok := d.field(name, false, kindInteger)
	if !ok {
		return models.Nullable[int64]{}
	}
	if isBlank(raw) {
		return models.Nullable[int64]{Set: true}
	}
	n, ok := parseInteger(raw)
	if !ok {
		d.typeMismatch(name, raw, kindInteger)
		return models.Nullable[int64]{}
	}
	return models.NullableOf(n)
}

// isBlank reports null or an empty/whitespace string.
func isBlank(raw json.RawMessage) bool {
	switch kindOf(raw) {
	case kindNull:
		return true
	case kindString:
		var s string
		return json.Unmarshal(raw, &s) == nil && strings.TrimSpace(s) == ""
	}
	return false
}

// maxMoneyIntDigits is the number of integer digits in models.MaxMoney.
const maxMoneyIntDigits = 8

func (d *decoder) parseMoney(name string, raw json.RawMessage) (models.Money, bool) {
	var text string
	switch kindOf(raw) {
	case kindNumber:
		text = string(bytes.TrimSpace(raw))
	case kindString:
		if json.Unmarshal(raw, &text) != nil {
			d.typeMismatch(name, raw, kindDecimal)
			return models.Money{}, false
		}
		text = strings.TrimSpace(text)
	default:
		d.typeMismatch(name, raw, kindDecimal)
		return models.Money{}, false
	}
	dec, err := decimal.NewFromString(text)
	if err != nil {
		d.fail(name, "Invalid decimal", kindOf(raw), kindDecimal)
		return models.Money{}, false
	}
	// Rounding rescales the coefficient, so an exponent such as 1e20000000
	// has to be bounded while the value is still compact.
	magnitude := int64(dec.NumDigits()) + int64(dec.Exponent())
	switch {
	case dec.IsZero():
		dec = decimal.Zero
	case magnitude > maxMoneyIntDigits && dec.IsNegative():
		d.fail(name, "Number must be greater than or equal to 0", kindOf(raw), kindDecimal)
		return models.Money{}, false
	case magnitude > maxMoneyIntDigits:
		d.fail(name, "Number must be less than or equal to "+models.MaxMoney.StringFixed(models.MoneyScale), kindOf(raw), kindDecimal)
		return models.Money{}, false
	case magnitude < -models.MoneyScale:
		dec = decimal.Zero
	}
	m := models.NewMoney(dec)
	if m.IsNegative() {
		d.fail(name, "Number must be greater than or equal to 0", kindOf(raw), kindDecimal)
		return models.Money{}, false
	}
	if m.GreaterThan(models.MaxMoney) {
		d.fail(name, "Number must be less than or equal to "+models.MaxMoney.StringFixed(models.MoneyScale), kindOf(raw), kindDecimal)
		return models.Money{}, false
	}
	return m, true
}

func (d *decoder) money(name string, required bool) *models.Money {
	raw, ok := d.field(name, required, kindDecimal)
	if !ok {
		return nil
	}
	m, ok := d.parseMoney(name, raw)
	if !ok {
		return nil
	}
	return &m
}

func (d *decoder) nullableMoney(name string) models.Nullable[models.Money] {
	raw, ok := d.field(name, false, kindDecimal)
	if !ok {
		return models.Nullable[models.Money]{}
	}
	if isBlank(raw) {
		return models.Nullable[models.Money]{Set: true}
	}
	m, ok := d.parseMoney(name, raw)
	if !ok {
		return models.Nullable[models.Money]{}
	}
	return models.NullableOf(m)
}

func parseTimestamp(raw json.RawMessage) (time.Time, bool) {
	switch kindOf(raw) {
	case kindNumber:
		ms, ok := parseInteger(raw)
		if !ok {
			return time.Time{}, false
		}
		return time.UnixMilli(ms).UTC(), true
	case kindString:
		var s string
		if json.Unmarshal(raw, &s) != nil {
			return time.Time{}, false
		}
		s = strings.TrimSpace(s)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func (d *decoder) nullableTime(name string) models.Nullable[time.Time] {
	raw, ok := d.field(name, false, kindDate)
	if !ok {
		return models.Nullable[time.Time]{}
	}
	if isBlank(raw) {
		return models.Nullable[time.Time]{Set: true}
	}
	t, ok := parseTimestamp(raw)
	if !ok {
		d.fail(name, "Invalid date", kindOf(raw), kindDate)
		return models.Nullable[time.Time]{}
	}
	return models.NullableOf(t)
}

// check runs a validator tag against an already-coerced value.
func (d *decoder) check(name string, value any, tag string) {
	err := validate.Var(value, tag)
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		d.fail(name, err.Error(), kindOf(d.obj[name]), "")
		return
	}
	for _, fe := range verrs {
		d.fail(name, ruleMessage(fe), kindOf(d.obj[name]), ruleExpectation(fe))
	}
}

func ruleMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return "Number must be greater than or equal to " + fe.Param()
	case "lte":
		return "Number must be less than or equal to " + fe.Param()
	case "len":
		return "Array must contain exactly " + fe.Param() + " element(s)"
	case "max":
		return "String must contain at most " + fe.Param() + " character(s)"
	default:
		return "Failed rule " + fe.Tag()
	}
}

func ruleExpectation(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte", "lte":
		return kindInteger
	case "len":
		return kindArray
	default:
		return kindString
	}
}
