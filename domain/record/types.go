package record

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// TestType identifies the reference distribution family of a reported test
type TestType string

const (
	TypeR    TestType = "r"
	TypeT    TestType = "t"
	TypeF    TestType = "f"
	TypeChi2 TestType = "chi2"
	TypeZ    TestType = "z"
)

// Symmetric reports whether the family has a two-sided reading (r, t, z).
// chi2 and f are evaluated one-tailed only.
func (t TestType) Symmetric() bool {
	return t == TypeR || t == TypeT || t == TypeZ
}

// Operator is the relation between the reported p-value and the true one
type Operator string

const (
	OpEqual   Operator = "="
	OpLess    Operator = "<"
	OpGreater Operator = ">"
)

// Tail selects a one- or two-tailed reading
type Tail string

const (
	TailOne Tail = "one"
	TailTwo Tail = "two"
)

// NotSignificantText is the literal extractors use for "p = ns"
const NotSignificantText = "ns"

// Literal is a number as it was written in the source text. The text is
// kept so the decimal precision the author used survives decoding:
// "2.10" and "2.1" are different literals with the same value.
type Literal struct {
	Text string
}

// Lit returns a literal for the given text.
func Lit(text string) *Literal {
	return &Literal{Text: strings.TrimSpace(text)}
}

// Num returns the shortest literal that round-trips v.
func Num(v float64) *Literal {
	return &Literal{Text: strconv.FormatFloat(v, 'f', -1, 64)}
}

// Int returns an integral literal.
func Int(v int) *Literal {
	return &Literal{Text: strconv.Itoa(v)}
}

func (l Literal) String() string { return l.Text }

// Float64 parses the literal. ok is false for text such as "ns".
func (l Literal) Float64() (v float64, ok bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(l.Text), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// IsIntegral reports whether the literal was written as an integer.
// "25" is integral, "25.0" is not.
func (l Literal) IsIntegral() bool {
	_, err := strconv.ParseInt(strings.TrimSpace(l.Text), 10, 64)
	return err == nil
}

// UnmarshalJSON accepts JSON numbers and strings.
func (l *Literal) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		l.Text = strings.TrimSpace(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	l.Text = n.String()
	return nil
}

// MarshalJSON writes numeric literals as JSON numbers and anything else as a string.
func (l Literal) MarshalJSON() ([]byte, error) {
	if json.Valid([]byte(l.Text)) {
		if _, ok := l.Float64(); ok {
			return []byte(l.Text), nil
		}
	}
	return json.Marshal(l.Text)
}

// UnmarshalYAML keeps the scalar exactly as written.
func (l *Literal) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar literal", value.Line)
	}
	l.Text = strings.TrimSpace(value.Value)
	return nil
}

// TestRecord is one reported test as produced by the extractor
type TestRecord struct {
	TestType       TestType `json:"test_type" yaml:"test_type"`
	DF1            *Literal `json:"df1,omitempty" yaml:"df1,omitempty"`
	DF2            *Literal `json:"df2,omitempty" yaml:"df2,omitempty"`
	TestValue      *Literal `json:"test_value,omitempty" yaml:"test_value,omitempty"`
	Operator       Operator `json:"operator,omitempty" yaml:"operator,omitempty"`
	ReportedPValue *Literal `json:"reported_p_value,omitempty" yaml:"reported_p_value,omitempty"`
	Epsilon        *float64 `json:"epsilon,omitempty" yaml:"epsilon,omitempty"`
	Tail           Tail     `json:"tail,omitempty" yaml:"tail,omitempty"`
}

// Complete reports whether the record has both a test value and a reported p-value.
func (r TestRecord) Complete() bool {
	return r.TestValue != nil && r.ReportedPValue != nil
}

// EffectiveTail returns the tail, defaulting to two-tailed.
func (r TestRecord) EffectiveTail() Tail {
	if r.Tail == "" {
		return TailTwo
	}
	return r.Tail
}

// HuynhFeldt returns the sphericity correction factor when it applies: an
// f-test whose degrees of freedom were both written as integers.
func (r TestRecord) HuynhFeldt() (float64, bool) {
	if r.TestType != TypeF || r.Epsilon == nil || r.DF1 == nil || r.DF2 == nil {
		return 0, false
	}
	if !r.DF1.IsIntegral() || !r.DF2.IsIntegral() {
		return 0, false
	}
	return *r.Epsilon, true
}

// OneTailed returns a copy read one-tailed with no epsilon correction.
func (r TestRecord) OneTailed() TestRecord {
	r.Tail = TailOne
	r.Epsilon = nil
	return r
}

// Equal compares records field by field. Literals compare by value when
// both parse, so 2.1 and 2.10 are the same test value.
func (r TestRecord) Equal(o TestRecord) bool {
	return r.TestType == o.TestType &&
		r.Operator == o.Operator &&
		r.Tail == o.Tail &&
		literalsEqual(r.DF1, o.DF1) &&
		literalsEqual(r.DF2, o.DF2) &&
		literalsEqual(r.TestValue, o.TestValue) &&
		literalsEqual(r.ReportedPValue, o.ReportedPValue) &&
		floatsEqual(r.Epsilon, o.Epsilon)
}

func literalsEqual(a, b *Literal) bool {
	if a == nil || b == nil {
		return a == b
	}
	av, aok := a.Float64()
	bv, bok := b.Float64()
	if aok && bok {
		return av == bv
	}
	return a.Text == b.Text
}

func floatsEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
