package passenger

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"titanic/internal/errors"
)

// Embarkation ports accepted by the model
const (
	PortSouthampton = "S"
	PortCherbourg   = "C"
	PortQueenstown  = "Q"
)

// Form defaults for the select-backed fields
const (
	DefaultPclass   = 3
	DefaultSex      = 1
	DefaultSibsp    = 0
	DefaultParch    = 0
	DefaultEmbarked = PortSouthampton
)

// Query is the passenger record submitted for prediction. Build it with ParseQuery;
// it is never mutated afterwards.
type Query struct {
	Pclass   float64 `json:"pclass"`
	Sex      float64 `json:"sex"`
	Age      float64 `json:"age"`
	Sibsp    float64 `json:"sibsp"`
	Parch    float64 `json:"parch"`
	Fare     float64 `json:"fare"`
	Embarked string  `json:"embarked"`
}

// Fields are the raw form values for one person
type Fields struct {
	Pclass   string `form:"pclass" json:"pclass" yaml:"pclass"`
	Sex      string `form:"sex" json:"sex" yaml:"sex"`
	Age      string `form:"age" json:"age" yaml:"age"`
	Sibsp    string `form:"sibsp" json:"sibsp" yaml:"sibsp"`
	Parch    string `form:"parch" json:"parch" yaml:"parch"`
	Fare     string `form:"fare" json:"fare" yaml:"fare"`
	Embarked string `form:"embarked" json:"embarked" yaml:"embarked"`
}

// InvalidFieldsError lists the numeric fields that failed to parse
type InvalidFieldsError struct {
	Fields []string
	msg    string
}

func (e *InvalidFieldsError) Error() string {
	return e.msg
}

// Unwrap exposes the validation code to errors.HasCode
func (e *InvalidFieldsError) Unwrap() error {
	return errors.ValidationError(e.msg)
}

// ParseQuery validates age and fare and builds a Query.
func ParseQuery(f Fields) (Query, error) {
	invalid := invalidNumeric(f, "")
	if len(invalid) > 0 {
		return Query{}, &InvalidFieldsError{Fields: invalid, msg: singleMessage(invalid)}
	}
	return build(f), nil
}

// ParsePair validates both people and reports every invalid field in one error.
func ParsePair(p1, p2 Fields) (Query, Query, error) {
	invalid := append(invalidNumeric(p1, "Person 1 "), invalidNumeric(p2, "Person 2 ")...)
	if len(invalid) > 0 {
		msg := fmt.Sprintf("Please enter valid numeric values for Age and Fare for both people (invalid: %s).",
			strings.Join(invalid, ", "))
		return Query{}, Query{}, &InvalidFieldsError{Fields: invalid, msg: msg}
	}
	return build(p1), build(p2), nil
}

func singleMessage(invalid []string) string {
	if len(invalid) == 1 {
		return fmt.Sprintf("Please enter a valid numeric value for %s.", invalid[0])
	}
	return "Please enter valid numeric values for Age and Fare."
}

func invalidNumeric(f Fields, prefix string) []string {
	var invalid []string
	if _, ok := parseFinite(f.Age); !ok {
		invalid = append(invalid, prefix+"Age")
	}
	if _, ok := parseFinite(f.Fare); !ok {
		invalid = append(invalid, prefix+"Fare")
	}
	return invalid
}

func build(f Fields) Query {
	age, _ := parseFinite(f.Age)
	fare, _ := parseFinite(f.Fare)

	embarked := strings.ToUpper(strings.TrimSpace(f.Embarked))
	if embarked == "" {
		embarked = DefaultEmbarked
	}

	return Query{
		Pclass:   orDefault(f.Pclass, DefaultPclass),
		Sex:      orDefault(f.Sex, DefaultSex),
		Age:      age,
		Sibsp:    orDefault(f.Sibsp, DefaultSibsp),
		Parch:    orDefault(f.Parch, DefaultParch),
		Fare:     fare,
		Embarked: embarked,
	}
}

func parseFinite(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func orDefault(raw string, def float64) float64 {
	if v, ok := parseFinite(raw); ok {
		return v
	}
	return def
}

// ParseKeyValues reads "pclass=1,sex=0,age=29,..." into Fields; unknown keys are rejected.
func ParseKeyValues(s string) (Fields, error) {
	var f Fields
	if strings.TrimSpace(s) == "" {
		return f, errors.InvalidInputf("empty passenger description")
	}
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return f, errors.InvalidInputf("expected key=value, got %q", pair)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "pclass":
			f.Pclass = value
		case "sex":
			f.Sex = value
		case "age":
			f.Age = value
		case "sibsp":
			f.Sibsp = value
		case "parch":
			f.Parch = value
		case "fare":
			f.Fare = value
		case "embarked":
			f.Embarked = value
		default:
			return f, errors.InvalidInputf("unknown passenger field %q", key)
		}
	}
	return f, nil
}
