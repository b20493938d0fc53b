// Package datacheck models the fixed catalog of validator findings: the
// DatacheckEntry tagged variant, its canonical string form, and
// false-positive reconciliation against a persisted FP list. Grounded on
// original_source/datachecks.py, which defines the same code list and
// drives FP matching off the same six-field form.
package datacheck

import "fmt"

// Code is one of the fixed set of datacheck violation codes a Validator
// run can emit.
type Code string

const (
	LongSegment           Code = "LONG_SEGMENT"
	VisibleDistance       Code = "VISIBLE_DISTANCE"
	SharpAngle            Code = "SHARP_ANGLE"
	BadAngle              Code = "BAD_ANGLE"
	OutOfBounds           Code = "OUT_OF_BOUNDS"
	DuplicateCoords       Code = "DUPLICATE_COORDS"
	DuplicateLabel        Code = "DUPLICATE_LABEL"
	HiddenTerminus        Code = "HIDDEN_TERMINUS"
	LabelSelfref          Code = "LABEL_SELFREF"
	LabelUnderscores      Code = "LABEL_UNDERSCORES"
	LongUnderscore        Code = "LONG_UNDERSCORE"
	LabelSlashes          Code = "LABEL_SLASHES"
	LabelParens           Code = "LABEL_PARENS"
	LabelInvalidChar      Code = "LABEL_INVALID_CHAR"
	NonterminalUnderscore Code = "NONTERMINAL_UNDERSCORE"
	BusWithI              Code = "BUS_WITH_I"
	LabelLooksHidden      Code = "LABEL_LOOKS_HIDDEN"
	MalformedURL          Code = "MALFORMED_URL"
)

// alwaysError is the set of codes forbidden from ever appearing in a
// false-positive file; an FP record naming one of these is rejected on
// load rather than silently accepted.
var alwaysError = map[Code]bool{
	DuplicateLabel:        true,
	HiddenTerminus:        true,
	LabelInvalidChar:      true,
	LabelSlashes:          true,
	LongUnderscore:        true,
	MalformedURL:          true,
	NonterminalUnderscore: true,
}

// IsAlwaysError reports whether code may never be marked a false positive.
func IsAlwaysError(code Code) bool {
	return alwaysError[code]
}

// Entry is one validator finding: the route it was found on, up to three
// labels identifying the offending point(s), the code, and a free-form
// info payload (distance, angle, coordinate pair, or related label;
// empty when the code carries none).
type Entry struct {
	Root   string
	Label0 string
	Label1 string
	Label2 string
	Code   Code
	Info   string

	FalsePositive bool
}

// New builds an Entry. Unused label positions should be passed as "".
func New(root, label0, label1, label2 string, code Code, info string) *Entry {
	return &Entry{Root: root, Label0: label0, Label1: label1, Label2: label2, Code: code, Info: info}
}

// String is the canonical six-field serialization used for FP matching
// and log emission: "<root>;<label0>;<label1>;<label2>;<code>;<info>".
func (e *Entry) String() string {
	return fmt.Sprintf("%s;%s;%s;%s;%s;%s", e.Root, e.Label0, e.Label1, e.Label2, e.Code, e.Info)
}

// matchKey is the prefix FP records are joined against: everything but
// info.
func (e *Entry) matchKey() string {
	return fmt.Sprintf("%s;%s;%s;%s;%s", e.Root, e.Label0, e.Label1, e.Label2, e.Code)
}

// FP is one record from the persisted false-positive list.
type FP struct {
	Root   string
	Label0 string
	Label1 string
	Label2 string
	Code   Code
	Info   string
}

func (f *FP) matchKey() string {
	return fmt.Sprintf("%s;%s;%s;%s;%s", f.Root, f.Label0, f.Label1, f.Label2, f.Code)
}

// LoadFP parses one false-positive list line's six fields into an FP
// record, rejecting codes that may never be false positives.
func LoadFP(root, label0, label1, label2 string, code Code, info string) (*FP, error) {
	if IsAlwaysError(code) {
		return nil, fmt.Errorf("datacheck: code %s may not appear in a false-positive list", code)
	}
	return &FP{Root: root, Label0: label0, Label1: label1, Label2: label2, Code: code, Info: info}, nil
}

// ReconcileResult is the outcome of joining a run's entries against the
// persisted FP list.
type ReconcileResult struct {
	// Changed holds entries whose root/code/labels matched an FP record
	// but whose info field did not: a "changed" false-positive
	// candidate that needs human review.
	Changed []*Entry
}

// Reconcile marks entries whose match key and info both agree with an FP
// record as false positives (in place) and returns the entries that
// matched on key alone with differing info.
func Reconcile(entries []*Entry, fps []*FP) ReconcileResult {
	byKey := make(map[string][]*FP)
	for _, f := range fps {
		byKey[f.matchKey()] = append(byKey[f.matchKey()], f)
	}

	var result ReconcileResult
	for _, e := range entries {
		candidates, ok := byKey[e.matchKey()]
		if !ok {
			continue
		}
		matched := false
		for _, f := range candidates {
			if f.Info == e.Info {
				e.FalsePositive = true
				matched = true
				break
			}
		}
		if !matched {
			result.Changed = append(result.Changed, e)
		}
	}
	return result
}
