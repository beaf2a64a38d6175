package event

import (
	"fmt"
	"strings"
)

// Kind identifies an event type.
type Kind uint8

const (
	KindAssignment Kind = iota
	KindBinary
	KindComparison
	KindFuncCalled
	KindFuncReturned
	KindSingleStep
	KindSubscriptAssignment
	KindUnary
	KindVTagEntered
	KindVTagExited

	numKinds
)

var kindNames = [numKinds]string{
	"Assignment",
	"Binary",
	"Comparison",
	"FuncCalled",
	"FuncReturned",
	"SingleStep",
	"SubscriptAssignment",
	"Unary",
	"VTagEntered",
	"VTagExited",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// AllKinds returns every event kind.
func AllKinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind parses a kind name, ignoring case.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(name, s) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown event kind %q", s)
}

// ParseKinds parses a comma separated list of kind names. "all" selects
// every kind.
func ParseKinds(list string) ([]Kind, error) {
	if strings.TrimSpace(list) == "" {
		return nil, nil
	}
	if strings.EqualFold(strings.TrimSpace(list), "all") {
		return AllKinds(), nil
	}
	var out []Kind
	for _, part := range strings.Split(list, ",") {
		k, err := ParseKind(strings.TrimSpace(part))
		if err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, nil
}
