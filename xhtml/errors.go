package xhtml

import (
	"fmt"
	"strings"
)

// ClassConflictError is returned when after removing content rule classes an
// element is left with more than one class. Markup and rule file disagree
// and there is no way to decide which class Word should see.
type ClassConflictError struct {
	Element string
	Classes []string
}

func (e *ClassConflictError) Error() string {
	quoted := make([]string, 0, len(e.Classes))
	for _, c := range e.Classes {
		quoted = append(quoted, fmt.Sprintf("%q", c))
	}
	return fmt.Sprintf("two non-content classes cannot coexist on one element <%s>: %s", e.Element, strings.Join(quoted, " and "))
}

// MissingNodeError is returned when document lacks a node processing depends on.
type MissingNodeError struct {
	Node string
}

func (e *MissingNodeError) Error() string {
	return fmt.Sprintf("required node is missing: %s", e.Node)
}
