package rrgraph

import "fmt"

// WarningKind classifies a recoverable capacity problem.
type WarningKind int

const (
	// FcClipped means a pin asked for more tracks than its channel has.
	FcClipped WarningKind = iota
)

func (k WarningKind) String() string {
	if k == FcClipped {
		return "fc_clipped"
	}
	return fmt.Sprintf("warning(%d)", int(k))
}

// Warning is one recoverable problem found during assembly.
type Warning struct {
	Kind    WarningKind
	Subject string
	Detail  string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %s: %s", w.Kind, w.Subject, w.Detail)
}

// Warnings accumulates warnings without duplicates.
type Warnings []Warning

// Has reports whether any warning of the given kind was raised.
func (ws Warnings) Has(kind WarningKind) bool {
	for _, w := range ws {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

func (ws *Warnings) add(w Warning) bool {
	for _, prev := range *ws {
		if prev.Kind == w.Kind && prev.Subject == w.Subject {
			return false
		}
	}
	*ws = append(*ws, w)
	return true
}
