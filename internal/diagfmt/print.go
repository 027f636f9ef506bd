// Package diagfmt renders diagnostics into human-readable lines.
// Diagnostics are advisory output, not a machine-readable format.
package diagfmt

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"fixdict/internal/diag"
)

// Opts controls rendering.
type Opts struct {
	Color bool
	// MinSeverity drops diagnostics below the threshold (quiet mode).
	MinSeverity diag.Severity
}

var (
	errorLabel   = color.New(color.FgRed, color.Bold)
	warningLabel = color.New(color.FgYellow, color.Bold)
	infoLabel    = color.New(color.FgCyan)
)

// Print writes one line per diagnostic, notes indented below it:
//
//	WARNING [MRG2002] 100: tag 100 has a divergent definition, keeping the base one
//	  -> base:    name=Foo, type=STRING
//	  -> overlay: name=Bar, type=INT
//
// Callers are expected to Sort() the bag beforehand when order matters.
func Print(w io.Writer, bag *diag.Bag, opts Opts) {
	for _, d := range bag.Items() {
		if d.Severity < opts.MinSeverity {
			continue
		}
		subject := ""
		if d.Subject != "" {
			subject = " " + d.Subject
		}
		fmt.Fprintf(w, "%s [%s]%s: %s\n", severityLabel(d.Severity, opts.Color), d.Code.ID(), subject, d.Message)
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  -> %s\n", n.Msg)
		}
	}
}

func severityLabel(sev diag.Severity, colored bool) string {
	if !colored {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return errorLabel.Sprint(sev.String())
	case diag.SevWarning:
		return warningLabel.Sprint(sev.String())
	default:
		return infoLabel.Sprint(sev.String())
	}
}
