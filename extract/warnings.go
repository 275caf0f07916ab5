package extract

import (
	"fmt"
	"strings"
)

// Warning reports a recoverable irregularity encountered during
// extraction: a volume skipped for having no mass, a degenerate span, and
// the like. Warnings never abort a run; callers decide whether they
// matter.
type Warning struct {
	// Volume is the name of the element the warning concerns, when one
	// exists.
	Volume string

	// Message describes what happened.
	Message string
}

// String implements fmt.Stringer.
func (w Warning) String() string {
	if w.Volume == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Volume, w.Message)
}

// FormatWarnings renders a slice of warnings as a human-readable block,
// one warning per line. It returns an empty string for no warnings.
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d warning(s):\n", len(warnings)))
	for i, w := range warnings {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, w.String()))
	}
	return sb.String()
}

func (e *Extractor) warnf(volume, format string, args ...any) {
	w := Warning{Volume: volume, Message: fmt.Sprintf(format, args...)}
	e.warnings = append(e.warnings, w)
	e.log.V(1).Info("extraction warning", "volume", w.Volume, "message", w.Message)
}
