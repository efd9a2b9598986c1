package diag

// Severity orders diagnostics; a higher value is more serious.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Escalated returns the severity under warnings_as_errors.
func (s Severity) Escalated() Severity {
	if s == SevWarning {
		return SevError
	}
	return s
}
