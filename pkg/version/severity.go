package version

// Severity classifies a version change.
type Severity int

const (
	PATCH Severity = iota + 1
	MINOR
	MAJOR
)

func (s Severity) String() string {
	switch s {
	case PATCH:
		return "patch"
	case MINOR:
		return "minor"
	case MAJOR:
		return "major"
	default:
		return "none"
	}
}

func MaxSeverity(list ...Severity) Severity {
	var r Severity
	for _, s := range list {
		if s > r {
			r = s
		}
	}
	return r
}
