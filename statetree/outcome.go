package statetree

// String returns the name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case NotFound:
		return "not_found"
	default:
		return "unmatched"
	}
}

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPathless:
		return "pathless"
	case KindLiteral:
		return "literal"
	case KindParameter:
		return "parameter"
	case KindWildcard:
		return "wildcard"
	case KindSequence:
		return "sequence"
	case KindRegexp:
		return "regexp"
	default:
		return "unknown"
	}
}
