package position

import "strings"

// Classify parses a raw descriptor such as "Z", "LD/V" or "s" into primary and
// secondary codes. An empty descriptor falls back to midfielder. Unrecognized
// codes are kept as-is so they simply never match a formation slot.
func Classify(descriptor string) (primary, secondary Code) {
	if strings.TrimSpace(descriptor) == "" {
		return defaultPrimary, defaultPrimary
	}

	first, rest, hasSecondary := strings.Cut(descriptor, secondaryDivider)
	primary = normalize(first)
	if !hasSecondary {
		return primary, primary
	}

	// only the first divider splits; anything after a second one is ignored
	second, _, _ := strings.Cut(rest, secondaryDivider)
	return primary, normalize(second)
}

// Primary is a shorthand for the first code returned by Classify.
func Primary(descriptor string) Code {
	primary, _ := Classify(descriptor)
	return primary
}

func normalize(raw string) Code {
	code := strings.ToUpper(strings.TrimSpace(raw))
	switch code {
	case "LD", "LE":
		return Fullback
	case "S":
		return Forward
	default:
		return Code(code)
	}
}
