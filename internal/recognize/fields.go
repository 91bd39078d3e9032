package recognize

import (
	"strings"
)

// CodeKind classifies the machine-readable code found on the band
type CodeKind string

const (
	// KindNumeric is a plain digit band, e.g. a bank card number
	KindNumeric CodeKind = "numeric"
	// KindMRZ is a machine-readable-zone style band (A-Z, 0-9, '<')
	KindMRZ CodeKind = "mrz"
)

// DocumentInfo is the structured result of one recognition
type DocumentInfo struct {
	// Kind is the detected code class
	Kind CodeKind
	// Raw is the normalized code text with original grouping preserved
	Raw string
	// Groups are the printed character groups, left to right
	Groups []string
	// Engine names the engine that produced the text
	Engine string
}

// Compact returns the code without group separators
func (d *DocumentInfo) Compact() string {
	return strings.Join(d.Groups, "")
}

func (d *DocumentInfo) String() string {
	if d == nil {
		return "<none>"
	}
	return string(d.Kind) + ": " + d.Raw
}

// digitConfusions maps characters tesseract commonly misreads in
// numeric bands back to the intended digit
var digitConfusions = map[rune]rune{
	'O': '0',
	'Q': '0',
	'D': '0',
	'I': '1',
	'L': '1',
	'|': '1',
	'Z': '2',
	'S': '5',
	'B': '8',
}

// ParseDocumentText normalizes raw engine output into a DocumentInfo.
// Returns ErrNoResult when nothing usable survives normalization.
func ParseDocumentText(text string) (*DocumentInfo, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	if normalized == "" {
		return nil, ErrNoResult
	}

	if isMRZLike(normalized) {
		return parseMRZ(normalized)
	}
	return parseNumeric(normalized)
}

// isMRZLike reports whether the text looks like a machine-readable zone:
// filler characters present, or letter-heavy content of MRZ length
func isMRZLike(text string) bool {
	if strings.ContainsRune(text, '<') {
		return true
	}

	letters, digits := 0, 0
	for _, r := range text {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			digits++
		}
	}
	return letters > digits && letters+digits >= 20
}

func parseMRZ(text string) (*DocumentInfo, error) {
	// MRZ lines keep only A-Z, 0-9 and the filler character
	var groups []string
	for _, line := range strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ' ' || r == '\t'
	}) {
		var b strings.Builder
		for _, r := range line {
			if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '<' {
				b.WriteRune(r)
			}
		}
		if b.Len() > 0 {
			groups = append(groups, b.String())
		}
	}

	if len(groups) == 0 {
		return nil, ErrNoResult
	}

	return &DocumentInfo{
		Kind:   KindMRZ,
		Raw:    strings.Join(groups, " "),
		Groups: groups,
	}, nil
}

func parseNumeric(text string) (*DocumentInfo, error) {
	// Repair digit confusions, keep digits, collapse everything else
	// into group separators
	var b strings.Builder
	for _, r := range text {
		if repaired, ok := digitConfusions[r]; ok {
			r = repaired
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	groups := strings.Fields(b.String())
	if len(groups) == 0 {
		return nil, ErrNoResult
	}

	// A lone short run is noise, not a code
	if len(groups) == 1 && len(groups[0]) < 4 {
		return nil, ErrNoResult
	}

	return &DocumentInfo{
		Kind:   KindNumeric,
		Raw:    strings.Join(groups, " "),
		Groups: groups,
	}, nil
}
