package parser

import "strings"

// ListLine is one resolved line of a traveler's .list file: region, route
// token, and the two labels bounding the clinched range.
type ListLine struct {
	Region     string
	RouteToken string
	StartLabel string
	EndLabel   string
	SourceLine int
}

// ParseTravelerList reads name's .list file: blank and "#"-comment lines
// are ignored; every other line must tokenize into exactly four
// whitespace-separated fields. Lines with the wrong field count are
// returned in badLines (logged by the caller, non-fatal) rather than
// aborting the parse.
func ParseTravelerList(path string) (lines []ListLine, badLines []int, err error) {
	raw, err := openLines(path)
	if err != nil {
		return nil, nil, err
	}

	for i, line := range raw {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Fields(trimmed)
		if len(fields) != 4 {
			badLines = append(badLines, lineNo)
			continue
		}
		lines = append(lines, ListLine{
			Region:     fields[0],
			RouteToken: fields[1],
			StartLabel: fields[2],
			EndLabel:   fields[3],
			SourceLine: lineNo,
		})
	}
	return lines, badLines, nil
}
