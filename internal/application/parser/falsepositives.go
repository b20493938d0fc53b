package parser

import (
	"strings"

	"github.com/travelmapping/hwdata/internal/domain/datacheck"
	"github.com/travelmapping/hwdata/internal/domain/shared"
)

// ParseFPFile reads a false-positive list file: the same canonical
// six-field semicolon form datacheck.Entry.String produces
// (root;label0;label1;label2;code;info), one record per line. Blank and
// "#"-comment lines are ignored. A record naming a code that may never
// be a false positive is reported via collector and skipped rather than
// aborting the whole file.
func ParseFPFile(path string, collector *shared.ErrorCollector) ([]*datacheck.FP, error) {
	lines, err := openLines(path)
	if err != nil {
		return nil, err
	}

	var fps []*datacheck.FP
	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		fields := strings.Split(trimmed, ";")
		if len(fields) != 6 {
			collector.Addf("%s:%d: expected 6 fields, got %d", path, lineNo, len(fields))
			continue
		}
		fp, err := datacheck.LoadFP(fields[0], fields[1], fields[2], fields[3], datacheck.Code(fields[4]), fields[5])
		if err != nil {
			collector.Addf("%s:%d: %v", path, lineNo, err)
			continue
		}
		fps = append(fps, fp)
	}
	return fps, nil
}
