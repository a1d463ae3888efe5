package clip

import (
	"fmt"
	"regexp"
)

// captureGroups is the number of capture groups a filename pattern must
// carry, in order: date, time, sequence, camera position.
const captureGroups = 4

// Fields holds the four substrings extracted from a clip filename.
type Fields struct {
	Date     string
	Time     string
	Sequence string
	Camera   string
}

// Parser extracts clip fields from filenames using a configured pattern.
type Parser struct {
	re *regexp.Regexp
}

// NewParser compiles the filename pattern. The pattern must contain
// exactly four capture groups (date, time, sequence, camera position);
// anything else is a configuration error.
func NewParser(pattern string) (*Parser, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile video pattern: %w", err)
	}
	if n := re.NumSubexp(); n != captureGroups {
		return nil, fmt.Errorf("video pattern must have exactly %d capture groups (date, time, sequence, camera), got %d", captureGroups, n)
	}
	return &Parser{re: re}, nil
}

// Parse extracts the four fields from a filename. A non-matching name is
// not an error: the second return is false and the caller skips the file.
func (p *Parser) Parse(filename string) (Fields, bool) {
	m := p.re.FindStringSubmatch(filename)
	if m == nil {
		return Fields{}, false
	}
	return Fields{
		Date:     m[1],
		Time:     m[2],
		Sequence: m[3],
		Camera:   m[4],
	}, true
}
