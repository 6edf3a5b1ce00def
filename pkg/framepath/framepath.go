// Package framepath builds the file names of a numbered frame sequence.
package framepath

import (
	"fmt"
	"path/filepath"
	"strings"
)

// DefaultPattern names frames 000.png, 001.png, ...
const DefaultPattern = "%03d.png"

// Sequence names the frames of one directory.
type Sequence struct {
	Dir     string
	Pattern string
}

// New creates a Sequence. An empty pattern selects DefaultPattern.
func New(dir, pattern string) Sequence {
	if pattern == "" {
		pattern = DefaultPattern
	}
	return Sequence{Dir: dir, Pattern: pattern}
}

// Path returns the file path of frame index.
func (s Sequence) Path(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf(s.Pattern, index))
}

// ValidatePattern checks that pattern holds exactly one integer verb.
func ValidatePattern(pattern string) error {
	verbs := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' {
			continue
		}
		if i+1 < len(pattern) && pattern[i+1] == '%' {
			i++
			continue
		}
		verbs++
	}
	if verbs != 1 {
		return fmt.Errorf("frame pattern %q must contain exactly one verb", pattern)
	}
	if strings.Contains(fmt.Sprintf(pattern, 0), "%!") {
		return fmt.Errorf("frame pattern %q is not an integer format", pattern)
	}
	return nil
}
