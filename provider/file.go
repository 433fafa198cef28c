package provider

import (
	"fmt"
	"os"

	"github.com/elijahnyp/smarthouse/report"
	"gopkg.in/yaml.v3"
)

type entryFile struct {
	Entries []report.Entry `yaml:"entries"`
}

// ParseYAML reads a document of the form
//
//	entries:
//	  - room: kitchen
//	    device: socket-1
func ParseYAML(data []byte) (*Fixed, error) {
	var doc entryFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing entries: %w", err)
	}
	return NewFixed(doc.Entries...), nil
}

// LoadFile reads the entry list once; later changes to the file are not seen.
func LoadFile(path string) (*Fixed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading entries: %w", err)
	}
	f, err := ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
