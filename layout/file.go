package layout

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load parses a YAML layout such as:
//
//	name: tcp-ports
//	fields:
//	  - name: src_port
//	    width: 16
//	  - name: dst_port
//	    width: 16
func Load(r io.Reader) (*Layout, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	l := new(Layout)
	if err := dec.Decode(l); err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return l, nil
}

// LoadFile parses the YAML layout stored in path.
func LoadFile(path string) (*Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open layout file: %w", err)
	}
	defer f.Close()

	return Load(f)
}
