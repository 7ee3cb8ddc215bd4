// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Section names produced by the segmenter.
const (
	SectionHeader         = "header"
	SectionSummary        = "summary"
	SectionExperience     = "experience"
	SectionInternships    = "internships"
	SectionProjects       = "projects"
	SectionEducation      = "education"
	SectionSkills         = "skills"
	SectionCertifications = "certifications"
	SectionAwards         = "awards"
	SectionLeadership     = "leadership"
	SectionContact        = "contact"
)

// SectionMap is an ordered mapping from section name to body text.
// Names keep the order in which their header was first seen; "header" is always first.
type SectionMap struct {
	order  []string
	bodies map[string]string
}

// NewSectionMap creates a SectionMap holding only the empty "header" bucket.
func NewSectionMap() *SectionMap {
	return &SectionMap{
		order:  []string{SectionHeader},
		bodies: map[string]string{SectionHeader: ""},
	}
}

// Set stores body under name, appending name to the order if it is new.
func (m *SectionMap) Set(name, body string) {
	if m.bodies == nil {
		m.bodies = make(map[string]string)
	}
	if _, ok := m.bodies[name]; !ok {
		m.order = append(m.order, name)
	}
	m.bodies[name] = body
}

// Get returns the body for name ("" when absent).
func (m *SectionMap) Get(name string) string {
	if m == nil {
		return ""
	}
	return m.bodies[name]
}

// Has reports whether a header for name was detected, even if its body is empty.
func (m *SectionMap) Has(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.bodies[name]
	return ok
}

// Names returns section names in detection order.
func (m *SectionMap) Names() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of sections.
func (m *SectionMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.order)
}

// MarshalJSON writes the sections as a JSON object in detection order.
func (m SectionMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range m.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.bodies[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order.
func (m *SectionMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections: expected JSON object")
	}

	m.order = nil
	m.bodies = make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("sections: expected string key")
		}
		var body string
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("sections: value for %q: %w", name, err)
		}
		m.Set(name, body)
	}
	_, err = dec.Token()
	return err
}
