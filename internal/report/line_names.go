package report

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// LineNames maps a line letter to its display name in one language.
type LineNames map[string]string

// Name returns the display name of a line, or the letter itself.
func (n LineNames) Name(letter string) string {
	if name, ok := n[letter]; ok && name != "" {
		return name
	}
	return letter
}

// ParseLineNames decodes a document of the form {language: {letter: name}}
// and returns the table best matching lang. JSON documents are accepted as
// they are valid YAML.
func ParseLineNames(data []byte, lang string) (LineNames, language.Tag, error) {
	var all map[string]LineNames
	if err := yaml.Unmarshal(data, &all); err != nil {
		return nil, language.Und, fmt.Errorf("error parsing line names: %w", err)
	}
	if len(all) == 0 {
		return nil, language.Und, fmt.Errorf("line names document is empty")
	}

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]language.Tag, 0, len(keys))
	tagKeys := make([]string, 0, len(keys))
	for _, k := range keys {
		tag, err := language.Parse(k)
		if err != nil {
			return nil, language.Und, fmt.Errorf("line names: invalid language tag %q: %w", k, err)
		}
		tags = append(tags, tag)
		tagKeys = append(tagKeys, k)
	}

	want, err := language.Parse(lang)
	if err != nil {
		return nil, language.Und, fmt.Errorf("invalid language tag %q: %w", lang, err)
	}

	_, index, confidence := language.NewMatcher(tags).Match(want)
	if confidence == language.No {
		return nil, language.Und, fmt.Errorf("no line names for language %q", lang)
	}
	return all[tagKeys[index]], tags[index], nil
}

// LoadLineNames reads a line name file and selects the table for lang.
func LoadLineNames(path, lang string) (LineNames, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading line names: %w", err)
	}
	names, _, err := ParseLineNames(data, lang)
	return names, err
}
