package render

import (
	"fmt"
	"io"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Metadata carries the act-level fields shown in the frontmatter block.
// Dates are kept as the raw strings supplied by the metadata collaborator;
// a field that fails to parse is simply left absent in the output, never
// replaced with a guessed value.
type Metadata struct {
	ActType       string `yaml:"tip_act" json:"act_type,omitempty"`
	ActNumber     string `yaml:"numar_act" json:"act_number,omitempty"`
	ActDate       string `yaml:"data_act" json:"act_date,omitempty"`
	Title         string `yaml:"titlu" json:"title,omitempty"`
	Authority     string `yaml:"emitent" json:"authority,omitempty"`
	MonitorNumber string `yaml:"numar_monitor" json:"monitor_number,omitempty"`
	MonitorDate   string `yaml:"data_monitor" json:"monitor_date,omitempty"`
}

// LoadMetadata reads act metadata from a YAML document.
func LoadMetadata(r io.Reader) (Metadata, error) {
	var meta Metadata
	if err := yaml.NewDecoder(r).Decode(&meta); err != nil {
		return Metadata{}, fmt.Errorf("decoding metadata: %w", err)
	}
	return meta, nil
}

var dateLayouts = []string{
	"02.01.2006",
	"2006-01-02",
	"02/01/2006",
}

var yearPattern = regexp.MustCompile(`\b(1[89]\d{2}|20\d{2})\b`)

// dateYear extracts the year of a date string. Known layouts are parsed
// first; otherwise an explicit four-digit year anywhere in the string is
// accepted. Unparseable input yields 0, meaning absent.
func dateYear(s string) int {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Year()
		}
	}
	if m := yearPattern.FindString(s); m != "" {
		var year int
		fmt.Sscanf(m, "%d", &year)
		return year
	}
	return 0
}
