// Package content holds the educational copy shown alongside projections.
package content

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed learn.yaml
var learnYAML []byte

// Term is a named definition inside a section.
type Term struct {
	Term string `yaml:"term"`
	Text string `yaml:"text"`
}

// Section is one heading of the guide.
type Section struct {
	Heading string   `yaml:"heading"`
	Body    string   `yaml:"body"`
	Bullets []string `yaml:"bullets"`
	Terms   []Term   `yaml:"terms"`
}

// Step is one entry of the how-to list.
type Step struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// Guide is the full educational document.
type Guide struct {
	Title    string    `yaml:"title"`
	Subtitle string    `yaml:"subtitle"`
	Intro    string    `yaml:"intro"`
	Sections []Section `yaml:"sections"`
	Closing  string    `yaml:"closing"`
	Steps    []Step    `yaml:"steps"`
}

var guide = mustParse(learnYAML)

func mustParse(data []byte) Guide {
	var g Guide
	if err := yaml.Unmarshal(data, &g); err != nil {
		panic(fmt.Sprintf("content: parsing learn.yaml: %v", err))
	}
	return g
}

// Load returns the guide. Callers get their own copy of the slices.
func Load() Guide {
	g := guide
	g.Sections = append([]Section(nil), guide.Sections...)
	g.Steps = append([]Step(nil), guide.Steps...)
	return g
}

// Markdown renders the guide as markdown.
func (g Guide) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n_%s_\n\n%s\n", g.Title, g.Subtitle, g.Intro)

	for _, s := range g.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", s.Heading)
		if s.Body != "" {
			b.WriteString(s.Body + "\n")
		}
		if len(s.Bullets) > 0 || len(s.Terms) > 0 {
			b.WriteString("\n")
		}
		for _, item := range s.Bullets {
			fmt.Fprintf(&b, "- %s\n", item)
		}
		for _, t := range s.Terms {
			fmt.Fprintf(&b, "- **%s:** %s\n", t.Term, t.Text)
		}
	}

	fmt.Fprintf(&b, "\n%s\n\n## How to Use This Calculator\n\n", g.Closing)
	for i, st := range g.Steps {
		fmt.Fprintf(&b, "%d. **%s** - %s\n", i+1, st.Title, st.Text)
	}
	return b.String()
}
