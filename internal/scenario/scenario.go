// Package scenario loads and runs scripted binding sessions: a seeded
// record store plus a list of mutation steps, executed against a real
// provider and a transcript view. The CLI and the golden tests are both
// built on it.
package scenario

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// RecordSpec seeds or inserts one record. Scenario steps refer to records
// by title, so titles should be unique within a scenario.
type RecordSpec struct {
	Section string `yaml:"section"`
	Title   string `yaml:"title"`
	Rank    int    `yaml:"rank"`
	Body    string `yaml:"body"`
}

// Step is one scripted action. Which fields are meaningful depends on Op:
//
//	insert          section, title, rank, body
//	update          title (lookup), body (new content)
//	move            title (lookup), section, rank (new position)
//	delete          title (lookup)
//	refresh         none - diff the store against the last snapshot
//	pause / resume  none - drive the provider's pause gate
type Step struct {
	Op      string `yaml:"op"`
	Section string `yaml:"section"`
	Title   string `yaml:"title"`
	Rank    int    `yaml:"rank"`
	Body    string `yaml:"body"`
}

// Scenario is a complete scripted session.
type Scenario struct {
	Name string `yaml:"name"`

	// Moveable scripts the transcript view's SupportsMove probe. Moves
	// are applied as delete+insert either way; the flag exists to pin
	// that behavior in golden transcripts.
	Moveable bool `yaml:"moveable"`

	Seed  []RecordSpec `yaml:"seed"`
	Steps []Step       `yaml:"steps"`
}

// Parse validates data against the embedded CUE schema and decodes it.
func Parse(data []byte) (*Scenario, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}
	if err := cueyaml.Validate(data, schema); err != nil {
		return nil, fmt.Errorf("scenario does not match schema: %w", err)
	}

	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("decode scenario: %w", err)
	}
	return &sc, nil
}

// Load reads and parses a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	sc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return sc, nil
}
