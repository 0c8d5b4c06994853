// Package config provides configuration management for the treegen CLI.
//
// Values are layered with koanf: defaults, then treegen.yaml, then TREEGEN_
// environment variables, then explicitly-set flags.
package config

// Config holds all CLI configuration options.
type Config struct {
	// ProjectRoot anchors every relative path. It is not read from the file.
	ProjectRoot string `koanf:"-"`

	Schema       string         `koanf:"schema"`
	Prefix       string         `koanf:"prefix"`
	Indent       int            `koanf:"indent"`
	StatePath    string         `koanf:"state_path"`
	Verbose      bool           `koanf:"verbose"`
	OutputFormat string         `koanf:"output"`
	NoColor      bool           `koanf:"no_color"`
	Imports      []string       `koanf:"imports"`
	Targets      []TargetConfig `koanf:"targets"`
	Options      *OptionsConfig `koanf:"options"`
}

// TargetConfig is one generated unit: a dialect and where its output goes.
type TargetConfig struct {
	Dialect   string `koanf:"dialect"`
	Output    string `koanf:"output"`
	Namespace string `koanf:"namespace"`
}

// OptionsConfig overrides generated names. Empty values keep the defaults.
type OptionsConfig struct {
	Header          string            `koanf:"header"`
	KindEnum        string            `koanf:"kind_enum"`
	VisitorName     string            `koanf:"visitor"`
	WalkerName      string            `koanf:"walker"`
	RewriterName    string            `koanf:"rewriter"`
	DumperName      string            `koanf:"dumper"`
	ProvenanceFlags []string          `koanf:"provenance_flags"`
	TypeVisitFields map[string]string `koanf:"type_visit_fields"`
}

// Default configuration values.
const (
	DefaultConfigFile = "treegen.yaml"
	DefaultStateFile  = ".treegen/state.db"
	DefaultPrefix     = "Bound"
	DefaultIndent     = 4
	DefaultOutput     = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)

// configFileNames are searched in order.
var configFileNames = []string{"treegen.yaml", "treegen.yml"}

// GetOptions returns the options block, never nil.
func (c *Config) GetOptions() *OptionsConfig {
	if c.Options == nil {
		return &OptionsConfig{}
	}
	return c.Options
}
