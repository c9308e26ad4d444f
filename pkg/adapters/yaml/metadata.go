package yaml

// Document is the top-level shape of an algorithm file.
//
//	name: Hepatitis B serology
//	root: step1
//	nodes:
//	  - id: step1
//	    label: HBsAg
//	    positive: {next: step2}
//	    negative: {result: Chronic HBV carrier}
type Document struct {
	Name  string           `yaml:"name"`
	Root  string           `yaml:"root"`
	Nodes []map[string]any `yaml:"nodes"`
}

// NodeMetadata is one decoded node entry.
// It uses "mapstructure" tags so the same keys work from YAML or generic maps.
type NodeMetadata struct {
	ID       string           `mapstructure:"id"`
	Label    string           `mapstructure:"label"`
	Positive *OutcomeMetadata `mapstructure:"positive"`
	Negative *OutcomeMetadata `mapstructure:"negative"`
}

// OutcomeMetadata holds either a next node id or a result text.
type OutcomeMetadata struct {
	Next   string `mapstructure:"next"`
	Result string `mapstructure:"result"`
}
