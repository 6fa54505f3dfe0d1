package config

// Trailfile represents the structure of the trail.yaml configuration file.
type Trailfile struct {
	Version     string              `yaml:"version"`
	Input       string              `yaml:"input"`
	Strategy    string              `yaml:"strategy"`
	Parallelism int                 `yaml:"parallelism"`
	Queries     map[string]QueryDTO `yaml:"queries"`
}

// QueryDTO represents a query definition in the configuration.
type QueryDTO struct {
	From string   `yaml:"from"`
	To   string   `yaml:"to"`
	Via  []string `yaml:"via"`
}
