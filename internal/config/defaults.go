package config

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	recursive := true
	return &Config{
		Input: InputConfig{
			Directories: []string{"descriptions"},
			Include:     []string{"*.yaml", "*.yml", "*.md"},
			Exclude:     []string{"vendor/**", "node_modules/**"},
			Recursive:   &recursive,
		},
		Environment: EnvironmentConfig{
			File: ".env",
		},
		Markdown: MarkdownConfig{
			Tags: []string{"stepresolver"},
		},
		Loader: LoaderConfig{
			Parallelism: 4,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
