package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepResolver/internal/config"
)

var _ = Describe("Config", func() {
	Describe("Load", func() {
		It("should load minimal config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "minimal.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(ContainElement("descriptions"))
			Expect(cfg.Markdown.Tags).To(ContainElement("stepresolver"))
			Expect(cfg.Environment.File).To(Equal(".env"))
		})

		It("should load full config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(HaveLen(3))
			Expect(cfg.Input.Include).To(ContainElement("*.md"))
			Expect(cfg.Input.Exclude).To(ContainElement("drafts/**"))
			Expect(*cfg.Input.Recursive).To(BeFalse())
			Expect(cfg.Environment.File).To(Equal("deploy/.env"))
			Expect(cfg.Markdown.Tags).To(ContainElements("stepresolver", "e2e-data"))
			Expect(cfg.Loader.Parallelism).To(Equal(8))
			Expect(cfg.Logging.Level).To(Equal("debug"))
			Expect(cfg.Logging.File).To(Equal("stepresolver.log"))
		})

		It("should return error for nonexistent file", func() {
			_, err := config.Load("nonexistent.yaml")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid YAML", func() {
			tmpFile := filepath.Join(GinkgoT().TempDir(), "invalid_stepresolver.yaml")
			err := os.WriteFile(tmpFile, []byte("{{invalid yaml}}"), 0644)
			Expect(err).ToNot(HaveOccurred())

			_, loadErr := config.Load(tmpFile)
			Expect(loadErr).To(HaveOccurred())
			Expect(loadErr.Error()).To(ContainSubstring("[config]"))
		})
	})

	Describe("DefaultConfig", func() {
		It("should return config with sensible defaults", func() {
			cfg := config.DefaultConfig()
			Expect(cfg).ToNot(BeNil())
			Expect(cfg.Input.Directories).To(ContainElement("descriptions"))
			Expect(cfg.Input.Include).To(ContainElements("*.yaml", "*.md"))
			Expect(*cfg.Input.Recursive).To(BeTrue())
			Expect(cfg.Environment.File).To(Equal(".env"))
			Expect(cfg.Loader.Parallelism).To(Equal(4))
			Expect(cfg.Logging.Level).To(Equal("info"))
		})
	})

	Describe("Validate", func() {
		It("should pass for valid config", func() {
			cfg, err := config.Load(filepath.Join("..", "..", "testdata", "configs", "full.yaml"))
			Expect(err).ToNot(HaveOccurred())
			Expect(config.Validate(cfg)).To(Succeed())
		})

		It("should fail if directories are empty", func() {
			cfg := config.DefaultConfig()
			cfg.Input.Directories = nil
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.directories"))
		})

		It("should fail if markdown tags are empty", func() {
			cfg := config.DefaultConfig()
			cfg.Markdown.Tags = nil
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("markdown.tags"))
		})

		It("should fail if parallelism is not positive", func() {
			cfg := config.DefaultConfig()
			cfg.Loader.Parallelism = 0
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("loader.parallelism"))
		})

		It("should report every problem at once", func() {
			cfg := config.DefaultConfig()
			cfg.Input.Include = nil
			cfg.Logging.Level = "verbose"
			err := config.Validate(cfg)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("input.include"))
			Expect(err.Error()).To(ContainSubstring("logging.level"))
		})
	})
})
