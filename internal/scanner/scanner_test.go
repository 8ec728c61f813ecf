package scanner_test

import (
	"errors"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
	"github.com/fjglira/GoE2E-StepResolver/internal/scanner"
)

var descriptionsDir = filepath.Join("..", "..", "testdata", "descriptions")

var _ = Describe("Scanner", func() {
	var s *scanner.FileScanner

	BeforeEach(func() {
		s = scanner.NewScanner(true)
	})

	It("should find yaml description files in testdata", func() {
		files, err := s.Scan(descriptionsDir, []string{"*.yaml", "*.yml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
	})

	It("should find markdown files in testdata", func() {
		files, err := s.Scan(descriptionsDir, []string{"*.md"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(1))
		Expect(filepath.Base(files[0])).To(Equal("checkout.md"))
	})

	It("should return sorted file paths", func() {
		files, err := s.Scan(descriptionsDir, []string{"*.yaml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(3))
		Expect(files[0]).To(HaveSuffix(filepath.Join("actiongroups", "login.yaml")))
		Expect(files[1]).To(HaveSuffix(filepath.Join("data", "customer.yaml")))
		Expect(files[2]).To(HaveSuffix(filepath.Join("pages", "admin.yaml")))
	})

	It("should respect exclude patterns", func() {
		files, err := s.Scan(descriptionsDir, []string{"*.yaml", "*.md"}, []string{"docs/**", "admin.yaml"})
		Expect(err).ToNot(HaveOccurred())
		Expect(files).To(HaveLen(2))
		for _, f := range files {
			Expect(f).ToNot(ContainSubstring("checkout.md"))
			Expect(f).ToNot(ContainSubstring("admin.yaml"))
		}
	})

	It("should handle non-recursive mode", func() {
		s = scanner.NewScanner(false)
		files, err := s.Scan(descriptionsDir, []string{"*.md", "*.yaml"}, nil)
		Expect(err).ToNot(HaveOccurred())
		// Every description lives in a subdirectory
		Expect(files).To(BeEmpty())
	})

	It("should return error for nonexistent directory", func() {
		_, err := s.Scan("nonexistent_dir", []string{"*.md"}, nil)
		var domErr *domain.Error
		Expect(errors.As(err, &domErr)).To(BeTrue())
		Expect(domErr.Phase).To(Equal("scan"))
		Expect(domErr.Message).To(Equal("failed to scan description directory"))
		Expect(domErr.Suggestion).To(ContainSubstring("input.directories"))
	})
})

var _ = Describe("ScanAll", func() {
	It("should merge roots without duplicates", func() {
		s := scanner.NewScanner(true)
		roots := []string{
			filepath.Join(descriptionsDir, "data"),
			descriptionsDir,
		}
		files, failed := scanner.ScanAll(s, roots, []string{"*.yaml"}, nil)
		Expect(failed).To(BeEmpty())
		Expect(files).To(HaveLen(3))
		Expect(files[0]).To(HaveSuffix(filepath.Join("data", "customer.yaml")))
	})

	It("should report roots that cannot be scanned", func() {
		s := scanner.NewScanner(true)
		files, failed := scanner.ScanAll(s, []string{"nonexistent_dir", descriptionsDir}, []string{"*.md"}, nil)
		Expect(files).To(HaveLen(1))
		Expect(failed).To(HaveKey("nonexistent_dir"))
	})
})
