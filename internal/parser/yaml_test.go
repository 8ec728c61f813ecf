package parser_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
	"github.com/fjglira/GoE2E-StepResolver/internal/parser"
)

var _ = Describe("YAMLParser", func() {
	var p *parser.YAMLParser

	BeforeEach(func() {
		p = parser.NewYAMLParser()
	})

	readFixture := func(parts ...string) []byte {
		content, err := os.ReadFile(filepath.Join(append([]string{"..", "..", "testdata", "descriptions"}, parts...)...))
		Expect(err).ToNot(HaveOccurred())
		return content
	}

	It("should decode entities with data, arrays and links", func() {
		descs, err := p.Parse("customer.yaml", readFixture("data", "customer.yaml"))
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.Entities).To(HaveLen(2))

		customer := descs.Entities[0]
		Expect(customer.Name).To(Equal("_defaultCustomer"))
		Expect(customer.Type).To(Equal("customer"))
		Expect(customer.Data).To(ContainElement(HaveField("Key", "FirstName")))
		Expect(customer.Data).To(ContainElement(HaveField("Value", "42")))
		Expect(customer.Arrays[0].Items).To(Equal([]string{"7700 West Parmer Lane", "Suite 100"}))
		Expect(customer.RequiredEntities[0].Value).To(Equal("US_Address_TX"))
		Expect(customer.Source).To(Equal("customer.yaml"))
	})

	It("should decode operations with ordered headers and query parameters", func() {
		descs, err := p.Parse("customer.yaml", readFixture("data", "customer.yaml"))
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.Operations).To(HaveLen(2))

		create := descs.Operations[0]
		Expect(create.Name).To(Equal("CreateCustomer"))
		Expect(create.DataType).To(Equal("customer"))
		Expect(create.Query).To(Equal(domain.AttributeRecord{{Key: "storeId", Value: "1"}, {Key: "website", Value: "base"}}))
		Expect(create.Fields[0].Required).To(BeTrue())
		Expect(create.Source).To(Equal("customer.yaml"))
	})

	It("should decode pages and sections", func() {
		descs, err := p.Parse("admin.yaml", readFixture("pages", "admin.yaml"))
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.Pages).To(HaveLen(1))
		Expect(descs.Pages[0].URLPath).To(Equal("/admin/admin"))
		Expect(descs.Pages[0].Sections).To(Equal([]string{"AdminLoginFormSection"}))
		Expect(descs.Sections).To(HaveLen(2))

		signIn := descs.Sections[0].Elements[2]
		Expect(signIn.Clickable).To(BeTrue())
		Expect(signIn.Timeout).ToNot(BeNil())
		Expect(*signIn.Timeout).To(Equal(30))
	})

	It("should decode action groups with optional defaults", func() {
		descs, err := p.Parse("login.yaml", readFixture("actiongroups", "login.yaml"))
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.ActionGroups).To(HaveLen(2))

		login := descs.ActionGroups[0]
		Expect(login.Arguments[0].Default).ToNot(BeNil())
		Expect(*login.Arguments[0].Default).To(Equal("_defaultAdmin"))
		Expect(login.Steps).To(HaveLen(3))

		find := descs.ActionGroups[1]
		Expect(find.Arguments[0].Default).To(BeNil())
	})

	It("should merge multiple documents", func() {
		content := []byte("entities:\n  - name: a\n    type: t\n---\nentities:\n  - name: b\n    type: t\n")
		descs, err := p.Parse("multi.yaml", content)
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.Entities).To(HaveLen(2))
	})

	It("should reject unknown keys", func() {
		_, err := p.Parse("typo.yaml", []byte("entitys:\n  - name: a\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("[parse] typo.yaml"))
	})

	It("should reject records without a name", func() {
		_, err := p.Parse("noname.yaml", []byte("sections:\n  - elements: []\n"))
		Expect(err).To(HaveOccurred())
		Expect(err.Error()).To(ContainSubstring("section #1 has no name"))
	})

	It("should reject non-scalar attributes", func() {
		content := []byte("actionGroups:\n  - name: g\n    steps:\n      - stepKey: s\n        type: t\n        attributes:\n          a: [1, 2]\n")
		_, err := p.Parse("attrs.yaml", content)
		Expect(err).To(HaveOccurred())
	})

	It("should accept an empty file", func() {
		descs, err := p.Parse("empty.yaml", nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(descs.Empty()).To(BeTrue())
	})
})

var _ = Describe("DefaultRegistry", func() {
	It("should select parsers by extension", func() {
		r := parser.NewDefaultRegistry([]string{"stepresolver"})

		p, err := r.ParserFor(".yml")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&parser.YAMLParser{}))

		p, err = r.ParserFor("MD")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).To(BeAssignableToTypeOf(&parser.MarkdownParser{}))
	})

	It("should fail for unknown extensions without a fallback", func() {
		_, err := parser.NewRegistry().ParserFor(".adoc")
		Expect(err).To(HaveOccurred())
	})

	It("should use the fallback parser", func() {
		r := parser.NewRegistry()
		r.SetFallback(parser.NewYAMLParser())
		p, err := r.ParserFor(".txt")
		Expect(err).ToNot(HaveOccurred())
		Expect(p).ToNot(BeNil())
	})
})
