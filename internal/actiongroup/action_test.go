package actiongroup_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepResolver/internal/actiongroup"
	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

var _ = Describe("Attributes", func() {
	It("should keep the first position and last value of a repeated name", func() {
		attrs := actiongroup.NewAttributes(
			actiongroup.Attribute{Name: "selector", Value: "#a"},
			actiongroup.Attribute{Name: "userInput", Value: "x"},
			actiongroup.Attribute{Name: "selector", Value: "#b"},
		)
		Expect(attrs.Keys()).To(Equal([]string{"selector", "userInput"}))
		v, ok := attrs.Get("selector")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("#b"))
		Expect(attrs.Len()).To(Equal(2))
	})

	It("should hand out copies", func() {
		s := step("k", "a", "1")
		all := s.Attributes().All()
		all[0].Value = "changed"
		Expect(s.CustomAttributes()).To(Equal(map[string]string{"a": "1"}))
	})

	It("should treat the zero value as empty", func() {
		var attrs actiongroup.Attributes
		Expect(attrs.Len()).To(BeZero())
		_, ok := attrs.Get("anything")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("FromRecord", func() {
	It("should build a group from a parsed record", func() {
		def := "_defaultAdmin"
		rec := domain.ActionGroupRecord{
			Name: "LoginAsAdmin",
			Arguments: []domain.ArgumentRecord{
				{Name: "adminUser", Default: &def},
				{Name: "target"},
			},
			Steps: []domain.StepRecord{
				{StepKey: "fillUsername", Type: "fillField", Attributes: domain.AttributeRecord{
					{Key: "selector", Value: "#username"},
					{Key: "userInput", Value: "{{adminUser.username}}"},
				}},
			},
		}

		g, err := actiongroup.FromRecord(rec)
		Expect(err).ToNot(HaveOccurred())
		Expect(g.Name()).To(Equal("LoginAsAdmin"))
		Expect(g.Arguments()).To(HaveLen(2))
		Expect(*g.Arguments()[0].Default).To(Equal("_defaultAdmin"))
		Expect(g.Arguments()[1].Default).To(BeNil())
		Expect(g.Steps()).To(HaveLen(1))
		Expect(g.Steps()[0].Type()).To(Equal("fillField"))
		Expect(g.Steps()[0].Attributes().Keys()).To(Equal([]string{"selector", "userInput"}))
	})

	It("should surface duplicate step keys", func() {
		rec := domain.ActionGroupRecord{
			Name:  "Broken",
			Steps: []domain.StepRecord{{StepKey: "a", Type: "click"}, {StepKey: "a", Type: "click"}},
		}
		_, err := actiongroup.FromRecord(rec)
		Expect(err).To(MatchError(actiongroup.ErrDuplicateStepKey))
	})
})
