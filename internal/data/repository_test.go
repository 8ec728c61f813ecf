package data_test

import (
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/GoE2E-StepResolver/internal/data"
	"github.com/fjglira/GoE2E-StepResolver/internal/domain"
)

var _ = Describe("Repository", func() {
	var records []domain.EntityRecord

	BeforeEach(func() {
		records = []domain.EntityRecord{
			{
				Name: "_defaultCustomer",
				Type: "customer",
				Data: []domain.DataRecord{
					{Key: "FirstName", Value: "John"},
					{Key: "email", Value: "john@example.com"},
				},
				Arrays: []domain.ArrayRecord{
					{Key: "Street", Items: []string{"7700 West Parmer Lane", "Suite 100"}},
				},
				RequiredEntities: []domain.RequiredEntityRecord{
					{Type: "address", Value: "US_Address_TX"},
				},
			},
			{
				Name: "US_Address_TX",
				Type: "address",
				Data: []domain.DataRecord{{Key: "city", Value: "Austin"}},
			},
		}
	})

	It("should look up entities by name with case-insensitive fields", func() {
		repo := data.NewRepositoryFromRecords(records, "")
		Expect(repo.Init()).To(Succeed())

		e, ok := repo.GetObject("_defaultCustomer")
		Expect(ok).To(BeTrue())
		Expect(e.Type()).To(Equal("customer"))
		Expect(e.FieldKeys()).To(Equal([]string{"email", "firstname", "street"}))

		v, ok := e.Field("firstName")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(Equal("John"))
	})

	It("should flatten arrays into list values", func() {
		repo := data.NewRepositoryFromRecords(records, "")
		e, _ := repo.GetObject("_defaultCustomer")

		v, ok := e.Field("street")
		Expect(ok).To(BeTrue())
		Expect(v.IsList()).To(BeTrue())
		Expect(v.Items()).To(Equal([]string{"7700 West Parmer Lane", "Suite 100"}))
		Expect(v.String()).To(Equal(`["7700 West Parmer Lane","Suite 100"]`))
	})

	It("should record linked entities", func() {
		repo := data.NewRepositoryFromRecords(records, "")
		e, _ := repo.GetObject("_defaultCustomer")
		Expect(e.LinkedEntities()).To(Equal(map[string]string{"US_Address_TX": "address"}))
	})

	It("should return false for unknown entities", func() {
		repo := data.NewRepositoryFromRecords(records, "")
		_, ok := repo.GetObject("missing")
		Expect(ok).To(BeFalse())
	})

	It("should let later entities overwrite earlier ones", func() {
		records = append(records, domain.EntityRecord{
			Name: "US_Address_TX",
			Type: "address",
			Data: []domain.DataRecord{{Key: "city", Value: "Dallas"}},
		})
		repo := data.NewRepositoryFromRecords(records, "")
		e, _ := repo.GetObject("US_Address_TX")
		v, _ := e.Field("city")
		Expect(v.String()).To(Equal("Dallas"))
	})

	It("should inject environment values as _ENV", func() {
		repo := data.NewRepositoryFromRecords(records, filepath.Join("..", "..", "testdata", "env", "test.env"))
		e, ok := repo.GetObject(data.EnvObjectName)
		Expect(ok).To(BeTrue())
		v, ok := e.Field("magento_admin_username")
		Expect(ok).To(BeTrue())
		Expect(v.String()).To(Equal("admin"))
		Expect(repo.GetAllObjects()).To(HaveLen(3))
	})

	It("should skip a missing environment file", func() {
		repo := data.NewRepositoryFromRecords(records, filepath.Join(GinkgoT().TempDir(), ".env"))
		Expect(repo.Init()).To(Succeed())
		_, ok := repo.GetObject(data.EnvObjectName)
		Expect(ok).To(BeFalse())
	})

	It("should fail to build without entities", func() {
		repo := data.NewRepositoryFromRecords(nil, "")
		err := repo.Init()
		Expect(err).To(HaveOccurred())
		Expect(errors.Is(err, data.ErrNoEntities)).To(BeTrue())

		_, ok := repo.GetObject("anything")
		Expect(ok).To(BeFalse())
		Expect(repo.GetAllObjects()).To(BeNil())
	})

	It("should surface source errors", func() {
		boom := errors.New("boom")
		repo := data.NewRepository(func() ([]domain.EntityRecord, error) { return nil, boom }, "")
		Expect(errors.Is(repo.Init(), boom)).To(BeTrue())
	})

	It("should build exactly once under concurrent first access", func() {
		var calls atomic.Int32
		repo := data.NewRepository(func() ([]domain.EntityRecord, error) {
			calls.Add(1)
			return records, nil
		}, "")

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				defer GinkgoRecover()
				_, ok := repo.GetObject("_defaultCustomer")
				Expect(ok).To(BeTrue())
			}()
		}
		wg.Wait()
		Expect(calls.Load()).To(Equal(int32(1)))
	})

	It("should hand out copies of the entity mapping", func() {
		repo := data.NewRepositoryFromRecords(records, "")
		all := repo.GetAllObjects()
		delete(all, "US_Address_TX")
		_, ok := repo.GetObject("US_Address_TX")
		Expect(ok).To(BeTrue())
	})
})

var _ = Describe("EntityDataObject", func() {
	It("should not be affected by changes to its inputs", func() {
		fields := map[string]data.Value{"Key": data.Scalar("v")}
		linked := map[string]string{"other": "type"}
		e := data.NewEntityDataObject("e", "t", fields, linked)

		fields["key"] = data.Scalar("changed")
		linked["x"] = "y"

		v, _ := e.Field("KEY")
		Expect(v.String()).To(Equal("v"))
		Expect(e.LinkedEntities()).To(HaveLen(1))
	})
})
