package premium_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/premium-estimator/internal/premium"
)

var _ = Describe("DecodeRequest", func() {
	It("should decode all fields", func() {
		req, err := premium.DecodeRequest(strings.NewReader(
			`{"age":30,"bmi":25.5,"isSmoker":"true","region":"northeast","children":2,"gender":"female"}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Age).NotTo(BeNil())
		Expect(req.BMI).NotTo(BeNil())
		Expect(req.IsSmoker.Flag()).To(BeTrue())
		Expect(req.Region).NotTo(BeNil())
		Expect(req.Children).NotTo(BeNil())
		Expect(req.Gender).NotTo(BeNil())
	})

	It("should treat null the same as absent", func() {
		req, err := premium.DecodeRequest(strings.NewReader(`{"age":null,"bmi":25.5}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Age).To(BeNil())
		Expect(req.BMI).NotTo(BeNil())
		Expect(req.Region).To(BeNil())
	})

	It("should ignore unknown fields", func() {
		req, err := premium.DecodeRequest(strings.NewReader(`{"height":180,"age":30}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Age).NotTo(BeNil())
	})

	It("should keep values of any JSON type", func() {
		req, err := premium.DecodeRequest(strings.NewReader(`{"age":"thirty","region":["a"]}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(req.Age).NotTo(BeNil())
		Expect(req.Region).NotTo(BeNil())
	})

	DescribeTable("should reject bodies that are not a JSON object",
		func(body string) {
			_, err := premium.DecodeRequest(strings.NewReader(body))
			Expect(err).To(MatchError(premium.ErrNotObject))
		},
		Entry("null", `null`),
		Entry("array", `[1,2,3]`),
		Entry("string", `"age"`),
		Entry("number", `42`),
	)

	It("should fail on malformed JSON", func() {
		_, err := premium.DecodeRequest(strings.NewReader(`{"age":`))
		Expect(err).To(HaveOccurred())
		Expect(premium.IsValidationError(err)).To(BeFalse())
	})

	It("should fail on an empty body", func() {
		_, err := premium.DecodeRequest(strings.NewReader(""))
		Expect(err).To(HaveOccurred())
	})
})
