package rest_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("should be a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should describe every registered API path", func() {
		for _, path := range []string{
			"/api/ping",
			"/api/health",
			"/api/auth/signup",
			"/api/auth/signin",
			"/api/auth/forgot-password",
			"/api/auth/logout",
			"/api/session",
			"/api/profile",
			"/api/profile/avatar",
			"/api/components",
			"/api/components/{id}",
			"/api/projects",
			"/api/projects/{id}",
			"/api/analytics/summary",
			"/api/settings",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})

	It("should keep the auth endpoints public and the rest guarded", func() {
		signIn := doc.Paths.Find("/api/auth/signin")
		Expect(signIn.Post).NotTo(BeNil())

		components := doc.Paths.Find("/api/components")
		Expect(components.Get.Responses.Status(401)).NotTo(BeNil())
	})
})
