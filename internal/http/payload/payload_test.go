package payload_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"authapi/internal/core"
	"authapi/internal/http/payload"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Decoder", func() {
	var (
		decoder payload.Decoder
		req     *http.Request
		user    payload.UserRequest
		err     error
	)

	newRequest := func(body string) *http.Request {
		return httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	}

	JustBeforeEach(func() {
		user = payload.UserRequest{}
		err = decoder.DecodeJSONPayload(req, &user)
	})

	When("the body is a valid user", func() {
		BeforeEach(func() {
			req = newRequest(`{"email":"alice@example.com","password":"s3cret"}`)
		})

		It("should decode it", func() {
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ToCredentials()).To(Equal(core.Credentials{
				Email:    "alice@example.com",
				Password: "s3cret",
			}))
		})
	})

	When("the body is empty", func() {
		BeforeEach(func() {
			req = newRequest("")
		})

		It("should return ErrEmptyBody", func() {
			Expect(err).To(MatchError(payload.ErrEmptyBody))
		})
	})

	DescribeTable("rejected bodies",
		func(body, reason string) {
			err := decoder.DecodeJSONPayload(newRequest(body), &payload.UserRequest{})
			Expect(err).To(MatchError(ContainSubstring(reason)))
		},
		Entry("malformed json", `{"email":`, "decoding json payload"),
		Entry("unknown field", `{"email":"bob@example.com","password":"x","admin":true}`, "unknown field"),
		Entry("trailing data", `{"email":"bob@example.com","password":"x"}{}`, "unexpected data"),
		Entry("missing email", `{"password":"x"}`, "email: cannot be blank"),
		Entry("invalid email", `{"email":"not-an-email","password":"x"}`, "email: must be a valid email address"),
		Entry("missing password", `{"email":"bob@example.com"}`, "password: cannot be blank"),
		Entry("empty password", `{"email":"bob@example.com","password":""}`, "password: cannot be blank"),
	)
})
