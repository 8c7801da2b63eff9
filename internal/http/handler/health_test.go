package handler_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"

	"authapi/internal/http/handler"
	"authapi/internal/http/handler/fake"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("HealthHandler", func() {
	var (
		hh          *handler.HealthHandler
		fakeChecker *fake.HealthChecker
		w           *httptest.ResponseRecorder
		response    map[string]string
	)

	BeforeEach(func() {
		fakeChecker = new(fake.HealthChecker)
		w = httptest.NewRecorder()
		hh = handler.NewHealthHandler(zap.NewNop().Sugar(), fakeChecker)
	})

	JustBeforeEach(func() {
		hh.HandleHealth(w, httptest.NewRequest(http.MethodGet, handler.HealthPath, nil))
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
	})

	When("the store answers", func() {
		It("should report ok", func() {
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(response["status"]).To(Equal("ok"))
			Expect(fakeChecker.PingCallCount()).To(Equal(1))
		})
	})

	When("the store is down", func() {
		BeforeEach(func() {
			fakeChecker.PingReturns(errors.New("connection refused"))
		})

		It("should return status 503", func() {
			Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
			Expect(response["status"]).To(Equal("unavailable"))
		})
	})
})
