package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"authapi/internal/core"
	"authapi/internal/http/handler"
	"authapi/internal/http/handler/fake"
	"authapi/internal/http/handler/middleware"
	"authapi/internal/http/payload"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

var _ = Describe("Router", func() {
	var (
		router      http.Handler
		fakeService *fake.AuthService
		fakeChecker *fake.HealthChecker
		corsOrigins []string
		w           *httptest.ResponseRecorder
		req         *http.Request
	)

	BeforeEach(func() {
		fakeService = new(fake.AuthService)
		fakeService.RegisterReturns(core.Registration{Email: "bob@example.com"}, nil)
		fakeChecker = new(fake.HealthChecker)
		corsOrigins = nil
		w = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		logger := zap.NewNop().Sugar()
		router = handler.NewRouter(logger,
			handler.NewAuthHandler(logger, payload.Decoder{}, fakeService),
			handler.NewHealthHandler(logger, fakeChecker),
			corsOrigins)
		router.ServeHTTP(w, req)
	})

	When("registering through the legacy path", func() {
		BeforeEach(func() {
			body := strings.NewReader(`{"email":"bob@example.com","password":"testpass"}`)
			req = httptest.NewRequest(http.MethodPost, handler.RegisterPath, body)
		})

		It("should create the user", func() {
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(fakeService.RegisterCallCount()).To(Equal(1))
		})
	})

	When("registering through the auth path", func() {
		BeforeEach(func() {
			body := strings.NewReader(`{"email":"bob@example.com","password":"testpass"}`)
			req = httptest.NewRequest(http.MethodPost, handler.AuthRegisterPath, body)
		})

		It("should create the user", func() {
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(fakeService.RegisterCallCount()).To(Equal(1))
		})
	})

	When("the route is unknown", func() {
		BeforeEach(func() {
			req = httptest.NewRequest(http.MethodGet, "/nope", nil)
		})

		It("should answer 404 in json", func() {
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Header().Get("Content-Type")).To(Equal("application/json"))
			Expect(w.Body.String()).To(ContainSubstring("Not found"))
		})
	})

	When("the method is not allowed", func() {
		BeforeEach(func() {
			req = httptest.NewRequest(http.MethodGet, handler.LoginPath, nil)
		})

		It("should answer 405 in json", func() {
			Expect(w.Code).To(Equal(http.StatusMethodNotAllowed))
			Expect(w.Body.String()).To(ContainSubstring("Method not allowed"))
		})
	})

	When("the health route is called", func() {
		BeforeEach(func() {
			req = httptest.NewRequest(http.MethodGet, handler.HealthPath, nil)
			req.Header.Set(middleware.RequestIDHeader, "req-1")
		})

		It("should echo the request id", func() {
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-1"))
		})
	})

	When("cors origins are configured", func() {
		BeforeEach(func() {
			corsOrigins = []string{"https://app.example.com"}
			req = httptest.NewRequest(http.MethodOptions, handler.LoginPath, nil)
			req.Header.Set("Origin", "https://app.example.com")
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		})

		It("should answer the preflight", func() {
			Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("https://app.example.com"))
		})
	})
})
