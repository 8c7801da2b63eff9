package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"authapi/internal/http/handler/middleware"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("RequestIDMiddleware", func() {
	var (
		seen string
		w    *httptest.ResponseRecorder
		req  *http.Request
		hdlr http.Handler
	)

	BeforeEach(func() {
		seen = ""
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
		hdlr = middleware.NewRequestIDMiddleware().RequestID(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen = middleware.RequestIDFromContext(r.Context())
		}))
	})

	JustBeforeEach(func() {
		hdlr.ServeHTTP(w, req)
	})

	When("the caller sends no request id", func() {
		It("should generate one", func() {
			_, err := uuid.Parse(seen)
			Expect(err).NotTo(HaveOccurred())
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal(seen))
		})
	})

	When("the caller sends a request id", func() {
		BeforeEach(func() {
			req.Header.Set(middleware.RequestIDHeader, "req-123")
		})

		It("should keep it", func() {
			Expect(seen).To(Equal("req-123"))
			Expect(w.Header().Get(middleware.RequestIDHeader)).To(Equal("req-123"))
		})
	})
})

var _ = Describe("LoggingMiddleware", func() {
	It("should log the handled request with its status", func() {
		core, logs := observer.New(zap.InfoLevel)
		logger := zap.New(core).Sugar()

		hdlr := middleware.NewLoggingMiddleware(logger).Logging(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))
		hdlr = middleware.NewRequestIDMiddleware().RequestID(hdlr)

		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.Header.Set(middleware.RequestIDHeader, "req-456")
		hdlr.ServeHTTP(httptest.NewRecorder(), req)

		entries := logs.FilterMessage("request handled").All()
		Expect(entries).To(HaveLen(1))
		fields := entries[0].ContextMap()
		Expect(fields["method"]).To(Equal(http.MethodPost))
		Expect(fields["path"]).To(Equal("/auth/login"))
		Expect(fields["status"]).To(BeEquivalentTo(http.StatusTeapot))
		Expect(fields["request_id"]).To(Equal("req-456"))
	})
})
