package log_test

import (
	"authapi/pkg/log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap/zapcore"
)

var _ = Describe("NewZapLogger", func() {
	It("should honour the requested level", func() {
		logger := log.NewZapLogger("authapi", zapcore.WarnLevel)
		Expect(logger).NotTo(BeNil())

		desugared := logger.Desugar()
		Expect(desugared.Core().Enabled(zapcore.InfoLevel)).To(BeFalse())
		Expect(desugared.Core().Enabled(zapcore.WarnLevel)).To(BeTrue())
		Expect(desugared.Core().Enabled(zapcore.ErrorLevel)).To(BeTrue())
	})
})
