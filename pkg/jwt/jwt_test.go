package jwt_test

import (
	"time"

	tokenIssuer "authapi/pkg/jwt"

	"github.com/golang-jwt/jwt"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JWTService", func() {
	var (
		service *tokenIssuer.JWTService
		info    tokenIssuer.TokenInfo
	)

	BeforeEach(func() {
		service = tokenIssuer.NewJWTService([]byte("test-secret"))
		info = tokenIssuer.TokenInfo{
			Subject:    "alice@example.com",
			Type:       tokenIssuer.TypeRefresh,
			Expiration: time.Hour,
		}
	})

	AfterEach(func() {
		tokenIssuer.TimeNow = time.Now
	})

	Describe("Generate", func() {
		It("should build an HS512 token carrying identity and type", func() {
			token := service.Generate(info)
			Expect(token.Method).To(Equal(jwt.SigningMethodHS512))

			claims, ok := token.Claims.(jwt.MapClaims)
			Expect(ok).To(BeTrue())
			Expect(claims[tokenIssuer.ClaimSubject]).To(Equal("alice@example.com"))
			Expect(claims[tokenIssuer.ClaimType]).To(Equal(tokenIssuer.TypeRefresh))
			Expect(claims["jti"]).NotTo(BeEmpty())
			Expect(claims["exp"].(int64) - claims["iat"].(int64)).To(Equal(int64(3600)))
		})

		It("should give every token a distinct id", func() {
			first := service.Generate(info).Claims.(jwt.MapClaims)["jti"]
			second := service.Generate(info).Claims.(jwt.MapClaims)["jti"]
			Expect(first).NotTo(Equal(second))
		})
	})

	Describe("Validate", func() {
		var (
			signed string
			claims jwt.MapClaims
			err    error
		)

		JustBeforeEach(func() {
			claims, err = service.Validate(signed)
		})

		When("the token was signed by the same service", func() {
			BeforeEach(func() {
				var signErr error
				signed, signErr = service.Sign(service.Generate(info))
				Expect(signErr).NotTo(HaveOccurred())
			})

			It("should return its claims", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(claims[tokenIssuer.ClaimSubject]).To(Equal("alice@example.com"))
				Expect(claims[tokenIssuer.ClaimType]).To(Equal(tokenIssuer.TypeRefresh))
			})
		})

		When("the token was signed with another secret", func() {
			BeforeEach(func() {
				other := tokenIssuer.NewJWTService([]byte("other-secret"))
				var signErr error
				signed, signErr = other.Sign(other.Generate(info))
				Expect(signErr).NotTo(HaveOccurred())
			})

			It("should reject it", func() {
				Expect(err).To(MatchError(tokenIssuer.ErrTokenNotValid))
				Expect(claims).To(BeNil())
			})
		})

		When("the token has expired", func() {
			BeforeEach(func() {
				tokenIssuer.TimeNow = func() time.Time {
					return time.Now().Add(-2 * time.Hour)
				}
				var signErr error
				signed, signErr = service.Sign(service.Generate(info))
				Expect(signErr).NotTo(HaveOccurred())
				tokenIssuer.TimeNow = time.Now
			})

			It("should return ErrTokenExpired", func() {
				Expect(err).To(MatchError(tokenIssuer.ErrTokenExpired))
			})
		})

		When("the token uses the none algorithm", func() {
			BeforeEach(func() {
				token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
					tokenIssuer.ClaimSubject: "mallory@example.com",
				})
				var signErr error
				signed, signErr = token.SignedString(jwt.UnsafeAllowNoneSignatureType)
				Expect(signErr).NotTo(HaveOccurred())
			})

			It("should reject it", func() {
				Expect(err).To(MatchError(tokenIssuer.ErrTokenNotValid))
			})
		})

		When("the token is garbage", func() {
			BeforeEach(func() {
				signed = "not.a.token"
			})

			It("should reject it", func() {
				Expect(err).To(MatchError(tokenIssuer.ErrTokenNotValid))
			})
		})
	})
})
