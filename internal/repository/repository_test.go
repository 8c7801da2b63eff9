package repository_test

import (
	"context"
	"errors"

	"authapi/internal/db"
	"authapi/internal/repository"
	"authapi/internal/repository/fake"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("UserRepository", func() {
	var (
		repo         *repository.UserRepository
		fakeDatabase *fake.Database
		ctx          context.Context
		fakeErr      error
	)

	BeforeEach(func() {
		fakeDatabase = new(fake.Database)
		repo = repository.NewUserRepository(fakeDatabase)
		ctx = context.Background()
		fakeErr = errors.New("fake error")
	})

	Describe("Migrate", func() {
		var err error

		JustBeforeEach(func() {
			err = repo.Migrate()
		})

		When("migration succeeds", func() {
			It("should migrate the users table", func() {
				Expect(err).NotTo(HaveOccurred())

				Expect(fakeDatabase.MigrateModelsCallCount()).To(Equal(1))
				models := fakeDatabase.MigrateModelsArgsForCall(0)
				Expect(models).To(HaveLen(1))
				Expect(models[0]).To(BeAssignableToTypeOf(&repository.User{}))
			})
		})

		When("migration fails", func() {
			BeforeEach(func() {
				fakeDatabase.MigrateModelsReturns(errors.New("migration error"))
			})

			It("should return an error", func() {
				Expect(err).To(MatchError("migrate table(s): migration error"))
			})
		})
	})

	Describe("CreateUser", func() {
		var (
			user *repository.User
			err  error
		)

		BeforeEach(func() {
			user = &repository.User{
				Email:        "alice@example.com",
				PasswordHash: "$2a$10$hash",
			}
		})

		JustBeforeEach(func() {
			err = repo.CreateUser(ctx, user)
		})

		When("the insert succeeds", func() {
			It("should pass the user to the database", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(fakeDatabase.CreateCallCount()).To(Equal(1))
				argCtx, record := fakeDatabase.CreateArgsForCall(0)
				Expect(argCtx).To(Equal(ctx))
				Expect(record).To(BeIdenticalTo(user))
			})
		})

		When("the email already exists", func() {
			BeforeEach(func() {
				fakeDatabase.CreateReturns(db.ErrDuplicate)
			})

			It("should return ErrEmailTaken", func() {
				Expect(err).To(MatchError(repository.ErrEmailTaken))
			})
		})

		When("the insert fails", func() {
			BeforeEach(func() {
				fakeDatabase.CreateReturns(fakeErr)
			})

			It("should wrap the error", func() {
				Expect(err).To(MatchError(fakeErr))
				Expect(err).To(MatchError(ContainSubstring("create user")))
			})
		})
	})

	Describe("GetUserByEmail", func() {
		var (
			user repository.User
			err  error
		)

		JustBeforeEach(func() {
			user, err = repo.GetUserByEmail(ctx, "alice@example.com")
		})

		When("the user exists", func() {
			BeforeEach(func() {
				fakeDatabase.GetOneByStub = func(_ context.Context, column string, value any, entity any) error {
					u := entity.(*repository.User)
					u.ID = 1
					u.Email = value.(string)
					u.PasswordHash = "$2a$10$hash"
					return nil
				}
			})

			It("should look up by email and return the row", func() {
				Expect(err).NotTo(HaveOccurred())
				Expect(user.ID).To(Equal(uint(1)))
				Expect(user.Email).To(Equal("alice@example.com"))

				_, column, value, _ := fakeDatabase.GetOneByArgsForCall(0)
				Expect(column).To(Equal("email"))
				Expect(value).To(Equal("alice@example.com"))
			})
		})

		When("the user does not exist", func() {
			BeforeEach(func() {
				fakeDatabase.GetOneByReturns(db.ErrNotFound)
			})

			It("should return ErrUserNotFound", func() {
				Expect(err).To(MatchError(repository.ErrUserNotFound))
				Expect(user).To(Equal(repository.User{}))
			})
		})

		When("the lookup fails", func() {
			BeforeEach(func() {
				fakeDatabase.GetOneByReturns(fakeErr)
			})

			It("should wrap the error", func() {
				Expect(err).To(MatchError(fakeErr))
				Expect(errors.Is(err, repository.ErrUserNotFound)).To(BeFalse())
			})
		})
	})
})
