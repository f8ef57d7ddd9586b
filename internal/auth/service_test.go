package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/kpi-portal/internal"
	userDatamodel "github.com/frahmantamala/kpi-portal/internal/core/datamodel/user"
)

func TestAuth(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Auth Module Suite")
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Mock repository for testing
type mockUserRepository struct {
	usersByEmail  map[string]*userDatamodel.User
	usersByID     map[int64]*userDatamodel.User
	returnError   bool
	errorToReturn error
}

func newMockUserRepository() *mockUserRepository {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("correct_password"), bcrypt.MinCost)

	users := []*userDatamodel.User{
		{ID: 1, Email: "writer@example.com", Name: "نویسنده", PasswordHash: string(hashedPassword), IsActive: true},
		{ID: 2, Email: "admin@example.com", Name: "مدیر", PasswordHash: string(hashedPassword), IsActive: true, IsAdmin: true},
		{ID: 3, Email: "gone@example.com", Name: "غیرفعال", PasswordHash: string(hashedPassword), IsActive: false},
	}

	repo := &mockUserRepository{
		usersByEmail: map[string]*userDatamodel.User{},
		usersByID:    map[int64]*userDatamodel.User{},
	}
	for _, u := range users {
		repo.usersByEmail[u.Email] = u
		repo.usersByID[u.ID] = u
	}
	return repo
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.usersByEmail[email], nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*userDatamodel.User, error) {
	if m.returnError {
		return nil, m.errorToReturn
	}
	return m.usersByID[id], nil
}

func (m *mockUserRepository) setError(err error) {
	m.returnError = true
	m.errorToReturn = err
}

var _ = ginkgo.Describe("AuthService", func() {
	var (
		service       *Service
		mockRepo      *mockUserRepository
		tokenGen      *JWTTokenGenerator
		accessSecret  = "test-access-secret-test-access-secret"
		refreshSecret = "test-refresh-secret-test-refresh-secret"
		ctx           = context.Background()
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(accessSecret, refreshSecret, 15*time.Minute, 24*time.Hour)
		service = NewService(mockRepo, tokenGen, discardLogger)
	})

	ginkgo.Describe("Authenticate", func() {
		ginkgo.Context("when credentials are valid", func() {
			ginkgo.It("should return tokens and the principal", func() {
				// Given
				dto := LoginDTO{Email: "  Writer@Example.com ", Password: "correct_password"}

				// When
				result, err := service.Authenticate(ctx, dto)

				// Then
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(result.AccessToken).ToNot(gomega.BeEmpty())
				gomega.Expect(result.RefreshToken).ToNot(gomega.Equal(result.AccessToken))
				gomega.Expect(result.User.ID).To(gomega.Equal(int64(1)))

				claims, err := tokenGen.ValidateAccessToken(result.AccessToken)
				gomega.Expect(err).ToNot(gomega.HaveOccurred())
				gomega.Expect(claims.UserID).To(gomega.Equal("1"))
				gomega.Expect(claims.Email).To(gomega.Equal("writer@example.com"))
			})
		})

		ginkgo.Context("when credentials are invalid", func() {
			ginkgo.It("should reject a wrong password", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "writer@example.com", Password: "nope"})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject an unknown email the same way", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "who@example.com", Password: "correct_password"})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidCredentials))
			})

			ginkgo.It("should reject inactive users", func() {
				_, err := service.Authenticate(ctx, LoginDTO{Email: "gone@example.com", Password: "correct_password"})
				gomega.Expect(err).To(gomega.MatchError(internal.ErrUserInactive))
			})

			ginkgo.It("should validate input before touching storage", func() {
				mockRepo.setError(errors.New("must not be called"))
				_, err := service.Authenticate(ctx, LoginDTO{Email: "not-an-email"})
				appErr, ok := internal.IsAppError(err)
				gomega.Expect(ok).To(gomega.BeTrue())
				gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeValidation))
			})
		})

		ginkgo.It("should surface storage failures as internal errors", func() {
			mockRepo.setError(errors.New("db down"))
			_, err := service.Authenticate(ctx, LoginDTO{Email: "writer@example.com", Password: "correct_password"})
			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.StatusCode).To(gomega.Equal(500))
		})
	})

	ginkgo.Describe("RefreshTokens", func() {
		ginkgo.It("should issue a new pair for a valid refresh token", func() {
			refresh, err := tokenGen.GenerateRefreshToken(1, "writer@example.com")
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			tokens, err := service.RefreshTokens(ctx, refresh)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(tokens.AccessToken).ToNot(gomega.BeEmpty())
		})

		ginkgo.It("should not accept an access token as refresh token", func() {
			access, _ := tokenGen.GenerateAccessToken(1, "writer@example.com")
			_, err := service.RefreshTokens(ctx, access)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})

		ginkgo.It("should refuse deactivated users", func() {
			refresh, _ := tokenGen.GenerateRefreshToken(3, "gone@example.com")
			_, err := service.RefreshTokens(ctx, refresh)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUserInactive))
		})
	})

	ginkgo.Describe("token validation", func() {
		ginkgo.It("should report expiry", func() {
			past := time.Now().Add(-time.Hour)
			tokenGen.now = func() time.Time { return past }
			access, _ := tokenGen.GenerateAccessToken(1, "writer@example.com")
			tokenGen.now = time.Now

			_, err := tokenGen.ValidateAccessToken(access)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrTokenExpired))
		})

		ginkgo.It("should reject tokens signed with another secret", func() {
			other := NewJWTTokenGenerator("another-access-secret-another-access", refreshSecret, time.Minute, time.Hour)
			access, _ := other.GenerateAccessToken(1, "writer@example.com")
			_, err := tokenGen.ValidateAccessToken(access)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrInvalidToken))
		})
	})

	ginkgo.Describe("LoadPrincipal", func() {
		ginkgo.It("should carry role flags", func() {
			p, err := service.LoadPrincipal(ctx, 2)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			gomega.Expect(p.IsAdmin).To(gomega.BeTrue())
		})

		ginkgo.It("should treat missing users as unauthenticated", func() {
			_, err := service.LoadPrincipal(ctx, 99)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrUnauthenticated))
		})
	})
})
