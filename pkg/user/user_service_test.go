package user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/pkg/jwt"
)

type fakeGoogleVerifier struct {
	info domain.GoogleUserInfo
	err  error
}

func (f *fakeGoogleVerifier) FetchUserInfo(context.Context, string) (domain.GoogleUserInfo, error) {
	return f.info, f.err
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(&entities.User{}, &entities.RevokedToken{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func newTestService(db *gorm.DB, google GoogleVerifier) (UserService, UserRepository, jwt.JWTService) {
	repository := NewUserRepository(db)
	jwtService := jwt.NewJWTService()
	if google == nil {
		google = &fakeGoogleVerifier{}
	}
	return NewUserService(repository, jwtService, google), repository, jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	service, _, jwtService := newTestService(db, nil)

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", registered.TokenType)
	assert.NotEmpty(t, registered.AccessToken)

	userID, _, err := jwtService.GetUserIDByToken(registered.AccessToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, userID)

	loggedIn, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, loggedIn.AccessToken)
}

func TestRegister_RequiresContact(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Password: "secret-password",
	})

	assert.ErrorIs(t, err, domain.ErrContactRequired)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	_, err = service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "copycat",
		Email:    "cook@example.com",
		Password: "other-password",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegisterAndLogin_ByPhone(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Phone:    "081234567890",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	loggedIn, err := service.Login(context.Background(), domain.LoginRequest{
		Phone:    "081234567890",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, loggedIn.AccessToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	_, err = service.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogin_UnknownEmail(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, nil)

	_, err := service.Login(context.Background(), domain.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrCredentialsInvalid)
}

func TestLogout_RevokesToken(t *testing.T) {
	db := setupTestDB(t)
	service, repository, jwtService := newTestService(db, nil)

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	err = service.Logout(context.Background(), registered.AccessToken)
	assert.NoError(t, err)

	_, jti, err := jwtService.GetUserIDByToken(registered.AccessToken)
	assert.NoError(t, err)

	revoked, err := repository.IsTokenRevoked(context.Background(), jti)
	assert.NoError(t, err)
	assert.True(t, revoked)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	service, _, jwtService := newTestService(db, nil)

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	userID, _, _ := jwtService.GetUserIDByToken(registered.AccessToken)

	profile, err := service.UpdateProfile(context.Background(), domain.UpdateProfileRequest{
		Nickname: "chef",
		Bio:      "I cook things",
	}, userID)

	assert.NoError(t, err)
	assert.Equal(t, "chef", profile.Nickname)
	assert.Equal(t, "I cook things", profile.Bio)
	assert.Equal(t, "cook@example.com", profile.Email)
}

func TestUpdateProfile_EmailTaken(t *testing.T) {
	db := setupTestDB(t)
	service, _, jwtService := newTestService(db, nil)

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "first",
		Email:    "first@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "second",
		Email:    "second@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	userID, _, _ := jwtService.GetUserIDByToken(registered.AccessToken)

	_, err = service.UpdateProfile(context.Background(), domain.UpdateProfileRequest{
		Email: "first@example.com",
	}, userID)

	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestGoogleLogin_CreatesNewUser(t *testing.T) {
	db := setupTestDB(t)
	service, repository, jwtService := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{
			Sub:     "google-sub-1",
			Email:   "new@example.com",
			Name:    "New User",
			Picture: "https://example.com/pic.png",
		},
	})

	res, err := service.GoogleLogin(context.Background(), domain.GoogleLoginRequest{Credential: "token"})
	assert.NoError(t, err)

	userID, _, err := jwtService.GetUserIDByToken(res.AccessToken)
	assert.NoError(t, err)

	created, err := repository.GetUserByID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, "New User", created.Nickname)
	assert.Equal(t, "new@example.com", *created.Email)
	assert.Equal(t, "google", *created.Provider)
	assert.Equal(t, "google-sub-1", *created.ProviderID)
}

func TestGoogleLogin_BindsToExistingEmail(t *testing.T) {
	db := setupTestDB(t)
	service, repository, _ := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{
			Sub:   "google-sub-2",
			Email: "cook@example.com",
			Name:  "Cook",
		},
	})

	_, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)

	_, err = service.GoogleLogin(context.Background(), domain.GoogleLoginRequest{Credential: "token"})
	assert.NoError(t, err)

	bound, err := repository.GetUserByProvider(context.Background(), "google", "google-sub-2")
	assert.NoError(t, err)
	assert.Equal(t, "cook", bound.Nickname)
}

func TestGoogleLogin_ReusesLinkedAccount(t *testing.T) {
	db := setupTestDB(t)
	service, _, jwtService := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{
			Sub:   "google-sub-3",
			Email: "returning@example.com",
			Name:  "Returning",
		},
	})

	first, err := service.GoogleLogin(context.Background(), domain.GoogleLoginRequest{Credential: "token"})
	assert.NoError(t, err)
	firstID, _, _ := jwtService.GetUserIDByToken(first.AccessToken)

	second, err := service.GoogleLogin(context.Background(), domain.GoogleLoginRequest{Credential: "token"})
	assert.NoError(t, err)
	secondID, _, _ := jwtService.GetUserIDByToken(second.AccessToken)

	assert.Equal(t, firstID, secondID)
}

func TestGoogleLogin_IncompleteInfo(t *testing.T) {
	db := setupTestDB(t)
	service, _, _ := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{Sub: "google-sub-4"},
	})

	_, err := service.GoogleLogin(context.Background(), domain.GoogleLoginRequest{Credential: "token"})
	assert.ErrorIs(t, err, domain.ErrGoogleInfoIncomplete)
}

func TestLinkGoogleAccount(t *testing.T) {
	db := setupTestDB(t)
	service, repository, jwtService := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{Sub: "google-sub-5", Email: "cook@gmail.com"},
	})

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	userID, _, _ := jwtService.GetUserIDByToken(registered.AccessToken)

	err = service.LinkGoogleAccount(context.Background(), domain.GoogleLinkRequest{Token: "token"}, userID)
	assert.NoError(t, err)

	linked, err := repository.GetUserByID(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, "google", *linked.Provider)
	assert.Equal(t, "google-sub-5", *linked.ProviderID)
}

func TestLinkGoogleAccount_AlreadyLinkedElsewhere(t *testing.T) {
	db := setupTestDB(t)
	service, _, jwtService := newTestService(db, &fakeGoogleVerifier{
		info: domain.GoogleUserInfo{Sub: "google-sub-6", Email: "claimed@gmail.com"},
	})

	// The Google identity is already bound to another account.
	provider := "google"
	providerID := "google-sub-6"
	claimedEmail := "claimed@example.com"
	db.Create(&entities.User{
		ID:         uuid.New(),
		Nickname:   "claimer",
		Email:      &claimedEmail,
		Password:   "hashedpassword",
		Provider:   &provider,
		ProviderID: &providerID,
	})

	registered, err := service.Register(context.Background(), domain.RegisterRequest{
		Nickname: "cook",
		Email:    "cook@example.com",
		Password: "secret-password",
	})
	assert.NoError(t, err)
	userID, _, _ := jwtService.GetUserIDByToken(registered.AccessToken)

	err = service.LinkGoogleAccount(context.Background(), domain.GoogleLinkRequest{Token: "token"}, userID)
	assert.ErrorIs(t, err, domain.ErrGoogleAlreadyLinked)
}
