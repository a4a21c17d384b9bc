package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"recipeshare/domain"
	"recipeshare/entities"
	"recipeshare/internal/utils/mailing"
	"recipeshare/pkg/jwt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const providerGoogle = "google"

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error)
		Logout(ctx context.Context, token string) error
		GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error)
		GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (domain.AuthResponse, error)
		LinkGoogleAccount(ctx context.Context, req domain.GoogleLinkRequest, userID string) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		google         GoogleVerifier
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, google GoogleVerifier) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		google:         google,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	if req.Email == "" && req.Phone == "" {
		return domain.AuthResponse{}, domain.ErrContactRequired
	}

	if req.Email != "" {
		taken, err := s.userRepository.EmailTaken(ctx, req.Email, uuid.Nil)
		if err != nil {
			return domain.AuthResponse{}, err
		}
		if taken {
			return domain.AuthResponse{}, domain.ErrEmailAlreadyExists
		}
	}

	if req.Phone != "" {
		taken, err := s.userRepository.PhoneTaken(ctx, req.Phone, uuid.Nil)
		if err != nil {
			return domain.AuthResponse{}, err
		}
		if taken {
			return domain.AuthResponse{}, domain.ErrPhoneAlreadyExists
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	newUser := &entities.User{
		ID:       uuid.New(),
		Nickname: req.Nickname,
		Password: string(hashed),
	}
	if req.Email != "" {
		newUser.Email = &req.Email
	}
	if req.Phone != "" {
		newUser.Phone = &req.Phone
	}

	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.AuthResponse{}, err
	}

	if newUser.Email != nil {
		body := fmt.Sprintf("<p>Hi %s, welcome aboard! Your account is ready.</p>", newUser.Nickname)
		if err := mailing.SendMail(*newUser.Email, "Welcome to RecipeShare", body); err != nil {
			log.Printf("failed to send welcome mail: %v", err)
		}
	}

	return s.issueToken(newUser), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var (
		found *entities.User
		err   error
	)

	switch {
	case req.Email != "":
		found, err = s.userRepository.GetUserByEmail(ctx, req.Email)
	case req.Phone != "":
		found, err = s.userRepository.GetUserByPhone(ctx, req.Phone)
	default:
		return domain.AuthResponse{}, domain.ErrContactRequired
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.AuthResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.AuthResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(found.Password), []byte(req.Password)); err != nil {
		return domain.AuthResponse{}, domain.ErrCredentialsInvalid
	}

	return s.issueToken(found), nil
}

func (s *userService) Logout(ctx context.Context, token string) error {
	userID, jti, err := s.jwtService.GetUserIDByToken(token)
	if err != nil {
		return err
	}

	expiresAt, err := s.jwtService.GetTokenExpiry(token)
	if err != nil {
		return err
	}

	jtiUUID, err := uuid.Parse(jti)
	if err != nil {
		return domain.ErrParseUUID
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.ErrParseUUID
	}

	return s.userRepository.RevokeToken(ctx, &entities.RevokedToken{
		ID:        jtiUUID,
		UserID:    userUUID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	})
}

func (s *userService) GetProfile(ctx context.Context, userID string) (domain.ProfileResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}
	return toProfileResponse(found), nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (domain.ProfileResponse, error) {
	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ProfileResponse{}, domain.ErrUserNotFound
		}
		return domain.ProfileResponse{}, err
	}

	if req.Email != "" {
		taken, err := s.userRepository.EmailTaken(ctx, req.Email, found.ID)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		if taken {
			return domain.ProfileResponse{}, domain.ErrEmailAlreadyExists
		}
		found.Email = &req.Email
	}

	if req.Phone != "" {
		taken, err := s.userRepository.PhoneTaken(ctx, req.Phone, found.ID)
		if err != nil {
			return domain.ProfileResponse{}, err
		}
		if taken {
			return domain.ProfileResponse{}, domain.ErrPhoneAlreadyExists
		}
		found.Phone = &req.Phone
	}

	if req.Nickname != "" {
		found.Nickname = req.Nickname
	}
	if req.Bio != "" {
		found.Bio = req.Bio
	}
	if req.Avatar != "" {
		found.Avatar = req.Avatar
	}

	if err := s.userRepository.UpdateUser(ctx, found); err != nil {
		return domain.ProfileResponse{}, err
	}
	return toProfileResponse(found), nil
}

func (s *userService) GoogleLogin(ctx context.Context, req domain.GoogleLoginRequest) (domain.AuthResponse, error) {
	info, err := s.google.FetchUserInfo(ctx, req.Credential)
	if err != nil {
		return domain.AuthResponse{}, err
	}
	if info.Sub == "" || info.Email == "" {
		return domain.AuthResponse{}, domain.ErrGoogleInfoIncomplete
	}

	found, err := s.userRepository.GetUserByProvider(ctx, providerGoogle, info.Sub)
	if err == nil {
		return s.issueToken(found), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	// No user carries this Google identity yet: bind it to the account with
	// the same email, or create a fresh one.
	found, err = s.userRepository.GetUserByEmail(ctx, info.Email)
	if err == nil {
		provider := providerGoogle
		providerID := info.Sub
		found.Provider = &provider
		found.ProviderID = &providerID
		if err := s.userRepository.UpdateUser(ctx, found); err != nil {
			return domain.AuthResponse{}, err
		}
		return s.issueToken(found), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.AuthResponse{}, err
	}

	// Random placeholder so the account has no usable local password.
	hashed, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return domain.AuthResponse{}, err
	}

	provider := providerGoogle
	providerID := info.Sub
	email := info.Email
	newUser := &entities.User{
		ID:         uuid.New(),
		Nickname:   info.Name,
		Email:      &email,
		Password:   string(hashed),
		Avatar:     info.Picture,
		Provider:   &provider,
		ProviderID: &providerID,
	}
	if err := s.userRepository.CreateUser(ctx, newUser); err != nil {
		return domain.AuthResponse{}, err
	}

	return s.issueToken(newUser), nil
}

func (s *userService) LinkGoogleAccount(ctx context.Context, req domain.GoogleLinkRequest, userID string) error {
	info, err := s.google.FetchUserInfo(ctx, req.Token)
	if err != nil {
		return err
	}
	if info.Sub == "" {
		return domain.ErrGoogleInfoIncomplete
	}

	existing, err := s.userRepository.GetUserByProvider(ctx, providerGoogle, info.Sub)
	if err == nil && existing.ID.String() != userID {
		return domain.ErrGoogleAlreadyLinked
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	found, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	provider := providerGoogle
	providerID := info.Sub
	found.Provider = &provider
	found.ProviderID = &providerID
	return s.userRepository.UpdateUser(ctx, found)
}

func (s *userService) issueToken(u *entities.User) domain.AuthResponse {
	return domain.AuthResponse{
		AccessToken: s.jwtService.GenerateTokenUser(u.ID.String()),
		TokenType:   "Bearer",
	}
}

func toProfileResponse(u *entities.User) domain.ProfileResponse {
	resp := domain.ProfileResponse{
		ID:       u.ID.String(),
		Nickname: u.Nickname,
		Avatar:   u.Avatar,
		Bio:      u.Bio,
	}
	if u.Email != nil {
		resp.Email = *u.Email
	}
	if u.Phone != nil {
		resp.Phone = *u.Phone
	}
	if u.Provider != nil {
		resp.Provider = *u.Provider
	}
	if u.ProviderID != nil {
		resp.ProviderID = *u.ProviderID
	}
	return resp
}
