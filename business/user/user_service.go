package user

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"orchidMatch/domain"
	"orchidMatch/pkg/logger"
	"orchidMatch/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/pobyzaarif/goshortcute"
)

// UserRepository contract interface
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateEmailVerification(ctx context.Context, id uint, isVerified bool) error
}

// NotificationRepository contract interface
type NotificationRepository interface {
	SendEmail(toName, toEmail, subject, message string) (err error)
}

// TokenRepository stores issued tokens so logout and revocation take effect
// before JWT expiry.
type TokenRepository interface {
	StoreToken(ctx context.Context, userID, token string, ttl time.Duration) error
	ValidateToken(ctx context.Context, token string) (string, error)
	DeleteToken(ctx context.Context, userID, token string) error
}

const (
	RoleGrower = "grower"
	RoleAdmin  = "admin"

	verificationCodeTTL    = 5 * time.Minute
	tokenTTL               = 24 * time.Hour
	subjectRegisterAccount = "Activate Your OrchidMatch Account"
	bodyRegisterAccount    = `Hello %v, activate your account by opening the link below.</br></br>%v</br>Note: the link is valid for %v minutes.`
)

type userService struct {
	userRepo                UserRepository
	validate                *validator.Validate
	notifRepo               NotificationRepository
	tokenRepo               TokenRepository
	appEmailVerificationKey string
	appDeploymentUrl        string
}

func NewUserService(
	userRepo UserRepository,
	validate *validator.Validate,
	notifRepo NotificationRepository,
	tokenRepo TokenRepository,
	appEmailVerificationKey string,
	appDeploymentUrl string,
) *userService {
	return &userService{
		userRepo:                userRepo,
		validate:                validate,
		notifRepo:               notifRepo,
		tokenRepo:               tokenRepo,
		appEmailVerificationKey: appEmailVerificationKey,
		appDeploymentUrl:        appDeploymentUrl,
	}
}

func (s *userService) Register(ctx context.Context, user *domain.User) (domain.User, error) {
	if err := s.validate.Var(user.Email, "required,email"); err != nil {
		logger.Error("invalid email format", err)
		return domain.User{}, errors.New("invalid email format")
	}
	if err := s.validate.Var(user.Password, "required,min=6"); err != nil {
		logger.Error("invalid password", err)
		return domain.User{}, errors.New("password must be at least 6 characters")
	}

	existing, err := s.userRepo.FindByEmail(ctx, user.Email)
	if err == nil && existing.ID > 0 {
		logger.Error("email already exists")
		return domain.User{}, errors.New("email already exists")
	}

	hash, err := utils.HashPassword(user.Password)
	if err != nil {
		logger.Error("failed to hash password", err)
		return domain.User{}, errors.New("failed to hash password")
	}

	newUser := domain.User{
		FullName:   user.FullName,
		Email:      user.Email,
		Password:   string(hash),
		IsVerified: false,
		Role:       RoleGrower,
	}

	if err := s.userRepo.Create(ctx, &newUser); err != nil {
		logger.Error("failed to create new user")
		return domain.User{}, err
	}

	expAt := time.Now().Add(verificationCodeTTL).Unix()
	code := fmt.Sprintf("%v|%v", newUser.Email, expAt)
	encrypted, err := goshortcute.AESCBCEncrypt([]byte(code), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("failed to encrypt verification code", err)
		return domain.User{}, errors.New("failed to build verification link")
	}
	encoded := goshortcute.StringtoBase64Encode(encrypted)
	activationLink := s.appDeploymentUrl + "/api/v1/users/email-verification/" + encoded

	minutes := int(verificationCodeTTL / time.Minute)
	if err := s.notifRepo.SendEmail(newUser.FullName, newUser.Email, subjectRegisterAccount,
		fmt.Sprintf(bodyRegisterAccount, newUser.FullName, activationLink, minutes)); err != nil {
		logger.Warn("failed to send verification email", err)
	}

	newUser.Password = ""
	return newUser, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("invalid user credentials", err)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !utils.CheckPassword(password, user.Password) {
		logger.Error("incorrect password for user", "user_id", user.ID)
		return "", domain.User{}, errors.New("invalid credentials")
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.New("email address has not been verified")
	}

	userIDStr := strconv.FormatUint(uint64(user.ID), 10)
	token, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if s.tokenRepo != nil {
		if err := s.tokenRepo.StoreToken(ctx, userIDStr, token, tokenTTL); err != nil {
			logger.Error("failed to store token", err)
			return "", domain.User{}, errors.New("failed to store token")
		}
	}

	user.Password = ""
	return token, user, nil
}

// RefreshToken exchanges a still-valid token for a fresh one. The old token
// is revoked so only one token per session stays live.
func (s *userService) RefreshToken(ctx context.Context, oldToken string) (string, domain.User, error) {
	if s.tokenRepo == nil {
		return "", domain.User{}, errors.New("token store not configured")
	}

	userIDStr, err := s.tokenRepo.ValidateToken(ctx, oldToken)
	if err != nil {
		logger.Error("refresh with unknown token", err)
		return "", domain.User{}, errors.New("invalid or expired token")
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil {
		return "", domain.User{}, errors.New("invalid or expired token")
	}

	user, err := s.userRepo.FindByID(ctx, uint(userID))
	if err != nil {
		logger.Error("refresh failed to load user", err)
		return "", domain.User{}, errors.New("failed to get user")
	}

	newToken, err := utils.GenerateJWT(userIDStr, user.Role)
	if err != nil {
		logger.Error("failed to generate token", err)
		return "", domain.User{}, errors.New("failed to generate token")
	}

	if err := s.tokenRepo.StoreToken(ctx, userIDStr, newToken, tokenTTL); err != nil {
		logger.Error("failed to store token", err)
		return "", domain.User{}, errors.New("failed to store token")
	}
	if err := s.tokenRepo.DeleteToken(ctx, userIDStr, oldToken); err != nil {
		logger.Warn("failed to revoke old token", "user_id", userIDStr, "error", err)
	}

	user.Password = ""
	return newToken, user, nil
}

func (s *userService) Logout(ctx context.Context, userID uint, token string) error {
	if s.tokenRepo == nil {
		return nil
	}
	return s.tokenRepo.DeleteToken(ctx, strconv.FormatUint(uint64(userID), 10), token)
}

func (s *userService) ValidateTokenFromRedis(ctx context.Context, token string) (string, error) {
	if s.tokenRepo == nil {
		return "", errors.New("token store not configured")
	}
	return s.tokenRepo.ValidateToken(ctx, token)
}

func (s *userService) VerifyEmail(ctx context.Context, encodedCode string) error {
	decoded := goshortcute.StringtoBase64Decode(encodedCode)
	decrypted, err := goshortcute.AESCBCDecrypt([]byte(decoded), []byte(s.appEmailVerificationKey))
	if err != nil {
		logger.Error("failed to decrypt verification code", err)
		return errors.New("invalid or expired url")
	}

	parts := strings.Split(decrypted, "|")
	if len(parts) != 2 {
		return errors.New("invalid or expired url")
	}

	email := parts[0]
	ts, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return errors.New("invalid or expired url")
	}
	if time.Now().After(time.Unix(ts, 0)) {
		return errors.New("invalid or expired url")
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		logger.Error("verify email failed", err)
		return errors.New("failed to get user by email")
	}
	if user.IsVerified {
		return errors.New("invalid or expired url")
	}

	if err := s.userRepo.UpdateEmailVerification(ctx, user.ID, true); err != nil {
		logger.Error("verify email failed", err)
		return err
	}

	return nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to get user by id", err)
		return domain.User{}, err
	}

	user.Password = ""
	return user, nil
}
