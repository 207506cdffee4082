package service

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/belghachem/beehouse/internal/domain/model"
	"github.com/belghachem/beehouse/internal/infra/cache"
	"github.com/belghachem/beehouse/internal/infra/repository/db"
	"github.com/belghachem/beehouse/internal/infra/sms"
	"github.com/belghachem/beehouse/internal/pkg/util"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordMismatch     = errors.New("passwords do not match")
	ErrUsernameTaken        = errors.New("username already exists")
	ErrVerificationNotFound = errors.New("verification not found or expired")
	ErrInvalidCode          = errors.New("invalid verification code")
)

const verificationTTL = 15 * time.Minute

// RegistrationInput is the registration form. The account is not created
// until the phone is verified.
type RegistrationInput struct {
	Username        string
	FirstName       string
	LastName        string
	Phone           string
	Address         string
	Password        string
	PasswordConfirm string
}

// pendingRegistration is held in the cache under the verification token
// until the code is confirmed or the TTL runs out.
type pendingRegistration struct {
	Username       string `json:"username"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	HashedPassword string `json:"hashed_password"`
	Code           string `json:"code"`
}

type IUserService interface {
	Register(ctx context.Context, input RegistrationInput) (token string, err error)
	Verify(ctx context.Context, token, code string) (*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
}

type UserService struct {
	userRepo db.IUserRepository
	cache    cache.Cache
	sender   sms.Sender
	logger   zerolog.Logger
}

func NewUserService(userRepo db.IUserRepository, c cache.Cache, sender sms.Sender, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		cache:    c,
		sender:   sender,
		logger:   logger,
	}
}

func verificationCacheKey(token string) string {
	return "register:" + token
}

// Register validates the form, parks the registration in the cache under
// a fresh token and sends the verification code. No user row exists until
// Verify succeeds.
func (s *UserService) Register(ctx context.Context, input RegistrationInput) (string, error) {
	if input.Password != input.PasswordConfirm {
		return "", ErrPasswordMismatch
	}
	exists, err := s.userRepo.UsernameExists(ctx, input.Username)
	if err != nil {
		return "", err
	}
	if exists {
		return "", ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	code, err := generateVerificationCode()
	if err != nil {
		return "", err
	}

	pending := pendingRegistration{
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		Phone:          input.Phone,
		Address:        input.Address,
		HashedPassword: string(hashed),
		Code:           code,
	}
	payload, err := json.Marshal(pending)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	key := verificationCacheKey(token)
	if err := s.cache.Set(ctx, key, string(payload), verificationTTL); err != nil {
		return "", fmt.Errorf("store pending registration: %w", err)
	}

	phone := util.NormalizePhone(input.Phone)
	body := fmt.Sprintf("Your Bee House verification code is: %s", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		_ = s.cache.Delete(ctx, key)
		s.logger.Error().Err(err).Str("username", input.Username).Msg("verification sms failed")
		return "", err
	}

	return token, nil
}

// Verify checks the code against the pending registration and creates the
// account.
func (s *UserService) Verify(ctx context.Context, token, code string) (*model.User, error) {
	key := verificationCacheKey(token)
	payload, err := s.cache.Get(ctx, key)
	if errors.Is(err, cache.ErrCacheMiss) {
		return nil, ErrVerificationNotFound
	}
	if err != nil {
		return nil, err
	}

	var pending pendingRegistration
	if err := json.Unmarshal([]byte(payload), &pending); err != nil {
		return nil, err
	}
	if code != pending.Code {
		return nil, ErrInvalidCode
	}

	user := &model.User{
		Username:       pending.Username,
		FirstName:      pending.FirstName,
		LastName:       pending.LastName,
		Phone:          pending.Phone,
		Address:        pending.Address,
		HashedPassword: pending.HashedPassword,
		PhoneVerified:  true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, key)

	s.logger.Info().Str("username", user.Username).Msg("account verified")
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}

func generateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
