package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/applylikeprince/backend/internal/dtos"
	"github.com/applylikeprince/backend/internal/models"
)

// UserService handles registration, login and token validation. Every
// other service receives the resolved user id as an explicit parameter.
type UserService struct {
	db        *gorm.DB
	jwtSecret []byte
	jwtExpiry time.Duration
	log       *zap.Logger
}

func NewUserService(db *gorm.DB, jwtSecret string, jwtExpiry time.Duration, log *zap.Logger) *UserService {
	return &UserService{
		db:        db,
		jwtSecret: []byte(jwtSecret),
		jwtExpiry: jwtExpiry,
		log:       log,
	}
}

type claims struct {
	jwt.RegisteredClaims
}

// Register creates a user with a bcrypt-hashed password.
func (s *UserService) Register(req *dtos.RegisterRequest) (dtos.UserDTO, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return dtos.UserDTO{}, err
	}
	if count > 0 {
		return dtos.UserDTO{}, fmt.Errorf("email %s is already registered", req.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return dtos.UserDTO{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hash),
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return dtos.UserDTO{}, fmt.Errorf("create user: %w", err)
	}
	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return dtos.UserFromModel(&user), nil
}

// Login verifies credentials and issues a token.
func (s *UserService) Login(email, password string) (string, dtos.UserDTO, error) {
	var user models.User
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", dtos.UserDTO{}, ErrUnauthenticated
	}
	if err != nil {
		return "", dtos.UserDTO{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", dtos.UserDTO{}, ErrUnauthenticated
	}

	token, err := s.GenerateToken(user.ID)
	if err != nil {
		return "", dtos.UserDTO{}, err
	}
	return token, dtos.UserFromModel(&user), nil
}

// GenerateToken issues an HS256 token with the user id as subject.
func (s *UserService) GenerateToken(userID uint) (string, error) {
	now := time.Now()
	c := &claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken returns the user id a valid token was issued for.
func (s *UserService) ValidateToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return 0, ErrUnauthenticated
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrUnauthenticated
	}
	return uint(id), nil
}

// GetByID returns the user profile.
func (s *UserService) GetByID(userID uint) (dtos.UserDTO, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dtos.UserDTO{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return dtos.UserDTO{}, err
	}
	return dtos.UserFromModel(&user), nil
}

// UpdateProfile applies profile changes for the user.
func (s *UserService) UpdateProfile(userID uint, req *dtos.UpdateProfileRequest) (dtos.UserDTO, error) {
	var user models.User
	err := s.db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dtos.UserDTO{}, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	if err != nil {
		return dtos.UserDTO{}, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	user.Phone = req.Phone
	user.Skills = req.Skills
	user.Experience = req.Experience
	user.LinkedinURL = req.LinkedinURL
	user.GithubURL = req.GithubURL
	user.PortfolioURL = req.PortfolioURL
	user.AdditionalInfo = req.AdditionalInfo

	if err := s.db.Save(&user).Error; err != nil {
		return dtos.UserDTO{}, err
	}
	return dtos.UserFromModel(&user), nil
}
