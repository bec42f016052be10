package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/nee-commerce/backend/internal/config"
	"github.com/nee-commerce/backend/internal/models"
	"github.com/nee-commerce/backend/internal/repo/mongodb"
)

type authUsecase struct {
	userRepo  mongodb.UserRepository
	tokenRepo mongodb.AuthTokenRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthUsecase(userRepo mongodb.UserRepository, tokenRepo mongodb.AuthTokenRepository, cfg *config.Config) AuthUsecase {
	return &authUsecase{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		jwtSecret: cfg.Auth.JWTSecret,
		tokenTTL:  cfg.Auth.TokenTTL,
	}
}

func (u *authUsecase) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	_, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:          req.Email,
		Nickname:       req.Nickname,
		HashedPassword: string(hashed),
		FullName:       req.FullName,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, req models.LoginRequest, userAgent, ipAddress string) (*models.LoginResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}

	token, expiresAt, err := u.generateJWT(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	authToken := &models.AuthToken{
		UserID:    user.ID,
		TokenHash: hashToken(token),
		ExpiresAt: expiresAt,
		UserAgent: userAgent,
		IPAddress: ipAddress,
	}
	if err := u.tokenRepo.Create(ctx, authToken); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	return &models.LoginResponse{
		Token:     token,
		User:      *user,
		ExpiresAt: expiresAt,
	}, nil
}

func (u *authUsecase) ValidateToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := u.parseJWT(tokenString)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	authToken, err := u.tokenRepo.GetByTokenHash(ctx, hashToken(tokenString))
	if err != nil {
		return nil, fmt.Errorf("lookup token: %w", err)
	}
	if authToken.IsRevoked {
		return nil, errors.New("token has been revoked")
	}
	if authToken.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("token has expired")
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id in token: %w", err)
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

func (u *authUsecase) RevokeToken(ctx context.Context, tokenString string) error {
	return u.tokenRepo.RevokeToken(ctx, hashToken(tokenString))
}

func (u *authUsecase) generateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(u.tokenTTL)

	claims := jwt.MapClaims{
		"user_id": user.ID.Hex(),
		"email":   user.Email,
		"exp":     expiresAt.Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(u.jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (u *authUsecase) parseJWT(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(u.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := claims["user_id"].(string)
	email, _ := claims["email"].(string)
	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	return &models.JWTClaims{
		UserID: userID,
		Email:  email,
		Exp:    int64(exp),
		Iat:    int64(iat),
	}, nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}
