package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"athlete-care-go/internal/model"
	"athlete-care-go/internal/repository"
	"athlete-care-go/pkg/hash"
	"athlete-care-go/pkg/log"
	"athlete-care-go/pkg/token"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// UserService 接口定义了所有与用户相关的业务操作。
type UserService interface {
	Register(username, password, fullName string) (*model.User, error)
	Login(username, password string) (accessToken, refreshToken string, err error)
	GetProfile(username string) (*model.User, error)
	Logout(ctx context.Context, tokenString string) error
	IsTokenRevoked(ctx context.Context, tokenString string) bool
	RefreshToken(refreshTokenString string) (newAccessToken, newRefreshToken string, err error)
}

// userService 是 UserService 接口的实现。
type userService struct {
	userRepo    repository.UserRepository
	jwtManager  *token.JWTManager
	redisClient *redis.Client
}

// NewUserService 创建一个新的 UserService 实例。
func NewUserService(userRepo repository.UserRepository, jwtManager *token.JWTManager, redisClient *redis.Client) UserService {
	return &userService{
		userRepo:    userRepo,
		jwtManager:  jwtManager,
		redisClient: redisClient,
	}
}

// Register 处理用户注册的业务逻辑。
func (s *userService) Register(username, password, fullName string) (*model.User, error) {
	_, err := s.userRepo.FindByUsername(username)
	if err == nil {
		return nil, errors.New("用户名已存在")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := hash.HashPassword(password)
	if err != nil {
		return nil, err
	}

	newUser := &model.User{
		Username: username,
		Password: hashedPassword,
		FullName: fullName,
		Role:     "CLINICIAN",
	}
	if err := s.userRepo.Create(newUser); err != nil {
		return nil, err
	}

	return newUser, nil
}

// Login 处理用户登录的业务逻辑，成功后签发 access 和 refresh 两个 token。
func (s *userService) Login(username, password string) (accessToken, refreshToken string, err error) {
	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", errors.New("invalid credentials")
		}
		return "", "", err
	}

	if !hash.CheckPassword(password, user.Password) {
		return "", "", errors.New("invalid credentials")
	}

	accessToken, err = s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err = s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return accessToken, refreshToken, nil
}

// GetProfile 根据用户名获取用户信息。
func (s *userService) GetProfile(username string) (*model.User, error) {
	return s.userRepo.FindByUsername(username)
}

// denylistKey 生成注销 token 在 Redis 中的键。
func denylistKey(tokenString string) string {
	return "token:denylist:" + tokenString
}

// Logout 将 token 加入 Redis 黑名单直到其自然过期。
func (s *userService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtManager.VerifyToken(tokenString)
	if err != nil {
		// 已过期或非法的 token 无需进入黑名单
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	if err := s.redisClient.Set(ctx, denylistKey(tokenString), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to denylist token: %w", err)
	}
	log.Infof("User '%s' logged out", claims.Username)
	return nil
}

// IsTokenRevoked 检查 token 是否已被注销。
// Redis 不可用时保守放行并记录日志，认证仍由签名校验兜底。
func (s *userService) IsTokenRevoked(ctx context.Context, tokenString string) bool {
	_, err := s.redisClient.Get(ctx, denylistKey(tokenString)).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		log.Warnf("[UserService] 检查 token 黑名单失败: %v", err)
		return false
	}
	return true
}

// RefreshToken 用一个仍然有效的 refresh token 换发新的 token 对。
func (s *userService) RefreshToken(refreshTokenString string) (string, string, error) {
	claims, err := s.jwtManager.VerifyToken(refreshTokenString)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user no longer exists")
	}

	newAccess, err := s.jwtManager.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate access token: %w", err)
	}
	newRefresh, err := s.jwtManager.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return newAccess, newRefresh, nil
}
