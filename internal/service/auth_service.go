package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/MAL295/Employee-Data-Management/config"
	"github.com/MAL295/Employee-Data-Management/internal/dto"
	"github.com/MAL295/Employee-Data-Management/internal/model"
	"github.com/MAL295/Employee-Data-Management/internal/repository"
	apperrors "github.com/MAL295/Employee-Data-Management/pkg/errors"
	"github.com/MAL295/Employee-Data-Management/pkg/jwt"
)

// TokenBlacklist 已注销 Token 的存储（Redis 实现见 pkg/redis）
type TokenBlacklist interface {
	BlacklistToken(ctx context.Context, jti string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// AuthService 认证业务接口
type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh 以 Refresh Token 换取新的 Token 对，旧 Refresh Token 随即作废
	Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	// Logout 注销当前 Access Token；Basic 认证没有 Token，直接返回
	Logout(ctx context.Context, claims *jwt.Claims) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)

	// AuthenticateToken 校验 Bearer Access Token（含黑名单）
	AuthenticateToken(ctx context.Context, token string) (*jwt.Claims, error)
	// AuthenticateBasic 校验 HTTP Basic 用户名密码，返回等价的身份声明
	AuthenticateBasic(ctx context.Context, username, password string) (*jwt.Claims, error)
}

type authService struct {
	cfg       *config.Config
	repo      *repository.Repository
	jwtMgr    *jwt.Manager
	blacklist TokenBlacklist
	logger    *zap.Logger
	now       func() time.Time
}

// NewAuthService 创建 AuthService 实例；blacklist 为 nil 时不做注销校验
func NewAuthService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	logger *zap.Logger,
) AuthService {
	return &authService{
		cfg:       cfg,
		repo:      repo,
		jwtMgr:    jwtMgr,
		blacklist: blacklist,
		logger:    logger,
		now:       time.Now,
	}
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.verifyPassword(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}
	return s.issueTokens(user)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil || claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenInvalid
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}

	user, err := s.repo.User.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		s.logger.Error("查询账号失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	resp, err := s.issueTokens(user)
	if err != nil {
		return nil, err
	}
	s.revoke(ctx, claims)
	return resp, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.ID == "" || s.blacklist == nil {
		return nil
	}
	ttl := claims.RemainingTTL(s.now())
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
		s.logger.Error("Token 加入黑名单失败", zap.String("user_id", claims.UserID), zap.Error(err))
		return err
	}
	s.logger.Info("账号注销", zap.String("user_id", claims.UserID))
	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询账号失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── CreateUser ──────────────────────

func (s *authService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrInvalidUsername
	}
	if !model.ValidRole(req.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.repo.User.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询账号失败", zap.String("username", username), zap.Error(err))
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
		Role:         req.Role,
		IsActive:     true,
	}
	if err := s.repo.User.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, ErrUsernameExists.Wrap(err)
		}
		s.logger.Error("创建账号失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("创建账号", zap.String("username", user.Username), zap.String("role", user.Role))
	resp := toUserResponse(user)
	return &resp, nil
}

// ────────────────────── 认证 ──────────────────────

func (s *authService) AuthenticateToken(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := s.jwtMgr.ParseToken(token)
	if err != nil || claims.TokenType != jwt.TokenTypeAccess {
		return nil, ErrTokenInvalid
	}
	if err := s.checkRevoked(ctx, claims); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *authService) AuthenticateBasic(ctx context.Context, username, password string) (*jwt.Claims, error) {
	user, err := s.verifyPassword(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return &jwt.Claims{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// ── 辅助函数 ──

func (s *authService) verifyPassword(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.repo.User.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询账号失败", zap.Error(err))
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User) (*dto.TokenResponse, error) {
	accessToken, err := s.jwtMgr.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}
	refreshToken, err := s.jwtMgr.GenerateRefreshToken(user.ID, user.Username, user.Role)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(user),
	}, nil
}

// checkRevoked 黑名单查询失败时放行（Redis 不可用不影响认证）
func (s *authService) checkRevoked(ctx context.Context, claims *jwt.Claims) error {
	if s.blacklist == nil || claims.ID == "" {
		return nil
	}
	revoked, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("查询 Token 黑名单失败", zap.Error(err))
		return nil
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}

func (s *authService) revoke(ctx context.Context, claims *jwt.Claims) {
	if s.blacklist == nil || claims.ID == "" {
		return
	}
	if ttl := claims.RemainingTTL(s.now()); ttl > 0 {
		if err := s.blacklist.BlacklistToken(ctx, claims.ID, ttl); err != nil {
			s.logger.Warn("旧 RefreshToken 作废失败", zap.Error(err))
		}
	}
}
