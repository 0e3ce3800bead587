package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/goodnessaig1/gidolee-video-share/internal/model"
	"github.com/goodnessaig1/gidolee-video-share/internal/repository"
	"github.com/goodnessaig1/gidolee-video-share/internal/validation"
)

// AvatarUploader stores profile pictures.
type AvatarUploader interface {
	UploadAvatar(ctx context.Context, up model.Upload) (*model.UploadResult, error)
}

// UserService handles accounts: registration, login and profile management.
type UserService struct {
	repo           repository.UserRepository
	auth           *AuthService
	avatars        AvatarUploader // nil when storage is not configured
	defaultPicture string
	logger         *zap.Logger
}

func NewUserService(repo repository.UserRepository, auth *AuthService, avatars AvatarUploader, defaultPicture string, logger *zap.Logger) *UserService {
	return &UserService{
		repo:           repo,
		auth:           auth,
		avatars:        avatars,
		defaultPicture: defaultPicture,
		logger:         logger.Named("UserService"),
	}
}

// Register creates an account. Self-registration may pick the user or
// creator role; admins are promoted out of band.
func (s *UserService) Register(ctx context.Context, req model.RegisterRequest, avatar *model.Upload) (*model.AuthResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, model.ErrEmailExists
	} else if !errors.Is(err, model.ErrUserNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FullName:       req.FullName,
		Email:          req.Email,
		PasswordHash:   string(hashed),
		ProfilePicture: s.defaultPicture,
		Role:           model.RoleUser,
	}
	if req.Role != "" {
		user.Role = req.Role
	}

	if avatar != nil && avatar.Body != nil {
		if s.avatars == nil {
			return nil, model.ErrStorageDisabled
		}
		res, err := s.avatars.UploadAvatar(ctx, *avatar)
		if err != nil {
			return nil, err
		}
		user.ProfilePicture = res.URL
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Stringer("user_id", user.ID), zap.String("role", string(user.Role)))
	return &model.AuthResponse{Message: "User registered", User: user}, nil
}

// Login checks the password and issues an access token. Unknown emails and
// wrong passwords are indistinguishable.
func (s *UserService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if errors.Is(err, model.ErrUserNotFound) {
		return nil, model.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Message: "Login successful", User: user, Token: token}, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page, limit int) (*model.UserListResponse, error) {
	p := model.NewPageRequest(page, limit, model.DefaultLimit)
	users, total, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []model.User{}
	}
	return &model.UserListResponse{Users: users, Pagination: model.NewPagination(p, total)}, nil
}

// Update changes an account. Users may edit themselves; admins anyone.
// Only admins may change roles.
func (s *UserService) Update(ctx context.Context, actor model.Actor, id uuid.UUID, req model.UpdateUserRequest) (*model.User, error) {
	if !actor.CanManage(id) {
		return nil, model.ErrForbidden
	}
	if req.Email != nil {
		e := normalizeEmail(*req.Email)
		req.Email = &e
	}
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil && *req.Email != user.Email {
		other, err := s.repo.GetByEmail(ctx, *req.Email)
		switch {
		case err == nil && other.ID != id:
			return nil, model.ErrEmailExists
		case err != nil && !errors.Is(err, model.ErrUserNotFound):
			return nil, fmt.Errorf("check email: %w", err)
		}
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}
	if req.Role != nil && *req.Role != user.Role {
		if !actor.IsAdmin() {
			return nil, model.ErrForbidden
		}
		user.Role = *req.Role
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateAvatar stores a new profile picture for id.
func (s *UserService) UpdateAvatar(ctx context.Context, actor model.Actor, id uuid.UUID, avatar model.Upload) (*model.User, error) {
	if !actor.CanManage(id) {
		return nil, model.ErrForbidden
	}
	if s.avatars == nil {
		return nil, model.ErrStorageDisabled
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	res, err := s.avatars.UploadAvatar(ctx, avatar)
	if err != nil {
		return nil, err
	}
	user.ProfilePicture = res.URL

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes an account. Content and engagement by the user stay.
func (s *UserService) Delete(ctx context.Context, actor model.Actor, id uuid.UUID) error {
	if !actor.CanManage(id) {
		return model.ErrForbidden
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.Stringer("user_id", id), zap.Stringer("by", actor.ID))
	return nil
}

// SetRole changes a role by email; it backs the promote command.
func (s *UserService) SetRole(ctx context.Context, email string, role model.Role) error {
	if !role.Valid() {
		return model.NewValidationError("unknown role " + string(role))
	}
	return s.repo.SetRole(ctx, normalizeEmail(email), role)
}

func normalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}
