package service

import (
	"context"
	"net/mail"
	"strings"

	"go.uber.org/zap"

	"kinopro/internal/domain"
	"kinopro/pkg/utils"
)

type TokenIssuer interface {
	Issue(uid uint, email, role string) (string, error)
}

type UserService struct {
	users   domain.UserRepository
	resumes domain.ResumeRepository
	tokens  TokenIssuer
	now     Clock
	log     *zap.Logger
}

func NewUserService(users domain.UserRepository, resumes domain.ResumeRepository, tokens TokenIssuer, now Clock, l *zap.Logger) *UserService {
	return &UserService{users: users, resumes: resumes, tokens: tokens, now: now, log: l}
}

type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, domain.Validation("email and password are required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, domain.Validation("invalid email")
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if existing != nil {
		return nil, domain.Duplicate("email already taken")
	}
	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if first == "" && last == "" {
		first, last = domain.NamesFromEmail(email)
	}
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, domain.Wrap(err, "create user")
	}
	s.log.Info("user registered", zap.Uint("user_id", u.ID))
	return u, nil
}

// Login 未知邮箱与错误密码返回同一错误
func (s *UserService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", nil, domain.Validation("email and password are required")
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, domain.Internal("find user", err)
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", nil, domain.Unauthenticated("invalid credentials")
	}
	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return "", nil, domain.Internal("issue token", err)
	}
	return token, u, nil
}

type Profile struct {
	ID              uint               `json:"id"`
	Email           string             `json:"email"`
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	Role            string             `json:"role"`
	ProfileComplete bool               `json:"profileComplete"`
	Resume          *domain.ResumeView `json:"resume"`
}

func (s *UserService) get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}
	return u, nil
}

func (s *UserService) Profile(ctx context.Context, id uint) (*Profile, error) {
	u, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	p := &Profile{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Role:            u.Role,
		ProfileComplete: u.ProfileComplete,
	}
	r, err := s.resumes.FindByOwner(ctx, id)
	if err != nil {
		return nil, domain.Internal("find resume", err)
	}
	if r != nil {
		v := domain.NewResumeView(*r, s.now.now())
		p.Resume = &v
	}
	return p, nil
}

type NamesInput struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

func (s *UserService) UpdateNames(ctx context.Context, id uint, in NamesInput) (*domain.User, error) {
	if in.FirstName == nil && in.LastName == nil {
		return nil, domain.Validation("first name or last name is required")
	}
	if err := s.users.UpdateNames(ctx, id, in.FirstName, in.LastName); err != nil {
		return nil, domain.Wrap(err, "update names")
	}
	return s.get(ctx, id)
}

func (s *UserService) List(ctx context.Context, q string, offset, limit int) ([]domain.User, int64, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	users, total, err := s.users.List(ctx, q, offset, limit)
	if err != nil {
		return nil, 0, domain.Internal("list users", err)
	}
	return users, total, nil
}

func (s *UserService) RecomputeProfileStatus(ctx context.Context) (int64, error) {
	n, err := s.users.RecomputeProfileStatus(ctx)
	if err != nil {
		return 0, domain.Internal("recompute profile status", err)
	}
	s.log.Info("profile status recomputed", zap.Int64("users", n))
	return n, nil
}
