package serviceImp

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"sfa/entities"
	"sfa/pkg/auth/service"
	logsRepo "sfa/pkg/logs/repository"
	usersRepo "sfa/pkg/users/repository"
)

type Svc struct {
	users  usersRepo.UserRepository
	logs   logsRepo.LogRepository
	secret []byte
	ttl    time.Duration

	adminEmail    string
	adminPassword string
}

func New(users usersRepo.UserRepository, logs logsRepo.LogRepository, secret string, ttlHours int, adminEmail, adminPassword string) service.AuthService {
	return &Svc{
		users:         users,
		logs:          logs,
		secret:        []byte(secret),
		ttl:           time.Duration(ttlHours) * time.Hour,
		adminEmail:    adminEmail,
		adminPassword: adminPassword,
	}
}

func (s *Svc) Register(name, email, password string) (string, *entities.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if existing != nil {
		return "", nil, service.ErrEmailExists
	}

	u, err := s.createUser(name, email, password, entities.RoleUser)
	if err != nil {
		return "", nil, err
	}

	token, err := s.signToken(u)
	if err != nil {
		return "", nil, err
	}

	_, _ = s.logs.Create("REGISTER", u.Email, u.Role, fmt.Sprintf("New user registered: %s", u.Email))
	return token, u, nil
}

func (s *Svc) Login(email, password string) (string, *entities.User, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, service.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return "", nil, service.ErrInvalidCredentials
	}

	token, err := s.signToken(u)
	if err != nil {
		return "", nil, err
	}

	_, _ = s.logs.Create("LOGIN", u.Email, u.Role, fmt.Sprintf("User logged in: %s", u.Email))
	return token, u, nil
}

func (s *Svc) EnsureDefaultAdmin() error {
	if s.adminEmail == "" || s.adminPassword == "" {
		return nil
	}
	existing, err := s.users.FindByEmail(s.adminEmail)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	_, err = s.createUser("Default Admin", s.adminEmail, s.adminPassword, entities.RoleAdmin)
	return err
}

func (s *Svc) createUser(name, email, password, role string) (*entities.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	u := &entities.User{
		Name:     name,
		Email:    strings.ToLower(email),
		Password: string(hashed),
		Role:     role,
	}
	if err := s.users.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Svc) signToken(u *entities.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   fmt.Sprint(u.UserID),
		"email": u.Email,
		"role":  u.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
