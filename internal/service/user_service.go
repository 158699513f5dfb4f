package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/quillpost/internal/auth"
	"github.com/quillpost/internal/db"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrEmailNotFound    = errors.New("email not found")
	ErrPasswordMismatch = errors.New("password does not match")
	ErrAdminIncomplete  = errors.New("admin bootstrap requires email and password")
)

// RegisterInput 描述注册表单提交的数据。
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// UserService wraps user related database operations.
type UserService struct {
	db         *gorm.DB
	hasher     *auth.Hasher
	adminEmail string
}

// NewUserService creates a UserService. Accounts registered with adminEmail receive the admin role.
func NewUserService(gdb *gorm.DB, hasher *auth.Hasher, adminEmail string) *UserService {
	return &UserService{db: gdb, hasher: hasher, adminEmail: normalizeEmail(adminEmail)}
}

// Register creates a new account. The email is checked up front for a friendly error,
// and the unique index catches concurrent registrations of the same address.
func (s *UserService) Register(input RegisterInput) (*db.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashed,
		Role:     s.roleFor(email),
	}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate 校验邮箱与密码，分别以 ErrEmailNotFound 与 ErrPasswordMismatch 报告失败原因。
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrEmailNotFound
		}
		return nil, err
	}
	if !s.hasher.Verify(password, user.Password) {
		return nil, ErrPasswordMismatch
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// ResolveIdentity 将会话中的用户 ID 还原为完整的用户记录。
func (s *UserService) ResolveIdentity(id uint) (*db.User, error) {
	return s.Get(id)
}

// FindByEmail looks a user up by normalized email.
func (s *UserService) FindByEmail(email string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// EnsureAdmin 确保指定邮箱的账号存在且为管理员：不存在时创建，已存在时提升角色，密码保持不变。
func (s *UserService) EnsureAdmin(name, email, password string) (*db.User, error) {
	normalized := normalizeEmail(email)
	if normalized == "" {
		return nil, ErrAdminIncomplete
	}

	existing, err := s.FindByEmail(normalized)
	if err == nil {
		if existing.Role != db.RoleAdmin {
			if err := s.db.Model(existing).Update("role", db.RoleAdmin).Error; err != nil {
				return nil, fmt.Errorf("promote admin: %w", err)
			}
			existing.Role = db.RoleAdmin
		}
		return existing, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	if strings.TrimSpace(password) == "" {
		return nil, ErrAdminIncomplete
	}
	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	displayName := strings.TrimSpace(name)
	if displayName == "" {
		displayName = "Admin"
	}

	user := db.User{Name: displayName, Email: normalized, Password: hashed, Role: db.RoleAdmin}
	if err := s.db.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) roleFor(email string) string {
	if s.adminEmail != "" && email == s.adminEmail {
		return db.RoleAdmin
	}
	return db.RoleMember
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// isDuplicateKey 识别唯一约束冲突。驱动未翻译错误时按 sqlite 报错文本兜底。
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
