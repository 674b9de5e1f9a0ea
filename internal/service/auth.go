package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shreyas-k-p/SCANV2-sub000/internal/domain"
	"github.com/Shreyas-k-p/SCANV2-sub000/internal/repo"
	"go.uber.org/zap"
)

type AuthConfig struct {
	SessionTTL time.Duration
	// ManagerLockTTL bounds how long a crashed manager client can hold the
	// advisory lock before another login may take it over.
	ManagerLockTTL time.Duration

	DefaultManagerID     string
	DefaultManagerName   string
	DefaultManagerSecret string
}

type AuthService struct {
	staffRepo   repo.StaffRepository
	sessionRepo repo.SessionRepository
	lockRepo    repo.ManagerLockRepository
	config      AuthConfig
	logger      *zap.SugaredLogger
}

func NewAuthService(
	staffRepo repo.StaffRepository,
	sessionRepo repo.SessionRepository,
	lockRepo repo.ManagerLockRepository,
	config AuthConfig,
	logger *zap.SugaredLogger,
) *AuthService {
	if config.SessionTTL <= 0 {
		config.SessionTTL = domain.SessionTTL
	}
	if config.ManagerLockTTL <= 0 {
		config.ManagerLockTTL = config.SessionTTL
	}

	return &AuthService{
		staffRepo:   staffRepo,
		sessionRepo: sessionRepo,
		lockRepo:    lockRepo,
		config:      config,
		logger:      logger,
	}
}

// Login authenticates a staff identity. WAITER and KITCHEN may log in with
// id + display name when no secret is supplied. A MANAGER login must also
// acquire the deployment-wide advisory lock, so at most one manager session
// is active at a time across devices.
func (s *AuthService) Login(ctx context.Context, role domain.StaffRole, staffID, secret, name string) (*domain.Session, error) {
	role = domain.StaffRole(strings.ToUpper(string(role)))
	staffID = strings.ToUpper(staffID)

	if !role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	profile, err := s.staffRepo.GetByRoleAndID(ctx, role, staffID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up staff profile: %w", err)
	}

	if secret == "" && name != "" && role.SecretOptional() {
		if !strings.EqualFold(profile.Name, name) {
			return nil, domain.ErrInvalidCredentials
		}
	} else if !strings.EqualFold(secret, profile.SecretID) || secret == "" {
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.NewSession(profile, time.Now(), s.config.SessionTTL)

	// the lock is bound to the session token so only the session it
	// backs can release it
	if role == domain.RoleManager {
		if err := s.lockRepo.Acquire(ctx, staffID, session.Token, s.config.ManagerLockTTL); err != nil {
			if errors.Is(err, domain.ErrManagerActive) {
				return nil, domain.ErrManagerActive
			}
			return nil, fmt.Errorf("failed to acquire manager lock: %w", err)
		}
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		if role == domain.RoleManager {
			if releaseErr := s.lockRepo.Release(ctx, staffID, session.Token); releaseErr != nil {
				s.logger.Errorw("failed to release manager lock after session failure", "staff_id", staffID, "error", releaseErr)
			}
		}
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Infow("staff logged in", "staff_id", staffID, "role", role)

	return session, nil
}

// GetSession returns the session behind token. Expiry is observed lazily:
// an expired session is cleared here, on read, not by a background sweep.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domain.Session, error) {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if session.Expired(time.Now()) {
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			s.logger.Errorw("failed to clear expired session", "staff_id", session.StaffID, "error", err)
		}
		if session.Role == domain.RoleManager {
			if err := s.lockRepo.Release(ctx, session.StaffID, session.Token); err != nil {
				s.logger.Errorw("failed to release manager lock for expired session", "staff_id", session.StaffID, "error", err)
			}
		}
		return nil, domain.ErrNoSession
	}

	return session, nil
}

// Logout releases the manager lock when a manager session ends, and always
// clears the session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	session, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNoSession) {
			return nil
		}
		return err
	}

	if session.Role == domain.RoleManager {
		if err := s.lockRepo.Release(ctx, session.StaffID, session.Token); err != nil {
			s.logger.Errorw("failed to release manager lock", "staff_id", session.StaffID, "error", err)
		}
	}

	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	s.logger.Infow("staff logged out", "staff_id", session.StaffID, "role", session.Role)

	return nil
}

func (s *AuthService) CreateStaff(ctx context.Context, role domain.StaffRole, name, secret, email, photo string) (*domain.StaffProfile, error) {
	role = domain.StaffRole(strings.ToUpper(string(role)))
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrInvalidOrder, role)
	}

	profile := &domain.StaffProfile{
		StaffID:      domain.NewStaffID(role),
		Role:         role,
		Name:         name,
		SecretID:     secret,
		Email:        email,
		ProfilePhoto: photo,
	}

	if err := s.staffRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create staff profile: %w", err)
	}

	s.logger.Infow("staff profile created", "staff_id", profile.StaffID, "role", role)

	return profile, nil
}

func (s *AuthService) DeleteStaff(ctx context.Context, staffID string) error {
	if err := s.staffRepo.Delete(ctx, strings.ToUpper(staffID)); err != nil {
		return err
	}

	s.logger.Infow("staff profile deleted", "staff_id", staffID)

	return nil
}

func (s *AuthService) ListStaff(ctx context.Context) ([]domain.StaffProfile, error) {
	return s.staffRepo.List(ctx)
}

// EnsureDefaultManager provisions the hardcoded default manager when the
// directory holds no MANAGER profile, so a fresh deployment can be
// administered at all.
func (s *AuthService) EnsureDefaultManager(ctx context.Context) error {
	count, err := s.staffRepo.CountByRole(ctx, domain.RoleManager)
	if err != nil {
		return fmt.Errorf("failed to count managers: %w", err)
	}
	if count > 0 {
		return nil
	}

	profile := &domain.StaffProfile{
		StaffID:  strings.ToUpper(s.config.DefaultManagerID),
		Role:     domain.RoleManager,
		Name:     s.config.DefaultManagerName,
		SecretID: s.config.DefaultManagerSecret,
	}

	if err := s.staffRepo.Create(ctx, profile); err != nil {
		return fmt.Errorf("failed to provision default manager: %w", err)
	}

	s.logger.Infow("default manager provisioned", "staff_id", profile.StaffID)

	return nil
}
