package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/orgdhq/orgd/internal/auth"
	"github.com/orgdhq/orgd/internal/models"
	"github.com/orgdhq/orgd/internal/tenant"
	"github.com/orgdhq/orgd/pkg/crypto"
	"github.com/orgdhq/orgd/pkg/logger"
)

var (
	// ErrOrganizationNotFound indicates the requested organization does not exist.
	ErrOrganizationNotFound = errors.New("organization service: organization not found")
	// ErrOrganizationExists indicates the organization name is already taken.
	ErrOrganizationExists = errors.New("organization service: organization already exists")
	// ErrInvalidCredentials indicates a missing user or a password mismatch.
	ErrInvalidCredentials = errors.New("organization service: invalid credentials")
	// ErrForbidden indicates the caller's token is not scoped to the target organization.
	ErrForbidden = errors.New("organization service: forbidden")
)

// CreateOrganizationInput captures the attributes required to register an organization.
type CreateOrganizationInput struct {
	Name     string
	Email    string
	Password string
}

// RenameOrganizationInput carries the caller's credentials and the new name.
// The current organization is resolved from the authenticated user's record.
type RenameOrganizationInput struct {
	NewName  string
	Email    string
	Password string
}

// LoginResult is returned on a successful admin login.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Org         string `json:"org"`
}

// OrganizationService orchestrates the organization lifecycle: registration,
// lookup, rename (with tenant data migration), deletion, and admin login.
//
// Each operation is an ordered sequence of independent store writes with no
// transaction and no rollback; a failure partway leaves earlier side effects
// in place. Known limitation, kept deliberately.
type OrganizationService struct {
	db      *gorm.DB
	tenants *tenant.Store
	jwt     *auth.JWTService
	log     *zap.Logger
}

// NewOrganizationService constructs an OrganizationService instance.
func NewOrganizationService(db *gorm.DB, tenants *tenant.Store, jwt *auth.JWTService) (*OrganizationService, error) {
	if db == nil {
		return nil, errors.New("organization service: db is required")
	}
	if tenants == nil {
		return nil, errors.New("organization service: tenant store is required")
	}
	if jwt == nil {
		return nil, errors.New("organization service: jwt service is required")
	}
	return &OrganizationService{
		db:      db,
		tenants: tenants,
		jwt:     jwt,
		log:     logger.WithModule("organizations"),
	}, nil
}

// Create registers an organization together with its admin user and
// provisions the tenant collection with a marker document.
func (s *OrganizationService) Create(ctx context.Context, input CreateOrganizationInput) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, errors.New("organization service: name is required")
	}

	var existing models.Organization
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return nil, ErrOrganizationExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("organization service: check name: %w", err)
	}

	coll, collName := s.tenants.Collection(name)

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("organization service: hash password: %w", err)
	}

	// Email uniqueness is intentionally not enforced here.
	admin := &models.User{
		Email:        input.Email,
		PasswordHash: hash,
		Organization: name,
		Role:         models.RoleAdmin,
	}
	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("organization service: create admin user: %w", err)
	}

	org := &models.Organization{
		Name:           name,
		AdminEmail:     input.Email,
		CollectionName: collName,
	}
	if err := s.db.WithContext(ctx).Create(org).Error; err != nil {
		if isUniqueConstraintError(err) {
			return nil, ErrOrganizationExists
		}
		return nil, fmt.Errorf("organization service: create organization: %w", err)
	}

	if err := coll.Init(ctx); err != nil {
		return nil, err
	}

	s.log.Info("organization created",
		zap.String("name", name),
		zap.String("collection", collName),
	)

	return org, nil
}

// Get loads an organization by its exact name.
func (s *OrganizationService) Get(ctx context.Context, name string) (*models.Organization, error) {
	ctx = ensureContext(ctx)

	var org models.Organization
	err := s.db.WithContext(ctx).Where("name = ?", name).First(&org).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("organization service: get organization: %w", err)
	}
	return &org, nil
}

// Rename authenticates the caller by password, then renames their current
// organization to input.NewName and migrates the tenant collection: every
// document is copied to the new collection and the old one is dropped.
//
// Only the authenticating user's organization reference is rewritten; other
// users of the same organization keep the stale name. Suspect behaviour
// preserved from the original service.
func (s *OrganizationService) Rename(ctx context.Context, input RenameOrganizationInput) error {
	ctx = ensureContext(ctx)

	user, err := s.authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return err
	}

	oldName := user.Organization
	newName := strings.TrimSpace(input.NewName)
	if newName == "" {
		return errors.New("organization service: new name is required")
	}

	var existing models.Organization
	err = s.db.WithContext(ctx).Where("name = ?", newName).First(&existing).Error
	if err == nil {
		return ErrOrganizationExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("organization service: check new name: %w", err)
	}

	oldColl, _ := s.tenants.Collection(oldName)
	newColl, newCollName := s.tenants.Collection(newName)

	docs, err := oldColl.FindAll(ctx)
	if err != nil {
		return err
	}
	if err := newColl.InsertMany(ctx, docs); err != nil {
		return err
	}

	updates := map[string]any{
		"name":            newName,
		"collection_name": newCollName,
	}
	if err := s.db.WithContext(ctx).Model(&models.Organization{}).Where("name = ?", oldName).Updates(updates).Error; err != nil {
		return fmt.Errorf("organization service: update organization: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", user.ID).Update("organization", newName).Error; err != nil {
		return fmt.Errorf("organization service: update user organization: %w", err)
	}

	if err := oldColl.Drop(ctx); err != nil {
		return err
	}

	s.log.Info("organization renamed",
		zap.String("from", oldName),
		zap.String("to", newName),
		zap.Int("documents_migrated", len(docs)),
	)

	return nil
}

// Delete removes an organization, its users, and its tenant collection. The
// caller's token must be scoped to the organization being deleted. Deleting a
// name that does not exist succeeds silently.
func (s *OrganizationService) Delete(ctx context.Context, name string, claims *auth.Claims) error {
	ctx = ensureContext(ctx)

	if claims == nil || claims.Org != name {
		return ErrForbidden
	}

	if err := s.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Organization{}).Error; err != nil {
		return fmt.Errorf("organization service: delete organization: %w", err)
	}

	if err := s.db.WithContext(ctx).Where("organization = ?", name).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("organization service: delete users: %w", err)
	}

	coll, _ := s.tenants.Collection(name)
	if err := coll.Drop(ctx); err != nil {
		return err
	}

	s.log.Info("organization deleted", zap.String("name", name))

	return nil
}

// Login verifies admin credentials and issues a bearer token scoped to the
// user's organization.
func (s *OrganizationService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	ctx = ensureContext(ctx)

	user, err := s.authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(user.Email, user.Organization)
	if err != nil {
		return nil, fmt.Errorf("organization service: issue token: %w", err)
	}

	return &LoginResult{
		AccessToken: token,
		TokenType:   "bearer",
		Org:         user.Organization,
	}, nil
}

// authenticate loads a user by email and verifies the password. Missing user
// and wrong password collapse into the same error.
func (s *OrganizationService) authenticate(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("organization service: load user: %w", err)
	}

	if !crypto.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
