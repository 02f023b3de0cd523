package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orgdhq/orgd/internal/auth"
	"github.com/orgdhq/orgd/internal/database/testutil"
	"github.com/orgdhq/orgd/internal/models"
	"github.com/orgdhq/orgd/internal/tenant"
)

func TestOrganizationCreateAndGet(t *testing.T) {
	svc, store := newTestOrganizationService(t)
	ctx := context.Background()

	org, err := svc.Create(ctx, CreateOrganizationInput{
		Name:     "Acme Corp",
		Email:    "admin@acme.test",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotEmpty(t, org.ID)
	require.Equal(t, "Acme Corp", org.Name)
	require.Equal(t, "admin@acme.test", org.AdminEmail)
	require.Equal(t, "org_acme_corp", org.CollectionName)

	fetched, err := svc.Get(ctx, "Acme Corp")
	require.NoError(t, err)
	require.Equal(t, "Acme Corp", fetched.Name)
	require.Equal(t, "org_acme_corp", fetched.CollectionName)

	// The tenant collection exists and holds the marker document.
	coll, _ := store.Collection("Acme Corp")
	docs, err := coll.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Contains(t, string(docs[0].Data), "Organization Initialized")
}

func TestOrganizationCreateDuplicateName(t *testing.T) {
	svc, _ := newTestOrganizationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrganizationInput{Name: "Acme Corp", Email: "a@acme.test", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateOrganizationInput{Name: "Acme Corp", Email: "b@acme.test", Password: "pw"})
	require.ErrorIs(t, err, ErrOrganizationExists)
}

func TestOrganizationGetMissing(t *testing.T) {
	svc, _ := newTestOrganizationService(t)

	_, err := svc.Get(context.Background(), "Nope Inc")
	require.ErrorIs(t, err, ErrOrganizationNotFound)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestOrganizationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrganizationInput{Name: "Acme Corp", Email: "admin@acme.test", Password: "hunter22"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "admin@acme.test", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@acme.test", "hunter22")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	result, err := svc.Login(ctx, "admin@acme.test", "hunter22")
	require.NoError(t, err)
	require.Equal(t, "bearer", result.TokenType)
	require.Equal(t, "Acme Corp", result.Org)

	claims, err := svc.jwt.ValidateAccessToken(result.AccessToken)
	require.NoError(t, err)
	require.Equal(t, "admin@acme.test", claims.Subject)
	require.Equal(t, "Acme Corp", claims.Org)
}

func TestRenameMigratesTenantData(t *testing.T) {
	svc, store := newTestOrganizationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrganizationInput{Name: "A", Email: "admin@a.test", Password: "pw"})
	require.NoError(t, err)

	// A second admin of the same organization; should NOT be migrated.
	other := &models.User{Email: "other@a.test", PasswordHash: "x", Organization: "A", Role: models.RoleAdmin}
	require.NoError(t, svc.db.Create(other).Error)

	oldColl, _ := store.Collection("A")
	require.NoError(t, oldColl.InsertMany(ctx, []tenant.Document{{Data: datatypes.JSON(`{"x": 1}`)}}))

	require.NoError(t, svc.Rename(ctx, RenameOrganizationInput{
		NewName:  "B",
		Email:    "admin@a.test",
		Password: "pw",
	}))

	// Old collection gone, new collection holds marker + tenant document.
	require.False(t, oldColl.Exists(ctx))
	newColl, _ := store.Collection("B")
	docs, err := newColl.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	var payloads []string
	for _, doc := range docs {
		payloads = append(payloads, string(doc.Data))
	}
	require.Contains(t, payloads[0]+payloads[1], `"x"`)

	org, err := svc.Get(ctx, "B")
	require.NoError(t, err)
	require.Equal(t, "org_b", org.CollectionName)

	_, err = svc.Get(ctx, "A")
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	// The authenticating user moved; the other user keeps the stale name.
	var migrated models.User
	require.NoError(t, svc.db.Where("email = ?", "admin@a.test").First(&migrated).Error)
	require.Equal(t, "B", migrated.Organization)

	var stale models.User
	require.NoError(t, svc.db.Where("email = ?", "other@a.test").First(&stale).Error)
	require.Equal(t, "A", stale.Organization)
}

func TestRenameRejectsBadCredentialsAndTakenName(t *testing.T) {
	svc, _ := newTestOrganizationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrganizationInput{Name: "A", Email: "admin@a.test", Password: "pw"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateOrganizationInput{Name: "B", Email: "admin@b.test", Password: "pw"})
	require.NoError(t, err)

	err = svc.Rename(ctx, RenameOrganizationInput{NewName: "C", Email: "admin@a.test", Password: "wrong"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.Rename(ctx, RenameOrganizationInput{NewName: "B", Email: "admin@a.test", Password: "pw"})
	require.ErrorIs(t, err, ErrOrganizationExists)
}

func TestDelete(t *testing.T) {
	svc, store := newTestOrganizationService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateOrganizationInput{Name: "B", Email: "admin@b.test", Password: "pw"})
	require.NoError(t, err)

	wrongOrg := &auth.Claims{Org: "A"}
	require.ErrorIs(t, svc.Delete(ctx, "B", wrongOrg), ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, "B", nil), ErrForbidden)

	require.NoError(t, svc.Delete(ctx, "B", &auth.Claims{Org: "B"}))

	_, err = svc.Get(ctx, "B")
	require.ErrorIs(t, err, ErrOrganizationNotFound)

	var count int64
	require.NoError(t, svc.db.Model(&models.User{}).Where("organization = ?", "B").Count(&count).Error)
	require.Zero(t, count)

	coll, _ := store.Collection("B")
	require.False(t, coll.Exists(ctx))

	// Deleting a never-created organization succeeds silently.
	require.NoError(t, svc.Delete(ctx, "Ghost Org", &auth.Claims{Org: "Ghost Org"}))
}

func newTestOrganizationService(t *testing.T) (*OrganizationService, *tenant.Store) {
	t.Helper()

	db := testutil.MustOpenTestDB(t)
	return newServiceForDB(t, db), mustStore(t, db)
}

func mustStore(t *testing.T, db *gorm.DB) *tenant.Store {
	t.Helper()

	store, err := tenant.NewStore(db)
	require.NoError(t, err)
	return store
}

func newServiceForDB(t *testing.T, db *gorm.DB) *OrganizationService {
	t.Helper()

	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:         "test-secret",
		Issuer:         "orgd-test",
		AccessTokenTTL: time.Hour,
	})
	require.NoError(t, err)

	svc, err := NewOrganizationService(db, mustStore(t, db), jwtSvc)
	require.NoError(t, err)
	return svc
}
