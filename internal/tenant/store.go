package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/orgdhq/orgd/pkg/metrics"
)

// collectionPrefix namespaces tenant tables inside the master database.
const collectionPrefix = "org_"

// markerDocument is inserted when a collection is provisioned so the table
// exists before the tenant writes anything of its own.
const markerDocument = `{"info": "Organization Initialized"}`

// CollectionName derives the tenant collection name for an organization:
// lowercased, spaces replaced with underscores, prefixed. Pure and total.
func CollectionName(orgName string) string {
	return collectionPrefix + strings.ReplaceAll(strings.ToLower(orgName), " ", "_")
}

// Document is a schema-less record inside a tenant collection. The payload
// lives in a JSON column so tenants can store arbitrary shapes.
type Document struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	Data      datatypes.JSON `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// BeforeCreate assigns an identifier unless the document already carries one,
// so copied documents keep their ids across a rename migration.
func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// Store resolves organizations to their dedicated collections. All naming
// goes through CollectionName so the scheme stays swappable in one place.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a tenant Store around the master database handle.
func NewStore(db *gorm.DB) (*Store, error) {
	if db == nil {
		return nil, errors.New("tenant store: db is required")
	}
	return &Store{db: db}, nil
}

// Collection returns a handle for the organization's collection together with
// the derived name. It never fails; the table materialises on first write.
func (s *Store) Collection(orgName string) (*Collection, string) {
	name := CollectionName(orgName)
	return &Collection{db: s.db, name: name}, name
}

// Collection is a handle to one tenant's document table.
type Collection struct {
	db   *gorm.DB
	name string
}

// Name returns the underlying table name.
func (c *Collection) Name() string {
	return c.name
}

// Exists reports whether the collection's table has been materialised.
func (c *Collection) Exists(ctx context.Context) bool {
	return c.db.WithContext(ctx).Migrator().HasTable(c.name)
}

// Init provisions the collection and writes the marker document.
func (c *Collection) Init(ctx context.Context) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}

	marker := Document{Data: datatypes.JSON(markerDocument)}
	if err := c.db.WithContext(ctx).Table(c.name).Create(&marker).Error; err != nil {
		return fmt.Errorf("tenant store: init collection %s: %w", c.name, err)
	}

	metrics.TenantCollections.Inc()
	return nil
}

// InsertMany bulk-inserts documents, materialising the table first. Inserting
// an empty slice is a no-op.
func (c *Collection) InsertMany(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	if err := c.ensure(ctx); err != nil {
		return err
	}

	if err := c.db.WithContext(ctx).Table(c.name).Create(&docs).Error; err != nil {
		return fmt.Errorf("tenant store: insert into %s: %w", c.name, err)
	}
	return nil
}

// FindAll loads every document in the collection into memory. An absent table
// reads as empty. Memory use is unbounded by design; callers own the risk.
func (c *Collection) FindAll(ctx context.Context) ([]Document, error) {
	if !c.Exists(ctx) {
		return nil, nil
	}

	var docs []Document
	if err := c.db.WithContext(ctx).Table(c.name).Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("tenant store: read %s: %w", c.name, err)
	}
	return docs, nil
}

// Drop removes the collection's table. Dropping a collection that was never
// materialised is a no-op, not an error.
func (c *Collection) Drop(ctx context.Context) error {
	existed := c.Exists(ctx)

	if err := c.db.WithContext(ctx).Migrator().DropTable(c.name); err != nil {
		return fmt.Errorf("tenant store: drop %s: %w", c.name, err)
	}

	if existed {
		metrics.TenantCollections.Dec()
	}
	return nil
}

func (c *Collection) ensure(ctx context.Context) error {
	if c.Exists(ctx) {
		return nil
	}

	if err := c.db.WithContext(ctx).Table(c.name).AutoMigrate(&Document{}); err != nil {
		return fmt.Errorf("tenant store: create %s: %w", c.name, err)
	}
	return nil
}
