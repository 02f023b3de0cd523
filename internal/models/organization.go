package models

// Organization is the master record for a tenant. CollectionName always holds
// the derived name of the tenant's dedicated document table and is rewritten
// together with Name on rename.
type Organization struct {
	BaseModel

	Name           string `gorm:"uniqueIndex;not null" json:"name"`
	AdminEmail     string `gorm:"not null" json:"admin_email"`
	CollectionName string `gorm:"not null" json:"collection_name"`
}
