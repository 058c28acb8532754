package model

// Privilege represents a permission that can be assigned to roles and users
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`
}

var DefaultPrivileges = []Privilege{
	// Master data
	{Code: "master:view", Name: "View Master Data"},
	{Code: "master:manage", Name: "Manage Items, Customers and Suppliers"},
	// Sales
	{Code: "sale:view", Name: "View Sales"},
	{Code: "sale:create", Name: "Create Sale"},
	{Code: "sale:update", Name: "Update Sale"},
	{Code: "sale:delete", Name: "Delete Sale"},
	// Purchases
	{Code: "purchase:view", Name: "View Purchases"},
	{Code: "purchase:create", Name: "Create Purchase"},
	{Code: "purchase:update", Name: "Update Purchase"},
	{Code: "purchase:delete", Name: "Delete Purchase"},
	// Supplier bills
	{Code: "bill:view", Name: "View Supplier Bills"},
	{Code: "bill:create", Name: "Create Supplier Bill"},
	{Code: "bill:update", Name: "Update Supplier Bill"},
	{Code: "bill:delete", Name: "Delete Supplier Bill"},
	// Payments
	{Code: "payment:create", Name: "Record Payment"},
	{Code: "payment:delete", Name: "Delete Payment"},
	// Reports and settings
	{Code: "report:view", Name: "View Reports"},
	{Code: "settings:manage", Name: "Manage Settings"},
}

// IsDestructive reports whether the privilege deletes ledger documents or changes settings.
// The CLERK role is seeded without these.
func (p Privilege) IsDestructive() bool {
	switch p.Code {
	case "sale:delete", "purchase:delete", "bill:delete", "payment:delete", "settings:manage":
		return true
	}
	return false
}
