package model

// Role groups privileges; users inherit their role's privileges at creation.
type Role struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Code        string      `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Name        string      `gorm:"type:varchar(100)" json:"name"`
	Description string      `gorm:"type:text" json:"description"`
	Privileges  []Privilege `gorm:"many2many:role_privileges;" json:"privileges,omitempty"`
}

const (
	RoleOwner = "OWNER"
	RoleClerk = "CLERK"
)

var DefaultRoles = []Role{
	{
		Code:        RoleOwner,
		Name:        "Owner",
		Description: "Full ledger access including deletions and settings",
	},
	{
		Code:        RoleClerk,
		Name:        "Clerk",
		Description: "Day-to-day entry of sales, purchases and bills",
	},
}
