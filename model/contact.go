package model

// Contact owns its phones: they are created, rewritten and removed only inside a
// transaction scoped to the contact, and cascade away with it on delete.
type Contact struct {
	ID     int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name   string  `gorm:"size:100;not null" json:"name"`
	Age    int     `gorm:"not null" json:"age"`
	Phones []Phone `gorm:"foreignKey:ContactID;references:ID" json:"phones"`
}

// Phone ids are scoped per contact; the row identity is (id, contact_id).
// Number is always the E.164 form, bounded by the column width.
type Phone struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ContactID int64  `gorm:"primaryKey;autoIncrement:false" json:"contact_id"`
	Number    string `gorm:"size:16;not null" json:"phone"`
}

func (Contact) TableName() string { return "contacts" }

func (Phone) TableName() string { return "phones" }
