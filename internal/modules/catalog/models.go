package catalog

import "time"

// Category groups products on the storefront (e.g. Marketing Material).
type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(140);not null;uniqueIndex:ux_categories_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Active      bool      `gorm:"not null;default:1" json:"active"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`

	Subcategories []Subcategory `gorm:"foreignKey:CategoryID" json:"subcategories,omitempty"`
}

func (Category) TableName() string { return "categories" }

type Subcategory struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	CategoryID  string    `gorm:"type:char(36);not null;index:ix_subcategories_category_id" json:"category_id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(140);not null;uniqueIndex:ux_subcategories_slug" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	Position    int       `gorm:"not null;default:0" json:"position"`
	Active      bool      `gorm:"not null;default:1" json:"active"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Subcategory) TableName() string { return "subcategories" }

// Size is a print dimension option (A5, 90x54mm card, ...).
type Size struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	Name     string `gorm:"type:varchar(120);not null" json:"name"`
	WidthMM  int    `gorm:"column:width_mm;not null" json:"width_mm"`
	HeightMM int    `gorm:"column:height_mm;not null" json:"height_mm"`
	Active   bool   `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Size) TableName() string { return "sizes" }

type PaperType struct {
	ID     string `gorm:"type:char(36);primaryKey" json:"id"`
	Name   string `gorm:"type:varchar(120);not null" json:"name"`
	GSM    int    `gorm:"not null" json:"gsm"`
	Finish string `gorm:"type:varchar(64)" json:"finish"` // matte, glossy, textured
	Active bool   `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (PaperType) TableName() string { return "paper_types" }

type PrintType struct {
	ID        string `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string `gorm:"type:varchar(120);not null" json:"name"`
	Sides     string `gorm:"type:varchar(16);not null;default:'single'" json:"sides"` // single|double
	ColorMode string `gorm:"column:color_mode;type:varchar(16);not null;default:'color'" json:"color_mode"`
	Active    bool   `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (PrintType) TableName() string { return "print_types" }

type CutType struct {
	ID     string `gorm:"type:char(36);primaryKey" json:"id"`
	Name   string `gorm:"type:varchar(120);not null" json:"name"`
	Active bool   `gorm:"not null;default:1" json:"active"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (CutType) TableName() string { return "cut_types" }
