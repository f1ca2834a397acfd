package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryMen    Category = "men"
	CategoryWomen  Category = "women"
	CategoryUnisex Category = "unisex"
)

// Categories lists the accepted product categories in display order.
var Categories = []Category{CategoryMen, CategoryWomen, CategoryUnisex}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

type ScentNotes struct {
	Top   string `bson:"top" json:"top"`
	Heart string `bson:"heart" json:"heart"`
	Base  string `bson:"base" json:"base"`
}

type Product struct {
	ID           string      `bson:"_id,omitempty" json:"id"`
	Name         string      `bson:"name" json:"name"`
	Brand        string      `bson:"brand" json:"brand"`
	Price        *float64    `bson:"price,omitempty" json:"price,omitempty"`
	Image        string      `bson:"image" json:"image"`
	Description  string      `bson:"description" json:"description"`
	Category     Category    `bson:"category" json:"category"`
	Featured     bool        `bson:"featured" json:"featured"`
	Notes        *ScentNotes `bson:"notes,omitempty" json:"notes,omitempty"`
	Volume       string      `bson:"volume,omitempty" json:"volume,omitempty"`
	Rating       *float64    `bson:"rating,omitempty" json:"rating,omitempty"`
	RatingSource string      `bson:"ratingSource,omitempty" json:"ratingSource,omitempty"`
	CreatedAt    *time.Time  `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt    *time.Time  `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Normalize trims free-text fields as submitted by the admin form.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Brand = strings.TrimSpace(p.Brand)
	p.Image = strings.TrimSpace(p.Image)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = Category(strings.ToLower(strings.TrimSpace(string(p.Category))))
	p.Volume = strings.TrimSpace(p.Volume)
	p.RatingSource = strings.TrimSpace(p.RatingSource)
	if p.Notes != nil {
		p.Notes.Top = strings.TrimSpace(p.Notes.Top)
		p.Notes.Heart = strings.TrimSpace(p.Notes.Heart)
		p.Notes.Base = strings.TrimSpace(p.Notes.Base)
		if *p.Notes == (ScentNotes{}) {
			p.Notes = nil
		}
	}
}

func (p Product) Validate() error {
	var v ValidationError
	v.require("name", p.Name)
	v.require("brand", p.Brand)
	v.require("image", p.Image)
	v.require("description", p.Description)
	if !p.Category.Valid() {
		v.add("category")
	}
	if p.Price != nil && *p.Price < 0 {
		v.add("price")
	}
	if p.Rating != nil && (*p.Rating < 0 || *p.Rating > 5) {
		v.add("rating")
	}
	return v.err()
}
