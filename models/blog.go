package models

import (
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

type BlogPost struct {
	ID             string     `bson:"_id,omitempty" json:"id"`
	Slug           string     `bson:"slug" json:"slug"`
	Title          string     `bson:"title" json:"title"`
	Author         string     `bson:"author" json:"author"`
	Date           string     `bson:"date" json:"date"`
	Image          string     `bson:"image" json:"image"`
	Excerpt        string     `bson:"excerpt" json:"excerpt"`
	Content        string     `bson:"content" json:"content"`
	SEOTitle       string     `bson:"seoTitle,omitempty" json:"seoTitle,omitempty"`
	SEODescription string     `bson:"seoDescription,omitempty" json:"seoDescription,omitempty"`
	Keywords       []string   `bson:"keywords,omitempty" json:"keywords,omitempty"`
	CreatedAt      *time.Time `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
	UpdatedAt      *time.Time `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

func (b *BlogPost) Normalize() {
	b.Slug = strings.TrimSpace(b.Slug)
	b.Title = strings.TrimSpace(b.Title)
	b.Author = strings.TrimSpace(b.Author)
	b.Date = strings.TrimSpace(b.Date)
	b.Image = strings.TrimSpace(b.Image)
	b.Excerpt = strings.TrimSpace(b.Excerpt)
	b.SEOTitle = strings.TrimSpace(b.SEOTitle)
	b.SEODescription = strings.TrimSpace(b.SEODescription)

	keywords := b.Keywords[:0]
	for _, k := range b.Keywords {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	b.Keywords = keywords
}

func (b BlogPost) Validate() error {
	var v ValidationError
	v.require("title", b.Title)
	v.require("slug", b.Slug)
	v.require("author", b.Author)
	v.require("excerpt", b.Excerpt)
	v.require("content", b.Content)
	if b.Date != "" {
		if _, err := time.Parse(DateLayout, b.Date); err != nil {
			v.add("date")
		}
	}
	return v.err()
}
