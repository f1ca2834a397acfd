package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validProduct() Product {
	return Product{
		Name:        "Sauvage",
		Brand:       "Dior",
		Image:       "/images/sauvage.jpg",
		Description: "Fresh and spicy",
		Category:    CategoryMen,
	}
}

func TestProductValidate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	p := Product{Category: "kids", Price: ptr(-1), Rating: ptr(5.5)}
	err := p.Validate()
	require.Error(t, err)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name", "brand", "image", "description", "category", "price", "rating"}, verr.Fields)
}

func TestProductValidateBlankAfterTrim(t *testing.T) {
	p := validProduct()
	p.Name = "   "
	p.Normalize()

	err := p.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"name"}, verr.Fields)
}

func TestProductNormalize(t *testing.T) {
	p := validProduct()
	p.Category = " Unisex "
	p.Notes = &ScentNotes{Top: "  "}
	p.Normalize()

	assert.Equal(t, CategoryUnisex, p.Category)
	assert.Nil(t, p.Notes)
}

func TestBlogPostValidate(t *testing.T) {
	post := BlogPost{
		Slug:    "choosing-a-signature-scent",
		Title:   "Choosing a signature scent",
		Author:  "Rina",
		Date:    "2024-03-01",
		Excerpt: "Where to start",
		Content: "# Start with notes",
	}
	assert.NoError(t, post.Validate())

	post.Date = "01/03/2024"
	post.Author = ""
	var verr *ValidationError
	require.True(t, errors.As(post.Validate(), &verr))
	assert.Equal(t, []string{"author", "date"}, verr.Fields)
}

func TestBlogPostNormalizeKeywords(t *testing.T) {
	post := BlogPost{Keywords: []string{" oud ", "", "  ", "amber"}}
	post.Normalize()
	assert.Equal(t, []string{"oud", "amber"}, post.Keywords)
}
