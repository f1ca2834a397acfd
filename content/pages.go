// Package content holds the storefront's static informational pages.
package content

type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

var pages = []Page{
	{
		Slug:  "about",
		Title: "About Us",
		Body:  "We curate authentic designer and niche fragrances, sourced from official distributors and stored away from heat and light until they ship.",
	},
	{
		Slug:  "authenticity",
		Title: "Authenticity Guarantee",
		Body:  "Every bottle we sell is original. If a product turns out not to be genuine we refund the full purchase price.",
	},
	{
		Slug:  "shipping",
		Title: "Shipping & Returns",
		Body:  "Orders confirmed over chat ship within one business day. Sealed, unused items can be returned within seven days of delivery.",
	},
	{
		Slug:  "contact",
		Title: "Contact",
		Body:  "Use the chat button on any product page to ask about stock, decants or gift wrapping.",
	},
}

// Pages returns every page in menu order.
func Pages() []Page {
	return append([]Page(nil), pages...)
}

func Find(slug string) (Page, bool) {
	for _, p := range pages {
		if p.Slug == slug {
			return p, true
		}
	}
	return Page{}, false
}
