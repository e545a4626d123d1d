package domain

// Sort keys
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
)

var SortKeys = []string{
	SortRelevance,
	SortPriceAsc,
	SortPriceDesc,
	SortNewest,
}

// Form kinds
const (
	FormKindContact = "contact"
	FormKindQuote   = "quote"
)

// User-visible submission outcomes. Each form kind has exactly one success and one failure message.
const (
	ContactSuccessMessage = "Message sent — we'll contact you soon."
	ContactFailureMessage = "Submission failed. Please try again later."
	QuoteSuccessMessage   = "Quote request submitted. We'll contact you shortly."
	QuoteFailureMessage   = "Submission failed. Please try again."
)

// Default price bounds when a candidate list is empty.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000000
)

// Site routes
const (
	RouteHome     = "/"
	RouteContact  = "/contact"
	RouteBlog     = "/blog"
	RouteCategory = "/category/"
	RouteProduct  = "/product/"
)

const (
	FeaturedProductCount = 6
	RelatedProductLimit  = 6
	PlaceholderImage     = "/images/placeholder.jpg"
	BrandName            = "Home Interio"
)
