package web

import (
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"interiorhub-web/internal/domain"
	"interiorhub-web/pkg/render"
	"interiorhub-web/pkg/utils"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const defaultDescription = "High-quality finish and premium material. Contact for custom sizes and installation."

// Business contact details shown on the contact page.
const (
	ContactPhone   = "+91 9999993798"
	ContactEmail   = "Shoaibjmd91@gmail.com"
	ContactAddress = "C-28, Parwana Rd, OLd Govindpura, Krishna Nagar, New Delhi, Delhi, 110051"
)

var rupees = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders an amount as "₹n" with local digit grouping.
func FormatRupees(amount float64) string {
	if amount == math.Trunc(amount) {
		return "₹" + rupees.Sprintf("%d", int64(amount))
	}
	return "₹" + rupees.Sprintf("%.2f", amount)
}

// PriceLabel is the product price, or "Contact for price" when none is set.
func PriceLabel(price float64) string {
	if price <= 0 {
		return "Contact for price"
	}
	return FormatRupees(price)
}

// DimensionsLabel renders "w × h × d cm", or "Custom" when the product has no dimensions.
func DimensionsLabel(d *domain.Dimensions) string {
	if d == nil {
		return "Custom"
	}
	return fmt.Sprintf("%s × %s × %s cm", number(d.W), number(d.H), number(d.D))
}

func number(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Material is the first two tags of a product.
func Material(p *domain.Product) []string {
	if len(p.Tags) > 2 {
		return p.Tags[:2]
	}
	return p.Tags
}

// ThumbURL routes root-relative images through the thumbnail endpoint.
func ThumbURL(image string, width int) string {
	if !strings.HasPrefix(image, "/") || strings.HasPrefix(image, "//") {
		return image
	}
	return fmt.Sprintf("/media/thumb%s?w=%d", image, width)
}

// ShareData is what the share button hands to the browser share sheet.
type ShareData struct {
	Title string
	Text  string
	URL   string
}

func NewShareData(p *domain.Product, pageURL string) ShareData {
	return ShareData{
		Title: p.Title,
		Text:  fmt.Sprintf("Check out this product: %s on %s", p.Title, domain.BrandName),
		URL:   pageURL,
	}
}

func description(p *domain.Product) template.HTML {
	if strings.TrimSpace(p.Description) == "" {
		return template.HTML(template.HTMLEscapeString(defaultDescription))
	}
	return render.Markdown(p.Description)
}

// productLink builds /product/{slug} with the given viewer state.
func productLink(slug, variant string, img int, modal bool) string {
	q := url.Values{}
	if variant != "" {
		q.Set("variant", variant)
	}
	if img > 0 {
		q.Set("img", strconv.Itoa(img))
	}
	if modal {
		q.Set("modal", "1")
	}
	link := domain.RouteProduct + url.PathEscape(slug)
	if len(q) > 0 {
		link += "?" + q.Encode()
	}
	return link
}

// modalKey links a modal control to the key it stands for; the product page applies the key
// to the gallery at index.
func modalKey(slug, variant string, index int, key string) string {
	return productLink(slug, variant, index, true) + "&key=" + url.QueryEscape(key)
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

var funcMap = template.FuncMap{
	"price":        PriceLabel,
	"rupees":       FormatRupees,
	"thumb":        ThumbURL,
	"categoryPath": utils.CategoryPath,
	"productLink":  productLink,
	"modalKey":     modalKey,
	"hasTag":       hasTag,
	"num":          number,
	"add":          func(a, b int) int { return a + b },
}
