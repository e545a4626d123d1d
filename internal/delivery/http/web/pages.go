package web

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"interiorhub-web/config"
	v1 "interiorhub-web/internal/delivery/http/v1"
	"interiorhub-web/internal/domain"
	"interiorhub-web/internal/usecase"
	"interiorhub-web/pkg/logger"
	"interiorhub-web/pkg/utils"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

//go:embed static/*.js
var staticFS embed.FS

// ProductScript drives the gallery modal keys and the share button.
const ProductScript = "/static/product.js"

const thumbWidth = 160

const saveFailureMessage = "Could not save this design. Please try again."

var pageNames = []string{"home", "category", "product", "contact", "blog", "notfound"}

// PageHandler renders the public HTML pages.
type PageHandler struct {
	catalogUC *usecase.CatalogUsecase
	contentUC *usecase.ContentUsecase
	viewerUC  *usecase.ViewerUsecase
	contactUC *usecase.ContactUsecase
	designUC  *usecase.DesignUsecase
	cfg       *config.Config
	pages     map[string]*template.Template
}

func NewPageHandler(
	catalogUC *usecase.CatalogUsecase,
	contentUC *usecase.ContentUsecase,
	viewerUC *usecase.ViewerUsecase,
	contactUC *usecase.ContactUsecase,
	designUC *usecase.DesignUsecase,
	cfg *config.Config,
) (*PageHandler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &PageHandler{
		catalogUC: catalogUC,
		contentUC: contentUC,
		viewerUC:  viewerUC,
		contactUC: contactUC,
		designUC:  designUC,
		cfg:       cfg,
		pages:     pages,
	}, nil
}

// parseTemplates pairs the base layout and shared partials with every page template.
func parseTemplates() (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcMap).ParseFS(templatesFS, "templates/base.tmpl", "templates/partials.tmpl", "templates/"+name+".tmpl")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}
	return pages, nil
}

func (h *PageHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET /contact", h.Contact)
	mux.HandleFunc("POST /contact", h.SubmitContact)
	mux.HandleFunc("GET /blog", h.Blog)
	mux.HandleFunc("GET /category/{slug}", h.Category)
	mux.HandleFunc("GET /product/{slug}", h.Product)
	mux.HandleFunc("POST /product/{slug}/quote", h.SubmitQuote)
	mux.HandleFunc("POST /product/{slug}/save", h.SaveDesign)
	mux.Handle("GET /static/", http.FileServerFS(staticFS))
}

// layout is the data every page template receives.
type layout struct {
	Title       string
	Description string
	Canonical   string
	Brand       string
	Year        int
	Scripts     []string
	Refresh     string
	Page        interface{}
}

func (h *PageHandler) layout(r *http.Request, title, desc string, page interface{}) layout {
	return layout{
		Title:       title,
		Description: desc,
		Canonical:   strings.TrimSuffix(h.cfg.SiteURL, "/") + r.URL.Path,
		Brand:       domain.BrandName,
		Year:        time.Now().Year(),
		Page:        page,
	}
}

// render executes into a buffer so a template error never leaves a half-written page.
func (h *PageHandler) render(w http.ResponseWriter, r *http.Request, status int, name string, data layout) {
	t, ok := h.pages[name]
	if !ok {
		utils.WriteError(w, http.StatusInternalServerError, "template not initialized")
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Str("template", name).Msg("Template exec failed")
		http.Error(w, "template exec error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

type homePage struct {
	Categories []domain.CategoryTile
	Featured   []domain.Product
}

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	cats, err := h.contentUC.Categories(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load categories")
	}
	page := homePage{Categories: cats, Featured: h.catalogUC.Featured(r.Context())}
	h.render(w, r, http.StatusOK, "home", h.layout(r, "The Interior Hub", "Premium interiors for every space", page))
}

type categoryPage struct {
	Listing     *domain.CategoryListing
	ShowFilters bool
	SortKeys    []string
	Path        string
}

func (h *PageHandler) Category(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	state := usecase.FilterStateFromQuery(r.URL.Query())
	listing := h.catalogUC.ListCategory(r.Context(), slug, state)

	page := categoryPage{
		Listing:     listing,
		ShowFilters: state.ShowFilters,
		SortKeys:    domain.SortKeys,
		Path:        r.URL.Path,
	}
	h.render(w, r, http.StatusOK, "category", h.layout(r, listing.Title, "Browse "+utils.Unslug(slug), page))
}

type productPage struct {
	Product     *domain.Product
	Viewer      domain.ViewerSelection
	Modal       bool
	Breadcrumb  string
	Material    []string
	Dimensions  string
	Price       string
	Description template.HTML
	Related     []domain.Product
	Share       ShareData
	Saved       bool
	Outcome     *domain.SubmissionOutcome
	Form        domain.Submission
	SaveOutcome *domain.SubmissionOutcome
}

func (h *PageHandler) Product(w http.ResponseWriter, r *http.Request) {
	h.renderProduct(w, r, http.StatusOK, productState{})
}

// productState is what a POST back to the product page carries into the render.
type productState struct {
	Outcome     *domain.SubmissionOutcome // quote form
	Form        domain.Submission
	SaveOutcome *domain.SubmissionOutcome
}

func (h *PageHandler) renderProduct(w http.ResponseWriter, r *http.Request, status int, state productState) {
	product, err := h.catalogUC.GetProductDetails(r.Context(), r.PathValue("slug"))
	if err != nil {
		h.notFound(w, r, "Product not found")
		return
	}

	query := r.URL.Query()
	sel := h.viewerUC.Select(r.Context(), product, query.Get("variant"), utils.ParseInt(query.Get("img"), 0))
	if query.Get("modal") == "1" {
		sel.Gallery = sel.Gallery.Open(sel.Gallery.Index)
		// Modal controls carry the key they stand for
		if key := query.Get("key"); key != "" {
			sel.Gallery = sel.Gallery.HandleKey(key)
		}
	}
	modal := sel.Gallery.ModalOpen

	related, _ := h.catalogUC.Related(r.Context(), product.Slug)
	pageURL := strings.TrimSuffix(h.cfg.SiteURL, "/") + domain.RouteProduct + url.PathEscape(product.Slug)

	page := productPage{
		Product:     product,
		Viewer:      sel,
		Modal:       modal,
		Breadcrumb:  utils.CategoryPath(product.Category),
		Material:    Material(product),
		Dimensions:  DimensionsLabel(product.Dimensions),
		Price:       PriceLabel(product.Price),
		Description: description(product),
		Related:     related,
		Share:       NewShareData(product, pageURL),
		Saved:       query.Get("saved") == "1",
		Outcome:     state.Outcome,
		Form:        state.Form,
		SaveOutcome: state.SaveOutcome,
	}

	data := h.layout(r, product.Title, product.Category, page)
	data.Scripts = append(data.Scripts, ProductScript)
	if sel.Mode == domain.ViewerModeModel {
		data.Scripts = append(data.Scripts, sel.ScriptURL)
	}
	h.render(w, r, status, "product", data)
}

func (h *PageHandler) SubmitQuote(w http.ResponseWriter, r *http.Request) {
	sub, err := v1.DecodeSubmission(w, r)
	if err != nil {
		h.renderProduct(w, r, http.StatusBadRequest, productState{Outcome: &domain.SubmissionOutcome{Message: "Invalid form"}, Form: sub})
		return
	}

	out, err := h.contactUC.SubmitQuote(r.Context(), domain.VisitorFromContext(r.Context()), r.PathValue("slug"), sub, v1.RequestMetaFrom(r))
	if errors.Is(err, domain.ErrProductNotFound) {
		h.notFound(w, r, "Product not found")
		return
	}
	status, outcome := pageOutcome(out, err)
	if outcome.Success {
		sub = domain.Submission{}
	}
	h.renderProduct(w, r, status, productState{Outcome: outcome, Form: sub})
}

// SaveDesign records the variant on screen and returns to the product page.
func (h *PageHandler) SaveDesign(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if err := r.ParseForm(); err != nil {
		h.renderProduct(w, r, http.StatusBadRequest, productState{SaveOutcome: &domain.SubmissionOutcome{Message: saveFailureMessage}})
		return
	}

	design, err := h.designUC.Save(r.Context(), domain.VisitorFromContext(r.Context()), slug, r.PostFormValue("variant"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			h.notFound(w, r, "Product not found")
			return
		}
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to save design")
		h.renderProduct(w, r, http.StatusInternalServerError, productState{SaveOutcome: &domain.SubmissionOutcome{Message: saveFailureMessage}})
		return
	}

	target := productLink(slug, design.Variant, 0, false)
	if strings.Contains(target, "?") {
		target += "&saved=1"
	} else {
		target += "?saved=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

type contactPage struct {
	Phone    string
	PhoneURL template.URL
	Email    string
	Address  string
	Outcome  *domain.SubmissionOutcome
	Form     domain.Submission
}

func (h *PageHandler) Contact(w http.ResponseWriter, r *http.Request) {
	h.renderContact(w, r, http.StatusOK, nil, domain.Submission{})
}

func (h *PageHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	sub, err := v1.DecodeSubmission(w, r)
	if err != nil {
		h.renderContact(w, r, http.StatusBadRequest, &domain.SubmissionOutcome{Message: "Invalid form"}, sub)
		return
	}

	out, err := h.contactUC.SubmitContact(r.Context(), domain.VisitorFromContext(r.Context()), sub, v1.RequestMetaFrom(r))
	status, outcome := pageOutcome(out, err)
	if outcome.Success {
		sub = domain.Submission{}
	}
	h.renderContact(w, r, status, outcome, sub)
}

func (h *PageHandler) renderContact(w http.ResponseWriter, r *http.Request, status int, outcome *domain.SubmissionOutcome, form domain.Submission) {
	page := contactPage{
		Phone:    ContactPhone,
		PhoneURL: template.URL("tel:" + strings.ReplaceAll(ContactPhone, " ", "")),
		Email:    ContactEmail,
		Address:  ContactAddress,
		Outcome:  outcome,
		Form:     form,
	}
	h.render(w, r, status, "contact", h.layout(r, "Contact Us", "Get in touch for quotes and measurements", page))
}

// pageOutcome turns a submission result into the message shown under the form.
func pageOutcome(out *domain.SubmissionOutcome, err error) (int, *domain.SubmissionOutcome) {
	status, message := v1.SubmissionStatus(out, err)
	if out != nil {
		return status, out
	}
	return status, &domain.SubmissionOutcome{Success: false, Message: message}
}

func (h *PageHandler) Blog(w http.ResponseWriter, r *http.Request) {
	videos, err := h.contentUC.Videos(r.Context())
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to load videos")
	}
	h.render(w, r, http.StatusOK, "blog", h.layout(r, "Our Projects", "Real project videos", videos))
}

// notFound shows the not-found state and sends the browser home after the configured delay.
func (h *PageHandler) notFound(w http.ResponseWriter, r *http.Request, message string) {
	data := h.layout(r, message, message, message)
	data.Refresh = fmt.Sprintf("%.1f;url=%s", h.cfg.NotFoundRedirectDelay.Seconds(), domain.RouteHome)
	h.render(w, r, http.StatusNotFound, "notfound", data)
}
