package main

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"interiorhub-web/config"
	"interiorhub-web/internal/domain"
	memcache "interiorhub-web/internal/infrastructure/cache"
	"interiorhub-web/internal/repository/catalogsource"
	"interiorhub-web/internal/repository/pgxrepo"
	"interiorhub-web/internal/repository/static"
	"interiorhub-web/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// Publish targets
const (
	targetR2       = "r2"
	targetPostgres = "postgres"
)

type cli struct {
	cfg      *config.Config
	file     string
	jsonOut  bool
	query    string
	tags     []string
	minPrice float64
	maxPrice float64
	sortKey  string
	target   string
}

func newRootCmd(cfg *config.Config) *cobra.Command {
	c := &cli{cfg: cfg}

	root := &cobra.Command{
		Use:          "catalogctl",
		Short:        "Inspect, test and publish the product catalog",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&c.file, "file", "", "read product.json from this path instead of CATALOG_SOURCE")
	root.PersistentFlags().BoolVar(&c.jsonOut, "json", false, "print JSON instead of a table")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Load the catalog and report problems",
		Args:  cobra.NoArgs,
		RunE:  c.runValidate,
	}

	resolveCmd := &cobra.Command{
		Use:   "resolve <slug>",
		Short: "Show which products a category slug resolves to",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runResolve,
	}

	filterCmd := &cobra.Command{
		Use:   "filter <slug>",
		Short: "Run a category page visit with the given filter state",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runFilter,
	}
	filterCmd.Flags().StringVar(&c.query, "q", "", "text query")
	filterCmd.Flags().StringArrayVar(&c.tags, "tag", nil, "required tag (repeatable)")
	filterCmd.Flags().Float64Var(&c.minPrice, "min", domain.DefaultMinPrice, "minimum price")
	filterCmd.Flags().Float64Var(&c.maxPrice, "max", domain.DefaultMaxPrice, "maximum price")
	filterCmd.Flags().StringVar(&c.sortKey, "sort", domain.SortRelevance, "sort key: "+strings.Join(domain.SortKeys, ", "))

	publishCmd := &cobra.Command{
		Use:   "publish",
		Short: "Validate a product.json file and publish it to R2 or Postgres",
		Args:  cobra.NoArgs,
		RunE:  c.runPublish,
	}
	publishCmd.Flags().StringVar(&c.target, "to", targetR2, "publish target: r2 or postgres")

	root.AddCommand(validateCmd, resolveCmd, filterCmd, publishCmd)
	return root
}

func (c *cli) loadCatalog(ctx context.Context) (*static.Catalog, error) {
	if c.file != "" {
		return static.LoadCatalog(ctx, static.NewFileSource(c.file))
	}
	src, closeSource, err := catalogsource.Open(ctx, c.cfg)
	if err != nil {
		return nil, err
	}
	defer closeSource()
	return static.LoadCatalog(ctx, src)
}

func (c *cli) catalogUsecase(catalog *static.Catalog) *usecase.CatalogUsecase {
	return usecase.NewCatalogUsecase(catalog, usecase.NewCategoryResolver(nil), memcache.NewMemoryCache(time.Minute, time.Minute), c.cfg)
}

func (c *cli) runValidate(cmd *cobra.Command, args []string) error {
	catalog, err := c.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var warnings []string
	for _, p := range catalog.All() {
		if p.Slug == "" {
			warnings = append(warnings, fmt.Sprintf("product %d has no slug and cannot be linked", p.ID))
		}
		if len(p.Images) == 0 && len(p.Views) == 0 {
			warnings = append(warnings, fmt.Sprintf("product %q has no images", p.Slug))
		}
	}

	// Every home category should resolve to something
	resolver := usecase.NewCategoryResolver(nil)
	for slug := range usecase.DefaultCategoryAliases {
		if res := resolver.Resolve(slug, catalog.All()); len(res.Products) == 0 {
			warnings = append(warnings, fmt.Sprintf("category %q resolves to no products", slug))
		}
	}

	fmt.Fprintf(out, "%d products OK\n", catalog.Len())
	for _, w := range warnings {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	return nil
}

func (c *cli) runResolve(cmd *cobra.Command, args []string) error {
	catalog, err := c.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	res := c.catalogUsecase(catalog).ResolveCategory(cmd.Context(), args[0])
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
			"strategy": res.Strategy,
			"products": slugs(res.Products),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "strategy: %s\n", res.Strategy)
	return writeTable(cmd.OutOrStdout(), res.Products)
}

func (c *cli) runFilter(cmd *cobra.Command, args []string) error {
	catalog, err := c.loadCatalog(cmd.Context())
	if err != nil {
		return err
	}

	// Same query string a category page visit would carry
	values := url.Values{"q": {c.query}, "sort": {c.sortKey}, "tag": c.tags}
	if cmd.Flags().Changed("min") {
		values.Set("min_price", strconv.FormatFloat(c.minPrice, 'f', -1, 64))
	}
	if cmd.Flags().Changed("max") {
		values.Set("max_price", strconv.FormatFloat(c.maxPrice, 'f', -1, 64))
	}

	listing := c.catalogUsecase(catalog).ListCategory(cmd.Context(), args[0], usecase.FilterStateFromQuery(values))
	if c.jsonOut {
		return writeJSON(cmd.OutOrStdout(), listing)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d results (strategy %s", listing.Title, listing.Total, listing.Strategy)
	if listing.Fallback {
		fmt.Fprint(out, ", whole catalog")
	}
	fmt.Fprintf(out, ", sort %s)\n", listing.Sort)
	return writeTable(out, listing.Products)
}

func (c *cli) runPublish(cmd *cobra.Command, args []string) error {
	if c.file == "" {
		return fmt.Errorf("--file is required for publish")
	}
	ctx := cmd.Context()

	// 1. Validate before anything leaves the machine
	data, err := os.ReadFile(c.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", c.file, err)
	}
	products, err := static.DecodeProducts(data)
	if err != nil {
		return err
	}
	if _, err := static.NewCatalog(products); err != nil {
		return err
	}

	// 2. Publish
	out := cmd.OutOrStdout()
	switch c.target {
	case targetR2:
		r2, err := catalogsource.NewR2(ctx, c.cfg)
		if err != nil {
			return err
		}
		location, err := r2.UploadBuffer(ctx, c.cfg.CatalogObjectKey, data, "application/json")
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "published %d products to %s\n", len(products), location)

	case targetPostgres:
		pool, err := pgxrepo.NewPgxPool(ctx, c.cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		repo := pgxrepo.NewCatalogRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := repo.Publish(ctx, products); err != nil {
			return err
		}
		fmt.Fprintf(out, "published %d products to postgres\n", len(products))

	default:
		return fmt.Errorf("unknown publish target %q", c.target)
	}
	return nil
}

func writeTable(w io.Writer, products []domain.Product) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSLUG\tCATEGORY\tPRICE")
	for _, p := range products {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", p.ID, p.Slug, p.Category, strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func slugs(products []domain.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}
