package catalogsource

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"interiorhub-web/config"

	"github.com/stretchr/testify/require"
)

func TestOpenEmbeddedAndFile(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src, closeFn, err := Open(ctx, &config.Config{CatalogSource: config.CatalogSourceEmbedded})
	require.NoError(t, err)
	defer closeFn()
	products, err := src.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, products)

	path := filepath.Join(t.TempDir(), "product.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id":1,"slug":"a","title":"A","category":"Kitchen"}]`), 0o644))
	src, closeFn, err = Open(ctx, &config.Config{CatalogSource: config.CatalogSourceFile, CatalogFile: path})
	require.NoError(t, err)
	defer closeFn()
	products, err = src.Load(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
}

func TestOpenUnknownSource(t *testing.T) {
	t.Parallel()

	_, closeFn, err := Open(context.Background(), &config.Config{CatalogSource: "ftp"})
	require.Error(t, err)
	require.NotNil(t, closeFn)
}
