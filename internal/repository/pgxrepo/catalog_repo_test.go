package pgxrepo

import (
	"testing"

	"interiorhub-web/internal/domain"

	"github.com/stretchr/testify/require"
)

func TestProductRowDecodesJSONColumns(t *testing.T) {
	slug := "wave-3d-wall-panel"
	row := productRow{
		ID:         4,
		Slug:       &slug,
		Title:      "Wave 3D Wall Panel",
		Price:      -10,
		Views:      []byte(`{"Matte White":["/w.jpg"],"Gold Brush":["/g.jpg"]}`),
		GLTF:       []byte(`{"Matte White":"models/w.glb","Gold Brush":"models/g.glb"}`),
		Dimensions: []byte(`{"w":60,"h":60,"d":2}`),
	}

	p, err := row.toDomain()
	require.NoError(t, err)
	require.Equal(t, slug, p.Slug)
	require.Zero(t, p.Price)
	require.Equal(t, []string{"Matte White", "Gold Brush"}, p.Views.Names())
	require.Equal(t, "models/w.glb", p.GLTF.Resolve(""))
	require.Equal(t, &domain.Dimensions{W: 60, H: 60, D: 2}, p.Dimensions)
}

func TestProductRowWithoutOptionalColumns(t *testing.T) {
	p, err := productRow{ID: 9, GLTF: []byte(`"models/x.glb"`), Dimensions: []byte("null")}.toDomain()
	require.NoError(t, err)
	require.Empty(t, p.Slug)
	require.Nil(t, p.Dimensions)
	require.Equal(t, "models/x.glb", p.GLTF.Single)

	_, err = productRow{ID: 1, Views: []byte(`[1,2]`)}.toDomain()
	require.Error(t, err)
}

func TestUpsertArgsKeepsOptionalColumnsNull(t *testing.T) {
	args, err := upsertArgs(3, domain.Product{ID: 7, Slug: "plain"})
	require.NoError(t, err)
	require.Len(t, args, 13)
	require.Equal(t, 3, args[1])
	require.Equal(t, []string{}, args[5])
	require.Nil(t, args[9])
	require.Nil(t, args[10])
	require.Nil(t, args[11])
}
