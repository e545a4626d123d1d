package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSlug(t *testing.T) {
	cases := map[string]string{
		"Modular Kitchen":      "modular-kitchen",
		"3D Wall Panel":        "3d-wall-panel",
		"  PVC   Ceiling ":     "pvc-ceiling",
		"PVC & WPC Panels":     "pvc-wpc-panels",
		"Luxury Shop-Interior": "luxury-shop-interior",
		"Oak--Finish":          "oak-finish",
		"Kitchen!":             "kitchen",
		"":                     "",
	}
	for in, want := range cases {
		require.Equal(t, want, GenerateSlug(in), "input %q", in)
	}
}

func TestParseHelpers(t *testing.T) {
	require.Equal(t, 5, ParseInt("", 5))
	require.Equal(t, 5, ParseInt("x", 5))
	require.Equal(t, 12, ParseInt("12", 5))
	require.Equal(t, 0.0, ParseFloat("abc"))
	require.Equal(t, 1500.5, ParseFloat(" 1500.5 "))
}

func TestCategoryPath(t *testing.T) {
	require.Equal(t, "/category/3d-wall-panel", CategoryPath("3D Wall Panel"))
	require.Equal(t, "modular kitchen", Unslug("modular-kitchen"))
}
