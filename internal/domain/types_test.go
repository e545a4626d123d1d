package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProductDecodesVariantMappingsInSourceOrder(t *testing.T) {
	raw := []byte(`{
		"id": 3,
		"slug": "walnut-kitchen",
		"title": "Walnut Kitchen",
		"category": "Modular Kitchen",
		"views": {"Walnut": ["w1.jpg"], "Ash": ["a1.jpg", "a2.jpg"], "Cream": []},
		"gltf": {"Walnut": "models/walnut.glb", "Ash": "models/ash.glb"}
	}`)

	var p Product
	require.NoError(t, json.Unmarshal(raw, &p))
	require.Equal(t, []string{"Walnut", "Ash", "Cream"}, p.Views.Names())
	require.Equal(t, "Walnut", p.DefaultVariant())

	imgs, ok := p.Views.Get("Ash")
	require.True(t, ok)
	require.Equal(t, []string{"a1.jpg", "a2.jpg"}, imgs)

	require.Equal(t, "models/ash.glb", p.GLTF.Resolve("Ash"))
	require.Equal(t, "models/walnut.glb", p.GLTF.Resolve("Unknown"))
	require.Equal(t, "models/walnut.glb", p.GLTF.Resolve(""))
	require.Zero(t, p.Price, "missing price reads as zero")

	out, err := json.Marshal(p.Views)
	require.NoError(t, err)
	require.JSONEq(t, `{"Walnut":["w1.jpg"],"Ash":["a1.jpg","a2.jpg"],"Cream":[]}`, string(out))
}

func TestModelRefSingleLocator(t *testing.T) {
	var p Product
	require.NoError(t, json.Unmarshal([]byte(`{"slug":"x","gltf":"/models/x.glb"}`), &p))
	require.False(t, p.GLTF.IsZero())
	require.Equal(t, "/models/x.glb", p.GLTF.Resolve("anything"))

	var q Product
	require.NoError(t, json.Unmarshal([]byte(`{"slug":"y","gltf":null}`), &q))
	require.True(t, q.GLTF.IsZero())
	require.Equal(t, "", q.DefaultVariant())
}

func TestRelayResultErr(t *testing.T) {
	t.Parallel()

	require.NoError(t, (&RelayResult{Success: true, Message: "ok"}).Err())
	require.Equal(t, ErrRelayRejected, (&RelayResult{}).Err())

	err := (&RelayResult{Message: "Invalid access key"}).Err()
	require.ErrorIs(t, err, ErrRelayRejected)
	require.EqualError(t, err, "form relay rejected the submission: Invalid access key")
}
