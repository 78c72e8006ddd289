package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetAndDelete(t *testing.T) {
	s := NewDetached()

	s.Set("name", "ada")
	got, ok := s.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "ada", got)

	s.Delete("name")
	_, ok = s.Get("name")
	assert.False(t, ok)
}

func TestGetIntHandlesJSONNumbers(t *testing.T) {
	s := NewDetached()

	// Values loaded from Redis come back as float64.
	s.Set("count", float64(7))
	got, ok := s.GetInt("count")
	require.True(t, ok)
	assert.Equal(t, 7, got)
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Qty  int    `json:"qty"`
	}
	s := NewDetached()

	require.NoError(t, s.SetJSON("p", payload{Name: "widget", Qty: 3}))

	var got payload
	require.True(t, s.GetJSON("p", &got))
	assert.Equal(t, "widget", got.Name)
	assert.Equal(t, 3, got.Qty)
}

func TestFlashIsOneShot(t *testing.T) {
	s := NewDetached()

	s.Flash("notice", "saved")

	got, ok := s.GetFlash("notice")
	require.True(t, ok)
	assert.Equal(t, "saved", got)

	_, ok = s.GetFlash("notice")
	assert.False(t, ok)
}

func TestRegenerateKeepsDataChangesID(t *testing.T) {
	s := NewDetached()
	s.Set("name", "ada")
	oldID := s.ID()

	s.Regenerate()

	assert.NotEqual(t, oldID, s.ID())
	got, ok := s.GetString("name")
	require.True(t, ok)
	assert.Equal(t, "ada", got)
}

func TestUserAgentMismatchDiscardsAndRebinds(t *testing.T) {
	s := NewDetached()
	s.Set("name", "ada")
	s.bindUserAgent("browser-a")
	oldID := s.ID()

	s.bindUserAgent("browser-b")

	assert.NotEqual(t, oldID, s.ID())
	_, ok := s.Get("name")
	assert.False(t, ok)

	// The fresh session is bound to the presenting browser right away.
	ua, ok := s.GetString(keyUserAgent)
	require.True(t, ok)
	assert.Equal(t, "browser-b", ua)
}

func TestInvalidateWipesData(t *testing.T) {
	s := NewDetached()
	s.Set("name", "ada")
	oldID := s.ID()

	s.Invalidate()

	assert.NotEqual(t, oldID, s.ID())
	_, ok := s.Get("name")
	assert.False(t, ok)
}
