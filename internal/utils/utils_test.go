package utils

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserIDContext(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty context", func(t *testing.T) {
		id, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
		assert.Equal(t, "", id)
	})

	t.Run("Round trip", func(t *testing.T) {
		ctx := WithUserID(ctx, "user-1")
		id, ok := GetUserIDFromContext(ctx)
		assert.True(t, ok)
		assert.Equal(t, "user-1", id)
	})

	t.Run("Empty user id counts as absent", func(t *testing.T) {
		ctx := WithUserID(ctx, "")
		_, ok := GetUserIDFromContext(ctx)
		assert.False(t, ok)
	})
}

func TestAdminContext(t *testing.T) {
	ctx := context.Background()

	assert.False(t, IsAdminFromContext(ctx))
	assert.True(t, IsAdminFromContext(WithAdmin(ctx, true)))
	assert.False(t, IsAdminFromContext(WithAdmin(ctx, false)))
}

func TestWriteJSONError(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSONError(w, "boom", 400)

	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "boom", body["error"])
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	WriteJSON(w, 201, map[string]int{"n": 1})

	assert.Equal(t, 201, w.Code)
	assert.JSONEq(t, `{"n":1}`, w.Body.String())
}

func TestPointerHelpers(t *testing.T) {
	s := StrPtr("x")
	assert.Equal(t, "x", *s)
	assert.Equal(t, "x", PtrString(s))
	assert.Equal(t, "", PtrString(nil))
}
