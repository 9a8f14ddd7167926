package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parishkeeper/parish-server/internal/model"
)

func TestDecodeJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
		Date *Date  `json:"date"`
	}

	t.Run("valid", func(t *testing.T) {
		var p payload
		require.NoError(t, decodeJSON(newRequest(http.MethodPost, "/", `{"name":"Mass","date":"2026-03-01"}`), &p))
		assert.Equal(t, "Mass", p.Name)
		assert.Equal(t, "2026-03-01", p.Date.Format(dateLayout))
	})

	t.Run("bad date", func(t *testing.T) {
		var p payload
		err := decodeJSON(newRequest(http.MethodPost, "/", `{"date":"March 1"}`), &p)
		require.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, `invalid date "March 1": expected YYYY-MM-DD`, err.Error())
	})

	t.Run("body over the limit", func(t *testing.T) {
		var p payload
		body := `{"name":"` + strings.Repeat("x", maxJSONBytes) + `"}`
		err := decodeJSON(newRequest(http.MethodPost, "/", body), &p)
		require.ErrorIs(t, err, model.ErrValidation)
		assert.Equal(t, "request body exceeds 1048576 bytes", err.Error())
	})
}
