package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"readable/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"validation", models.NewValidationError("bad"), http.StatusBadRequest},
		{"invalid category", models.NewInvalidCategoryError("vue"), http.StatusBadRequest},
		{"parent not found", models.NewParentNotFoundError("p"), http.StatusForbidden},
		{"parent deleted", models.NewParentDeletedError("p"), http.StatusForbidden},
		{"duplicate", models.NewDuplicateKeyError("Post", "p"), http.StatusConflict},
		{"not found", models.NewNotFoundError("Post", "p"), http.StatusNotFound},
		{"internal", models.NewInternalError(errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, statusForError(tt.err))
		})
	}
}

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler})
	app.Get("/plain", func(c *fiber.Ctx) error { return errors.New("secret detail") })
	app.Get("/app", func(c *fiber.Ctx) error { return models.NewNotFoundError("Post", "p1") })

	status, raw := doRequest(t, app, http.MethodGet, "/plain", nil)
	assert.Equal(t, http.StatusInternalServerError, status)
	body := decode[models.ErrorResponse](t, raw)
	assert.Equal(t, models.CodeInternal, body.Code)
	assert.NotContains(t, string(raw), "secret detail")

	status, raw = doRequest(t, app, http.MethodGet, "/app", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, models.CodeNotFound, decode[models.ErrorResponse](t, raw).Code)

	status, _ = doRequest(t, app, http.MethodGet, "/missing", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestParseBody(t *testing.T) {
	app := fiber.New()
	app.Post("/", func(c *fiber.Ctx) error {
		var out struct {
			Option string `json:"option"`
		}
		if err := parseBody(c, &out); err != nil {
			return respondError(c, err)
		}
		return c.SendString(out.Option)
	})

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	status, raw := doRequest(t, app, http.MethodPost, "/", map[string]string{"option": "upVote"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "upVote", string(raw))
}

func TestParamCopy_OutlivesRequest(t *testing.T) {
	app := fiber.New()
	var captured []string
	app.Get("/posts/:id", func(c *fiber.Ctx) error {
		captured = append(captured, paramCopy(c, "id"))
		return c.SendStatus(fiber.StatusOK)
	})

	ids := []string{"8xf0y6ziyjabvozdd253nd", "6ni6ok3ym7mf1p33lnez", "zz"}
	for _, id := range ids {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/posts/"+id, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}
	assert.Equal(t, ids, captured)
}
