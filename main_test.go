package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/media"
	"shopadmin/internal/repositories"
	"shopadmin/internal/server"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of the event publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(routingKey string, body []byte) error {
	args := m.Called(routingKey, body)
	return args.Error(0)
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// TestServerWiring builds the app the way serve does, on the memory store,
// and drives a product through it.
func TestServerWiring(t *testing.T) {
	v := viper.New()
	v.Set("DB_DRIVER", config.DriverMemory)
	v.Set("PUBLIC_DIR", t.TempDir())
	cfg, err := config.LoadWith(v, "")
	require.NoError(t, err)

	ctx := context.Background()
	pool, err := database.Open(ctx, cfg)
	require.NoError(t, err)
	require.NoError(t, pool.Migrate(ctx))
	repos, err := repositories.New(pool)
	require.NoError(t, err)

	mockMQ := new(MockPublisher)
	mockMQ.On("Publish", "product.created", mock.Anything).Return(nil).Once()

	app, err := server.NewApp(cfg, server.Deps{
		Pool:      pool,
		Repos:     repos,
		Uploader:  media.NewDiskUploader(afero.NewMemMapFs(), cfg.UploadPathPrefix),
		Publisher: mockMQ,
	})
	require.NoError(t, err)

	t.Run("HealthCheck", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "\"status\":\"healthy\"")
	})

	t.Run("CreateProduct", func(t *testing.T) {
		buf := &bytes.Buffer{}
		w := multipart.NewWriter(buf)
		require.NoError(t, w.WriteField("name", "Laptop"))
		require.NoError(t, w.WriteField("price", "1200"))
		part, err := w.CreateFormFile("images", "laptop.jpg")
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/products", buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Images []string `json:"images"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		require.Len(t, body.Data.Images, 1)
		assert.Regexp(t, `^/uploads/\d+-laptop\.jpg$`, body.Data.Images[0])
		mockMQ.AssertExpectations(t)
	})

	t.Run("Dashboard", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/dashboard/products", nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(body), "Laptop")
	})
}
