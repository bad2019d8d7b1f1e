package services_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"shopadmin/internal/models"
	"shopadmin/internal/repositories"
	"shopadmin/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestProductService_ExportProducts(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewMemoryProductRepository()
	require.NoError(t, repo.Create(ctx, &models.Product{
		Name: "Older", Price: decimal.RequireFromString("10.5"), Quantity: 0,
		Images: []string{"u1", "u2"}, CreatedAt: time.Now().Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(ctx, &models.Product{
		Name: "Newer", Price: decimal.NewFromInt(99), Quantity: 3, Status: models.StatusActive,
	}))

	service := services.NewProductService(repo, &stubUploader{}, "products", nil)

	var buf bytes.Buffer
	require.NoError(t, service.ExportProducts(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Products")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][0])
	assert.Equal(t, "Newer", rows[1][0])
	assert.Equal(t, "Older", rows[2][0])
	assert.Equal(t, models.StatusOutOfStock, rows[2][3])
	assert.Equal(t, "u1\nu2", rows[2][6])
}

func TestExportFilename(t *testing.T) {
	at := time.Date(2025, 6, 7, 8, 9, 10, 0, time.UTC)
	assert.Equal(t, "report_products_20250607_080910.xlsx", services.ExportFilename(at))
}
