package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"tdseries/internal/feature/timeseries/domain/entity"
)

// mockBarsUsecase is a mock implementation of the BarsUsecase interface.
type mockBarsUsecase struct {
	GetBarsFunc func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error)
}

func (m *mockBarsUsecase) GetBars(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
	return m.GetBarsFunc(ctx, symbol, interval, outputsize)
}

func TestBarsHandler_GetBarsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testTime := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		url            string
		mockGetBars    func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "success with explicit parameters",
			url:  "/bars/AAPL?interval=1day&outputsize=10",
			mockGetBars: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
				assert.Equal(t, "AAPL", symbol)
				assert.Equal(t, "1day", interval)
				assert.Equal(t, 10, outputsize)
				return []entity.Bar{
					{Time: testTime, Open: 100, High: 110, Low: 90, Close: 105, Volume: 1000},
				}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[{"time":"2023-01-01","open":100,"high":110,"low":90,"close":105,"volume":1000}]`,
		},
		{
			name: "success with default parameters",
			url:  "/bars/AAPL",
			mockGetBars: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
				assert.Equal(t, "1day", interval)
				assert.Equal(t, 200, outputsize)
				return []entity.Bar{}, nil
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `[]`,
		},
		{
			name: "usecase error",
			url:  "/bars/AAPL",
			mockGetBars: func(ctx context.Context, symbol, interval string, outputsize int) ([]entity.Bar, error) {
				return nil, errors.New("database error")
			},
			expectedStatus: http.StatusBadGateway,
			expectedBody:   `{"error":"database error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockBarsUsecase{GetBarsFunc: tt.mockGetBars}

			r := gin.New()
			r.GET("/bars/:symbol", NewBarsHandler(uc).GetBarsHandler)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.JSONEq(t, tt.expectedBody, w.Body.String())
		})
	}
}
