package handlers

import (
	"context"
	"os"
	"taskdeck/internal/adapter/http/middleware"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	StatusOk             = "ok"
	StatusDown           = "down"
	healthStorageTimeout = 2 * time.Second
)

// StoragePinger reports storage connectivity; the memory adapter always
// answers ok, the MySQL adapter pings the pool.
type StoragePinger interface {
	PingContext(ctx context.Context) error
}

type HealthBasic struct {
	AppName           string `json:"app_name"`
	AppVersion        string `json:"app_version"`
	CurrentSystemTime string `json:"current_system_time"`
	Message           string `json:"message"`
}

type HealthServices struct {
	Storage string `json:"storage"`
	Driver  string `json:"driver"`
}

type HealthAdvanced struct {
	AppName           string         `json:"app_name"`
	AppVersion        string         `json:"app_version"`
	CurrentSystemTime string         `json:"current_system_time"`
	Language          string         `json:"language"`
	Status            HealthServices `json:"status"`
}

type HealthHandler struct {
	storage StoragePinger
	driver  string
}

func NewHealthHandler(storage StoragePinger, driver string) *HealthHandler {
	return &HealthHandler{storage: storage, driver: driver}
}

func (h *HealthHandler) CheckHealth(c *gin.Context) {
	ctx := c.Request.Context()
	statusCode := 200
	message := StatusOk

	if !h.checkConnectionToStorage(ctx) {
		statusCode = 500
		message = StatusDown
	}

	c.JSON(statusCode, HealthBasic{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Message:           message,
	})
}

func (h *HealthHandler) CheckHealthReport(c *gin.Context) {
	ctx := c.Request.Context()

	storageStatus := StatusDown
	if h.checkConnectionToStorage(ctx) {
		storageStatus = StatusOk
	}

	c.JSON(200, HealthAdvanced{
		AppName:           os.Getenv("APP_NAME"),
		AppVersion:        getAppVersion(),
		CurrentSystemTime: time.Now().Format("2006-01-02 15:04:05"),
		Language:          middleware.GetLang(c),
		Status: HealthServices{
			Storage: storageStatus,
			Driver:  h.driver,
		},
	})
}

func (h *HealthHandler) checkConnectionToStorage(ctx context.Context) bool {
	if h.storage == nil {
		return false
	}
	// Avoid hanging health checks if the storage stalls.
	timeoutCtx, cancel := context.WithTimeout(ctx, healthStorageTimeout)
	defer cancel()
	return h.storage.PingContext(timeoutCtx) == nil
}

func getAppVersion() string {
	version := os.Getenv("APP_VERSION")
	if version == "" {
		return "dev"
	}
	return version
}
