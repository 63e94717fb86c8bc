package testutil

import (
	"net/http"
	"testing"
	"time"

	"github.com/kendall-kelly/coffee-shop-api/config"
	"github.com/kendall-kelly/coffee-shop-api/services"
	"gorm.io/gorm"
)

// NewTestConfig returns a configuration suitable for tests: memory store,
// quiet logs and a short-lived session cookie
func NewTestConfig() *config.Config {
	return &config.Config{
		Port:                 "8080",
		GoEnv:                "test",
		LogLevel:             "error",
		LogFormat:            "json",
		OrderStore:           config.OrderStoreMemory,
		SQLiteDSN:            "file::memory:?_loc=auto",
		SessionCookieName:    "coffee_session",
		SessionMaxAge:        3600,
		SessionSweepInterval: time.Minute,
	}
}

// NewSQLiteOrderStore opens a fresh in-memory database and returns a store over it
func NewSQLiteOrderStore(t *testing.T, cfg *config.Config) (*services.GormOrderStore, *gorm.DB) {
	t.Helper()

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	store, err := services.NewGormOrderStore(db)
	if err != nil {
		t.Fatalf("Failed to create order store: %v", err)
	}
	return store, db
}

// NewTestOrderService builds an order service over the default rule table
func NewTestOrderService(store services.OrderStore) *services.OrderService {
	return services.NewOrderService(services.MustNewRuleTable(services.DefaultRules()...), store)
}

// FindCookie returns the last cookie set under name in a response, or nil.
// A browser applies Set-Cookie headers in order, so the last one wins.
func FindCookie(resp *http.Response, name string) *http.Cookie {
	var found *http.Cookie
	for _, cookie := range resp.Cookies() {
		if cookie.Name == name {
			found = cookie
		}
	}
	return found
}
