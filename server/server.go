// Package server реализует HTTP API сервиса поиска цен
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"pricefinder/database"
	"pricefinder/pricing"
	"pricefinder/server/middleware"
)

// Server HTTP сервер сервиса поиска цен
type Server struct {
	finder     *pricing.Finder
	history    *database.HistoryStore
	port       string
	httpServer *http.Server
}

// NewServer создает сервер поверх движка поиска цен.
// history может быть nil, тогда запросы обслуживаются без сохранения истории
func NewServer(finder *pricing.Finder, history *database.HistoryStore, port string) *Server {
	return &Server{
		finder:  finder,
		history: history,
		port:    port,
	}
}

// Router строит маршрутизатор со всеми обработчиками и middleware
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.GinRequestIDMiddleware())
	router.Use(middleware.GinGzipMiddleware())

	api := router.Group("/api")
	{
		api.POST("/product-price", s.handleProductPrice)
		api.GET("/health", s.handleHealth)
		api.GET("/scan-history", s.handleScanHistory)
		api.GET("/price-report", s.handlePriceReport)
	}

	return router
}

// Start запускает HTTP сервер и блокируется до его остановки
func (s *Server) Start() error {
	s.httpServer = &http.Server{
		Addr:         ":" + s.port,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // Сканирование цен может занимать до минуты
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("[Server] Сервер запускается на порту %s", s.port)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("запуск HTTP сервера: %w", err)
	}

	return nil
}

// Shutdown останавливает HTTP сервер gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}

	log.Println("[Server] Начата остановка сервера...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("остановка сервера: %w", err)
	}

	log.Println("[Server] Сервер остановлен")
	return nil
}
