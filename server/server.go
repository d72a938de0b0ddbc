package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"stubnest/logger"
	"stubnest/models"
)

// HTTPServer wraps the stub handler in an http.Server with optional
// cleartext HTTP/2 support.
type HTTPServer struct {
	httpServer *http.Server
	config     *models.Config
	store      *Store
	logger     *logger.Logger
	stopChan   chan struct{}
}

// NewHTTPServer creates a server over a loaded config and a fresh store.
func NewHTTPServer(config *models.Config) *HTTPServer {
	return &HTTPServer{
		config:   config,
		store:    NewStore(),
		logger:   logger.NewLogger("server", logger.INFO, 1000),
		stopChan: make(chan struct{}),
	}
}

// Store exposes the server's state store.
func (s *HTTPServer) Store() *Store {
	return s.store
}

// Start begins listening on the given port. It returns once the listener
// goroutine is launched.
func (s *HTTPServer) Start(port int) error {
	responseHandler := NewResponseHandler(s.config, s.store, s.logger)
	var handler http.Handler = http.HandlerFunc(responseHandler.HandleRequest)

	// Wrap with h2c for cleartext HTTP/2 when enabled
	if s.config.HTTP2 {
		h2s := &http2.Server{}
		handler = h2c.NewHandler(handler, h2s)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", port),
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server running on http://0.0.0.0:%d\n", port)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
		s.stopChan <- struct{}{}
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *HTTPServer) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
		return err
	}

	<-s.stopChan
	log.Println("HTTP server stopped")
	return nil
}
