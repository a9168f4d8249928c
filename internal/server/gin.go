package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"rote/internal/config"
	"rote/internal/registry"
)

// GinServer はginベースのAPIサーバーを管理する構造体
type GinServer struct {
	config     *config.Config
	engine     *gin.Engine
	httpServer *http.Server
	registry   registry.Manager
	listener   net.Listener
}

// NewGin は新しいGinServerインスタンスを作成する
// 設定に定義されたカメラモデルをレジストリへ登録する
func NewGin(cfg *config.Config) (*GinServer, error) {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	// レジストリを作成し、設定済みカメラモデルを登録
	reg := registry.NewDefaultManager()
	for _, model := range cfg.Camera.Models {
		if _, err := reg.AddCamera(model.Name, cfg.Intrinsics(model), nil); err != nil {
			return nil, fmt.Errorf("カメラ %s の登録に失敗: %w", model.Name, err)
		}
	}

	s := &GinServer{
		config:   cfg,
		engine:   engine,
		registry: reg,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
	s.setupRoutes()

	return s, nil
}

// setupRoutes はAPIルートを設定する
func (s *GinServer) setupRoutes() {
	handler := &RoteHandler{
		config:   s.config,
		registry: s.registry,
	}

	s.engine.GET("/health", handler.HealthCheck)

	api := s.engine.Group("/api")
	{
		api.GET("/status", handler.GetStatus)
		api.GET("/cameras", handler.GetCameras)
		api.POST("/cameras", handler.AddCamera)
		api.DELETE("/cameras/:id", handler.RemoveCamera)
		api.PUT("/cameras/:id/pose", handler.SetCameraPose)
		api.POST("/cameras/:id/project", handler.ProjectPoints)
		api.POST("/extrinsic", handler.ComputeExtrinsic)
		api.POST("/transform/invert", handler.InvertTransform)
	}
}

// Registry はサーバーが使用するカメラモデルレジストリを返す
func (s *GinServer) Registry() registry.Manager {
	return s.registry
}

// Listen はリッスンソケットを取得する
// ポート0を指定した場合、実際のアドレスはAddrで取得できる
func (s *GinServer) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	s.listener = ln
	return nil
}

// Addr はサーバーの実際のリッスンアドレスを返す
func (s *GinServer) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start はサーバーを起動する
func (s *GinServer) Start(ctx context.Context) error {
	// ソケットを未取得であれば取得する
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	// シャットダウン用のチャンネル
	shutdownCh := make(chan error, 1)

	// サーバーを別ゴルーチンで起動
	go func() {
		log.Printf("APIサーバーを起動しています: %s", s.Addr())
		if err := s.httpServer.Serve(s.listener); err != nil && err != http.ErrServerClosed {
			shutdownCh <- fmt.Errorf("サーバーの起動に失敗: %w", err)
		}
	}()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// コンテキストかシグナルを待つ
	select {
	case <-ctx.Done():
		log.Println("コンテキストがキャンセルされました")
	case sig := <-sigCh:
		log.Printf("シグナルを受信しました: %v", sig)
	case err := <-shutdownCh:
		return err
	}

	// グレースフルシャットダウン
	return s.Shutdown()
}

// Shutdown はサーバーをグレースフルにシャットダウンする
func (s *GinServer) Shutdown() error {
	log.Println("サーバーをシャットダウンしています...")

	// 5秒のタイムアウトを設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("サーバーのシャットダウンに失敗: %w", err)
	}

	log.Println("サーバーが正常にシャットダウンされました")
	return nil
}
