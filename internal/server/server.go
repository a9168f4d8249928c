package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rote/internal/config"
)

// Server は確認用のシンプルなHTTPサーバーを管理する構造体
// カメラモデルのCRUDを持つAPIサーバーはGinServerが担う
type Server struct {
	config     *config.Config
	httpServer *http.Server
	mux        *http.ServeMux
	listener   net.Listener
}

// New は新しいServerインスタンスを作成する
func New(cfg *config.Config) *Server {
	mux := http.NewServeMux()

	return &Server{
		config: cfg,
		mux:    mux,
		httpServer: &http.Server{
			Addr:         cfg.ServerAddress(),
			Handler:      mux,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

// setupRoutes はHTTPルートを設定する
func (s *Server) setupRoutes() {
	// ヘルスチェックエンドポイント
	s.mux.HandleFunc("/health", s.handleHealth)

	// APIエンドポイント
	s.mux.HandleFunc("/api/status", s.handleStatus)

	// ルートハンドラ（簡単な確認用）
	s.mux.HandleFunc("/", s.handleRoot)
}

// handleHealth はヘルスチェックエンドポイント
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	})
}

// handleStatus はステータス確認エンドポイント
// 設定されたカメラモデルと、デフォルト値を補完した内部パラメータを返す
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	models := make([]ModelInfo, 0, len(s.config.Camera.Models))
	for _, model := range s.config.Camera.Models {
		in := s.config.Intrinsics(model)
		models = append(models, ModelInfo{
			Name: model.Name,
			Intrinsics: IntrinsicsInfo{
				Fx:   in.Fx,
				Fy:   in.Fy,
				Skew: in.Skew,
				Cx:   in.Cx,
				Cy:   in.Cy,
			},
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	_ = json.NewEncoder(w).Encode(ModelsStatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: s.config.Server.Host,
			Port: s.config.Server.Port,
		},
		Models:    models,
		Timestamp: time.Now(),
	})
}

// handleRoot はルートパスのハンドラ
// 設定されたカメラモデルの一覧とエンドポイントを表示する
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	fmt.Fprint(w, `<!DOCTYPE html>
<html lang="ja">
<head>
    <meta charset="UTF-8">
    <title>Rote - カメラ幾何サービス</title>
</head>
<body>
    <h1>Rote カメラ幾何サービス</h1>
    <h2>設定済みカメラモデル</h2>
    <table border="1">
        <tr><th>名前</th><th>fx</th><th>fy</th><th>cx</th><th>cy</th></tr>
`)
	for _, model := range s.config.Camera.Models {
		in := s.config.Intrinsics(model)
		fmt.Fprintf(w, "        <tr><td>%s</td><td>%g</td><td>%g</td><td>%g</td><td>%g</td></tr>\n",
			model.Name, in.Fx, in.Fy, in.Cx, in.Cy)
	}
	fmt.Fprint(w, `    </table>
    <p>ステータス: <a href="/api/status">/api/status</a></p>
    <p>ヘルスチェック: <a href="/health">/health</a></p>
</body>
</html>`)
}

// Listen はリッスンソケットを取得する
// ポート0を指定した場合、実際のアドレスはAddrで取得できる
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("リッスンに失敗: %w", err)
	}
	s.listener = ln
	return nil
}

// Addr はサーバーの実際のリッスンアドレスを返す
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

// Start はサーバーを起動する
func (s *Server) Start(ctx context.Context) error {
	// ルートを設定
	s.setupRoutes()

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
		log.Printf("HTTPサーバーを起動しています: %s", s.Addr())
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
func (s *Server) Shutdown() error {
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
