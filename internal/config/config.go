package config

import (
	"fmt"
	"os"
	"time"

	"rote/camera"
)

// Config はアプリケーション全体の設定を保持する構造体
type Config struct {
	Server ServerConfig `yaml:"server"`
	Camera CameraConfig `yaml:"camera"`
}

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Host string `yaml:"host"` // リッスンするホスト
	Port int    `yaml:"port"` // リッスンするポート番号

	// タイムアウト設定
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // 読み込みタイムアウト
	WriteTimeout time.Duration `yaml:"write_timeout"` // 書き込みタイムアウト
}

// CameraConfig はカメラモデル関連の設定
type CameraConfig struct {
	// 起動時に登録するカメラモデルの設定
	Models []CameraModel `yaml:"models"`

	// デフォルト内部パラメータの導出に使う設定
	DefaultFocal  float64 `yaml:"default_focal"`  // 焦点距離（画素単位）
	DefaultWidth  int     `yaml:"default_width"`  // 画像幅
	DefaultHeight int     `yaml:"default_height"` // 画像高さ
}

// CameraModel は個別カメラモデルの設定
//
// 内部パラメータの0は「未指定」として扱われ、デフォルト設定から
// 導出される。cx=0やcy=0を実値として持つカメラ（クロップされた
// センサーなど）は設定ではなくカメラ登録API(POST /api/cameras)で
// 登録する。登録APIは値をそのまま使用する。
type CameraModel struct {
	Name string `yaml:"name"` // カメラ名

	// 内部パラメータ（0の場合はデフォルト値を使用）
	Fx   float64 `yaml:"fx"`
	Fy   float64 `yaml:"fy"`
	Skew float64 `yaml:"skew"`
	Cx   float64 `yaml:"cx"`
	Cy   float64 `yaml:"cy"`
}

// Load は設定を読み込む
// 現在は環境変数とデフォルト値によるシンプルな実装
func Load() (*Config, error) {
	// デフォルト設定を作成
	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnvOrDefault("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsIntOrDefault("SERVER_PORT", 8080),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Camera: CameraConfig{
			Models: []CameraModel{
				{Name: "default"},
			},
			DefaultFocal:  800,
			DefaultWidth:  1280,
			DefaultHeight: 720,
		},
	}

	// 設定の検証
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	return cfg, nil
}

// Validate は設定の妥当性を検証する
func (c *Config) Validate() error {
	// サーバー設定の検証
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("無効なポート番号: %d", c.Server.Port)
	}

	// デフォルト内部パラメータの検証
	if c.Camera.DefaultFocal <= 0 {
		return fmt.Errorf("無効なデフォルト焦点距離: %g", c.Camera.DefaultFocal)
	}
	if c.Camera.DefaultWidth <= 0 || c.Camera.DefaultHeight <= 0 {
		return fmt.Errorf("無効なデフォルト画像サイズ: %dx%d", c.Camera.DefaultWidth, c.Camera.DefaultHeight)
	}

	// カメラモデル設定の検証
	for _, model := range c.Camera.Models {
		if model.Name == "" {
			return fmt.Errorf("カメラ名が設定されていません")
		}
		if err := c.Intrinsics(model).Validate(); err != nil {
			return fmt.Errorf("カメラ %s の内部パラメータが無効: %w", model.Name, err)
		}
	}

	return nil
}

// Intrinsics はカメラモデル設定から内部パラメータを構築する
// 未指定（0）のパラメータはデフォルト設定から導出する
// 0を実値として扱えない制約についてはCameraModelのコメントを参照
func (c *Config) Intrinsics(model CameraModel) camera.Intrinsics {
	in := camera.Intrinsics{
		Fx:   model.Fx,
		Fy:   model.Fy,
		Skew: model.Skew,
		Cx:   model.Cx,
		Cy:   model.Cy,
	}

	if in.Fx == 0 {
		in.Fx = c.Camera.DefaultFocal
	}
	if in.Fy == 0 {
		in.Fy = c.Camera.DefaultFocal
	}
	if in.Cx == 0 {
		in.Cx = float64(c.Camera.DefaultWidth) / 2
	}
	if in.Cy == 0 {
		in.Cy = float64(c.Camera.DefaultHeight) / 2
	}

	return in
}

// ServerAddress はサーバーのリッスンアドレスを返す
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// getEnvOrDefault は環境変数を取得し、設定されていない場合はデフォルト値を返す
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault は環境変数を整数として取得し、設定されていない場合はデフォルト値を返す
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		var intVal int
		if _, err := fmt.Sscanf(value, "%d", &intVal); err == nil {
			return intVal
		}
	}
	return defaultValue
}
