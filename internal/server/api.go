package server

import "time"

// APIのリクエスト・レスポンス型定義
// 行列はすべて行優先のフラットなfloat64配列で表現する
// （3x3行列は9要素、4x4行列は16要素）

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// ServerInfo はサーバー情報
type ServerInfo struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// StatusResponse はシステム状態のレスポンス
type StatusResponse struct {
	Status    string     `json:"status"`
	Server    ServerInfo `json:"server"`
	Cameras   int        `json:"cameras"`
	Timestamp time.Time  `json:"timestamp"`
}

// ModelInfo は設定されたカメラモデルの表現
type ModelInfo struct {
	Name       string         `json:"name"`
	Intrinsics IntrinsicsInfo `json:"intrinsics"`
}

// ModelsStatusResponse は設定内容を含むシステム状態のレスポンス
type ModelsStatusResponse struct {
	Status    string      `json:"status"`
	Server    ServerInfo  `json:"server"`
	Models    []ModelInfo `json:"models"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorResponse はエラーレスポンス
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// IntrinsicsInfo は内部パラメータの表現
type IntrinsicsInfo struct {
	Fx   float64 `json:"fx"`
	Fy   float64 `json:"fy"`
	Skew float64 `json:"skew"`
	Cx   float64 `json:"cx"`
	Cy   float64 `json:"cy"`
}

// CameraInfo は登録済みカメラモデルの表現
type CameraInfo struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Intrinsics IntrinsicsInfo `json:"intrinsics"`
	Pose       []float64      `json:"pose"` // 4x4、16要素
}

// CamerasResponse はカメラモデル一覧のレスポンス
type CamerasResponse struct {
	Cameras []CameraInfo `json:"cameras"`
}

// AddCameraRequest はカメラモデル登録のリクエスト
type AddCameraRequest struct {
	Name       string         `json:"name"`
	Intrinsics IntrinsicsInfo `json:"intrinsics"`
	Pose       []float64      `json:"pose,omitempty"` // 省略時は単位行列
}

// SetPoseRequest は姿勢更新のリクエスト
type SetPoseRequest struct {
	Pose []float64 `json:"pose"` // 4x4、16要素
}

// ProjectRequest は点群射影のリクエスト
type ProjectRequest struct {
	Points [][]float64 `json:"points"` // 各要素は長さ3または4
	Flip   bool        `json:"flip"`
}

// ProjectResponse は点群射影のレスポンス
type ProjectResponse struct {
	Pixels [][]float64 `json:"pixels"` // 各要素は [u, v]
}

// ExtrinsicRequest はホモグラフィからの外部パラメータ推定のリクエスト
type ExtrinsicRequest struct {
	K []float64 `json:"k"` // 3x3、9要素
	H []float64 `json:"h"` // 3x3、9要素
}

// PoseResponse は4x4変換行列のレスポンス
type PoseResponse struct {
	Pose []float64 `json:"pose"` // 4x4、16要素
}

// InvertRequest は変換行列の逆行列計算のリクエスト
type InvertRequest struct {
	Pose []float64 `json:"pose"` // 4x4、16要素
}
