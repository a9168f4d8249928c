package registry

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"rote/camera"
)

// Camera は動的に管理されるカメラモデルを表す
type Camera struct {
	ID         string            // カメラモデルの一意識別子
	Name       string            // カメラの表示名
	Intrinsics camera.Intrinsics // 内部パラメータ
	Pose       *mat.Dense        // ワールド座標系からカメラ座標系への4x4変換行列
	CreatedAt  time.Time         // 登録された時刻
	UpdatedAt  time.Time         // 最後に更新された時刻
}

// Manager はカメラモデルの動的管理を担うインターフェース
type Manager interface {
	// GetCameras は現在管理されているカメラモデル一覧を取得する
	GetCameras() []Camera

	// GetCamera は指定されたIDのカメラモデルを取得する
	GetCamera(id string) (*Camera, bool)

	// AddCamera はカメラモデルを動的に追加する
	// poseがnilの場合は単位行列（ワールド座標系とカメラ座標系が一致）を使用する
	AddCamera(name string, in camera.Intrinsics, pose *mat.Dense) (*Camera, error)

	// RemoveCamera はカメラモデルを削除する
	RemoveCamera(id string) error

	// SetPose はカメラモデルの姿勢を更新する
	SetPose(id string, pose *mat.Dense) error
}
