package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"rote/camera"
)

// DefaultManager はManagerのデフォルト実装
type DefaultManager struct {
	cameras map[string]*Camera
	mu      sync.RWMutex
}

// NewDefaultManager は新しいDefaultManagerを作成する
func NewDefaultManager() Manager {
	return &DefaultManager{
		cameras: make(map[string]*Camera),
	}
}

// GetCameras は現在管理されているカメラモデル一覧を取得する
func (m *DefaultManager) GetCameras() []Camera {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cameras := make([]Camera, 0, len(m.cameras))
	for _, cam := range m.cameras {
		cameras = append(cameras, copyCamera(cam))
	}

	return cameras
}

// GetCamera は指定されたIDのカメラモデルを取得する
func (m *DefaultManager) GetCamera(id string) (*Camera, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cam, exists := m.cameras[id]
	if !exists {
		return nil, false
	}

	// コピーを返す
	result := copyCamera(cam)
	return &result, true
}

// AddCamera はカメラモデルを動的に追加する
func (m *DefaultManager) AddCamera(name string, in camera.Intrinsics, pose *mat.Dense) (*Camera, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if name == "" {
		return nil, fmt.Errorf("カメラ名が指定されていません")
	}

	// 内部パラメータの検証
	if err := in.Validate(); err != nil {
		return nil, fmt.Errorf("内部パラメータが無効: %w", err)
	}

	// 既に同じ名前が登録されているかチェック
	for _, cam := range m.cameras {
		if cam.Name == name {
			return nil, fmt.Errorf("カメラ %s は既に追加されています", name)
		}
	}

	p, err := validatePose(pose)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cam := &Camera{
		ID:         uuid.New().String(),
		Name:       name,
		Intrinsics: in,
		Pose:       p,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	m.cameras[cam.ID] = cam

	result := copyCamera(cam)
	return &result, nil
}

// RemoveCamera はカメラモデルを削除する
func (m *DefaultManager) RemoveCamera(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.cameras[id]; !exists {
		return fmt.Errorf("カメラが見つかりません: %s", id)
	}

	delete(m.cameras, id)

	return nil
}

// SetPose はカメラモデルの姿勢を更新する
func (m *DefaultManager) SetPose(id string, pose *mat.Dense) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cam, exists := m.cameras[id]
	if !exists {
		return fmt.Errorf("カメラが見つかりません: %s", id)
	}

	if pose == nil {
		return fmt.Errorf("姿勢が指定されていません")
	}

	p, err := validatePose(pose)
	if err != nil {
		return err
	}

	cam.Pose = p
	cam.UpdatedAt = time.Now()

	return nil
}

// validatePose は姿勢行列を検証し、コピーを返す（nilは単位行列）
func validatePose(pose *mat.Dense) (*mat.Dense, error) {
	if pose == nil {
		identity := mat.NewDense(4, 4, nil)
		for i := 0; i < 4; i++ {
			identity.Set(i, i, 1)
		}
		return identity, nil
	}

	rows, cols := pose.Dims()
	if rows != 4 || cols != 4 {
		return nil, fmt.Errorf("姿勢は4x4行列である必要があります: %dx%d", rows, cols)
	}

	return mat.DenseCopyOf(pose), nil
}

// copyCamera はカメラモデルの深いコピーを作成する
func copyCamera(cam *Camera) Camera {
	result := *cam
	result.Pose = mat.DenseCopyOf(cam.Pose)
	return result
}
