package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gonum.org/v1/gonum/mat"

	"rote/camera"
	"rote/internal/config"
	"rote/internal/registry"
	"rote/transform"
)

// RoteHandler はカメラ幾何APIのハンドラを実装する
type RoteHandler struct {
	config   *config.Config
	registry registry.Manager
}

// HealthCheck はヘルスチェックエンドポイントの実装
func (h *RoteHandler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetStatus はシステム状態取得エンドポイントの実装
func (h *RoteHandler) GetStatus(c *gin.Context) {
	response := StatusResponse{
		Status: "running",
		Server: ServerInfo{
			Host: h.config.Server.Host,
			Port: h.config.Server.Port,
		},
		Cameras:   len(h.registry.GetCameras()),
		Timestamp: time.Now(),
	}

	c.JSON(http.StatusOK, response)
}

// GetCameras はカメラモデル一覧取得エンドポイントの実装
func (h *RoteHandler) GetCameras(c *gin.Context) {
	// レジストリから現在のカメラモデル一覧を取得
	managedCameras := h.registry.GetCameras()
	cameras := make([]CameraInfo, 0, len(managedCameras))

	for _, cam := range managedCameras {
		cameras = append(cameras, convertCamera(cam))
	}

	response := CamerasResponse{
		Cameras: cameras,
	}

	c.JSON(http.StatusOK, response)
}

// AddCamera はカメラモデル登録エンドポイントの実装
func (h *RoteHandler) AddCamera(c *gin.Context) {
	var req AddCameraRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_request", "リクエストの解析に失敗しました")
		return
	}

	// 姿勢の指定があれば行列に変換
	var pose *mat.Dense
	if len(req.Pose) > 0 {
		var err error
		pose, err = denseFromFlat(req.Pose, 4, 4)
		if err != nil {
			abortError(c, http.StatusBadRequest, "invalid_pose", "姿勢は16要素の配列である必要があります")
			return
		}
	}

	in := camera.Intrinsics{
		Fx:   req.Intrinsics.Fx,
		Fy:   req.Intrinsics.Fy,
		Skew: req.Intrinsics.Skew,
		Cx:   req.Intrinsics.Cx,
		Cy:   req.Intrinsics.Cy,
	}

	cam, err := h.registry.AddCamera(req.Name, in, pose)
	if err != nil {
		abortError(c, http.StatusBadRequest, "add_camera_failed", err.Error())
		return
	}

	c.JSON(http.StatusCreated, convertCamera(*cam))
}

// RemoveCamera はカメラモデル削除エンドポイントの実装
func (h *RoteHandler) RemoveCamera(c *gin.Context) {
	id := c.Param("id")

	if err := h.registry.RemoveCamera(id); err != nil {
		abortError(c, http.StatusNotFound, "camera_not_found", "指定されたカメラが見つかりません")
		return
	}

	c.Status(http.StatusNoContent)
}

// SetCameraPose は姿勢更新エンドポイントの実装
func (h *RoteHandler) SetCameraPose(c *gin.Context) {
	id := c.Param("id")

	var req SetPoseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_request", "リクエストの解析に失敗しました")
		return
	}

	pose, err := denseFromFlat(req.Pose, 4, 4)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invalid_pose", "姿勢は16要素の配列である必要があります")
		return
	}

	if err := h.registry.SetPose(id, pose); err != nil {
		abortError(c, http.StatusNotFound, "camera_not_found", "指定されたカメラが見つかりません")
		return
	}

	c.Status(http.StatusNoContent)
}

// ProjectPoints は点群射影エンドポイントの実装
func (h *RoteHandler) ProjectPoints(c *gin.Context) {
	id := c.Param("id")

	// カメラモデルの存在確認
	cam, found := h.registry.GetCamera(id)
	if !found {
		abortError(c, http.StatusNotFound, "camera_not_found", "指定されたカメラが見つかりません")
		return
	}

	var req ProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_request", "リクエストの解析に失敗しました")
		return
	}

	points, err := pointsFromRows(req.Points)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invalid_points", err.Error())
		return
	}

	projected, err := camera.ProjectPoints(points, cam.Intrinsics.K(), cam.Pose, req.Flip)
	if err != nil {
		abortError(c, http.StatusBadRequest, "projection_failed", err.Error())
		return
	}

	// [u, v, 1] から画素座標のみを取り出す
	n, _ := projected.Dims()
	pixels := make([][]float64, 0, n)
	for i := 0; i < n; i++ {
		pixels = append(pixels, []float64{projected.At(i, 0), projected.At(i, 1)})
	}

	c.JSON(http.StatusOK, ProjectResponse{Pixels: pixels})
}

// ComputeExtrinsic はホモグラフィからの外部パラメータ推定エンドポイントの実装
func (h *RoteHandler) ComputeExtrinsic(c *gin.Context) {
	var req ExtrinsicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_request", "リクエストの解析に失敗しました")
		return
	}

	K, err := denseFromFlat(req.K, 3, 3)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invalid_matrix", "内部パラメータ行列は9要素の配列である必要があります")
		return
	}

	H, err := denseFromFlat(req.H, 3, 3)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invalid_matrix", "ホモグラフィは9要素の配列である必要があります")
		return
	}

	T, err := camera.ExtrinsicFromHomography(K, H)
	if err != nil {
		abortError(c, http.StatusBadRequest, "extrinsic_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, PoseResponse{Pose: flatFromDense(T)})
}

// InvertTransform は変換行列の逆行列計算エンドポイントの実装
func (h *RoteHandler) InvertTransform(c *gin.Context) {
	var req InvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortError(c, http.StatusBadRequest, "invalid_request", "リクエストの解析に失敗しました")
		return
	}

	T, err := denseFromFlat(req.Pose, 4, 4)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invalid_pose", "変換行列は16要素の配列である必要があります")
		return
	}

	Tinv, err := transform.Inverse(T)
	if err != nil {
		abortError(c, http.StatusBadRequest, "invert_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, PoseResponse{Pose: flatFromDense(Tinv)})
}

// ヘルパー関数

// convertCamera はレジストリのカメラモデルをAPI表現に変換する
func convertCamera(cam registry.Camera) CameraInfo {
	return CameraInfo{
		ID:   cam.ID,
		Name: cam.Name,
		Intrinsics: IntrinsicsInfo{
			Fx:   cam.Intrinsics.Fx,
			Fy:   cam.Intrinsics.Fy,
			Skew: cam.Intrinsics.Skew,
			Cx:   cam.Intrinsics.Cx,
			Cy:   cam.Intrinsics.Cy,
		},
		Pose: flatFromDense(cam.Pose),
	}
}

// abortError はエラーレスポンスを返す
func abortError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	})
}
