package camera

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Intrinsics はピンホールカメラの内部パラメータを表す
type Intrinsics struct {
	Fx   float64 // x方向の焦点距離（画素単位）
	Fy   float64 // y方向の焦点距離（画素単位）
	Skew float64 // 軸間の歪み係数
	Cx   float64 // 主点のx座標
	Cy   float64 // 主点のy座標
}

// Validate は内部パラメータの妥当性を検証する
func (in Intrinsics) Validate() error {
	if in.Fx <= 0 {
		return fmt.Errorf("焦点距離fxは正である必要があります: %g", in.Fx)
	}
	if in.Fy <= 0 {
		return fmt.Errorf("焦点距離fyは正である必要があります: %g", in.Fy)
	}
	return nil
}

// K は3x3の内部パラメータ行列を構築する
func (in Intrinsics) K() *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		in.Fx, in.Skew, in.Cx,
		0, in.Fy, in.Cy,
		0, 0, 1,
	})
}

// KInverse は3x3内部パラメータ行列の逆行列を閉形式で計算する
//
// 上三角構造を利用するため数値分解は不要。fxまたはfyが0の場合は
// 特異行列となるためerrorを返す。
func KInverse(K mat.Matrix) (*mat.Dense, error) {
	rows, cols := K.Dims()
	if rows != 3 || cols != 3 {
		return nil, fmt.Errorf("内部パラメータ行列は3x3である必要があります: %dx%d", rows, cols)
	}

	fx, fy := K.At(0, 0), K.At(1, 1)
	s, cx, cy := K.At(0, 1), K.At(0, 2), K.At(1, 2)

	if fx == 0 || fy == 0 {
		return nil, fmt.Errorf("焦点距離が0のため逆行列が存在しません: fx=%g, fy=%g", fx, fy)
	}

	return mat.NewDense(3, 3, []float64{
		1 / fx, -s / (fx * fy), -cx/fx + cy*s/(fx*fy),
		0, 1 / fy, -cy / fy,
		0, 0, 1,
	}), nil
}
