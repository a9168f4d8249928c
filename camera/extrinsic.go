package camera

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"rote/transform"
)

// ExtrinsicFromHomography は内部パラメータ行列とホモグラフィから
// 外部パラメータ行列を推定する
//
// 平面キャリブレーションターゲットのホモグラフィH（例: OpenCVの
// findHomographyの戻り値）から、ワールド座標系をカメラ座標系へ
// 射影する4x4同次変換行列を求める。Zhangの手法に基づき、
// 推定した回転行列はSVDで再直交化して det(R) = 1 を保証する。
func ExtrinsicFromHomography(K, H mat.Matrix) (*mat.Dense, error) {
	Kinv, err := KInverse(K)
	if err != nil {
		return nil, fmt.Errorf("内部パラメータ行列の逆行列計算に失敗: %w", err)
	}

	rows, cols := H.Dims()
	if rows != 3 || cols != 3 {
		return nil, fmt.Errorf("ホモグラフィは3x3である必要があります: %dx%d", rows, cols)
	}

	// Kinv * H の各列を取り出す
	col := func(j int) r3.Vector {
		var v [3]float64
		for i := 0; i < 3; i++ {
			for k := 0; k < 3; k++ {
				v[i] += Kinv.At(i, k) * H.At(k, j)
			}
		}
		return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
	}

	h1, h2, h3 := col(0), col(1), col(2)
	norm := h1.Norm()
	if norm == 0 {
		return nil, fmt.Errorf("ホモグラフィの第1列が退化しています")
	}
	lambda := 1 / norm

	r1 := h1.Mul(lambda)
	r2 := h2.Mul(lambda)
	r3v := r1.Cross(r2)
	t := h3.Mul(lambda)

	R := mat.NewDense(3, 3, []float64{
		r1.X, r2.X, r3v.X,
		r1.Y, r2.Y, r3v.Y,
		r1.Z, r2.Z, r3v.Z,
	})

	// 回転行列を再直交化して det(R) = 1 を保証する
	// (Z. Zhang "A Flexible New Technique for Camera Calibration" Appendix C)
	var svd mat.SVD
	if ok := svd.Factorize(R, mat.SVDThin); !ok {
		return nil, fmt.Errorf("回転行列のSVD分解に失敗しました")
	}
	var U, V mat.Dense
	svd.UTo(&U)
	svd.VTo(&V)

	var Rref mat.Dense
	Rref.Mul(&U, V.T())

	return transform.FromRt(&Rref, mat.NewVecDense(3, []float64{t.X, t.Y, t.Z}))
}
