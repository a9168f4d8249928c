package camera

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ProjectPoints はワールド座標の点群を画像座標へ射影する
//
// pointsは各行が1点の(n,3)または(n,4)行列。(n,3)の場合は同次座標に
// 変換してから射影する。Tcwはワールド座標系からカメラ座標系への
// 4x4同次変換行列。flipが真の場合、カメラ座標系のx軸を反転してから
// Kを適用する（左手系センサーへの対応）。
//
// 戻り値は(n,3)行列で、各行は [u, v, 1]。カメラ平面上の点（深度0）は
// 除算によりInfとなる。
func ProjectPoints(points, K, Tcw mat.Matrix, flip bool) (*mat.Dense, error) {
	n, dims := points.Dims()
	if dims != 3 && dims != 4 {
		return nil, fmt.Errorf("点群は(n,3)または(n,4)である必要があります: (%d,%d)", n, dims)
	}

	kr, kc := K.Dims()
	if kr != 3 || kc != 3 {
		return nil, fmt.Errorf("内部パラメータ行列は3x3である必要があります: %dx%d", kr, kc)
	}

	tr, tc := Tcw.Dims()
	if tr != 4 || tc != 4 {
		return nil, fmt.Errorf("外部パラメータ行列は4x4である必要があります: %dx%d", tr, tc)
	}

	out := mat.NewDense(n, 3, nil)
	for i := 0; i < n; i++ {
		// 同次ワールド座標
		p := [4]float64{0, 0, 0, 1}
		for j := 0; j < dims; j++ {
			p[j] = points.At(i, j)
		}

		// カメラ座標系へ変換
		var pc [4]float64
		for r := 0; r < 4; r++ {
			for c := 0; c < 4; c++ {
				pc[r] += Tcw.At(r, c) * p[c]
			}
		}

		if flip {
			pc[0] = -pc[0]
		}

		// 画像座標へ射影
		var pi [3]float64
		for r := 0; r < 3; r++ {
			for c := 0; c < 3; c++ {
				pi[r] += K.At(r, c) * pc[c]
			}
		}

		w := pi[2]
		out.Set(i, 0, pi[0]/w)
		out.Set(i, 1, pi[1]/w)
		out.Set(i, 2, pi[2]/w)
	}

	return out, nil
}
