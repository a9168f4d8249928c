package transform

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Homogenize は直交座標を同次座標に変換する
//
// MxN行列（M次元の点がN個、列ベクトル並び）の末尾に1の行を
// 追加した(M+1)xN行列を返す。
func Homogenize(points mat.Matrix) *mat.Dense {
	rows, cols := points.Dims()

	out := mat.NewDense(rows+1, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.Set(i, j, points.At(i, j))
		}
	}
	for j := 0; j < cols; j++ {
		out.Set(rows, j, 1)
	}

	return out
}

// Dehomogenize は同次座標を直交座標に戻す
//
// 各列を最終行の値で割り、最終行を取り除いた(M-1)xN行列を返す。
// 最終行が0の列は無限遠点でありInfが現れる。
func Dehomogenize(points mat.Matrix) (*mat.Dense, error) {
	rows, cols := points.Dims()
	if rows < 2 {
		return nil, fmt.Errorf("同次座標は2行以上である必要があります: %d行", rows)
	}

	out := mat.NewDense(rows-1, cols, nil)
	for j := 0; j < cols; j++ {
		w := points.At(rows-1, j)
		for i := 0; i < rows-1; i++ {
			out.Set(i, j, points.At(i, j)/w)
		}
	}

	return out, nil
}
