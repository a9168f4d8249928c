package transform

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// FromRt は3x3回転行列と並進ベクトルから4x4同次変換行列(SE(3))を構築する
func FromRt(R mat.Matrix, t mat.Vector) (*mat.Dense, error) {
	rows, cols := R.Dims()
	if rows != 3 || cols != 3 {
		return nil, fmt.Errorf("回転行列は3x3である必要があります: %dx%d", rows, cols)
	}
	if t.Len() != 3 {
		return nil, fmt.Errorf("並進ベクトルは長さ3である必要があります: %d", t.Len())
	}

	T := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			T.Set(i, j, R.At(i, j))
		}
		T.Set(i, 3, t.AtVec(i))
	}
	T.Set(3, 3, 1)

	return T, nil
}

// ToRt は4x4同次変換行列を回転行列と並進ベクトルに分解する
func ToRt(T mat.Matrix) (*mat.Dense, *mat.VecDense, error) {
	rows, cols := T.Dims()
	if rows != 4 || cols != 4 {
		return nil, nil, fmt.Errorf("変換行列は4x4である必要があります: %dx%d", rows, cols)
	}

	R := mat.NewDense(3, 3, nil)
	t := mat.NewVecDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R.Set(i, j, T.At(i, j))
		}
		t.SetVec(i, T.At(i, 3))
	}

	return R, t, nil
}

// Inverse は4x4同次変換行列(SE(3))の逆行列を閉形式で計算する
//
// T_abが座標系bの同次点を座標系aへ射影する変換であれば、
// 逆方向に射影するT_baを返す。回転部分の直交性を利用するため
// 一般の逆行列計算より高速かつ数値的に安定する。
func Inverse(T mat.Matrix) (*mat.Dense, error) {
	rows, cols := T.Dims()
	if rows != 4 || cols != 4 {
		return nil, fmt.Errorf("変換行列は4x4である必要があります: %dx%d", rows, cols)
	}

	// Rinv = R^T, tinv = -R^T * t
	Tinv := mat.NewDense(4, 4, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			Tinv.Set(i, j, T.At(j, i))
		}
	}
	for i := 0; i < 3; i++ {
		v := 0.0
		for j := 0; j < 3; j++ {
			v -= T.At(j, i) * T.At(j, 3)
		}
		Tinv.Set(i, 3, v)
	}
	Tinv.Set(3, 3, 1)

	return Tinv, nil
}
