package server

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// denseFromFlat は行優先のフラット配列からrows x cols行列を構築する
func denseFromFlat(data []float64, rows, cols int) (*mat.Dense, error) {
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%dx%d行列には%d要素が必要です: %d要素", rows, cols, rows*cols, len(data))
	}

	// mat.NewDenseはスライスを共有するためコピーを渡す
	buf := make([]float64, len(data))
	copy(buf, data)

	return mat.NewDense(rows, cols, buf), nil
}

// flatFromDense は行列を行優先のフラット配列に変換する
func flatFromDense(m *mat.Dense) []float64 {
	rows, cols := m.Dims()

	out := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out = append(out, m.At(i, j))
		}
	}

	return out
}

// pointsFromRows は点のリストから(n,3)または(n,4)行列を構築する
// すべての点は同じ次元数である必要がある
func pointsFromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("点が指定されていません")
	}

	dims := len(rows[0])
	if dims != 3 && dims != 4 {
		return nil, fmt.Errorf("各点は3要素または4要素である必要があります: %d要素", dims)
	}

	data := make([]float64, 0, len(rows)*dims)
	for i, row := range rows {
		if len(row) != dims {
			return nil, fmt.Errorf("点%dの次元数が一致しません: %d要素 (期待値: %d)", i, len(row), dims)
		}
		data = append(data, row...)
	}

	return mat.NewDense(len(rows), dims, data), nil
}
