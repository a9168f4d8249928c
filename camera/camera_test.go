package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// matApproxEqual は2つの行列が許容誤差内で一致するか検証する
func matApproxEqual(a, b mat.Matrix, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if math.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

// testIntrinsics はテスト用の内部パラメータ
var testIntrinsics = Intrinsics{
	Fx:   800,
	Fy:   820,
	Skew: 0.5,
	Cx:   640,
	Cy:   360,
}

// TestIntrinsicsK は内部パラメータ行列の構築をテストする
func TestIntrinsicsK(t *testing.T) {
	K := testIntrinsics.K()

	expected := mat.NewDense(3, 3, []float64{
		800, 0.5, 640,
		0, 820, 360,
		0, 0, 1,
	})

	if !matApproxEqual(K, expected, 0) {
		t.Errorf("内部パラメータ行列が一致しません:\n%v", mat.Formatted(K))
	}
}

// TestIntrinsicsValidate は内部パラメータの検証をテストする
func TestIntrinsicsValidate(t *testing.T) {
	testCases := []struct {
		name      string
		in        Intrinsics
		expectErr bool
	}{
		{
			name:      "正常なパラメータ",
			in:        testIntrinsics,
			expectErr: false,
		},
		{
			name:      "fxが0",
			in:        Intrinsics{Fx: 0, Fy: 800},
			expectErr: true,
		},
		{
			name:      "fyが負",
			in:        Intrinsics{Fx: 800, Fy: -1},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.expectErr && err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
			if !tc.expectErr && err != nil {
				t.Errorf("予期しないエラーが発生しました: %v", err)
			}
		})
	}
}

// TestKInverse は内部パラメータ行列の閉形式逆行列をテストする
func TestKInverse(t *testing.T) {
	K := testIntrinsics.K()

	Kinv, err := KInverse(K)
	if err != nil {
		t.Fatalf("逆行列の計算に失敗しました: %v", err)
	}

	// K * Kinv = I であることを検証
	var product mat.Dense
	product.Mul(K, Kinv)

	identity := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	})

	if !matApproxEqual(&product, identity, 1e-12) {
		t.Errorf("K * Kinv が単位行列になりません:\n%v", mat.Formatted(&product))
	}
}

// TestKInverseValidation は逆行列計算の入力検証をテストする
func TestKInverseValidation(t *testing.T) {
	testCases := []struct {
		name string
		K    mat.Matrix
	}{
		{
			name: "3x3ではない",
			K:    mat.NewDense(2, 2, nil),
		},
		{
			name: "焦点距離が0",
			K: mat.NewDense(3, 3, []float64{
				0, 0, 640,
				0, 820, 360,
				0, 0, 1,
			}),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := KInverse(tc.K); err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
		})
	}
}

// TestExtrinsicFromHomography はホモグラフィからの外部パラメータ推定をテストする
//
// 既知のR, tからホモグラフィ H = K * [r1 r2 t] を合成し、
// 推定結果が元のR, tと一致することを検証する
func TestExtrinsicFromHomography(t *testing.T) {
	testCases := []struct {
		name  string
		theta float64
		axis  string
		trans []float64
	}{
		{
			name:  "z軸まわりの回転",
			theta: math.Pi / 6,
			axis:  "z",
			trans: []float64{0.5, -0.3, 2.0},
		},
		{
			name:  "x軸まわりの回転",
			theta: math.Pi / 4,
			axis:  "x",
			trans: []float64{-1.0, 0.2, 3.5},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			R := rotationMatrix(tc.axis, tc.theta)
			K := testIntrinsics.K()

			// H = K * [r1 r2 t]
			B := mat.NewDense(3, 3, nil)
			for i := 0; i < 3; i++ {
				B.Set(i, 0, R.At(i, 0))
				B.Set(i, 1, R.At(i, 1))
				B.Set(i, 2, tc.trans[i])
			}
			var H mat.Dense
			H.Mul(K, B)

			T, err := ExtrinsicFromHomography(K, &H)
			if err != nil {
				t.Fatalf("外部パラメータの推定に失敗しました: %v", err)
			}

			// 回転部分の検証
			Rest := T.Slice(0, 3, 0, 3)
			if !matApproxEqual(R, Rest, 1e-9) {
				t.Errorf("回転行列が一致しません:\n%v", mat.Formatted(Rest))
			}

			// 並進部分の検証
			for i := 0; i < 3; i++ {
				if math.Abs(T.At(i, 3)-tc.trans[i]) > 1e-9 {
					t.Errorf("並進ベクトルが一致しません: t[%d] = %g, want %g", i, T.At(i, 3), tc.trans[i])
				}
			}

			// det(R) = 1 の検証
			det := mat.Det(mat.DenseCopyOf(Rest))
			if math.Abs(det-1) > 1e-9 {
				t.Errorf("回転行列の行列式が1ではありません: %g", det)
			}
		})
	}
}

// TestExtrinsicFromHomographyValidation は推定の入力検証をテストする
func TestExtrinsicFromHomographyValidation(t *testing.T) {
	K := testIntrinsics.K()

	testCases := []struct {
		name string
		K    mat.Matrix
		H    mat.Matrix
	}{
		{
			name: "ホモグラフィが3x3ではない",
			K:    K,
			H:    mat.NewDense(2, 3, nil),
		},
		{
			name: "内部パラメータ行列が特異",
			K:    mat.NewDense(3, 3, nil),
			H:    mat.NewDense(3, 3, nil),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ExtrinsicFromHomography(tc.K, tc.H); err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
		})
	}
}

// TestProjectPoints は点群の射影をテストする
func TestProjectPoints(t *testing.T) {
	in := Intrinsics{Fx: 800, Fy: 800, Cx: 640, Cy: 360}
	K := in.K()

	// 単位姿勢（ワールド座標系 = カメラ座標系）
	T := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})

	testCases := []struct {
		name   string
		points *mat.Dense
		flip   bool
		want   [][2]float64
	}{
		{
			name: "光軸上の点は主点に射影される",
			points: mat.NewDense(1, 3, []float64{
				0, 0, 2,
			}),
			want: [][2]float64{{640, 360}},
		},
		{
			name: "同次座標(n,4)の入力",
			points: mat.NewDense(2, 4, []float64{
				0, 0, 2, 1,
				0.1, 0, 1, 1,
			}),
			want: [][2]float64{{640, 360}, {720, 360}},
		},
		{
			name: "x軸反転",
			points: mat.NewDense(1, 3, []float64{
				0.1, 0, 1,
			}),
			flip: true,
			want: [][2]float64{{560, 360}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			projected, err := ProjectPoints(tc.points, K, T, tc.flip)
			if err != nil {
				t.Fatalf("射影に失敗しました: %v", err)
			}

			n, cols := projected.Dims()
			if n != len(tc.want) || cols != 3 {
				t.Fatalf("射影結果の形状が不正です: %dx%d", n, cols)
			}

			for i, want := range tc.want {
				u, v := projected.At(i, 0), projected.At(i, 1)
				if math.Abs(u-want[0]) > 1e-9 || math.Abs(v-want[1]) > 1e-9 {
					t.Errorf("点%dの射影が一致しません: got (%g, %g), want (%g, %g)", i, u, v, want[0], want[1])
				}
				// 第3列は常に1
				if math.Abs(projected.At(i, 2)-1) > 1e-12 {
					t.Errorf("点%dの第3列が1ではありません: %g", i, projected.At(i, 2))
				}
			}
		})
	}
}

// TestProjectPointsTranslation は並進を含む姿勢での射影をテストする
func TestProjectPointsTranslation(t *testing.T) {
	in := Intrinsics{Fx: 800, Fy: 800, Cx: 640, Cy: 360}
	K := in.K()

	// カメラをワールド原点からz方向に2だけ手前に置く変換
	T := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 2,
		0, 0, 0, 1,
	})

	// ワールド原点はカメラ座標で(0,0,2)になり、主点に射影される
	points := mat.NewDense(1, 3, []float64{0, 0, 0})

	projected, err := ProjectPoints(points, K, T, false)
	if err != nil {
		t.Fatalf("射影に失敗しました: %v", err)
	}

	if projected.At(0, 0) != 640 || projected.At(0, 1) != 360 {
		t.Errorf("射影結果が不正です: got (%g, %g), want (640, 360)",
			projected.At(0, 0), projected.At(0, 1))
	}
}

// TestProjectPointsValidation は射影の入力検証をテストする
func TestProjectPointsValidation(t *testing.T) {
	in := Intrinsics{Fx: 800, Fy: 800, Cx: 640, Cy: 360}
	K := in.K()
	T := mat.NewDense(4, 4, nil)

	testCases := []struct {
		name   string
		points mat.Matrix
		K      mat.Matrix
		T      mat.Matrix
	}{
		{
			name:   "点の次元が不正",
			points: mat.NewDense(2, 2, nil),
			K:      K,
			T:      T,
		},
		{
			name:   "内部パラメータ行列が3x3ではない",
			points: mat.NewDense(1, 3, nil),
			K:      mat.NewDense(2, 3, nil),
			T:      T,
		},
		{
			name:   "外部パラメータ行列が4x4ではない",
			points: mat.NewDense(1, 3, nil),
			K:      K,
			T:      mat.NewDense(3, 3, nil),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ProjectPoints(tc.points, tc.K, tc.T, false); err == nil {
				t.Error("エラーが期待されましたが、エラーが発生しませんでした")
			}
		})
	}
}

// rotationMatrix は指定軸まわりの回転行列を作成するテストヘルパー
func rotationMatrix(axis string, theta float64) *mat.Dense {
	c, s := math.Cos(theta), math.Sin(theta)
	switch axis {
	case "x":
		return mat.NewDense(3, 3, []float64{
			1, 0, 0,
			0, c, -s,
			0, s, c,
		})
	case "y":
		return mat.NewDense(3, 3, []float64{
			c, 0, s,
			0, 1, 0,
			-s, 0, c,
		})
	default:
		return mat.NewDense(3, 3, []float64{
			c, -s, 0,
			s, c, 0,
			0, 0, 1,
		})
	}
}
