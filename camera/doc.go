// Package camera ピンホールカメラモデルの数理を担う
//
// # 責務
// - 内部パラメータ行列(K)の構築と閉形式逆行列の計算
// - ホモグラフィからの外部パラメータ(R, t)の推定
// - 3D点群の画像座標への射影
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - ワールド座標の点をカメラの画素座標へ射影したい
// - 平面キャリブレーションターゲットのホモグラフィからカメラの姿勢を求めたい
// - 内部パラメータ行列の逆行列を数値分解なしで得たい
//
// # 仕様
// - 内部パラメータはfx, fy, skew, cx, cyの5パラメータモデル
// - 外部パラメータ推定はZhangの手法に基づく (Z. Zhang "A Flexible New Technique for Camera Calibration")
// - 推定した回転行列はSVDで再直交化し det(R) = 1 を保証する
// - 行列表現は gonum.org/v1/gonum/mat を使用
package camera
