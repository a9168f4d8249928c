// Package transform は剛体変換(SE(3))の行列演算を提供する
//
// # 責務
// - 回転行列と並進ベクトルからの4x4同次変換行列の構築・分解
// - 同次変換行列の閉形式逆行列の計算
// - 直交座標と同次座標の相互変換
//
// # 使い分け
// このパッケージは以下の場合に使用する：
// - ワールド座標系とカメラ座標系の間で点群を変換したい
// - 変換行列の合成や逆変換を行いたい
// - 射影計算のために座標を同次化・非同次化したい
//
// # 仕様
// - 行列表現は gonum.org/v1/gonum/mat を使用
// - 点群は列ベクトルの並び（MxN行列、N点）として扱う
// - 形状が不正な入力はpanicせずerrorを返す
package transform
