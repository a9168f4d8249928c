// Package server は、カメラ幾何APIのHTTPサーバーを管理します。
//
// このパッケージは、HTTPサーバーの起動、ルーティング、
// カメラモデルレジストリと数理パッケージの橋渡しを担当します。
//
// 責務:
//   - HTTPサーバーの起動と管理
//   - JSONリクエストと行列表現の相互変換
//   - カメラモデルの登録・削除・姿勢更新APIの提供
//   - 点群射影と外部パラメータ推定APIの提供
//
// 仕様:
//   - シンプルな確認用サーバーは標準ライブラリのnet/httpを使用
//   - APIサーバーはgin-gonic/ginを使用
//   - 行列はすべて行優先のフラットなJSON配列で表現
//   - グレースフルシャットダウンに対応
package server
