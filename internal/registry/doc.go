// Package registry カメラモデルのインメモリ管理を担う
//
// # 責務
// - 名前付きカメラモデル（内部パラメータ＋姿勢）の登録・削除
// - カメラモデルの一覧取得と個別取得
// - 姿勢（外部パラメータ）の実行時更新
//
// # 仕様
// - IDは登録時にUUIDとして採番される
// - 同名のカメラモデルの重複登録は拒否する
// - RWMutexによりスレッドセーフな操作をサポート
// - 取得時はコピーを返し、内部状態への参照を漏らさない
package registry
