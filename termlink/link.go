// Package termlink は端末でクリック可能なハイパーリンク文字列を生成する
//
// OSC 8エスケープシーケンスに対応した端末エミュレータで、
// 出力した文字列がクリック可能なリンクとして表示される。
// 仕様: https://gist.github.com/egmontkob/eb114294efbcd5adb1944c9f3cb5feda
package termlink

import "fmt"

// Link はURIへのクリック可能なリンク文字列を生成する
// labelが空文字列の場合はURI自身をラベルとして使用する
func Link(uri, label string) string {
	return LinkWithParams(uri, label, "")
}

// LinkWithParams はパラメータ付きのリンク文字列を生成する
// paramsはOSC 8のパラメータ部（例: "id=xyz"）に埋め込まれる
func LinkWithParams(uri, label, params string) string {
	if label == "" {
		label = uri
	}

	// OSC 8 ; params ; URI ST <label> OSC 8 ;; ST
	return fmt.Sprintf("\x1b]8;%s;%s\x1b\\%s\x1b]8;;\x1b\\", params, uri, label)
}
