// Package main provides localization for the timeshifter CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Time-shift the horizontal slices of a PNG frame sequence.": "PNGフレーム列の水平スライスをタイムシフト",

		// Version
		"timeshifter version %s": "timeshifter バージョン %s",

		// Arguments
		"Directory of the source frames.":                            "ソースフレームのディレクトリ",
		"Directory of the placeholder frames, overwritten in place.": "出力フレームのディレクトリ（上書きされます）",
		"Number of frames in both directories.":                      "各ディレクトリのフレーム数",
		"Number of horizontal slices per frame.":                     "1フレームあたりの水平スライス数",

		// Flags
		"YAML configuration file.":                            "YAML設定ファイル",
		"Log level (debug, info, warn, error).":               "ログレベル（debug, info, warn, error）",
		"Suppress all log output.":                            "全てのログ出力を抑制",
		"Enable debug output.":                                "デバッグ出力を有効化",
		"Directory for debug output.":                         "デバッグ出力のディレクトリ",
		"Output execution summary to file (Markdown format).": "実行サマリーをファイルに出力（Markdown形式）",
		"Show version information.":                           "バージョン情報を表示",

		// Runtime messages
		"Done: %d frames written to %s": "完了: %[2]s に %[1]d フレームを書き込みました",
		"Summary saved to %s":           "サマリーを %s に保存しました",
		"Failed to write summary: %s":   "サマリーの書き込みに失敗しました: %s",

		// Summary content
		"Time-Shift Summary": "タイムシフト サマリー",
		"Item":               "項目",
		"Value":              "値",
		"Source":             "ソース",
		"Output":             "出力先",
		"Frame Pattern":      "フレーム名パターン",
		"Frames":             "フレーム",
		"Frame Size":         "フレームサイズ",
		"Pixel Format":       "ピクセル形式",
		"Decoded Frame":      "デコード後のフレーム",
		"Peak Memory":        "最大メモリ",
		"Slicing":            "スライス",
		"Slices":             "スライス数",
		"Slice Height":       "スライスの高さ",
		"Uncovered Rows":     "対象外の行",
		"Result":             "実行結果",
		"Frames Processed":   "処理したフレーム",
		"Slice Copies":       "スライスのコピー",
		"Files Written":      "書き込んだファイル",
		"Duration":           "処理時間",
		"Schedule":           "スケジュール",
		"Slot":               "スロット",
		"Band":               "バンド",
		"Generated by":       "生成:",
	})
}
