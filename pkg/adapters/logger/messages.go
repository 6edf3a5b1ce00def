package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Time-shifting %d frames of %s into %s with %d slices": "%[2]s の %[1]d フレームを %[4]d スライスで %[3]s にタイムシフト中",
		"Frames are %s, slice height %d":                       "フレーム形式 %s, スライスの高さ %d",
		"Processed %d frames, %d slice copies":                 "%d フレームを処理しました (スライスのコピー %d 回)",
		"Saving Timeshifted Frames...":                         "タイムシフトしたフレームを保存中...",
		"Pipeline completed successfully":                      "パイプラインが正常に完了しました",
		"Interrupted, shutting down...":                        "中断されました。シャットダウン中...",

		// Probe stage
		"Reading first source frame %s":                             "最初のソースフレーム %s を読み込み中",
		"Frame geometry: %s, %d slices of %d rows, %d rows dropped": "フレーム形式: %s, %d スライス × %d 行, 切り捨て %d 行",
		"Loaded %d output frames":                                   "出力フレームを %d 枚読み込みました",

		// Timeshift stage
		"Frame %d: %d slices routed": "フレーム %d: %d スライスを振り分けました",

		// Persist stage
		"Wrote %s": "%s を書き込みました",

		// Uncovered rows
		"%d bottom rows are not covered by any slice and keep their placeholder content": "下端の %d 行はどのスライスにも含まれず、元の内容のまま残ります",

		// Debug output
		"Failed to save debug output: %s": "デバッグ出力の保存に失敗しました: %s",

		// Errors
		"Failed to load frames: %s":  "フレームの読み込みに失敗しました: %s",
		"Failed to shift frames: %s": "フレームのタイムシフトに失敗しました: %s",
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
