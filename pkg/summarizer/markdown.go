package summarizer

import (
	"fmt"
	"strings"

	"github.com/ideamans/go-l10n"
)

// MarkdownFormatter renders a Summary as a markdown document.
type MarkdownFormatter struct {
	translate func(string) string
	version   string
}

// MarkdownOption configures a MarkdownFormatter.
type MarkdownOption func(*MarkdownFormatter)

// WithTranslator replaces the label translator (l10n.T by default).
func WithTranslator(translate func(string) string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.translate = translate
	}
}

// WithVersion sets the version shown in the footer.
func WithVersion(version string) MarkdownOption {
	return func(f *MarkdownFormatter) {
		f.version = version
	}
}

// NewMarkdownFormatter creates a MarkdownFormatter.
func NewMarkdownFormatter(opts ...MarkdownOption) *MarkdownFormatter {
	f := &MarkdownFormatter{translate: l10n.T}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format implements the Formatter interface.
func (f *MarkdownFormatter) Format(s *Summary) string {
	t := f.translate
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t("Time-Shift Summary"))

	f.table(&b, [][2]string{
		{t("Source"), code(s.Input.SourceDir)},
		{t("Output"), code(s.Input.OutputDir)},
		{t("Frame Pattern"), code(s.Input.FramePattern)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Frames"))
	frameBytes := s.Frames.FrameBytes()
	f.table(&b, [][2]string{
		{t("Frame Size"), fmt.Sprintf("%dx%d", s.Frames.Width, s.Frames.Height)},
		{t("Pixel Format"), fmt.Sprintf("%s/%d", s.Frames.Layout, s.Frames.BitDepth)},
		{t("Decoded Frame"), formatBytes(frameBytes)},
		{t("Peak Memory"), formatBytes(frameBytes * int64(s.Slicing.FrameCount+1))},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Slicing"))
	f.table(&b, [][2]string{
		{t("Frames"), fmt.Sprintf("%d", s.Slicing.FrameCount)},
		{t("Slices"), fmt.Sprintf("%d", s.Slicing.SliceCount)},
		{t("Slice Height"), fmt.Sprintf("%d px", s.Slicing.SliceHeight)},
		{t("Uncovered Rows"), fmt.Sprintf("%d px", s.Slicing.DroppedRows)},
	})

	fmt.Fprintf(&b, "## %s\n\n", t("Result"))
	f.table(&b, [][2]string{
		{t("Frames Processed"), fmt.Sprintf("%d", s.Result.FramesProcessed)},
		{t("Slice Copies"), fmt.Sprintf("%d", s.Result.SliceCopies)},
		{t("Files Written"), fmt.Sprintf("%d", len(s.Result.Written))},
		{t("Duration"), fmt.Sprintf("%d ms", s.Result.DurationMs)},
	})

	if len(s.Schedule) > 0 {
		f.schedule(&b, s.Schedule)
	}

	b.WriteString("---\n\n")
	generator := "timeshifter"
	if f.version != "" {
		generator += " " + f.version
	}
	fmt.Fprintf(&b, "%s %s, %s\n", t("Generated by"), generator, s.GeneratedAt.Format("2006-01-02 15:04:05"))

	return b.String()
}

func (f *MarkdownFormatter) table(b *strings.Builder, rows [][2]string) {
	fmt.Fprintf(b, "| %s | %s |\n", f.translate("Item"), f.translate("Value"))
	b.WriteString("|------|-------|\n")
	for _, row := range rows {
		fmt.Fprintf(b, "| %s | %s |\n", row[0], row[1])
	}
	b.WriteString("\n")
}

// schedule writes the last-writer grid, one row per output slot.
func (f *MarkdownFormatter) schedule(b *strings.Builder, grid [][]int) {
	fmt.Fprintf(b, "## %s\n\n", f.translate("Schedule"))

	bands := 0
	for _, row := range grid {
		if len(row) > bands {
			bands = len(row)
		}
	}

	b.WriteString("| " + f.translate("Slot"))
	for k := 0; k < bands; k++ {
		fmt.Fprintf(b, " | %s %d", f.translate("Band"), k)
	}
	b.WriteString(" |\n|---")
	for k := 0; k < bands; k++ {
		b.WriteString("|---")
	}
	b.WriteString("|\n")

	for slot, row := range grid {
		fmt.Fprintf(b, "| %d", slot)
		for k := 0; k < bands; k++ {
			cell := "-"
			if k < len(row) && row[k] >= 0 {
				cell = fmt.Sprintf("f%d", row[k])
			}
			fmt.Fprintf(b, " | %s", cell)
		}
		b.WriteString(" |\n")
	}
	b.WriteString("\n")
}

func code(s string) string {
	if s == "" {
		return ""
	}
	return "`" + s + "`"
}

// formatBytes renders a byte count with binary units.
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit && exp < 2; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(n)/float64(div), "KMG"[exp])
}
