package report

import (
	"io"
	"strings"

	"golang.org/x/text/message"
)

func writeMarkdown(w io.Writer, p *message.Printer, s Summary) error {
	out := &errWriter{w: w, p: p}
	out.printf("# Jeopardy Game Summary Report\n\n")

	out.printf("## Final Scores\n\n")
	out.printf("| Rank | Player | Score |\n")
	out.printf("|-----:|--------|------:|\n")
	for _, st := range s.Standings {
		out.printf("| %d | %s | %d |\n", st.Rank, cell(st.Name), st.Score)
	}
	out.printf("\n## Turn-by-Turn Rundown\n\n")
	if len(s.Turns) == 0 {
		out.printf("_No questions were answered._\n")
	}
	for _, t := range s.Turns {
		out.printf("### Turn %d: %s\n\n", t.Number, t.Player)
		out.printf("- **Category:** %s\n", t.Category)
		out.printf("- **Question Value:** %d\n", t.Value)
		out.printf("- **Question:** %s\n", t.Prompt)
		out.printf("- **Given Answer:** %s\n", t.Answer)
		out.printf("- **Result:** %s (%+d)\n", correctness(t.Correct), t.Delta)
		out.printf("- **Running Total:** %d\n\n", t.Total)
	}
	return out.err
}

// cell escapes pipes so names cannot break the table.
func cell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
