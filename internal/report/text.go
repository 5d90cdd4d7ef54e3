package report

import (
	"io"

	"golang.org/x/text/message"
)

func writeText(w io.Writer, p *message.Printer, s Summary) error {
	out := &errWriter{w: w, p: p}
	out.printf("Jeopardy Game Summary Report\n")
	out.printf("============================\n\n")

	out.printf("Final Scores:\n")
	for _, st := range s.Standings {
		out.printf("%d. %s: %d points\n", st.Rank, st.Name, st.Score)
	}
	out.printf("\n")

	out.printf("Turn-by-Turn Rundown:\n")
	out.printf("---------------------\n")
	if len(s.Turns) == 0 {
		out.printf("No questions were answered.\n")
	}
	for _, t := range s.Turns {
		out.printf("Turn %d:\n", t.Number)
		out.printf("  Player: %s\n", t.Player)
		out.printf("  Category: %s\n", t.Category)
		out.printf("  Question Value: %d\n", t.Value)
		out.printf("  Question Text: %s\n", t.Prompt)
		out.printf("  Given Answer: %s\n", t.Answer)
		out.printf("  Correctness: %s\n", correctness(t.Correct))
		out.printf("  Points Earned: %d\n", t.Delta)
		out.printf("  Running Total for %s: %d\n\n", t.Player, t.Total)
	}
	return out.err
}
