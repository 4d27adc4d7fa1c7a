package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"peels/internal/models"
)

func writeText(w io.Writer, title string, entries []models.Entry) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, strings.Repeat("=", len([]rune(title))))

	for _, e := range entries {
		fmt.Fprintln(bw)
		fmt.Fprintln(bw, e.Title)
		fmt.Fprintln(bw, subtitle(e, false))
		fmt.Fprintln(bw)
		for _, blk := range entryDocument(e).Blocks {
			fmt.Fprintln(bw, blk.Text)
		}
	}

	return bw.Flush()
}
