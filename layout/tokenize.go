package layout

import (
	"strings"

	"github.com/rivo/uniseg"
)

// TextToWords splits plain text into words: runs of visible characters, runs of
// whitespace (kept verbatim so repeated spaces keep their width) and one "\n"
// hard-break word per newline. Whitespace at either end of text is dropped.
func TextToWords(text string) []Word {
	return tokenize(strings.TrimSpace(text))
}

// tokenize 与 TextToWords 相同，但保留两端空白，DSL 构建时用于拼接多段字符串。
func tokenize(text string) []Word {
	text = strings.ReplaceAll(text, "\r", "")
	if text == "" {
		return nil
	}

	var (
		words   []Word
		builder strings.Builder
		inSpace bool
	)
	flush := func() {
		if builder.Len() == 0 {
			return
		}
		words = append(words, Word{Text: builder.String()})
		builder.Reset()
	}

	// 按字素簇遍历，组合字符不会与其基字符拆开。
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		cluster := g.Str()
		if strings.ContainsRune(cluster, '\n') {
			flush()
			words = append(words, Word{Text: "\n"})
			inSpace = false
			continue
		}
		space := IsWhitespace(cluster)
		if builder.Len() > 0 && space != inSpace {
			flush()
		}
		inSpace = space
		builder.WriteString(cluster)
	}
	flush()
	return words
}
