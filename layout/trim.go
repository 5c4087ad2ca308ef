package layout

// TrimSide selects which end(s) of a line TrimLine trims.
type TrimSide int

const (
	TrimBoth TrimSide = iota
	TrimLeft
	TrimRight
)

// Trimmed is the result of TrimLine. Left+Line+Right is always the original line.
type Trimmed struct {
	Left  []Word
	Line  []Word
	Right []Word
}

// TrimLine strips whitespace words from the start and/or end of line. Interior
// whitespace is kept. A line made only of whitespace is reported wholly in Left,
// unless side is TrimRight, in which case it is reported in Right.
func TrimLine(line []Word, side TrimSide) Trimmed {
	left, inner, right := trimFunc(line, side, func(w Word) bool { return IsWhitespace(w.Text) })
	return Trimmed{Left: left, Line: inner, Right: right}
}

// trimFunc 是 TrimLine 的泛型实现，排版引擎也用它裁剪已定位的单词。
// 返回的切片均为新分配的副本。
func trimFunc[T any](line []T, side TrimSide, isSpace func(T) bool) (left, inner, right []T) {
	start := 0
	if side == TrimLeft || side == TrimBoth {
		for start < len(line) && isSpace(line[start]) {
			start++
		}
		if start == len(line) {
			return clone(line), []T{}, []T{}
		}
	}

	end := len(line)
	if side == TrimRight || side == TrimBoth {
		for end > 0 && isSpace(line[end-1]) {
			end--
		}
		if end == 0 {
			return []T{}, []T{}, clone(line)
		}
	}

	return clone(line[:start]), clone(line[start:end]), clone(line[end:])
}

func clone[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}
