package layout

// 该文件定义排版输入（单词）与输出（已定位的行），供排版计算、渲染与调试 JSON 共用。

// Metrics 是测量后端返回的单词度量，单位 px。
type Metrics struct {
	Width   float64 `json:"width"`
	Ascent  float64 `json:"fontBoundingBoxAscent"`
	Descent float64 `json:"fontBoundingBoxDescent"`
}

// Word 是排版的最小单位：可见单词、空白或换行符。
type Word struct {
	Text string `json:"text"`
	// Format 为可选的局部格式覆盖，未设置时使用基础格式。
	Format *TextFormat `json:"format,omitempty"`
	// Metrics 为已测量过的度量。设置后排版时不再测量，文本或格式变化时调用方需清空。
	Metrics *Metrics `json:"metrics,omitempty"`
}

// PositionedWord 记录一个单词在框内的最终坐标与所用的完整格式。
type PositionedWord struct {
	Word Word `json:"word"`
	// Format 是测量该单词时使用的完整格式，渲染时应使用它而不是 Word.Format。
	Format       ResolvedFormat `json:"format"`
	Metrics      Metrics        `json:"metrics"`
	X            float64        `json:"x"`
	Y            float64        `json:"y"`
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	IsWhitespace bool           `json:"isWhitespace"`
}

// Line 是同一视觉行上的单词序列，至少包含一个单词。
type Line []PositionedWord

// Text 拼接行内所有单词的文本。
func (l Line) Text() string {
	n := 0
	for _, pw := range l {
		n += len(pw.Word.Text)
	}
	buf := make([]byte, 0, n)
	for _, pw := range l {
		buf = append(buf, pw.Word.Text...)
	}
	return string(buf)
}

// Box 是文本排版的矩形区域（px）。
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Result 保存一次排版的全部输出。
type Result struct {
	Lines []Line `json:"lines"`
	// Baseline 与 TextAlign 需要在渲染前设置到绘图上下文。
	Baseline  Baseline `json:"textBaseline"`
	TextAlign string   `json:"textAlign"`
	// Width 回显排版宽度，Height 为所有行的总高度（可能超出框高）。
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Box    Box            `json:"box"`
	Format ResolvedFormat `json:"format"`
}
