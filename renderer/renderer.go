package renderer

import "github.com/ByLCY/canvastxt/layout"

// Renderer 将排版结果输出为最终文件，例如 PDF 或纯文本预览。
// Render 返回生成的二进制数据以及可能的错误。
type Renderer interface {
	Render(results []*layout.Result) ([]byte, error)
}
