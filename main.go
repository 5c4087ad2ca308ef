package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ByLCY/canvastxt/dsl"
	"github.com/ByLCY/canvastxt/fonts"
	"github.com/ByLCY/canvastxt/layout"
	"github.com/ByLCY/canvastxt/renderer"
	canvasrenderer "github.com/ByLCY/canvastxt/renderer/canvas"
	textrenderer "github.com/ByLCY/canvastxt/renderer/text"
)

const version = "v0.1.0"

func main() {
	var (
		input       string
		output      string
		debug       string
		dataJSON    string
		dataFile    string
		preview     bool
		cols        int
		pageWidth   string
		pageHeight  string
		fontFlags   []string
		showVersion bool
	)

	flags := pflag.NewFlagSet("canvastxt", pflag.ExitOnError)
	flags.StringVarP(&input, "in", "i", "examples/demo.textbox", "DSL 文件路径")
	flags.StringVarP(&output, "out", "o", "output/demo.pdf", "PDF 输出路径")
	flags.StringVar(&debug, "debug", "", "排版结果调试 JSON 输出路径")
	flags.StringVar(&dataJSON, "data", "", "绑定到 DSL 的 JSON 数据")
	flags.StringVar(&dataFile, "data-file", "", "从文件读取绑定数据（优先于 --data）")
	flags.BoolVarP(&preview, "preview", "p", false, "在终端输出文本预览，不生成 PDF")
	flags.IntVarP(&cols, "cols", "w", 0, "预览宽度（0 表示使用终端宽度）")
	flags.StringVar(&pageWidth, "page-width", "", "页面宽度，如 210mm（默认适应内容）")
	flags.StringVar(&pageHeight, "page-height", "", "页面高度，如 297mm（默认适应内容）")
	flags.StringArrayVar(&fontFlags, "font", nil, "注入字体 Family[:bold-italic]=path.ttf 或 =embed:go-bold，可重复")
	flags.BoolVarP(&showVersion, "version", "v", false, "打印版本")
	if err := flags.Parse(os.Args[1:]); err != nil {
		log.Fatalf("解析参数失败: %v", err)
	}

	if showVersion {
		fmt.Println(version)
		return
	}

	data, err := loadData(dataJSON, dataFile)
	if err != nil {
		log.Fatalf("读取绑定数据失败: %v", err)
	}

	if preview {
		r := textrenderer.New(resolveCols(cols))
		if err := run(input, "", debug, data, r, r); err != nil {
			log.Fatalf("生成预览失败: %v", err)
		}
		return
	}

	opts, err := canvasOptions(pageWidth, pageHeight, fontFlags)
	if err != nil {
		log.Fatalf("参数无效: %v", err)
	}
	r := canvasrenderer.NewRendererWithOptions(opts)
	if err := run(input, output, debug, data, r, r); err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("已生成 PDF：%s\n", output)
}

// run 串联解析、排版与渲染。outputPath 为空时渲染结果写到标准输出。
func run(inputPath, outputPath, debugPath string, data []byte, m layout.Measurer, r renderer.Renderer) error {
	if m == nil || r == nil {
		return fmt.Errorf("measurer 与 renderer 不能为空")
	}
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("无法打开 DSL 文件 %s: %w", inputPath, err)
	}
	defer file.Close()

	doc, err := dsl.Parse(file)
	if err != nil {
		return fmt.Errorf("解析 DSL 失败: %w", err)
	}

	results, err := layout.Build(doc, data, layout.BuildOptions{Measurer: m})
	if err != nil {
		return fmt.Errorf("布局计算失败: %w", err)
	}

	if debugPath != "" {
		if err := writeDebug(results, debugPath); err != nil {
			return err
		}
	}

	out, err := r.Render(results)
	if err != nil {
		return fmt.Errorf("渲染失败: %w", err)
	}
	if outputPath == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}
	if err := os.WriteFile(outputPath, out, 0o644); err != nil {
		return fmt.Errorf("写入输出文件失败: %w", err)
	}
	return nil
}

func writeDebug(results []*layout.Result, debugPath string) error {
	if err := os.MkdirAll(filepath.Dir(debugPath), 0o755); err != nil {
		return fmt.Errorf("创建调试目录失败: %w", err)
	}
	if err := layout.WriteDebugJSON(results, debugPath); err != nil {
		return fmt.Errorf("输出调试 JSON 失败: %w", err)
	}
	return nil
}

func loadData(inline, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	if inline == "" {
		return nil, nil
	}
	return []byte(inline), nil
}

// canvasOptions 将页面尺寸与 --font 参数转换为渲染器配置。
func canvasOptions(width, height string, fontFlags []string) (canvasrenderer.Options, error) {
	var opts canvasrenderer.Options
	var err error
	if width != "" {
		if opts.PageWidth, err = layout.ParseLength(width); err != nil {
			return opts, fmt.Errorf("--page-width: %w", err)
		}
	}
	if height != "" {
		if opts.PageHeight, err = layout.ParseLength(height); err != nil {
			return opts, fmt.Errorf("--page-height: %w", err)
		}
	}
	if len(fontFlags) > 0 {
		opts.Fonts = make(map[string]canvasrenderer.Resource, len(fontFlags))
	}
	for _, f := range fontFlags {
		name, path, ok := strings.Cut(f, "=")
		if !ok || strings.TrimSpace(name) == "" || strings.TrimSpace(path) == "" {
			return opts, fmt.Errorf("--font 需要 Family=path 形式，得到 %q", f)
		}
		path = strings.TrimSpace(path)
		if err := checkFontSource(path); err != nil {
			return opts, fmt.Errorf("--font %s: %w", name, err)
		}
		opts.Fonts[strings.TrimSpace(name)] = canvasrenderer.Resource{Path: path}
	}
	return opts, nil
}

// checkFontSource 确认字体来源存在，避免拼写错误时静默回退到内置字体。
func checkFontSource(path string) error {
	if strings.HasPrefix(path, "embed:") {
		_, err := fonts.Load(path)
		return err
	}
	_, err := os.Stat(path)
	return err
}

func resolveCols(cols int) int {
	if cols > 0 {
		return cols
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	return textrenderer.DefaultCols
}
