package fonts

import (
	"fmt"
	"strings"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Face selects one of the embedded faces.
type Face struct {
	Mono   bool
	Bold   bool
	Italic bool
}

// Load 返回内置 Go 字体的 TTF 数据，path 形如 "embed:go-bold" 或 "go-mono-italic"。
func Load(path string) ([]byte, error) {
	name := strings.ToLower(strings.TrimPrefix(path, "embed:"))
	face, ok := parseName(name)
	if !ok {
		return nil, fmt.Errorf("未知的内置字体 %s", path)
	}
	return Bytes(face), nil
}

// Bytes returns the TTF data of face.
func Bytes(face Face) []byte {
	switch {
	case face.Mono && face.Bold && face.Italic:
		return gomonobolditalic.TTF
	case face.Mono && face.Bold:
		return gomonobold.TTF
	case face.Mono && face.Italic:
		return gomonoitalic.TTF
	case face.Mono:
		return gomono.TTF
	case face.Bold && face.Italic:
		return gobolditalic.TTF
	case face.Bold:
		return gobold.TTF
	case face.Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}

// IsMonoFamily 判断 CSS 字体族是否应回退到等宽字体。
func IsMonoFamily(family string) bool {
	f := strings.ToLower(family)
	return strings.Contains(f, "mono") || strings.Contains(f, "courier") || strings.Contains(f, "consol")
}

func parseName(name string) (Face, bool) {
	if name != "go" && !strings.HasPrefix(name, "go-") {
		return Face{}, false
	}
	var face Face
	for _, part := range strings.Split(name, "-")[1:] {
		switch part {
		case "mono":
			face.Mono = true
		case "bold":
			face.Bold = true
		case "italic":
			face.Italic = true
		case "regular":
		default:
			return Face{}, false
		}
	}
	return face, true
}
