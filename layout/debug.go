package layout

import (
	"encoding/json"
	"os"
)

// ResultJSON 将排版结果序列化为缩进 JSON，便于在 Worker 之间传递或调试。
func ResultJSON(res *Result) ([]byte, error) {
	return json.MarshalIndent(res, "", "  ")
}

// WordsJSON 序列化单词序列（包括已附带的度量），可原样回传给 SplitWords。
func WordsJSON(words []Word) ([]byte, error) {
	return json.MarshalIndent(words, "", "  ")
}

// WriteDebugJSON 将多个排版结果输出为 JSON 文件。
func WriteDebugJSON(results []*Result, path string) error {
	if len(results) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
