package highlight

import (
	"strings"

	"github.com/codewright/backend/internal/model"
)

// FallbackLanguage 没有任何匹配时返回的语言标识
const FallbackLanguage = "text"

// Snapshot 后缀到语言的只读快照
// 一次导出开始时构建一份，整个导出过程读同一份映射，
// 管理端并发修改映射表不会影响进行中的导出
type Snapshot map[string]string

// NewSnapshot 从映射记录构建快照，只收录 enabled 的条目
func NewSnapshot(mappings []model.LanguageMapping) Snapshot {
	s := make(Snapshot, len(mappings))
	for _, m := range mappings {
		if !m.Enabled {
			continue
		}
		s[strings.ToLower(m.Suffix)] = m.Language
	}
	return s
}

// Resolve 解析文件的显示语言
// override 非空时原样返回（调用方声明的语言是可信的）；
// 否则取最后一个 . 之后的小写后缀查表，查不到返回 text
func (s Snapshot) Resolve(filename, override string) string {
	if override != "" {
		return override
	}

	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return FallbackLanguage
	}
	suffix := strings.ToLower(filename[idx:])

	if language, ok := s[suffix]; ok {
		return language
	}
	return FallbackLanguage
}
