package advisory

import (
	"regexp"

	"go-soiladvisor/models"
)

// suggestedPattern 匹配第一处 "Suggested Levels" 行，字段顺序固定，关键字不区分大小写
var suggestedPattern = regexp.MustCompile(
	`(?i)Suggested Levels:.*?N:\s*([\d.]+).*?P:\s*([\d.]+).*?K:\s*([\d.]+).*?pH:\s*([\d.-]+).*?Moisture:\s*([\d.]+)`,
)

// ExtractSuggested 从建议文本中提取五项建议值
// 任一字段缺失或顺序不符时返回 false，不会返回部分结果
func ExtractSuggested(text string) (models.SuggestedLevels, bool) {
	m := suggestedPattern.FindStringSubmatch(text)
	if m == nil {
		return models.SuggestedLevels{}, false
	}
	return models.SuggestedLevels{
		N:        m[1],
		P:        m[2],
		K:        m[3],
		PH:       m[4],
		Moisture: m[5],
	}, true
}

// ExtractOr 提取失败时返回 prior
func ExtractOr(text string, prior models.SuggestedLevels) (models.SuggestedLevels, bool) {
	if levels, ok := ExtractSuggested(text); ok {
		return levels, true
	}
	return prior, false
}
