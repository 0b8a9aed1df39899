package advisory

import (
	"fmt"

	"go-soiladvisor/models"
)

const promptTemplate = `For a '%s' crop in the state of %s, India, around the date %s, with current soil NPK (N: %s, P: %s, K: %s):
  ANSWER IN BRIEF AND TO THE POINT
1. What are the optimal/suggested nutrient levels? Include N, P, K, pH, and Moisture.
2. Which crops are best suited to grow here if the npk values are greater than the optimal values?
Please answer in this format:
Suggested Levels: N: <value>, P: <value>, K: <value>, pH: <value>, Moisture: <value>%%
Overview: <brief overview/actions>`

// BuildPrompt 根据读数和作物、地区、日期生成提示词，输入原样嵌入
func BuildPrompt(req models.AdvisoryRequest) string {
	n, p, k := req.Reading.NPK()
	return fmt.Sprintf(promptTemplate, req.Crop, req.State, req.Date, n, p, k)
}
