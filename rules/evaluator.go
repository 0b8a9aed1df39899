package rules

import (
	"go-soiladvisor/models"
)

// 操作提示文本
const (
	msgLowMoisture  = "Moisture is low. ESP32 will dispatch more water."
	msgHighMoisture = "Moisture is high. ESP32 will stop irrigation."
	msgLowPH        = "pH is low. ESP32 will add base to increase pH."
	msgHighPH       = "pH is high. ESP32 will add acid to decrease pH."
	msgNormal       = "All values are within normal range."
)

// Evaluate 根据湿度和 pH 读数生成操作提示
// 未填写或无法解析的读数直接跳过；没有任何提示时返回一条正常提示，结果至少一条
func Evaluate(moisture, ph models.Value) []models.Action {
	var actions []models.Action

	if m, ok := moisture.Float(); ok {
		switch {
		case m < models.MoistureMin:
			actions = append(actions, models.Action{Code: models.ActionLowMoisture, Message: msgLowMoisture})
		case m > models.MoistureMax:
			actions = append(actions, models.Action{Code: models.ActionHighMoisture, Message: msgHighMoisture})
		}
	}

	if p, ok := ph.Float(); ok {
		switch {
		case p < models.PHMin:
			actions = append(actions, models.Action{Code: models.ActionLowPH, Message: msgLowPH})
		case p > models.PHMax:
			actions = append(actions, models.Action{Code: models.ActionHighPH, Message: msgHighPH})
		}
	}

	if len(actions) == 0 {
		actions = append(actions, models.Action{Code: models.ActionNormal, Message: msgNormal})
	}
	return actions
}

// EvaluateReading 对一组读数执行 Evaluate
func EvaluateReading(r models.SoilReading) []models.Action {
	return Evaluate(r.Moisture, r.PH)
}

// Messages 提取提示文本
func Messages(actions []models.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = a.Message
	}
	return out
}
