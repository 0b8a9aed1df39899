package models

// ControlTarget 控制按钮，只返回占位提示，不驱动任何设备
type ControlTarget struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Ack   string `json:"ack"`
}

// ControlTargets 页面上的控制按钮，按展示顺序排列
var ControlTargets = []ControlTarget{
	{Key: "nitrogen", Label: "Release Nitrogen", Ack: "Releasing Nitrogen..."},
	{Key: "phosphorus", Label: "Release Phosphorus", Ack: "Releasing Phosphorus..."},
	{Key: "potassium", Label: "Release Potassium", Ack: "Releasing Potassium..."},
	{Key: "ph", Label: "Control pH value", Ack: "Controlling pH value..."},
	{Key: "water", Label: "Control Water content", Ack: "Controlling Water content..."},
}

// FindControlTarget 按 key 查找控制按钮
func FindControlTarget(key string) (ControlTarget, bool) {
	for _, t := range ControlTargets {
		if t.Key == key {
			return t, true
		}
	}
	return ControlTarget{}, false
}
