package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Value 传感器读数的原始文本，空字符串表示未填写
type Value string

// UnmarshalJSON 同时接受 JSON 数字和字符串
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = Value(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("reading must be a number or string: %w", err)
	}
	*v = Value(n.String())
	return nil
}

// IsSet 是否填写
func (v Value) IsSet() bool {
	return strings.TrimSpace(string(v)) != ""
}

// Float 解析为数值，未填写或无法解析时 ok 为 false
func (v Value) Float() (float64, bool) {
	s := strings.TrimSpace(string(v))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Or 未填写时返回默认值
func (v Value) Or(def string) string {
	if !v.IsSet() {
		return def
	}
	return strings.TrimSpace(string(v))
}

// SoilReading 土壤传感器读数
type SoilReading struct {
	Nitrogen   Value `json:"nitrogen" form:"nitrogen"`
	Phosphorus Value `json:"phosphorus" form:"phosphorus"`
	Potassium  Value `json:"potassium" form:"potassium"`
	PH         Value `json:"ph" form:"ph"`
	Moisture   Value `json:"moisture" form:"moisture"`
}

// NPK 返回氮磷钾读数，未填写按 0 处理
func (r SoilReading) NPK() (n, p, k string) {
	return r.Nitrogen.Or("0"), r.Phosphorus.Or("0"), r.Potassium.Or("0")
}

// Current 返回用于展示的当前读数
func (r SoilReading) Current() CurrentLevels {
	n, p, k := r.NPK()
	return CurrentLevels{
		N:        n,
		P:        p,
		K:        k,
		PH:       r.PH.Or("-"),
		Moisture: r.Moisture.Or("-"),
	}
}

// Validate 已填写的读数必须是数字
func (r SoilReading) Validate() error {
	fields := []struct {
		name  string
		value Value
	}{
		{"nitrogen", r.Nitrogen},
		{"phosphorus", r.Phosphorus},
		{"potassium", r.Potassium},
		{"ph", r.PH},
		{"moisture", r.Moisture},
	}
	for _, f := range fields {
		if !f.value.IsSet() {
			continue
		}
		if _, ok := f.value.Float(); !ok {
			return fmt.Errorf("%s must be a number, got %q", f.name, string(f.value))
		}
	}
	return nil
}

// CurrentLevels 当前养分展示值
type CurrentLevels struct {
	N        string `json:"n"`
	P        string `json:"p"`
	K        string `json:"k"`
	PH       string `json:"ph"`
	Moisture string `json:"moisture"`
}

// SuggestedLevels 建议养分水平，数值保持原始文本，不做校验
type SuggestedLevels struct {
	N        string `json:"n" form:"sug_n"`
	P        string `json:"p" form:"sug_p"`
	K        string `json:"k" form:"sug_k"`
	PH       string `json:"ph" form:"sug_ph"`
	Moisture string `json:"moisture" form:"sug_moisture"`
}

// IsZero 五项均为空
func (s SuggestedLevels) IsZero() bool {
	return s == SuggestedLevels{}
}

// DefaultSuggested 未获得建议值前使用的默认建议
var DefaultSuggested = SuggestedLevels{N: "50", P: "30", K: "150", PH: "6.5-7.5", Moisture: "60"}

// 土壤阈值，闭区间内视为正常
const (
	MoistureMin = 30.0
	MoistureMax = 60.0
	PHMin       = 6.0
	PHMax       = 7.5
)
