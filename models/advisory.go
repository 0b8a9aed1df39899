package models

import (
	"fmt"
	"time"
)

// DateLayout 日期格式
const DateLayout = "2006-01-02"

// AdvisoryRequest 一次提交的建议请求
type AdvisoryRequest struct {
	Reading SoilReading `json:"reading"`
	State   string      `json:"state"`
	Crop    string      `json:"crop"`
	Date    string      `json:"date"`
}

// Validate 校验地区、作物、日期和读数
func (r AdvisoryRequest) Validate() error {
	if !IsState(r.State) {
		return fmt.Errorf("unknown state %q", r.State)
	}
	if !IsCrop(r.Crop) {
		return fmt.Errorf("unknown crop %q", r.Crop)
	}
	if r.Date != "" {
		if _, err := time.Parse(DateLayout, r.Date); err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD, got %q", r.Date)
		}
	}
	return r.Reading.Validate()
}

// WithDefaultDate 日期为空时使用 now 所在的 UTC 日期
func (r AdvisoryRequest) WithDefaultDate(now time.Time) AdvisoryRequest {
	if r.Date == "" {
		r.Date = now.UTC().Format(DateLayout)
	}
	return r
}

// AdvisoryResult 建议结果，Failed 时 Overview 为错误描述
type AdvisoryResult struct {
	RequestID string          `json:"requestId,omitempty"`
	Overview  string          `json:"overview"`
	Failed    bool            `json:"failed"`
	Suggested SuggestedLevels `json:"suggested"`
	Extracted bool            `json:"extracted"`
	Current   CurrentLevels   `json:"current"`
}

// Action 规则判断产生的一条操作提示
type Action struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// 操作提示代码
const (
	ActionLowMoisture  = "low_moisture"
	ActionHighMoisture = "high_moisture"
	ActionLowPH        = "low_ph"
	ActionHighPH       = "high_ph"
	ActionNormal       = "normal"
)
