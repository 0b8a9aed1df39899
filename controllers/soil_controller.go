package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"go-soiladvisor/advisory"
	"go-soiladvisor/models"
	"go-soiladvisor/rules"
	"go-soiladvisor/utils"
	"go-soiladvisor/views"
)

// SoilController 处理土壤读数提交和建议相关的请求
type SoilController struct {
	Advisor *advisory.Service
	Logger  *zap.Logger
}

// NewSoilController 创建一个新的SoilController实例
func NewSoilController(advisor *advisory.Service, logger *zap.Logger) *SoilController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SoilController{Advisor: advisor, Logger: logger}
}

// advisoryForm 表单和 JSON 共用的提交结构
type advisoryForm struct {
	models.SoilReading
	State string                 `form:"state" json:"state"`
	Crop  string                 `form:"crop" json:"crop"`
	Date  string                 `form:"date" json:"date"`
	Prior models.SuggestedLevels `json:"prior"`
}

func (f advisoryForm) request() models.AdvisoryRequest {
	req := models.AdvisoryRequest{
		Reading: f.SoilReading,
		State:   f.State,
		Crop:    f.Crop,
		Date:    f.Date,
	}
	if req.State == "" {
		req.State = models.DefaultState
	}
	if req.Crop == "" {
		req.Crop = models.DefaultCrop
	}
	return req
}

// advisoryResponse 建议接口的返回数据
type advisoryResponse struct {
	models.AdvisoryResult
	Actions []models.Action `json:"actions"`
}

// page 主页面数据
type page struct {
	Form      models.AdvisoryRequest
	Options   models.Options
	Controls  []models.ControlTarget
	Current   models.CurrentLevels
	Suggested models.SuggestedLevels
	Actions   []models.Action
	Overview  string
	Failed    bool
	Submitted bool
	Notice    string
	RequestID string
}

func newPage(ctx *gin.Context) page {
	return page{
		Form:      models.AdvisoryRequest{State: models.DefaultState, Crop: models.DefaultCrop},
		Options:   models.FormOptions(),
		Controls:  models.ControlTargets,
		Current:   models.SoilReading{}.Current(),
		Suggested: models.DefaultSuggested,
		RequestID: ctx.GetString(utils.RequestIDKey),
	}
}

// Index 展示空白表单
func (c *SoilController) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, views.IndexPage, newPage(ctx))
}

// Submit 处理表单提交，重新渲染页面
func (c *SoilController) Submit(ctx *gin.Context) {
	p := newPage(ctx)

	var form advisoryForm
	if err := ctx.ShouldBind(&form); err != nil {
		p.Notice = "Invalid form submission: " + err.Error()
		ctx.HTML(http.StatusBadRequest, views.IndexPage, p)
		return
	}
	if !form.Prior.IsZero() {
		p.Suggested = form.Prior
	}

	req := form.request()
	p.Form = req
	if err := req.Validate(); err != nil {
		p.Notice = err.Error()
		ctx.HTML(http.StatusBadRequest, views.IndexPage, p)
		return
	}

	result := c.Advisor.Advise(ctx.Request.Context(), req, form.Prior)
	p.Submitted = true
	p.Current = result.Current
	p.Suggested = result.Suggested
	p.Overview = result.Overview
	p.Failed = result.Failed
	p.Actions = rules.EvaluateReading(req.Reading)

	ctx.HTML(http.StatusOK, views.IndexPage, p)
}

// Advise JSON 接口，语义与表单提交相同
func (c *SoilController) Advise(ctx *gin.Context) {
	var form advisoryForm
	if err := ctx.ShouldBindJSON(&form); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	req := form.request()
	if err := req.Validate(); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}

	result := c.Advisor.Advise(ctx.Request.Context(), req, form.Prior)
	result.RequestID = ctx.GetString(utils.RequestIDKey)
	utils.Success(ctx, advisoryResponse{
		AdvisoryResult: result,
		Actions:        rules.EvaluateReading(req.Reading),
	})
}

// Actions 只执行湿度和 pH 的规则判断，无法解析的读数直接忽略
func (c *SoilController) Actions(ctx *gin.Context) {
	var reading models.SoilReading
	if err := ctx.ShouldBindJSON(&reading); err != nil {
		utils.BadRequest(ctx, err.Error())
		return
	}
	utils.Success(ctx, gin.H{"actions": rules.EvaluateReading(reading)})
}

// Options 返回可选地区和作物
func (c *SoilController) Options(ctx *gin.Context) {
	utils.Success(ctx, models.FormOptions())
}
