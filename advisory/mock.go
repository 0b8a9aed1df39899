package advisory

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"go-soiladvisor/models"
)

// MockGenerator 不访问网络，根据读数生成固定格式的建议，用于本地调试
// N、P、K 按读数推算，pH 6.5 和湿度 60% 是固定占位值
type MockGenerator struct{}

// Generate 实现 Generator
func (MockGenerator) Generate(ctx context.Context, req models.AdvisoryRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n, p, k := req.Reading.NPK()
	sn := max(50, wholePart(n)+10)
	sp := max(30, wholePart(p)+5)
	sk := max(150, wholePart(k)+20)

	return fmt.Sprintf(`Suggested Levels: N: %d, P: %d, K: %d, pH: 6.5, Moisture: 60%%
Overview: Based on soil NPK values (N: %s, P: %s, K: %s) in %s for date %s:

Crops: Rice, Wheat, Sugarcane, Cotton (for high nitrogen), Legumes like Chickpea, Lentils (for nitrogen fixation), Vegetables like Tomato, Potato

Note: This is mock data for testing. Enable API for real recommendations.`,
		sn, sp, sk, n, p, k, req.State, req.Date), nil
}

// wholePart 取整数部分，无法解析时为 0
func wholePart(s string) int {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(math.Trunc(f))
}
