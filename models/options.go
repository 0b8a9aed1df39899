package models

// States 可选的邦和中央直辖区
var States = []string{
	"Andhra Pradesh", "Arunachal Pradesh", "Assam", "Bihar", "Chhattisgarh", "Goa", "Gujarat",
	"Haryana", "Himachal Pradesh", "Jharkhand", "Karnataka", "Kerala", "Madhya Pradesh",
	"Maharashtra", "Manipur", "Meghalaya", "Mizoram", "Nagaland", "Odisha", "Punjab",
	"Rajasthan", "Sikkim", "Tamil Nadu", "Telangana", "Tripura", "Uttar Pradesh",
	"Uttarakhand", "West Bengal", "Delhi", "Jammu and Kashmir", "Ladakh", "Puducherry",
	"Andaman and Nicobar Islands", "Chandigarh", "Dadra and Nagar Haveli and Daman and Diu",
	"Lakshadweep",
}

// Crops 可选作物
var Crops = []string{
	"Rice", "Wheat", "Maize", "Barley", "Millet", "Pulses", "Chickpea",
	"Lentil", "Groundnut", "Mustard", "Soybean", "Sunflower", "Cotton",
	"Sugarcane", "Jute", "Tea", "Coffee", "Tomato", "Potato", "Onion",
	"Brinjal", "Cauliflower", "Mango", "Banana", "Papaya", "Guava", "Grapes",
}

// 表单默认值
const (
	DefaultState = "Delhi"
	DefaultCrop  = "Rice"
)

// IsState 是否为可选地区
func IsState(name string) bool {
	return contains(States, name)
}

// IsCrop 是否为可选作物
func IsCrop(name string) bool {
	return contains(Crops, name)
}

func contains(list []string, name string) bool {
	for _, item := range list {
		if item == name {
			return true
		}
	}
	return false
}

// Options 表单选项
type Options struct {
	States       []string `json:"states"`
	Crops        []string `json:"crops"`
	DefaultState string   `json:"defaultState"`
	DefaultCrop  string   `json:"defaultCrop"`
}

// FormOptions 返回表单选项
func FormOptions() Options {
	return Options{
		States:       States,
		Crops:        Crops,
		DefaultState: DefaultState,
		DefaultCrop:  DefaultCrop,
	}
}
