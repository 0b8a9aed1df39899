package utils

import (
	gonanoid "github.com/matoous/go-nanoid"
)

// RequestIDKey gin 上下文中请求ID的键
const RequestIDKey = "requestID"

// RequestIDHeader 请求ID响应头
const RequestIDHeader = "X-Request-ID"

const requestIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// requestIDSize 生成的请求ID长度
const requestIDSize = 12

// NewRequestID 生成12位请求ID，字母表和长度固定，不会失败
func NewRequestID() string {
	return gonanoid.MustGenerate(requestIDAlphabet, requestIDSize)
}

// ValidRequestID 客户端传入的请求ID只接受 8-64 位字母数字和 -_
func ValidRequestID(id string) bool {
	if len(id) < 8 || len(id) > 64 {
		return false
	}
	for _, r := range id {
		if !(r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '-' || r == '_') {
			return false
		}
	}
	return true
}
