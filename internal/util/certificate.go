package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewCertificateNumber 生成证书编号：毫秒时间戳 + 随机后缀
// 形如 CERT-1719936000123-9f3a1c2d
func NewCertificateNumber() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("CERT-%d-%s", time.Now().UnixMilli(), suffix)
}
