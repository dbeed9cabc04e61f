package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ── 文本布尔 "Sim"/"Não" ──

// 库中复选框字段只有这两个取值
const (
	TokenYes = "Sim"
	TokenNo  = "Não"
)

// YesNo 对应库中的 "Sim"/"Não" 文本列，实现 GORM Scanner/Valuer 接口。
// 进入程序后即为普通 bool，JSON 也按 bool 输出。
type YesNo bool

// ParseYesNo 严格解析，只接受 "Sim" 与 "Não"，用于输入校验
func ParseYesNo(token string) (bool, error) {
	switch token {
	case TokenYes:
		return true, nil
	case TokenNo:
		return false, nil
	default:
		return false, fmt.Errorf("YesNo: 非法取值 %q", token)
	}
}

// FormatYesNo 将 bool 编码回文本令牌
func FormatYesNo(b bool) string {
	if b {
		return TokenYes
	}
	return TokenNo
}

// DecodeYesNo 宽松解码，用于读库：不区分大小写、忽略首尾空白，
// "Sim"/"S" 为 true，其余任何取值（含 "Nao"、NULL、空串）都为 false
func DecodeYesNo(token string) bool {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "sim", "s":
		return true
	default:
		return false
	}
}

// Scan 读库解码不会失败，单个字段的脏数据不影响整行
func (y *YesNo) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*y = false
	case []byte:
		*y = YesNo(DecodeYesNo(string(v)))
	case string:
		*y = YesNo(DecodeYesNo(v))
	default:
		return fmt.Errorf("YesNo.Scan: unsupported type %T", src)
	}
	return nil
}

// Value 写回 "Sim"/"Não"
func (y YesNo) Value() (driver.Value, error) {
	return FormatYesNo(bool(y)), nil
}
